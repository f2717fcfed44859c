package monitor

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/sandevgo/pulseboard/internal/service/session"
	"github.com/sandevgo/pulseboard/pkg/log"
	"github.com/sandevgo/pulseboard/pkg/retry"
)

// FrameSource is one live connection attempt to the vitals stream. It
// returns nil only when ctx ends; any other return is a reconnect
// signal.
type FrameSource interface {
	Subscribe(ctx context.Context, handle func(core.VitalsFrame)) error
}

// Sink consumes freshly accepted recommendations after the store took
// them. Implementations must not block for long: they run on the frame
// handling path.
type Sink interface {
	RecommendationsAdded(ctx context.Context, recs []core.Recommendation)
}

// Monitor drives one monitoring session: it keeps a subscription to the
// vitals stream alive, feeds advisory text to the session store and
// fans accepted recommendations out to the sinks.
type Monitor struct {
	source FrameSource
	store  *session.Store
	sinks  []Sink

	RetryConfig *retry.Config

	mu    sync.Mutex
	stats core.SessionStats
}

func NewMonitor(source FrameSource, store *session.Store, sinks ...Sink) *Monitor {
	return &Monitor{
		source:      source,
		store:       store,
		sinks:       sinks,
		RetryConfig: retry.NewReconnectConfig(),
	}
}

func (m *Monitor) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("starting vitals monitor")

	m.mu.Lock()
	m.stats.StartedAt = time.Now()
	m.mu.Unlock()

	retrier := retry.NewRetrier(m.RetryConfig)
	retrier.OnRetry = func(attempt int, err error, next time.Duration) {
		m.setConnected(false)
		logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", next).Msg("stream connection lost")
	}

	err := retrier.Do(ctx, func() error {
		return m.source.Subscribe(ctx, func(frame core.VitalsFrame) {
			m.handleFrame(ctx, frame)
		})
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Monitor) Shutdown(ctx context.Context) error {
	m.setConnected(false)
	return nil
}

func (m *Monitor) handleFrame(ctx context.Context, frame core.VitalsFrame) {
	advice := ""
	if frame.Diagnosis != nil {
		advice = strings.TrimSpace(frame.Diagnosis.AIAdvice)
	}

	m.mu.Lock()
	m.stats.Connected = true
	m.stats.Frames++
	if frame.FaceDetected {
		m.stats.FacesDetected++
	}
	if frame.Diagnosis != nil {
		m.stats.LastDiagnosis = frame.Diagnosis
	}
	if advice != "" {
		m.stats.AdviceSeen++
	}
	m.mu.Unlock()

	if advice == "" {
		return
	}

	added := m.store.Ingest(advice)
	if len(added) == 0 {
		return
	}

	log.FromCtx(ctx).Info().Int("count", len(added)).Msg("recommendations accepted")
	for _, sink := range m.sinks {
		sink.RecommendationsAdded(ctx, added)
	}
}

// Stats returns a copy of the live session counters.
func (m *Monitor) Stats() core.SessionStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

func (m *Monitor) setConnected(connected bool) {
	m.mu.Lock()
	m.stats.Connected = connected
	m.mu.Unlock()
}
