package archive

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/sandevgo/pulseboard/pkg/log"
)

// Archive persists the running monitoring session and every accepted
// recommendation batch to the sqlite archive. It also acts as a sink on
// the monitor's fan-out path.
type Archive struct {
	sessions core.SessionsRepository
	recs     core.RecommendationsRepository
	stats    func() core.SessionStats

	mu        sync.Mutex
	sessionID int64
}

func NewArchive(sessions core.SessionsRepository, recs core.RecommendationsRepository, stats func() core.SessionStats) *Archive {
	return &Archive{
		sessions: sessions,
		recs:     recs,
		stats:    stats,
	}
}

func (a *Archive) Start(ctx context.Context) error {
	id, err := a.sessions.CreateSession(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to open archive session: %w", err)
	}

	a.mu.Lock()
	a.sessionID = id
	a.mu.Unlock()

	log.FromCtx(ctx).Info().Int64("session_id", id).Msg("archive session opened")

	<-ctx.Done()
	return nil
}

// Shutdown stamps the session row with its end time and final counters.
// It runs after the root context is canceled, so the write uses a
// detached context.
func (a *Archive) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	id := a.sessionID
	a.mu.Unlock()
	if id == 0 {
		return nil
	}

	stats := a.stats()
	closeCtx := context.WithoutCancel(ctx)
	if err := a.sessions.CloseSession(closeCtx, id, time.Now(), stats.Frames, stats.AdviceSeen); err != nil {
		return fmt.Errorf("failed to close archive session: %w", err)
	}
	return nil
}

// RecommendationsAdded archives one accepted batch. Failures are logged
// and swallowed: the live view must not stall on archive trouble.
func (a *Archive) RecommendationsAdded(ctx context.Context, recs []core.Recommendation) {
	a.mu.Lock()
	id := a.sessionID
	a.mu.Unlock()
	if id == 0 {
		return
	}

	if err := a.recs.AddRecommendations(ctx, id, recs); err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("session_id", id).Msg("failed to archive recommendations")
	}
}

// SessionID reports the open archive session, 0 before Start.
func (a *Archive) SessionID() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessionID
}
