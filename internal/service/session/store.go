// Package session owns the per-session recommendation state. A Store is
// created when a monitoring session starts and handed by reference to
// every surface that reads or mutates history; nothing lives in package
// globals.
package session

import (
	"sync"
	"time"

	"github.com/sandevgo/pulseboard/internal/advisor"
	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/sandevgo/pulseboard/internal/render"
)

const (
	// HistoryCapacity bounds the retained recommendations.
	HistoryCapacity = 25

	// FreshnessDelay is how long an entry keeps its new badge.
	FreshnessDelay = 3 * time.Second

	timestampLayout = "15:04:05"
)

// Store holds the bounded history, the repeat memo (inside the
// pipeline's gate), the active category filter and the single freshness
// timer. All methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	pipeline *advisor.Pipeline
	history  []core.Recommendation
	filter   string
	nextID   int64
	timer    *time.Timer
	freshFor time.Duration
	now      func() time.Time
	updates  chan struct{}
}

func NewStore() *Store {
	return &Store{
		pipeline: advisor.NewPipeline(),
		filter:   render.FilterAll,
		nextID:   1,
		freshFor: FreshnessDelay,
		now:      time.Now,
		updates:  make(chan struct{}, 1),
	}
}

// Ingest runs one advisory text through the pipeline and prepends
// whatever survives, newest on top, truncating to capacity. It returns
// copies of the added entries in extraction order and signals
// subscribers when anything changed.
func (s *Store) Ingest(advice string) []core.Recommendation {
	s.mu.Lock()

	existing := make([]string, len(s.history))
	for i, rec := range s.history {
		existing[i] = rec.Text
	}

	results := s.pipeline.Process(advice, existing)
	if len(results) == 0 {
		s.mu.Unlock()
		return nil
	}

	stamp := s.now().Format(timestampLayout)
	added := make([]core.Recommendation, 0, len(results))
	for _, res := range results {
		rec := core.Recommendation{
			ID:         s.nextID,
			Text:       res.Text,
			Category:   res.Category,
			Timestamp:  stamp,
			SourceText: advice,
			IsNew:      true,
		}
		s.nextID++
		s.history = append([]core.Recommendation{rec}, s.history...)
		added = append(added, rec)
	}
	if len(s.history) > HistoryCapacity {
		s.history = s.history[:HistoryCapacity]
	}
	s.rescheduleFreshnessLocked()
	s.mu.Unlock()

	s.notify()
	return added
}

// rescheduleFreshnessLocked arms the expiry task, replacing any pending
// one. The task holds no entry references: at fire time it clears
// whatever is still marked new.
func (s *Store) rescheduleFreshnessLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.freshFor, s.expireFresh)
}

func (s *Store) expireFresh() {
	s.mu.Lock()
	changed := false
	for i := range s.history {
		if s.history[i].IsNew {
			s.history[i].IsNew = false
			changed = true
		}
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Snapshot returns a copy of the history, newest first.
func (s *Store) Snapshot() []core.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Recommendation, len(s.history))
	copy(out, s.history)
	return out
}

// Count reports the number of stored entries.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Projection builds the current filtered view.
func (s *Store) Projection() render.Projection {
	s.mu.Lock()
	history := make([]core.Recommendation, len(s.history))
	copy(history, s.history)
	filter := s.filter
	s.mu.Unlock()
	return render.BuildProjection(history, filter)
}

// Export renders the full history regardless of the active filter.
func (s *Store) Export() (string, bool) {
	return render.BuildExport(s.Snapshot())
}

// Filter returns the active category filter, render.FilterAll when the
// view is unfiltered.
func (s *Store) Filter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetFilter switches the view to one taxonomy name, or render.FilterAll
// for everything.
func (s *Store) SetFilter(name string) {
	s.mu.Lock()
	s.filter = name
	s.mu.Unlock()
	s.notify()
}

// CycleFilter advances the filter one step: everything, then each
// taxonomy name in order, then back to everything. It returns the new
// value.
func (s *Store) CycleFilter() string {
	s.mu.Lock()
	order := append([]string{render.FilterAll}, advisor.Categories()...)
	idx := 0
	for i, name := range order {
		if name == s.filter {
			idx = i
			break
		}
	}
	s.filter = order[(idx+1)%len(order)]
	next := s.filter
	s.mu.Unlock()

	s.notify()
	return next
}

// CycleFilterBack steps the filter one step backward through the same
// order as CycleFilter.
func (s *Store) CycleFilterBack() string {
	s.mu.Lock()
	order := append([]string{render.FilterAll}, advisor.Categories()...)
	idx := 0
	for i, name := range order {
		if name == s.filter {
			idx = i
			break
		}
	}
	s.filter = order[(idx-1+len(order))%len(order)]
	next := s.filter
	s.mu.Unlock()

	s.notify()
	return next
}

// Clear empties the history, resets the repeat memo so the next
// advisory is never mistaken for a repeat, and cancels the pending
// freshness task. Confirmation is the caller's job.
func (s *Store) Clear() {
	s.mu.Lock()
	s.history = nil
	s.pipeline.Reset()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.notify()
}

// Updates signals after every state change. The channel is coalescing:
// a slow reader sees at least one signal for any burst of changes.
func (s *Store) Updates() <-chan struct{} {
	return s.updates
}

func (s *Store) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

// Close cancels the pending freshness task when the session ends.
func (s *Store) Close() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
}
