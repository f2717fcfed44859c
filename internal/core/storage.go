package core

import (
	"context"
	"time"
)

type SessionsRepository interface {
	CreateSession(ctx context.Context, startedAt time.Time) (int64, error)
	CloseSession(ctx context.Context, id int64, endedAt time.Time, frames, adviceCount int64) error
	GetSessions(ctx context.Context, limit int) ([]StoredSession, error)
	LatestSessionID(ctx context.Context) (int64, error)
}

type RecommendationsRepository interface {
	AddRecommendations(ctx context.Context, sessionID int64, recs []Recommendation) error
	GetBySession(ctx context.Context, sessionID int64) ([]StoredRecommendation, error)
	CountBySession(ctx context.Context, sessionID int64) (int64, error)
}

// StoredSession is one archived monitoring session.
type StoredSession struct {
	ID          int64      `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	Frames      int64      `json:"frames"`
	AdviceCount int64      `json:"advice_count"`
}

// StoredRecommendation is the archive row for one accepted
// recommendation. Seq is the in-session monotonic id.
type StoredRecommendation struct {
	ID         int64     `json:"id"`
	SessionID  int64     `json:"session_id"`
	Seq        int64     `json:"seq"`
	Text       string    `json:"text"`
	Category   string    `json:"category"`
	SourceText string    `json:"source_text"`
	CapturedAt time.Time `json:"captured_at"`
}
