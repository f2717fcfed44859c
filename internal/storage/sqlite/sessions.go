package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/pulseboard/internal/core"
)

// ErrNoSessions is returned when the archive holds no sessions yet.
var ErrNoSessions = errors.New("no sessions recorded")

type Sessions struct {
	db *sql.DB
}

func NewSessions(db *sql.DB) *Sessions {
	return &Sessions{db: db}
}

func (s *Sessions) CreateSession(ctx context.Context, startedAt time.Time) (int64, error) {
	query := `INSERT INTO sessions (started_at) VALUES (?)`
	res, err := s.db.ExecContext(ctx, query, startedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read session id: %w", err)
	}
	return id, nil
}

func (s *Sessions) CloseSession(ctx context.Context, id int64, endedAt time.Time, frames, adviceCount int64) error {
	query := `UPDATE sessions SET ended_at = ?, frames = ?, advice_count = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, endedAt, frames, adviceCount, id); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	return nil
}

func (s *Sessions) GetSessions(ctx context.Context, limit int) ([]core.StoredSession, error) {
	query := `SELECT id, started_at, ended_at, frames, advice_count FROM sessions ORDER BY id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []core.StoredSession
	for rows.Next() {
		var sess core.StoredSession
		var endedAt sql.NullTime

		if err := rows.Scan(&sess.ID, &sess.StartedAt, &endedAt, &sess.Frames, &sess.AdviceCount); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if endedAt.Valid {
			t := endedAt.Time
			sess.EndedAt = &t
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *Sessions) LatestSessionID(ctx context.Context) (int64, error) {
	query := `SELECT id FROM sessions ORDER BY id DESC LIMIT 1`

	var id int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoSessions
		}
		return 0, fmt.Errorf("failed to query latest session: %w", err)
	}
	return id, nil
}
