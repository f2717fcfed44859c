package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/pulseboard/internal/core"
)

type Recommendations struct {
	db *sql.DB
}

func NewRecommendations(db *sql.DB) *Recommendations {
	return &Recommendations{db: db}
}

// AddRecommendations archives one accepted batch. The in-session id
// doubles as the seq column; replaying a batch after a reconnect hits
// the UNIQUE(session_id, seq) constraint and is silently skipped.
func (r *Recommendations) AddRecommendations(ctx context.Context, sessionID int64, recs []core.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO recommendations (session_id, seq, text, category, source_text, captured_at) VALUES (?, ?, ?, ?, ?, ?)`
	capturedAt := time.Now()
	for _, rec := range recs {
		if _, err := tx.ExecContext(ctx, query, sessionID, rec.ID, rec.Text, rec.Category, rec.SourceText, capturedAt); err != nil {
			if isDuplicateError(err) {
				continue
			}
			return fmt.Errorf("failed to insert recommendation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recommendations: %w", err)
	}
	return nil
}

// GetBySession returns the archived entries newest-first, matching the
// live view's ordering.
func (r *Recommendations) GetBySession(ctx context.Context, sessionID int64) ([]core.StoredRecommendation, error) {
	query := `SELECT id, session_id, seq, text, category, source_text, captured_at FROM recommendations WHERE session_id = ? ORDER BY seq DESC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []core.StoredRecommendation
	for rows.Next() {
		var rec core.StoredRecommendation
		var sourceText sql.NullString

		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Seq, &rec.Text, &rec.Category, &sourceText, &rec.CapturedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		rec.SourceText = sourceText.String
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *Recommendations) CountBySession(ctx context.Context, sessionID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM recommendations WHERE session_id = ?`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recommendations: %w", err)
	}
	return count, nil
}

func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
