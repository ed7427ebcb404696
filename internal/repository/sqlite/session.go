package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avendel/textamend/internal/domain"
)

// SessionRepository implements domain.SessionRepository using SQLite.
type SessionRepository struct {
	db *sql.DB
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, username, created_at) VALUES (?, ?, ?)`,
		session.ID, session.Username, now,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	session.CreatedAt = now
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	session := &domain.Session{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, created_at FROM sessions WHERE id = ?`, id,
	).Scan(&session.ID, &session.Username, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query session: %w", err)
	}
	return session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	// Results cascade away via the foreign key. Deleting a missing
	// session is a no-op so logout stays idempotent.
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) SetResult(ctx context.Context, sessionID string, slot domain.Slot, result domain.Result) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_results (session_id, slot, original, corrected, tone, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (session_id, slot) DO UPDATE SET
		   original = excluded.original,
		   corrected = excluded.corrected,
		   tone = excluded.tone,
		   updated_at = excluded.updated_at`,
		sessionID, string(slot), result.Original, result.Corrected, result.Tone, now,
	)
	if err != nil {
		return fmt.Errorf("set session result: %w", err)
	}
	return nil
}

func (r *SessionRepository) Results(ctx context.Context, sessionID string) (map[domain.Slot]*domain.Result, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT slot, original, corrected, tone FROM session_results WHERE session_id = ?`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query session results: %w", err)
	}
	defer rows.Close()

	results := make(map[domain.Slot]*domain.Result)
	for rows.Next() {
		var slot string
		result := &domain.Result{}
		if err := rows.Scan(&slot, &result.Original, &result.Corrected, &result.Tone); err != nil {
			return nil, fmt.Errorf("scan session result: %w", err)
		}
		results[domain.Slot(slot)] = result
	}
	return results, rows.Err()
}
