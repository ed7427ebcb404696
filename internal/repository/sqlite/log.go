package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avendel/textamend/internal/domain"
)

// LogRepository implements domain.LogRepository using SQLite.
type LogRepository struct {
	db *sql.DB
}

func (r *LogRepository) Insert(ctx context.Context, entry *domain.LogEntry) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_log (username, original, corrected, operation, language, tone, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Username, entry.Original, entry.Corrected, string(entry.Operation),
		entry.Language, entry.Tone, now,
	)
	if err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	entry.ID = id
	entry.CreatedAt = now
	return nil
}

func (r *LogRepository) ListByUsername(ctx context.Context, username string, limit int) ([]domain.LogEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, original, corrected, operation, language, tone, created_at
		 FROM activity_log WHERE username = ? ORDER BY id DESC LIMIT ?`,
		username, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query log entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LogEntry
	for rows.Next() {
		var entry domain.LogEntry
		var op string
		if err := rows.Scan(&entry.ID, &entry.Username, &entry.Original, &entry.Corrected,
			&op, &entry.Language, &entry.Tone, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		entry.Operation = domain.Operation(op)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
