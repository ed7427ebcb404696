package domain

import (
	"context"
	"time"
)

// Operation identifies which kind of processing produced a log entry.
type Operation string

const (
	OpSpell       Operation = "spell"
	OpGrammar     Operation = "grammar"
	OpTranslation Operation = "translation"
)

// LogEntry is an append-only audit record of one processing operation.
// Entries are never mutated or deleted. Language and Tone are empty when
// not applicable to the operation.
type LogEntry struct {
	ID        int64
	Username  string
	Original  string
	Corrected string
	Operation Operation
	Language  string
	Tone      string
	CreatedAt time.Time
}

// LogRepository defines persistence for the activity log.
type LogRepository interface {
	Insert(ctx context.Context, entry *LogEntry) error
	// ListByUsername returns the most recent entries for a user, newest
	// first, up to limit.
	ListByUsername(ctx context.Context, username string, limit int) ([]LogEntry, error)
}
