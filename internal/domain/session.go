package domain

import (
	"context"
	"time"
)

// Slot names one of the four per-session result categories. The set is
// fixed: writing one slot never touches the other three.
type Slot string

const (
	SlotSpell     Slot = "spell"
	SlotGrammar   Slot = "grammar"
	SlotTranslate Slot = "translate"
	SlotFile      Slot = "file"
)

// Slots lists all valid slots in display order.
var Slots = []Slot{SlotSpell, SlotGrammar, SlotTranslate, SlotFile}

// Result is the outcome of one processing operation. It is transient:
// the next operation on the same slot overwrites it, and logout discards
// it. Original is empty for the three text endpoints and holds the
// extracted document content for the file slot.
type Result struct {
	Original  string
	Corrected string
	Tone      string
}

// Session is a server-side authenticated session. It is created at login
// and deleted at logout; deleting it discards all result slots.
type Session struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// SessionRepository defines persistence for sessions and their result
// slots. A slot with no stored result is simply absent from Results.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	// Delete removes the session and all its results. Deleting a session
	// that does not exist is not an error.
	Delete(ctx context.Context, id string) error
	SetResult(ctx context.Context, sessionID string, slot Slot, result Result) error
	Results(ctx context.Context, sessionID string) (map[Slot]*Result, error)
}
