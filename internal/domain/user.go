package domain

import (
	"context"
	"time"
)

// User represents a registered user of the application. User records are
// immutable after registration: there are no update or delete operations.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for users.
//
// Uniqueness of username and email is enforced by pre-insert existence
// checks in the service layer, not by the store. Two concurrent
// registrations with the same username can therefore both succeed; this
// race is a known, documented property of the system.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
