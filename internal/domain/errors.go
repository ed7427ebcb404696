package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrUnsupportedFile   = errors.New("unsupported file type")
	ErrEmptyFile         = errors.New("file is empty or unreadable")
)
