package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable signals a missing, unreadable or malformed data source.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrEmptyQuery signals a search without query text.
	ErrEmptyQuery = errors.New("query is required")
	// ErrInvalidQuery signals a malformed search request.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrIndexNotReady signals a search before the index was fitted.
	ErrIndexNotReady = errors.New("index not ready")
	// ErrProductNotFound signals a missing catalog product.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidCredentials signals a failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotLoggedIn signals a wishlist change on an anonymous session.
	ErrNotLoggedIn = errors.New("login required")
	// ErrSessionNotFound signals a missing or expired session.
	ErrSessionNotFound = errors.New("session not found")
)

// MissingColumnsError wraps ErrDataUnavailable with the required columns a source lacks.
type MissingColumnsError struct {
	Source  string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s is missing required columns %v", ErrDataUnavailable.Error(), e.Source, e.Columns)
}

func (e *MissingColumnsError) Unwrap() error { return ErrDataUnavailable }

// NewMissingColumns creates a missing columns error.
func NewMissingColumns(source string, columns []string) error {
	return &MissingColumnsError{Source: source, Columns: columns}
}
