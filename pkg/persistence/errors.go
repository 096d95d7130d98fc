package persistence

import "errors"

// Standard persistence error types that all implementations use.
var (
	// ErrDraftNotFound indicates no draft exists with the given identifier.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrSessionNotFound indicates no session snapshot exists with the given identifier.
	ErrSessionNotFound = errors.New("session not found")
)

// IsNotFound reports whether an error is either not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDraftNotFound) || errors.Is(err, ErrSessionNotFound)
}
