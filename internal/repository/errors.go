package repository

import "errors"

// Error kinds shared by both repository implementations (gorm and HTTP).
var (
	// ErrTaskNotFound is returned when a mutation targets a missing task id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNoteNotFound is returned when a note lookup misses.
	ErrNoteNotFound = errors.New("note not found")

	// ErrUnauthenticated is returned when no principal is available.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrUnverified is returned when the principal's email is not verified.
	ErrUnverified = errors.New("email not verified")

	// ErrStoreUnavailable is returned on transport or backend failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)
