package persistence

import "errors"

var (
	// ErrNotFound means no row exists for the given identifier.
	ErrNotFound = errors.New("record not found")

	// ErrPersistence marks a lower-level store failure (connectivity,
	// malformed row, constraint other than duplicate key).
	ErrPersistence = errors.New("persistence failure")

	// ErrDuplicate marks a unique-constraint violation on insert.
	ErrDuplicate = errors.New("duplicate key")
)
