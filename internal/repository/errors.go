package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	// Lookups return it instead of a driver-specific error so callers
	// can branch with errors.Is.
	ErrNotFound = errors.New("repository: record not found")

	// ErrDuplicateKey indicates an insert or update violated a unique
	// constraint (email or username).
	ErrDuplicateKey = errors.New("repository: duplicate key")
)
