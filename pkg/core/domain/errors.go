package domain

import "errors"

// Storage error classes. There is no validation error class: track input
// is never rejected, missing fields are defaulted instead.
var (
	// ErrStorageUnavailable means the backing store could not be opened or written
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorageCorrupt means the schema does not match or the file is unreadable
	ErrStorageCorrupt = errors.New("storage corrupt")
)
