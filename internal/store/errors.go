package store

import "github.com/weeklybite/weeklybite/internal/errors"

// Sentinel errors.
var (
	// ErrNotFound is returned by Collection.Get for an absent key.
	ErrNotFound = errors.NotFound("record not found")

	// ErrUnavailable is returned when the storage engine cannot be opened.
	ErrUnavailable = errors.Unavailable("unable to initialize storage")

	// ErrMissingKey is returned when a record's primary key is empty.
	ErrMissingKey = errors.Validation("record has an empty primary key")
)
