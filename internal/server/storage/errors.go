package storage

import "errors"

// Common storage errors
var (
	// ErrRecordNotFound indicates that no record matches the id and owner filter
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordExists indicates that a record with the same id already exists
	ErrRecordExists = errors.New("record already exists")

	// ErrPlaintextSecret indicates an attempt to persist a secret that is not in encoded form
	ErrPlaintextSecret = errors.New("refusing to persist secret that is not encoded")

	// ErrMissingOwner indicates an attempt to persist a record without owner
	ErrMissingOwner = errors.New("record owner is required")

	// ErrUnknownDriver indicates that the configured storage driver is not supported
	ErrUnknownDriver = errors.New("unknown storage driver")
)
