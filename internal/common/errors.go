// Package common defines sentinel errors and small helpers shared by the
// antara storage, capsule and lock layers. Callers should use errors.Is to
// match these values; producers wrap them with fmt.Errorf("...: %w", ...).
package common

import "errors"

var (
	// ErrValidation marks a request rejected before any write happened
	// (blank required field, non-future reveal time, malformed PIN).
	ErrValidation = errors.New("validation error")

	// ErrStorage marks a write the storage medium refused. The previously
	// persisted value is left intact.
	ErrStorage = errors.New("storage failure")

	// ErrImport marks a backup snapshot that could not be parsed. Nothing
	// is written when it is returned.
	ErrImport = errors.New("import error")

	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Capsule errors.
	ErrStillSealed = errors.New("capsule is still sealed")

	// Session lock errors.
	ErrLocked    = errors.New("session is locked")
	ErrThrottled = errors.New("too many failed attempts, try again later")
)
