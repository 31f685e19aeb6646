package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid configuration, names or schema input.
	ErrValidation = errors.New("validation error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a key, file or language was not found.
	ErrNotFound = errors.New("not found")
)
