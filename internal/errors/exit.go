package errors

import (
	"errors"
	"io/fs"

	"github.com/vanehq/vane/internal/core"
)

// Exit codes returned by the vane binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error, including failed
	// lifecycle hooks.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid names, keys or configuration.
	ExitValidationError = 2

	// ExitPermissionDenied indicates a file could not be accessed.
	ExitPermissionDenied = 3

	// ExitNotFound indicates a key or file was not found.
	ExitNotFound = 4
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed marks errors already reported to the user, so main does not
	// print them a second time.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, core.ErrInvalidSegment),
		errors.Is(err, core.ErrInvalidField),
		errors.Is(err, core.ErrKeyConflict),
		errors.Is(err, core.ErrDuplicateNamespace):
		return ExitValidationError
	case errors.Is(err, ErrPermission), errors.Is(err, fs.ErrPermission):
		return ExitPermissionDenied
	case errors.Is(err, ErrNotFound),
		errors.Is(err, core.ErrMissingKey),
		errors.Is(err, fs.ErrNotExist):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}
