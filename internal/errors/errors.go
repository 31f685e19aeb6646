// Package errors provides structured errors and exit codes for the vane CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vanehq/vane/internal/core"
)

// DetailError captures structured error information for terminal output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path or namespace (optional).
	Location string

	// Field is the field or key name (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}

// FromWiring converts a wiring failure from the module tree into a
// DetailError naming the key and a hint. Other errors are returned as is.
func FromWiring(err error) error {
	var fieldErr *core.FieldError
	if !errors.As(err, &fieldErr) {
		return err
	}

	detail := &DetailError{
		Type:    "wiring failed",
		Message: err.Error(),
		Field:   fieldErr.Key,
		Context: map[string]string{"Source": fieldErr.Tag.String()},
		Cause:   err,
	}
	switch {
	case errors.Is(err, core.ErrMissingKey) && fieldErr.Tag == core.TagLang:
		detail.Hint = fmt.Sprintf("Add %q to the language file or set a default on the field.", fieldErr.Key)
	case errors.Is(err, core.ErrMissingKey):
		detail.Hint = fmt.Sprintf("Set %q in the values file or run 'vane config init' to write the defaults.", fieldErr.Key)
	default:
		detail.Hint = "Check the value type against 'vane keys'."
	}
	return detail
}
