package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for wiring and registration failures.
var (
	// ErrMissingKey is wrapped by sources when a key has no value.
	ErrMissingKey = errors.New("missing key")

	// ErrInvalidSegment indicates a local namespace segment that is empty or
	// contains characters outside [a-z0-9].
	ErrInvalidSegment = errors.New("invalid namespace segment")

	// ErrDuplicateNamespace indicates two scopes resolved to the same namespace.
	ErrDuplicateNamespace = errors.New("duplicate namespace")

	// ErrInvalidField indicates a field descriptor with an unusable name or setter.
	ErrInvalidField = errors.New("invalid field")

	// ErrKeyConflict indicates a key was already wired in the same key space
	// from a different (namespace, field) pair.
	ErrKeyConflict = errors.New("key conflict")

	// ErrAlreadyCompiled indicates CompileSelf was called on a wired scope.
	ErrAlreadyCompiled = errors.New("scope already compiled")

	// ErrAlreadyAttached indicates a component was attached to a second scope.
	ErrAlreadyAttached = errors.New("component already attached")

	// ErrForeignChild indicates AddChild received a scope owned by another parent.
	ErrForeignChild = errors.New("child belongs to another scope")
)

// HookError reports the lifecycle hook that aborted a cascade.
type HookError struct {
	// Phase is the cascade that was running.
	Phase Phase

	// Namespace is the namespace of the scope being visited.
	Namespace string

	// Component is the component type that failed, empty when the scope's own
	// hook failed.
	Component string

	// Cause is the error returned by the hook.
	Cause error
}

func (e *HookError) Error() string {
	where := "scope " + displayNamespace(e.Namespace)
	if e.Component != "" {
		where = fmt.Sprintf("component %s in %s", e.Component, where)
	}
	return fmt.Sprintf("%s hook failed for %s: %v", e.Phase, where, e.Cause)
}

func (e *HookError) Unwrap() error {
	return e.Cause
}

// FieldError reports a field that could not be wired.
type FieldError struct {
	Key   string
	Field string
	Tag   Tag
	Cause error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("wiring %s field %q (key %q): %v", e.Tag, e.Field, e.Key, e.Cause)
}

func (e *FieldError) Unwrap() error {
	return e.Cause
}

func displayNamespace(ns string) string {
	if ns == "" {
		return "<root>"
	}
	return fmt.Sprintf("%q", ns)
}
