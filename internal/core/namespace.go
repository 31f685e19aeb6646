package core

import (
	"fmt"
	"regexp"
)

// Separator joins namespace segments and field names into keys.
const Separator = "_"

var (
	// segmentRegex admits lowercase alphanumerics only, so a segment can never
	// carry the separator and every key stays a valid env/CUE/viper name.
	segmentRegex = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

	fieldRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// ValidateSegment reports whether s may be used as a local namespace segment.
func ValidateSegment(s string) error {
	if !segmentRegex.MatchString(s) {
		return fmt.Errorf("%w: %q must match %s", ErrInvalidSegment, s, segmentRegex)
	}
	return nil
}

// ValidateFieldName reports whether name may be used as a field name.
func ValidateFieldName(name string) error {
	if !fieldRegex.MatchString(name) {
		return fmt.Errorf("%w: name %q must match %s", ErrInvalidField, name, fieldRegex)
	}
	return nil
}

// JoinNamespace composes a child namespace. The root namespace is empty, so
// its direct children use their segment verbatim.
func JoinNamespace(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + Separator + segment
}

// Qualifier returns the key transform for a namespace.
func Qualifier(namespace string) func(string) string {
	return func(name string) string {
		return JoinNamespace(namespace, name)
	}
}
