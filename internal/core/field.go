package core

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cast"
)

// Tag selects the external source a field is wired from.
type Tag int

const (
	// TagConfig fields resolve against the configuration source.
	TagConfig Tag = iota
	// TagLang fields resolve against the localization source.
	TagLang
)

func (t Tag) String() string {
	switch t {
	case TagConfig:
		return "config"
	case TagLang:
		return "lang"
	default:
		return "unknown"
	}
}

// MarshalText renders the tag name.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Kind is the value type a field accepts.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindInt64
	KindFloat
	KindBool
	KindDuration
	KindStrings
	KindMessage
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindInt64:
		return "int64"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDuration:
		return "duration"
	case KindStrings:
		return "strings"
	case KindMessage:
		return "message"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Field describes one wireable field of a Target. The setter is the only way
// the compile pass touches the target, so no reflection is involved.
type Field struct {
	// Name is the declared field name, qualified by the scope namespace at
	// compile time.
	Name string

	Tag  Tag
	Kind Kind

	// Default is handed to sources implementing Declarer. The core never
	// assigns it on its own.
	Default any

	// Description is surfaced by tooling (key listings, generated files).
	Description string

	set func(any) error
}

// NewField builds a descriptor with a custom setter.
func NewField(name string, tag Tag, kind Kind, set func(any) error) Field {
	return Field{Name: name, Tag: tag, Kind: kind, set: set}
}

// WithDefault returns a copy of f carrying a declared default.
func (f Field) WithDefault(v any) Field {
	f.Default = v
	return f
}

// Describe returns a copy of f carrying a description.
func (f Field) Describe(desc string) Field {
	f.Description = desc
	return f
}

// Set converts v to the field kind and assigns it.
func (f Field) Set(v any) error {
	if f.set == nil {
		return fmt.Errorf("%w: %q has no setter", ErrInvalidField, f.Name)
	}
	return f.set(v)
}

// ConfigString declares a string configuration field.
func ConfigString(name string, dst *string) Field {
	return NewField(name, TagConfig, KindString, stringSetter(dst))
}

// ConfigInt declares an int configuration field.
func ConfigInt(name string, dst *int) Field {
	return NewField(name, TagConfig, KindInt, func(v any) error {
		n, err := cast.ToIntE(v)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	})
}

// ConfigInt64 declares an int64 configuration field.
func ConfigInt64(name string, dst *int64) Field {
	return NewField(name, TagConfig, KindInt64, func(v any) error {
		n, err := cast.ToInt64E(v)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	})
}

// ConfigFloat declares a float64 configuration field.
func ConfigFloat(name string, dst *float64) Field {
	return NewField(name, TagConfig, KindFloat, func(v any) error {
		n, err := cast.ToFloat64E(v)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	})
}

// ConfigBool declares a bool configuration field.
func ConfigBool(name string, dst *bool) Field {
	return NewField(name, TagConfig, KindBool, func(v any) error {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return err
		}
		*dst = b
		return nil
	})
}

// ConfigDuration declares a duration configuration field. Strings use
// time.ParseDuration syntax; bare numbers are nanoseconds.
func ConfigDuration(name string, dst *time.Duration) Field {
	return NewField(name, TagConfig, KindDuration, func(v any) error {
		d, err := cast.ToDurationE(v)
		if err != nil {
			return err
		}
		*dst = d
		return nil
	})
}

// ConfigStrings declares a string list configuration field.
func ConfigStrings(name string, dst *[]string) Field {
	return NewField(name, TagConfig, KindStrings, stringsSetter(dst))
}

// LangString declares a plain localized string field.
func LangString(name string, dst *string) Field {
	return NewField(name, TagLang, KindString, stringSetter(dst))
}

// LangStrings declares a localized string list, e.g. multi-line lore.
func LangStrings(name string, dst *[]string) Field {
	return NewField(name, TagLang, KindStrings, stringsSetter(dst))
}

// LangMessage declares a localized message template.
func LangMessage(name string, dst *Message) Field {
	return NewField(name, TagLang, KindMessage, func(v any) error {
		s, err := cast.ToStringE(v)
		if err != nil {
			return err
		}
		*dst = Message(s)
		return nil
	})
}

func stringSetter(dst *string) func(any) error {
	return func(v any) error {
		s, err := cast.ToStringE(v)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}
}

func stringsSetter(dst *[]string) func(any) error {
	return func(v any) error {
		ss, err := cast.ToStringSliceE(v)
		if err != nil {
			return err
		}
		// cast hands []string back as is
		*dst = slices.Clone(ss)
		return nil
	}
}
