package core

import "fmt"

// Source resolves a fully qualified key to a raw value. Implementations
// report absent keys by wrapping ErrMissingKey.
type Source interface {
	Resolve(key string) (any, error)
}

// Declarer is implemented by sources that want to see each field descriptor
// before it is resolved, typically to register the declared default.
type Declarer interface {
	Declare(key string, f Field)
}

// Target is anything exposing wireable fields.
type Target interface {
	Fields() []Field
}

// Compile wires every field of target from the source matching its tag,
// keyed by qualify(field.Name). Descriptors are validated before any setter
// runs; the first resolution or conversion failure aborts the pass.
func Compile(target Target, qualify func(string) string, config, lang Source) error {
	if target == nil {
		return nil
	}
	fields := target.Fields()
	if err := validateFields(fields); err != nil {
		return err
	}
	return compileFields(fields, qualify, config, lang)
}

func validateFields(fields []Field) error {
	for _, f := range fields {
		if err := ValidateFieldName(f.Name); err != nil {
			return err
		}
		if f.set == nil {
			return fmt.Errorf("%w: %q has no setter", ErrInvalidField, f.Name)
		}
		if f.Tag != TagConfig && f.Tag != TagLang {
			return fmt.Errorf("%w: %q has unknown tag %d", ErrInvalidField, f.Name, int(f.Tag))
		}
	}
	return nil
}

func compileFields(fields []Field, qualify func(string) string, config, lang Source) error {
	for _, f := range fields {
		src := config
		if f.Tag == TagLang {
			src = lang
		}
		key := qualify(f.Name)
		if err := wireField(f, key, src); err != nil {
			return err
		}
	}
	return nil
}

func wireField(f Field, key string, src Source) error {
	if src == nil {
		return &FieldError{Key: key, Field: f.Name, Tag: f.Tag, Cause: fmt.Errorf("no %s source", f.Tag)}
	}
	if d, ok := src.(Declarer); ok {
		d.Declare(key, f)
	}
	v, err := src.Resolve(key)
	if err != nil {
		return &FieldError{Key: key, Field: f.Name, Tag: f.Tag, Cause: err}
	}
	if err := f.Set(v); err != nil {
		return &FieldError{Key: key, Field: f.Name, Tag: f.Tag, Cause: fmt.Errorf("converting to %s: %w", f.Kind, err)}
	}
	return nil
}
