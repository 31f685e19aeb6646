package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"sigs.k8s.io/yaml"

	"github.com/vanehq/vane/internal/core"
)

// CUE resolves keys as top-level labels of a CUE values file. Constraints in
// the file are evaluated, so a key whose value is not concrete fails to
// resolve.
type CUE struct {
	mu       sync.RWMutex
	ctx      *cue.Context
	path     string
	value    cue.Value
	defaults map[string]any
}

// NewCUE loads path. A missing file yields an empty value.
func NewCUE(path string) (*CUE, error) {
	s := &CUE{
		ctx:      cuecontext.New(),
		path:     path,
		defaults: make(map[string]any),
	}
	value, err := s.load()
	if err != nil {
		return nil, err
	}
	s.value = value
	return s, nil
}

func (s *CUE) load() (cue.Value, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s.ctx.CompileString("{}"), nil
		}
		return cue.Value{}, fmt.Errorf("reading values file %s: %w", s.path, err)
	}

	value := s.ctx.CompileBytes(content, cue.Filename(s.path))
	if value.Err() != nil {
		return cue.Value{}, fmt.Errorf("compiling values file %s: %w", s.path, value.Err())
	}
	if err := value.Validate(); err != nil {
		return cue.Value{}, fmt.Errorf("validating values file %s: %w", s.path, err)
	}
	if value.IncompleteKind() != cue.StructKind {
		return cue.Value{}, fmt.Errorf("values file %s must be a struct", s.path)
	}
	return value, nil
}

func (s *CUE) Resolve(key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.value.LookupPath(cue.MakePath(cue.Str(key)))
	if !v.Exists() {
		if def, ok := s.defaults[key]; ok {
			return def, nil
		}
		return nil, missing(key)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("key %s is not concrete: %w", key, err)
	}
	return decodeValue(v)
}

// decodeValue converts a concrete CUE value into the Go shapes cast
// understands.
func decodeValue(v cue.Value) (any, error) {
	switch v.Kind() {
	case cue.NullKind:
		return nil, nil
	case cue.BoolKind:
		return v.Bool()
	case cue.IntKind:
		return v.Int64()
	case cue.FloatKind, cue.NumberKind:
		return v.Float64()
	case cue.StringKind:
		return v.String()
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, err
		}
		var out []any
		for iter.Next() {
			item, err := decodeValue(iter.Value())
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	default:
		var out any
		if err := v.Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// Declare records the field default, used when the file has no such label.
func (s *CUE) Declare(key string, f core.Field) {
	if f.Default == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults[key] = f.Default
}

func (s *CUE) Reload() error {
	value, err := s.load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()
	return nil
}

// Snapshot renders the evaluated file. Non-concrete values fail the render.
func (s *CUE) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := s.value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding values: %w", err)
	}
	return yaml.JSONToYAML(data)
}

func (s *CUE) Files() []string {
	return []string{s.path}
}
