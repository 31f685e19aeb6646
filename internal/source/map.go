package source

import (
	"maps"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vanehq/vane/internal/core"
)

// Map is an in-memory source. Explicit values win over declared defaults.
type Map struct {
	mu       sync.RWMutex
	values   map[string]any
	defaults map[string]any
}

// NewMap creates a source holding a copy of values.
func NewMap(values map[string]any) *Map {
	m := &Map{
		values:   make(map[string]any, len(values)),
		defaults: make(map[string]any),
	}
	maps.Copy(m.values, values)
	return m
}

// Set stores a value for key.
func (m *Map) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *Map) Resolve(key string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	if v, ok := m.defaults[key]; ok {
		return v, nil
	}
	return nil, missing(key)
}

// Declare records the field default, if any, as fallback for key.
func (m *Map) Declare(key string, f core.Field) {
	if f.Default == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults[key] = f.Default
}

// Snapshot renders defaults overlaid with explicit values.
func (m *Map) Snapshot() ([]byte, error) {
	m.mu.RLock()
	merged := make(map[string]any, len(m.values)+len(m.defaults))
	maps.Copy(merged, m.defaults)
	maps.Copy(merged, m.values)
	m.mu.RUnlock()
	return yaml.Marshal(merged)
}
