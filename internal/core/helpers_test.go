package core

import (
	"errors"
	"fmt"
)

// mapSource is a minimal Source for tests.
type mapSource struct {
	values   map[string]any
	lookups  []string
	declared map[string]Field
}

func newMapSource(kv map[string]any) *mapSource {
	if kv == nil {
		kv = map[string]any{}
	}
	return &mapSource{values: kv, declared: map[string]Field{}}
}

func (s *mapSource) Resolve(key string) (any, error) {
	s.lookups = append(s.lookups, key)
	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	return v, nil
}

func (s *mapSource) Declare(key string, f Field) {
	s.declared[key] = f
}

// recorder collects hook invocations in call order.
type recorder struct {
	events []string
}

func (r *recorder) hooks(name string) Hooks {
	return HookFuncs{
		Enable:       func() error { r.events = append(r.events, name+".enable"); return nil },
		Disable:      func() error { r.events = append(r.events, name+".disable"); return nil },
		ConfigChange: func() error { r.events = append(r.events, name+".config"); return nil },
	}
}

// spy is a component that records its hooks and can be told to fail.
type spy struct {
	NoFields
	name   string
	rec    *recorder
	failOn Phase
	fail   bool
}

func (p *spy) hit(phase Phase, suffix string) error {
	p.rec.events = append(p.rec.events, p.name+"."+suffix)
	if p.fail && p.failOn == phase {
		return errors.New(p.name + " failed")
	}
	return nil
}

func (p *spy) OnEnable() error       { return p.hit(PhaseEnable, "enable") }
func (p *spy) OnDisable() error      { return p.hit(PhaseDisable, "disable") }
func (p *spy) OnConfigChange() error { return p.hit(PhaseConfigChange, "config") }

// levelComponent declares a single config field.
type levelComponent struct {
	NopHooks
	level int
}

func (c *levelComponent) Fields() []Field {
	return []Field{ConfigInt("level", &c.level)}
}

func newTestModule(cfg, lang map[string]any, opts ...Option) (*Module, *mapSource, *mapSource, error) {
	c, l := newMapSource(cfg), newMapSource(lang)
	m, err := NewModule("test", c, l, opts...)
	return m, c, l, err
}
