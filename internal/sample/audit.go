package sample

import (
	"fmt"
	"slices"
	"sync"

	"github.com/spf13/cast"

	"github.com/vanehq/vane/internal/core"
)

// Audit is a scope below heartbeat that keeps a bounded lifecycle journal.
// Its own config-change hook re-reads the capacity before the recorder runs.
type Audit struct {
	*core.ModuleContext
	core.NopHooks

	Capacity int
}

// NewAudit creates the audit scope below parent.
func NewAudit(parent core.Context) (*Audit, error) {
	a := &Audit{}
	mc, err := core.NewModuleContext(parent, "audit",
		core.WithFields(a), core.WithHooks(a), core.WithDeferredCompile())
	if err != nil {
		return nil, err
	}
	a.ModuleContext = mc
	if err := mc.CompileSelf(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Audit) Fields() []core.Field {
	return []core.Field{
		core.ConfigInt("capacity", &a.Capacity).WithDefault(16).Describe("journal entries kept"),
	}
}

func (a *Audit) OnConfigChange() error {
	v, err := a.Root().Config().Resolve(a.Key("capacity"))
	if err != nil {
		return err
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("audit capacity must be positive, got %d", n)
	}
	a.Capacity = n
	return nil
}

// Recorder journals every lifecycle phase that reaches the audit scope.
type Recorder struct {
	scope *Audit

	mu     sync.Mutex
	events []string
}

func (r *Recorder) Fields() []core.Field { return nil }

func (r *Recorder) OnEnable() error       { return r.record(core.PhaseEnable) }
func (r *Recorder) OnDisable() error      { return r.record(core.PhaseDisable) }
func (r *Recorder) OnConfigChange() error { return r.record(core.PhaseConfigChange) }

func (r *Recorder) record(phase core.Phase) error {
	if r.scope.Capacity <= 0 {
		return fmt.Errorf("audit capacity must be positive, got %d", r.scope.Capacity)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, phase.String())
	if over := len(r.events) - r.scope.Capacity; over > 0 {
		r.events = slices.Delete(r.events, 0, over)
	}
	return nil
}

// Events returns the journal, oldest first.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}
