package core

import (
	"errors"
	"fmt"
)

// ModuleContext is the standard child scope. Its namespace is the parent's
// namespace joined with a local segment and never changes afterwards.
type ModuleContext struct {
	node

	parent   Context
	module   *Module
	fields   Target
	compiled bool
}

// NewModuleContext creates a scope below parent. Unless WithDeferredCompile
// is given, the scope wires its own fields against the root's sources and
// registers itself with parent before returning.
//
// Scope types that embed *ModuleContext and expose their own fields usually
// need the deferred form, so that Fields can reference the embedded context:
//
//	a := &Audit{}
//	mc, err := core.NewModuleContext(parent, "audit",
//		core.WithFields(a), core.WithHooks(a), core.WithDeferredCompile())
//	if err != nil {
//		return nil, err
//	}
//	a.ModuleContext = mc
//	return a, mc.CompileSelf()
func NewModuleContext(parent Context, segment string, opts ...Option) (*ModuleContext, error) {
	if parent == nil {
		return nil, errors.New("module context requires a parent")
	}
	if err := ValidateSegment(segment); err != nil {
		return nil, err
	}

	module := parent.Root()
	namespace := JoinNamespace(parent.Namespace(), segment)
	if err := module.reserveNamespace(namespace); err != nil {
		return nil, err
	}

	s := newSettings(opts)
	c := &ModuleContext{
		node:   node{namespace: namespace, hooks: s.hooks},
		parent: parent,
		module: module,
		fields: s.fields,
	}

	if s.deferred {
		return c, nil
	}
	if err := c.CompileSelf(); err != nil {
		module.releaseNamespace(namespace)
		return nil, err
	}
	return c, nil
}

// CompileSelf wires the scope's own fields and registers it with its parent.
// It runs at most once.
func (c *ModuleContext) CompileSelf() error {
	if c.compiled {
		return fmt.Errorf("%w: %q", ErrAlreadyCompiled, c.namespace)
	}

	if err := c.module.wire(c.fields, c.namespace); err != nil {
		return fmt.Errorf("compiling scope %q: %w", c.namespace, err)
	}
	if err := c.parent.AddChild(c); err != nil {
		return err
	}

	c.compiled = true
	c.module.logger.Debug("scope registered", "namespace", c.namespace)
	return nil
}

// Compiled reports whether CompileSelf has completed.
func (c *ModuleContext) Compiled() bool {
	return c.compiled
}

// Parent returns the enclosing scope.
func (c *ModuleContext) Parent() Context {
	return c.parent
}

// Root returns the module cached at construction.
func (c *ModuleContext) Root() *Module {
	return c.module
}

// AddChild registers a child scope of c.
func (c *ModuleContext) AddChild(child Context) error {
	return c.addChild(c, child)
}

// Compile wires component with this scope's namespace and attaches it.
func (c *ModuleContext) Compile(component Component) error {
	return c.module.attach(&c.node, component)
}

func (c *ModuleContext) Enable() error {
	return c.cascade(c.module, PhaseEnable)
}

func (c *ModuleContext) Disable() error {
	return c.cascade(c.module, PhaseDisable)
}

func (c *ModuleContext) ConfigChange() error {
	return c.cascade(c.module, PhaseConfigChange)
}
