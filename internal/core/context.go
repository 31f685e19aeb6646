package core

// Context is a scope in the module tree. It contributes a namespace prefix to
// every key wired below it and relays lifecycle cascades to its components and
// child scopes.
//
// A Context is not safe for concurrent use; hosts serialize lifecycle calls.
type Context interface {
	// Parent returns the enclosing scope. The root returns itself.
	Parent() Context

	// Root returns the module owning the whole tree.
	Root() *Module

	// Namespace returns the fully qualified namespace of this scope.
	Namespace() string

	// Key qualifies a field name with this scope's namespace.
	Key(field string) string

	// AddChild appends child to the ordered child list.
	AddChild(child Context) error

	// Compile wires component against this scope's namespace and attaches it.
	Compile(component Component) error

	// Children returns the child scopes in registration order.
	Children() []Context

	// Components returns the attached components in attachment order.
	Components() []Component

	// Enable, Disable and ConfigChange cascade depth-first: own hook, then
	// components, then child scopes. The first failing hook aborts the cascade.
	Enable() error
	Disable() error
	ConfigChange() error
}

// Hooks are the lifecycle callbacks of scopes and components.
type Hooks interface {
	OnEnable() error
	OnDisable() error
	OnConfigChange() error
}

// Component is a leaf behavior attached to exactly one scope.
type Component interface {
	Target
	Hooks
}

// NopHooks implements Hooks with no-ops. Embed it to override selectively.
type NopHooks struct{}

func (NopHooks) OnEnable() error       { return nil }
func (NopHooks) OnDisable() error      { return nil }
func (NopHooks) OnConfigChange() error { return nil }

// Phase identifies a lifecycle cascade.
type Phase int

const (
	PhaseEnable Phase = iota
	PhaseDisable
	PhaseConfigChange
)

func (p Phase) String() string {
	switch p {
	case PhaseEnable:
		return "enable"
	case PhaseDisable:
		return "disable"
	case PhaseConfigChange:
		return "config-change"
	default:
		return "unknown"
	}
}

func (p Phase) invoke(h Hooks) error {
	switch p {
	case PhaseEnable:
		return h.OnEnable()
	case PhaseDisable:
		return h.OnDisable()
	case PhaseConfigChange:
		return h.OnConfigChange()
	default:
		return nil
	}
}
