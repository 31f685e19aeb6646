package core

import (
	"errors"
	"fmt"
	"slices"
)

// node holds the state shared by the root and child scopes: the namespace,
// the scope's own hooks and the ordered, append-only child and component lists.
type node struct {
	namespace  string
	hooks      Hooks
	children   []Context
	components []Component
}

func (n *node) Namespace() string {
	return n.namespace
}

func (n *node) Key(field string) string {
	return JoinNamespace(n.namespace, field)
}

func (n *node) Children() []Context {
	return slices.Clone(n.children)
}

func (n *node) Components() []Component {
	return slices.Clone(n.components)
}

// addChild appends child after checking it was created below this scope.
// Parents are compared by root and namespace rather than identity, so scope
// types embedding *ModuleContext can be passed as parents.
func (n *node) addChild(self, child Context) error {
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrForeignChild)
	}
	p := child.Parent()
	if p == nil || p.Root() != self.Root() || p.Namespace() != n.namespace {
		return fmt.Errorf("%w: %s is not a child of %s",
			ErrForeignChild, displayNamespace(child.Namespace()), displayNamespace(n.namespace))
	}
	for _, existing := range n.children {
		if existing.Namespace() == child.Namespace() {
			return fmt.Errorf("%w: %s registered twice", ErrDuplicateNamespace, displayNamespace(child.Namespace()))
		}
	}
	n.children = append(n.children, child)
	return nil
}

// cascade runs phase over the scope's own hook, its components and then its
// child scopes, stopping at the first failure.
func (n *node) cascade(m *Module, phase Phase) error {
	m.logger.Debug("cascade", "phase", phase, "namespace", n.namespace)

	if n.hooks != nil {
		if err := phase.invoke(n.hooks); err != nil {
			return &HookError{Phase: phase, Namespace: n.namespace, Cause: err}
		}
	}

	for _, c := range n.components {
		if err := phase.invoke(c); err != nil {
			return &HookError{Phase: phase, Namespace: n.namespace, Component: fmt.Sprintf("%T", c), Cause: err}
		}
	}

	for _, child := range n.children {
		if err := runPhase(child, phase); err != nil {
			var hookErr *HookError
			if errors.As(err, &hookErr) {
				return err
			}
			return &HookError{Phase: phase, Namespace: child.Namespace(), Cause: err}
		}
	}

	return nil
}

func runPhase(c Context, phase Phase) error {
	switch phase {
	case PhaseEnable:
		return c.Enable()
	case PhaseDisable:
		return c.Disable()
	case PhaseConfigChange:
		return c.ConfigChange()
	default:
		return fmt.Errorf("unknown phase %d", int(phase))
	}
}
