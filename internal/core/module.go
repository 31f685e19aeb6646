package core

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/charmbracelet/log"
)

// KeyInfo records one wired key.
type KeyInfo struct {
	Key         string `json:"key"`
	Namespace   string `json:"namespace"`
	Field       string `json:"field"`
	Tag         Tag    `json:"tag"`
	Kind        Kind   `json:"kind"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

type keyID struct {
	tag Tag
	key string
}

// keyOwner is the (namespace, field) pair a wired key was derived from.
type keyOwner struct {
	namespace string
	field     string
}

// Module is the root of a scope tree. It owns the configuration and
// localization sources used by every compile pass below it and keeps the
// registries that reject namespace and key collisions.
type Module struct {
	node

	name   string
	config Source
	lang   Source
	logger *log.Logger

	keys       []KeyInfo
	keyIndex   map[keyID]keyOwner
	namespaces map[string]struct{}
	attached   map[Component]string
}

// NewModule creates a root and wires its own fields, if any, with the empty
// namespace: root keys are the bare field names.
func NewModule(name string, config, lang Source, opts ...Option) (*Module, error) {
	if config == nil || lang == nil {
		return nil, errors.New("module requires a configuration and a localization source")
	}

	s := newSettings(opts)
	logger := s.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Module{
		node:       node{hooks: s.hooks},
		name:       name,
		config:     config,
		lang:       lang,
		logger:     logger,
		keyIndex:   make(map[keyID]keyOwner),
		namespaces: map[string]struct{}{"": {}},
		attached:   make(map[Component]string),
	}

	if err := m.wire(s.fields, ""); err != nil {
		return nil, fmt.Errorf("compiling module %q: %w", name, err)
	}

	logger.Debug("module created", "name", name)
	return m, nil
}

// Name returns the module name given at construction.
func (m *Module) Name() string {
	return m.name
}

// Config returns the configuration source.
func (m *Module) Config() Source {
	return m.config
}

// Lang returns the localization source.
func (m *Module) Lang() Source {
	return m.lang
}

// Logger returns the debug trace logger.
func (m *Module) Logger() *log.Logger {
	return m.logger
}

// Keys returns every wired key in wiring order.
func (m *Module) Keys() []KeyInfo {
	out := make([]KeyInfo, len(m.keys))
	copy(out, m.keys)
	return out
}

// Parent returns m: the root is its own parent.
func (m *Module) Parent() Context {
	return m
}

// Root returns m.
func (m *Module) Root() *Module {
	return m
}

// AddChild registers a direct child scope of the root.
func (m *Module) AddChild(child Context) error {
	return m.addChild(m, child)
}

// Compile wires component with root-level keys and attaches it to the root.
func (m *Module) Compile(component Component) error {
	return m.attach(&m.node, component)
}

// Enable cascades the enable phase through the whole tree.
func (m *Module) Enable() error {
	return m.cascade(m, PhaseEnable)
}

// Disable cascades the disable phase through the whole tree.
func (m *Module) Disable() error {
	return m.cascade(m, PhaseDisable)
}

// ConfigChange cascades the config-change phase. Sources must already hold
// the new values; wired fields are not re-read.
func (m *Module) ConfigChange() error {
	return m.cascade(m, PhaseConfigChange)
}

func (m *Module) reserveNamespace(ns string) error {
	if _, ok := m.namespaces[ns]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNamespace, ns)
	}
	m.namespaces[ns] = struct{}{}
	return nil
}

func (m *Module) releaseNamespace(ns string) {
	delete(m.namespaces, ns)
}

// wire validates target's descriptors, rejects keys that a different
// (namespace, field) pair already produced in the same key space, runs the
// compile pass and records the keys on success. Components sharing a scope
// may declare the same field; they read the same key.
func (m *Module) wire(target Target, namespace string) error {
	if target == nil {
		return nil
	}

	fields := target.Fields()
	if err := validateFields(fields); err != nil {
		return err
	}

	qualify := Qualifier(namespace)
	batch := make(map[keyID]struct{}, len(fields))
	for _, f := range fields {
		id := keyID{tag: f.Tag, key: qualify(f.Name)}
		if owner, ok := m.keyIndex[id]; ok && owner != (keyOwner{namespace, f.Name}) {
			return fmt.Errorf("%w: %s key %q already wired from field %q of %s",
				ErrKeyConflict, f.Tag, id.key, owner.field, displayNamespace(owner.namespace))
		}
		if _, ok := batch[id]; ok {
			return fmt.Errorf("%w: %s key %q declared twice", ErrKeyConflict, f.Tag, id.key)
		}
		batch[id] = struct{}{}
	}

	if err := compileFields(fields, qualify, m.config, m.lang); err != nil {
		return err
	}

	for _, f := range fields {
		key := qualify(f.Name)
		id := keyID{tag: f.Tag, key: key}
		if _, ok := m.keyIndex[id]; ok {
			continue
		}
		m.keyIndex[id] = keyOwner{namespace: namespace, field: f.Name}
		m.keys = append(m.keys, KeyInfo{
			Key:         key,
			Namespace:   namespace,
			Field:       f.Name,
			Tag:         f.Tag,
			Kind:        f.Kind,
			Default:     f.Default,
			Description: f.Description,
		})
	}
	return nil
}

// attach wires component into n and appends it. Pointer components are
// tracked so the same instance cannot be attached twice anywhere in the tree.
func (m *Module) attach(n *node, component Component) error {
	if component == nil {
		return fmt.Errorf("%w: nil component", ErrInvalidField)
	}

	tracked := reflect.TypeOf(component).Kind() == reflect.Pointer
	if tracked {
		if ns, ok := m.attached[component]; ok {
			return fmt.Errorf("%w: %T already attached to %s", ErrAlreadyAttached, component, displayNamespace(ns))
		}
	}

	if err := m.wire(component, n.namespace); err != nil {
		return fmt.Errorf("compiling %T in %s: %w", component, displayNamespace(n.namespace), err)
	}

	n.components = append(n.components, component)
	if tracked {
		m.attached[component] = n.namespace
	}

	m.logger.Debug("component attached", "namespace", n.namespace, "component", fmt.Sprintf("%T", component))
	return nil
}
