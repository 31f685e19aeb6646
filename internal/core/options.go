package core

import "github.com/charmbracelet/log"

// Option configures a scope at construction.
type Option func(*settings)

type settings struct {
	fields   Target
	hooks    Hooks
	deferred bool
	logger   *log.Logger
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithFields wires t as the scope's own fields during its self-compile.
func WithFields(t Target) Option {
	return func(s *settings) {
		s.fields = t
	}
}

// WithHooks sets the scope's own lifecycle hooks, run before its components.
func WithHooks(h Hooks) Option {
	return func(s *settings) {
		s.hooks = h
	}
}

// WithDeferredCompile leaves a child scope unwired and unregistered until
// CompileSelf is called. The root always compiles immediately.
func WithDeferredCompile() Option {
	return func(s *settings) {
		s.deferred = true
	}
}

// WithLogger sets the debug trace logger of a root module. Child scopes use
// their root's logger.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}
