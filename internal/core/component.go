package core

// NoFields implements Target for behaviors without wired fields.
type NoFields struct{}

func (NoFields) Fields() []Field { return nil }

// HookFuncs adapts plain functions to Hooks. Nil functions are no-ops.
type HookFuncs struct {
	Enable       func() error
	Disable      func() error
	ConfigChange func() error
}

func (h HookFuncs) OnEnable() error {
	return call(h.Enable)
}

func (h HookFuncs) OnDisable() error {
	return call(h.Disable)
}

func (h HookFuncs) OnConfigChange() error {
	return call(h.ConfigChange)
}

func call(fn func() error) error {
	if fn == nil {
		return nil
	}
	return fn()
}
