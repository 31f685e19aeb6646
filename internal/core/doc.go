// Package core implements the scope tree: a root Module owning the
// configuration and localization sources, ModuleContext scopes that each add
// a namespace segment, and Components attached to exactly one scope.
//
// Every scope and component exposes its wireable fields as a list of Field
// descriptors. Wiring happens once, at construction or attachment, with keys
// of the form <namespace>_<field>. Lifecycle cascades (enable, disable,
// config-change) run depth-first in a fixed order: the scope's own hook, its
// components in attachment order, then its child scopes in registration order.
// The first failing hook aborts the cascade and is returned as a *HookError.
package core
