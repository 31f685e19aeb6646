// Package host drives a module tree: it builds the tree, serializes the
// lifecycle cascades and turns file changes and SIGHUP into config-change
// cascades.
package host

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vanehq/vane/internal/core"
	"github.com/vanehq/vane/internal/output"
	"github.com/vanehq/vane/internal/source"
)

// Builder attaches scopes and components to a freshly created root.
type Builder func(m *core.Module) error

// Options configure a Runner.
type Options struct {
	// Name is the root module name.
	Name string

	// Config and Lang are the sources the tree is wired from. Sources that
	// implement source.Reloader take part in Reload and file watching.
	Config core.Source
	Lang   core.Source

	// Logger receives host logs. Defaults to the output package logger.
	Logger *log.Logger

	// Color enables colored reload diffs.
	Color bool
}

// Runner owns a module tree and serializes every lifecycle call on it.
type Runner struct {
	mu      sync.Mutex
	opts    Options
	module  *core.Module
	enabled bool
	logger  *log.Logger

	// snapshots holds the last rendered state of each reloadable source.
	snapshots map[source.Reloader][]byte
}

// New creates the root module and runs build against it.
func New(opts Options, build Builder) (*Runner, error) {
	logger := opts.Logger
	if logger == nil {
		logger = output.Logger()
	}

	m, err := core.NewModule(opts.Name, opts.Config, opts.Lang, core.WithLogger(logger.WithPrefix("core")))
	if err != nil {
		return nil, err
	}
	if build != nil {
		if err := build(m); err != nil {
			return nil, fmt.Errorf("building module %q: %w", opts.Name, err)
		}
	}

	r := &Runner{
		opts:      opts,
		module:    m,
		logger:    logger,
		snapshots: make(map[source.Reloader][]byte),
	}
	for _, rl := range r.reloaders() {
		snap, err := rl.Snapshot()
		if err != nil {
			logger.Debug("source snapshot unavailable", "files", rl.Files(), "err", err)
			continue
		}
		r.snapshots[rl] = snap
	}
	return r, nil
}

// Module returns the root of the tree.
func (r *Runner) Module() *core.Module {
	return r.module
}

// Enabled reports whether the tree is currently enabled.
func (r *Runner) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Start cascades enable. Starting an enabled tree is a no-op.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enabled {
		return nil
	}
	if err := r.module.Enable(); err != nil {
		return err
	}
	r.enabled = true
	r.logger.Info(output.FormatScopeLine(r.module.Namespace(), output.StatusEnabled), "module", r.module.Name())
	return nil
}

// Stop cascades disable. Stopping a disabled tree is a no-op.
func (r *Runner) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return nil
	}
	// The tree counts as stopped even when a disable hook fails.
	r.enabled = false
	if err := r.module.Disable(); err != nil {
		return err
	}
	r.logger.Info(output.FormatScopeLine(r.module.Namespace(), output.StatusDisabled), "module", r.module.Name())
	return nil
}

// Reload re-reads every reloadable source, logs what changed and cascades
// config-change. When any source fails to reload, no snapshot advances and
// the cascade is skipped; the failing source keeps its previous values, and
// sources reloaded before it are reported on the next successful reload.
func (r *Runner) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reloaders := r.reloaders()
	for _, rl := range reloaders {
		if err := rl.Reload(); err != nil {
			return fmt.Errorf("reloading %v: %w", rl.Files(), err)
		}
	}

	var changes []output.SourceChange
	for _, rl := range reloaders {
		if change, ok := r.diff(rl); ok {
			changes = append(changes, change)
		}
	}

	styles := output.NoColorStyles()
	if r.opts.Color {
		styles = output.GetStyles()
	}
	r.logger.Debug("reload report\n" + output.RenderReload(changes, styles))

	if err := r.module.ConfigChange(); err != nil {
		return err
	}
	r.logger.Info(output.FormatScopeLine(r.module.Namespace(), output.StatusReloaded), "changed", len(changes))
	return nil
}

func (r *Runner) diff(rl source.Reloader) (output.SourceChange, bool) {
	after, err := rl.Snapshot()
	if err != nil {
		r.logger.Debug("source snapshot unavailable", "files", rl.Files(), "err", err)
		return output.SourceChange{}, false
	}
	before := r.snapshots[rl]
	r.snapshots[rl] = after

	text, err := output.DiffYAML(before, after, r.opts.Color)
	if err != nil {
		r.logger.Debug("diffing source failed", "files", rl.Files(), "err", err)
		return output.SourceChange{}, false
	}
	if text == "" {
		return output.SourceChange{}, false
	}
	name := "source"
	if files := rl.Files(); len(files) > 0 {
		name = files[0]
	}
	return output.SourceChange{Name: name, Diff: text}, true
}

// reloaders returns the distinct reloadable sources.
func (r *Runner) reloaders() []source.Reloader {
	var out []source.Reloader
	for _, s := range []core.Source{r.opts.Config, r.opts.Lang} {
		rl, ok := s.(source.Reloader)
		if !ok {
			continue
		}
		if len(out) == 1 && out[0] == rl {
			continue
		}
		out = append(out, rl)
	}
	return out
}

// Files returns every file backing a reloadable source.
func (r *Runner) Files() []string {
	var files []string
	for _, rl := range r.reloaders() {
		files = append(files, rl.Files()...)
	}
	return files
}

// Run starts the tree, optionally reloads on file changes and SIGHUP, and
// stops it when ctx is done. Reload failures are logged and the previous
// state stays in effect.
func (r *Runner) Run(ctx context.Context, watch bool) (err error) {
	if err := r.Start(); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, r.Stop())
	}()

	triggers := make(chan string, 1)
	if watch {
		w, werr := NewWatcher(r.Files(), r.logger)
		if werr != nil {
			return werr
		}
		defer w.Close()
		go w.Forward(ctx, triggers)
	}
	stopSignals := notifyReload(triggers)
	defer stopSignals()

	for {
		select {
		case <-ctx.Done():
			return nil
		case reason := <-triggers:
			r.logger.Info("reloading", "trigger", reason)
			if rerr := r.Reload(); rerr != nil {
				r.logger.Error("reload failed, keeping previous state", "err", rerr)
			}
		}
	}
}
