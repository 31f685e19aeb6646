package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vanehq/vane/internal/core"
	"github.com/vanehq/vane/internal/host"
	"github.com/vanehq/vane/internal/output"
)

var runWatchFlag bool

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Enable the scope tree and keep it running",
		Long: `Build the scope tree, enable it and keep it running until interrupted.

On SIGHUP the values and language files are re-read and a config-change
cascade runs. With --watch (or watch: true in the config file) changes to
those files trigger the same reload. A failed reload keeps the previous
state. On SIGINT or SIGTERM the tree is disabled and the command exits.

Examples:
  # Run with the default files under ~/.vane
  vane run

  # Run against a CUE values file and reload on change
  vane run --values ./values.cue --watch`,
		RunE: runRun,
	}

	cmd.Flags().BoolVarP(&runWatchFlag, "watch", "w", false, "Reload when the values or language files change")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := currentSettings().Config

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runner *host.Runner
	err := output.RunWithSpinner(ctx, func() error {
		var buildErr error
		runner, _, buildErr = newRunner(cfg, cmd.OutOrStdout())
		return buildErr
	}, output.WithTitle("Building scope tree"))
	if err != nil {
		return exitError(err)
	}

	_ = core.Walk(runner.Module(), func(c core.Context) error {
		output.ScopeLogger(c.Namespace()).Debug("scope ready", "components", len(c.Components()), "children", len(c.Children()))
		return nil
	})

	watch := runWatchFlag || cfg.Watch
	output.Debug("running module", "name", cfg.Name, "watch", watch, "files", runner.Files())

	if err := runner.Run(ctx, watch); err != nil {
		return exitError(err)
	}
	return nil
}
