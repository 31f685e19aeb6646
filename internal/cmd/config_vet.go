package cmd

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanehq/vane/internal/config"
	oerrors "github.com/vanehq/vane/internal/errors"
	"github.com/vanehq/vane/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the vane configuration.

Checks performed:
  1. Config file exists at resolved path
  2. Config file matches the configuration schema
  3. Every scope of the tree wires from the values and language files
  4. A language file exists for the configured language

The config path is resolved using precedence:
  --config flag > VANE_CONFIG env > ~/.vane/vane.yaml

Examples:
  # Validate default configuration
  vane config vet

  # Validate custom config path
  vane config vet --config /path/to/vane.yaml`,
		RunE: runConfigVet,
	}

	return cmd
}

func runConfigVet(cmd *cobra.Command, args []string) error {
	configFile, err := currentConfigPath()
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}

	output.Debug("validating config", "path", configFile)

	// Check 1: Config file exists
	exists, err := config.ConfigFileExists(configFile)
	if err != nil {
		return exitError(err)
	}
	if !exists {
		return exitError(oerrors.NewNotFoundError(
			"configuration file not found",
			configFile,
			"Run 'vane config init' to create default configuration",
		))
	}

	// Check 2: Schema
	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}
	if err := validator.ValidateFile(configFile); err != nil {
		var validationErrs config.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return exitError(err)
		}
		stderr := cmd.ErrOrStderr()
		fmt.Fprintln(stderr, "Error: config validation failed")
		fmt.Fprintf(stderr, "  File: %s\n\n", configFile)
		for _, e := range validationErrs {
			fmt.Fprintf(stderr, "  %s: %s\n", e.Field, e.Message)
		}
		return &oerrors.ExitError{Err: err, Code: oerrors.ExitValidationError, Printed: true}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, output.FormatCheckmark("Config file is valid: "+configFile))

	// Check 3: Wiring
	cfg := currentSettings().Config
	runner, src, err := newRunner(cfg, io.Discard)
	if err != nil {
		return exitError(err)
	}
	fmt.Fprintln(out, output.FormatCheckmark(
		fmt.Sprintf("Scope tree wires: %d keys from %s", len(runner.Module().Keys()), cfg.Values),
	))

	// Check 4: Language files
	languages, err := src.lang.Languages()
	if err != nil {
		return exitError(err)
	}
	if !slices.Contains(languages, cfg.Language) {
		output.Warn("no language file for the configured language, declared defaults apply",
			"language", cfg.Language, "available", languages)
	} else {
		fmt.Fprintln(out, output.FormatCheckmark("Language files: "+strings.Join(languages, ", ")))
	}

	return nil
}
