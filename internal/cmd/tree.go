package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/vanehq/vane/internal/core"
	oerrors "github.com/vanehq/vane/internal/errors"
	"github.com/vanehq/vane/internal/output"
)

var treeOutputFlag string

// NewTreeCmd creates the tree command.
func NewTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the scope tree",
		Long: `Build the scope tree without enabling it and print it in cascade order:
each scope lists its components first, then its child scopes.

Examples:
  # Print the tree
  vane tree

  # Print the tree as JSON
  vane tree -o json`,
		RunE: runTree,
	}

	cmd.Flags().StringVarP(&treeOutputFlag, "output", "o", "text", "Output format: "+strings.Join(output.ValidFormats(), ", "))

	return cmd
}

func runTree(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(treeOutputFlag)
	if err != nil {
		return err
	}

	cfg := currentSettings().Config
	runner, _, err := newRunner(cfg, io.Discard)
	if err != nil {
		return exitError(err)
	}

	m := runner.Module()
	snapshot := core.Describe(m)

	if format == output.FormatText {
		styles := output.NoColorStyles()
		if output.IsTTY() {
			styles = output.GetStyles()
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), output.RenderScopeTree(m.Name(), snapshot, styles))
		return err
	}
	return writeStructured(cmd.OutOrStdout(), format, snapshot)
}

// parseFormat validates an -o flag value.
func parseFormat(value string) (output.OutputFormat, error) {
	format := output.ParseOutputFormat(value)
	if !format.Valid() {
		return "", oerrors.NewExitError(
			oerrors.NewValidationError(
				fmt.Sprintf("unknown output format %q", value),
				"", "output",
				"Use one of: "+strings.Join(output.ValidFormats(), ", "),
			),
			oerrors.ExitValidationError,
		)
	}
	return format, nil
}

// writeStructured renders v as YAML or JSON.
func writeStructured(w io.Writer, format output.OutputFormat, v any) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case output.FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}
