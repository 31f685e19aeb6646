package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanehq/vane/internal/output"
)

var keysOutputFlag string

// NewKeysCmd creates the keys command.
func NewKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List every wired key",
		Long: `Build the scope tree without enabling it and list every key it wired, in
wiring order. Config keys are read from the values file, lang keys from the
language files.

Examples:
  vane keys
  vane keys -o yaml`,
		RunE: runKeys,
	}

	cmd.Flags().StringVarP(&keysOutputFlag, "output", "o", "text", "Output format: "+strings.Join(output.ValidFormats(), ", "))

	return cmd
}

func runKeys(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(keysOutputFlag)
	if err != nil {
		return err
	}

	runner, _, err := newRunner(currentSettings().Config, io.Discard)
	if err != nil {
		return exitError(err)
	}

	keys := runner.Module().Keys()
	if format == output.FormatText {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), output.RenderKeysTable(keys, output.IsTTY()))
		return err
	}
	return writeStructured(cmd.OutOrStdout(), format, keys)
}
