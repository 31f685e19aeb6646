package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanehq/vane/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show vane version information.

Displays:
  - vane version, commit, and build date
  - CUE SDK version (embedded in vane)`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "vane version %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:    %s\n", info.GitCommit)
	fmt.Fprintf(out, "  Built:     %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go:        %s\n", info.GoVersion)
	fmt.Fprintf(out, "  CUE SDK:   %s\n", info.CUESDKVersion)

	return nil
}
