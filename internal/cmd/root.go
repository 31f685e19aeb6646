// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vanehq/vane/internal/config"
	"github.com/vanehq/vane/internal/output"
	"github.com/vanehq/vane/internal/version"
)

var (
	// Global flags
	configFlag     string
	valuesFlag     string
	languageFlag   string
	verboseFlag    bool
	timestampsFlag bool

	// Resolved during PersistentPreRunE
	configPath config.ResolvedValue
	settings   config.Settings
)

// NewRootCmd creates the root command for the vane CLI.
func NewRootCmd() *cobra.Command {
	configPath = config.ResolvedValue{}
	settings = config.Settings{}

	rootCmd := &cobra.Command{
		Use:   "vane",
		Short: "Hierarchical scope tree host",
		Long: `vane hosts a tree of namespaced scopes. Every scope wires its fields
from a values file and a language file, keyed by namespace, and takes part
in the enable, disable and config-change cascades.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: VANE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&valuesFlag, "values", "", "Path to values file, .cue selects CUE (env: VANE_VALUES)")
	rootCmd.PersistentFlags().StringVar(&languageFlag, "language", "", "Primary language code (env: VANE_LANGUAGE)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewTreeCmd())
	rootCmd.AddCommand(NewKeysCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads the host configuration, applies flag precedence
// and sets up logging.
func initializeGlobals(cmd *cobra.Command) error {
	resolvedPath, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		return err
	}
	configPath = resolvedPath

	loaded, err := config.NewLoader().Load(configPath.Value)
	if err != nil {
		// Don't fail here: commands like version and config init work without it.
		output.Debug("config load error", "error", err)
		loaded = &config.Config{}
	}

	settings = config.ResolveSettings(loaded, config.ResolveSettingsOptions{
		ValuesFlag:   valuesFlag,
		LanguageFlag: languageFlag,
	})

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: verboseFlag}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if verboseFlag {
		info := version.Get()
		output.Debug("initializing CLI", "version", info.Version, "cue_sdk", info.CUESDKVersion)
		config.LogResolvedValues(configPath, settings.Values, settings.Language)
	}

	return nil
}

// currentSettings returns the resolved settings, resolving them from flags
// and environment alone when the root pre-run did not happen.
func currentSettings() config.Settings {
	if settings.Config != nil {
		return settings
	}
	return config.ResolveSettings(&config.Config{}, config.ResolveSettingsOptions{
		ValuesFlag:   valuesFlag,
		LanguageFlag: languageFlag,
	})
}

// currentConfigPath returns the resolved config file path.
func currentConfigPath() (string, error) {
	if configPath.Value != "" {
		return configPath.Value, nil
	}
	resolved, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: configFlag})
	if err != nil {
		return "", err
	}
	return resolved.Value, nil
}
