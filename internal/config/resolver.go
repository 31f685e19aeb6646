package config

import (
	"os"

	"github.com/vanehq/vane/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue records the outcome of resolving one setting.
type ResolvedValue struct {
	// Key is the setting name.
	Key string
	// Value is the winning value.
	Value string
	// Source indicates where Value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveOptions lists the candidate values of one setting.
type ResolveOptions struct {
	// Key is the setting name, used for logging.
	Key string
	// FlagValue is the command-line flag value (empty if not set).
	FlagValue string
	// EnvVar is the environment variable consulted after the flag.
	EnvVar string
	// ConfigValue is the value from the config file (empty if not set).
	ConfigValue string
	// DefaultValue applies when nothing else is set.
	DefaultValue string
}

// Resolve picks a value using precedence: flag > env > config > default.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	var envValue string
	if opts.EnvVar != "" {
		envValue = os.Getenv(opts.EnvVar)
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.DefaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	return result
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) VANE_CONFIG env, (3) ~/.vane/vane.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}

	return Resolve(ResolveOptions{
		Key:          "config",
		FlagValue:    opts.FlagValue,
		EnvVar:       "VANE_CONFIG",
		DefaultValue: paths.ConfigFile,
	}), nil
}

// Settings is the host configuration after flags were applied.
type Settings struct {
	Config   *Config
	Values   ResolvedValue
	Language ResolvedValue
}

// ResolveSettingsOptions carries the flag values that override cfg.
type ResolveSettingsOptions struct {
	ValuesFlag   string
	LanguageFlag string
}

// ResolveSettings applies flag and environment precedence to the values file
// and language of cfg. cfg is expected to come from Loader.Load, before
// defaults are applied, so the config layer can be told apart.
func ResolveSettings(cfg *Config, opts ResolveSettingsOptions) Settings {
	def := DefaultConfig()

	values := Resolve(ResolveOptions{
		Key:          "values",
		FlagValue:    opts.ValuesFlag,
		EnvVar:       "VANE_VALUES",
		ConfigValue:  cfg.Values,
		DefaultValue: def.Values,
	})
	language := Resolve(ResolveOptions{
		Key:          "language",
		FlagValue:    opts.LanguageFlag,
		EnvVar:       "VANE_LANGUAGE",
		ConfigValue:  cfg.Language,
		DefaultValue: def.Language,
	})

	merged := cfg.WithDefaults()
	merged.Values = values.Value
	merged.Language = language.Value

	return Settings{Config: merged, Values: values, Language: language}
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
