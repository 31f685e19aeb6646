// Package config provides configuration loading and management.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty"`
}

// Config represents the vane host configuration.
// Loaded from ~/.vane/vane.yaml, validated against the embedded CUE schema.
type Config struct {
	// Name is the root module name. It never prefixes keys.
	// Env: VANE_NAME, Default: "vane"
	Name string `json:"name,omitempty"`

	// Values is the configuration values file the module tree is wired
	// from. A .cue extension selects the CUE source.
	// Env: VANE_VALUES, Default: ~/.vane/values.yaml
	Values string `json:"values,omitempty"`

	// LocaleDir holds the lang-<code>.yaml language files.
	// Env: VANE_LOCALE_DIR, Default: ~/.vane/lang
	LocaleDir string `json:"localeDir,omitempty"`

	// Language is the primary language code.
	// Env: VANE_LANGUAGE, Default: "en"
	Language string `json:"language,omitempty"`

	// FallbackLanguage is consulted for keys the primary language lacks.
	// Default: "en"
	FallbackLanguage string `json:"fallbackLanguage,omitempty"`

	// EnvPrefix prefixes environment overrides of wired keys, e.g.
	// VANE_GREETER_NAME for greeter_name.
	// Default: "VANE"
	EnvPrefix string `json:"envPrefix,omitempty"`

	// Watch reloads the values and language files when they change.
	Watch bool `json:"watch,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty"`
}

// Defaults applied to unset fields.
const (
	DefaultName      = "vane"
	DefaultLanguage  = "en"
	DefaultEnvPrefix = "VANE"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `vane config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Name:             DefaultName,
		Values:           "~/.vane/values.yaml",
		LocaleDir:        "~/.vane/lang",
		Language:         DefaultLanguage,
		FallbackLanguage: DefaultLanguage,
		EnvPrefix:        DefaultEnvPrefix,
	}
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
func (c *Config) WithDefaults() *Config {
	out := *c
	def := DefaultConfig()
	if out.Name == "" {
		out.Name = def.Name
	}
	if out.Values == "" {
		out.Values = def.Values
	}
	if out.LocaleDir == "" {
		out.LocaleDir = def.LocaleDir
	}
	if out.Language == "" {
		out.Language = def.Language
	}
	if out.FallbackLanguage == "" {
		out.FallbackLanguage = def.FallbackLanguage
	}
	if out.EnvPrefix == "" {
		out.EnvPrefix = def.EnvPrefix
	}
	return &out
}
