package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for vane.
type Paths struct {
	// ConfigFile is the path to the config file (~/.vane/vane.yaml).
	ConfigFile string

	// ValuesFile is the default values file (~/.vane/values.yaml).
	ValuesFile string

	// LocaleDir is the default language file directory (~/.vane/lang).
	LocaleDir string

	// HomeDir is the vane home directory (~/.vane).
	HomeDir string
}

// DefaultPaths returns the default paths for vane.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	vaneHome := filepath.Join(homeDir, ".vane")

	return &Paths{
		ConfigFile: filepath.Join(vaneHome, "vane.yaml"),
		ValuesFile: filepath.Join(vaneHome, "values.yaml"),
		LocaleDir:  filepath.Join(vaneHome, "lang"),
		HomeDir:    vaneHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If VANE_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("VANE_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
