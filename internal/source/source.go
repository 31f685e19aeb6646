// Package source provides the configuration and localization sources a
// module tree is wired from.
package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vanehq/vane/internal/core"
)

// Reloader is implemented by file-backed sources.
type Reloader interface {
	// Reload re-reads every backing file. On failure the previous values
	// stay in effect.
	Reload() error

	// Snapshot renders the currently resolvable values as YAML.
	Snapshot() ([]byte, error)

	// Files returns the backing file paths, existing or not.
	Files() []string
}

// File is a reloadable configuration source.
type File interface {
	core.Source
	core.Declarer
	Reloader
}

// Open returns the configuration source for path: CUE for .cue files,
// viper for everything else. envPrefix only applies to viper sources.
func Open(path, envPrefix string) (File, error) {
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		return NewCUE(path)
	}
	return NewViper(path, envPrefix)
}

func missing(key string) error {
	return fmt.Errorf("%w: %s", core.ErrMissingKey, key)
}
