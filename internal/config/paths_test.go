package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no tilde",
			input:    "/absolute/path",
			expected: "/absolute/path",
		},
		{
			name:     "relative path without tilde",
			input:    "relative/path",
			expected: "relative/path",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: homeDir,
		},
		{
			name:     "tilde with path",
			input:    "~/.vane/values.yaml",
			expected: filepath.Join(homeDir, ".vane", "values.yaml"),
		},
		{
			name:     "tilde username pattern (not expanded)",
			input:    "~username/file",
			expected: "~username/file",
		},
		{
			name:     "tilde in middle (not expanded)",
			input:    "/path/~/file",
			expected: "/path/~/file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	paths, err := DefaultPaths()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/home/tester", ".vane"), paths.HomeDir)
	assert.Equal(t, filepath.Join("/home/tester", ".vane", "vane.yaml"), paths.ConfigFile)
	assert.Equal(t, filepath.Join("/home/tester", ".vane", "values.yaml"), paths.ValuesFile)
	assert.Equal(t, filepath.Join("/home/tester", ".vane", "lang"), paths.LocaleDir)
}

func TestGetConfigFile_EnvOverride(t *testing.T) {
	t.Setenv("VANE_CONFIG", "/etc/vane.yaml")

	path, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "/etc/vane.yaml", path)
}

