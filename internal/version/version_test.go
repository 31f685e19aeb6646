package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	require.NotEmpty(t, info.GoVersion, "GoVersion should be populated")
	require.NotEmpty(t, info.CUESDKVersion, "CUESDKVersion should be populated")
	assert.Equal(t, Version, info.Version)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:       "v1.0.0",
		GitCommit:     "abc123",
		BuildDate:     "2026-01-29",
		GoVersion:     "go1.25",
		CUESDKVersion: "v0.15.0",
	}

	str := info.String()

	assert.Contains(t, str, "vane:")
	assert.Contains(t, str, "v1.0.0")
	assert.Contains(t, str, "abc123")
	assert.Contains(t, str, "2026-01-29")
	assert.Contains(t, str, "go1.25")
	assert.Contains(t, str, "v0.15.0")
}

func TestDepVersion(t *testing.T) {
	info := &debug.BuildInfo{Deps: []*debug.Module{
		{Path: "github.com/spf13/viper", Version: "v1.21.0"},
		{Path: cueModule, Version: "v0.15.4"},
		{Path: "example.com/replaced", Version: "v1.0.0", Replace: &debug.Module{Path: "../local", Version: "v1.0.1"}},
	}}

	assert.Equal(t, "v0.15.4", depVersion(info, cueModule, "fallback"))
	assert.Equal(t, "v1.0.1", depVersion(info, "example.com/replaced", "fallback"))
	assert.Equal(t, "fallback", depVersion(info, "example.com/absent", "fallback"))
}
