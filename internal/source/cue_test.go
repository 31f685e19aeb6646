package source

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanehq/vane/internal/core"
	"github.com/vanehq/vane/internal/testutil"
)

const cueValues = `
greeter_name:    "cue"
heartbeat_count: int & >0 & 3
heartbeat_ratio: 0.5
heartbeat_tags: ["a", "b"]
heartbeat_on:   true
`

func TestCUE_Resolve(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "values.cue", cueValues)
	s, err := NewCUE(path)
	require.NoError(t, err)

	tests := []struct {
		key  string
		want any
	}{
		{"greeter_name", "cue"},
		{"heartbeat_count", int64(3)},
		{"heartbeat_ratio", 0.5},
		{"heartbeat_tags", []any{"a", "b"}},
		{"heartbeat_on", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, err := s.Resolve(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestCUE_WiresThroughCast(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "values.cue", cueValues)
	s, err := NewCUE(path)
	require.NoError(t, err)

	var count int
	f := core.ConfigInt("count", &count)
	v, err := s.Resolve("heartbeat_count")
	require.NoError(t, err)
	require.NoError(t, f.Set(v))
	assert.Equal(t, 3, count)
}

func TestCUE_MissingAndDefault(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "values.cue", cueValues)
	s, err := NewCUE(path)
	require.NoError(t, err)

	_, err = s.Resolve("greeter_other")
	assert.ErrorIs(t, err, core.ErrMissingKey)

	var other string
	s.Declare("greeter_other", core.ConfigString("other", &other).WithDefault("fallback"))
	v, err := s.Resolve("greeter_other")
	require.NoError(t, err)
	assert.Equal(t, "fallback", v)
}

func TestCUE_NonConcreteValue(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "values.cue", "limit: int\n")
	s, err := NewCUE(path)
	require.NoError(t, err)

	_, err = s.Resolve("limit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not concrete")
}

func TestCUE_InvalidFile(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "values.cue", "a: {\n")

	_, err := NewCUE(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling values file")
}

func TestCUE_MissingFile(t *testing.T) {
	s, err := NewCUE(filepath.Join(t.TempDir(), "absent.cue"))
	require.NoError(t, err)

	_, err = s.Resolve("a")
	assert.ErrorIs(t, err, core.ErrMissingKey)
}

func TestCUE_ReloadAndSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "values.cue", `greeter_name: "before"`)
	s, err := NewCUE(path)
	require.NoError(t, err)

	testutil.WriteFile(t, dir, "values.cue", `greeter_name: "after"`)
	require.NoError(t, s.Reload())

	v, err := s.Resolve("greeter_name")
	require.NoError(t, err)
	assert.Equal(t, "after", v)

	out, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "greeter_name: after\n", string(out))
	assert.Equal(t, []string{path}, s.Files())
}
