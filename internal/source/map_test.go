package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanehq/vane/internal/core"
)

func TestMap_Resolve(t *testing.T) {
	m := NewMap(map[string]any{"a_port": 8080})

	v, err := m.Resolve("a_port")
	require.NoError(t, err)
	assert.Equal(t, 8080, v)

	_, err = m.Resolve("a_host")
	assert.ErrorIs(t, err, core.ErrMissingKey)
}

func TestMap_DeclaredDefault(t *testing.T) {
	var host string
	m := NewMap(nil)
	m.Declare("a_host", core.ConfigString("host", &host).WithDefault("localhost"))

	v, err := m.Resolve("a_host")
	require.NoError(t, err)
	assert.Equal(t, "localhost", v)

	m.Set("a_host", "example.org")
	v, err = m.Resolve("a_host")
	require.NoError(t, err)
	assert.Equal(t, "example.org", v)
}

func TestMap_DeclareWithoutDefault(t *testing.T) {
	var host string
	m := NewMap(nil)
	m.Declare("a_host", core.ConfigString("host", &host))

	_, err := m.Resolve("a_host")
	assert.ErrorIs(t, err, core.ErrMissingKey)
}

func TestMap_CopiesInput(t *testing.T) {
	in := map[string]any{"k": 1}
	m := NewMap(in)
	in["k"] = 2

	v, err := m.Resolve("k")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestMap_Snapshot(t *testing.T) {
	var a, b int
	m := NewMap(map[string]any{"b": 5})
	m.Declare("a", core.ConfigInt("a", &a).WithDefault(1))
	m.Declare("b", core.ConfigInt("b", &b).WithDefault(2))

	out, err := m.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nb: 5\n", string(out))
}
