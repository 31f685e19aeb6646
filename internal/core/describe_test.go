package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	rec := &recorder{}
	m, _, _ := buildScenarioTree(t, rec)

	snap := Describe(m)

	assert.Equal(t, Snapshot{
		Namespace: "",
		Children: []Snapshot{{
			Namespace:  "a",
			Components: []string{"*core.spy", "*core.spy"},
			Children:   []Snapshot{{Namespace: "a_b"}},
		}},
	}, snap)
}

func TestWalk_PreOrderAndStop(t *testing.T) {
	rec := &recorder{}
	m, _, _ := buildScenarioTree(t, rec)

	var seen []string
	require.NoError(t, Walk(m, func(c Context) error {
		seen = append(seen, c.Namespace())
		return nil
	}))
	assert.Equal(t, []string{"", "a", "a_b"}, seen)

	stop := errors.New("stop")
	seen = nil
	err := Walk(m, func(c Context) error {
		seen = append(seen, c.Namespace())
		if c.Namespace() == "a" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"", "a"}, seen)
}
