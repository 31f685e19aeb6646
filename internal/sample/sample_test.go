package sample

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanehq/vane/internal/core"
	"github.com/vanehq/vane/internal/source"
)

// lockedBuffer is safe to read while the pulse goroutine writes.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func buildTree(t *testing.T, values, lang map[string]any) (*core.Module, *Tree, *source.Map, *lockedBuffer) {
	t.Helper()
	cfg := source.NewMap(values)
	m, err := core.NewModule("vane", cfg, source.NewMap(lang))
	require.NoError(t, err)

	out := &lockedBuffer{}
	tree, err := Build(m, out)
	require.NoError(t, err)
	return m, tree, cfg, out
}

func TestBuild_Shape(t *testing.T) {
	m, tree, _, _ := buildTree(t, nil, nil)

	assert.Equal(t, core.Snapshot{
		Children: []core.Snapshot{
			{Namespace: "greeter", Components: []string{"*sample.Greeting"}},
			{
				Namespace:  "heartbeat",
				Components: []string{"*sample.Pulse"},
				Children: []core.Snapshot{
					{Namespace: "heartbeat_audit", Components: []string{"*sample.Recorder"}},
				},
			},
		},
	}, core.Describe(m))

	assert.Equal(t, "heartbeat_audit", tree.Audit.Namespace())
	assert.Equal(t, 16, tree.Audit.Capacity)
	assert.Equal(t, 5*time.Second, tree.Heartbeat.Interval)
	assert.Equal(t, "world", tree.Greeting.Name)
}

func TestBuild_Keys(t *testing.T) {
	m, _, _, _ := buildTree(t, nil, nil)

	var keys []string
	for _, k := range m.Keys() {
		keys = append(keys, k.Key)
	}
	assert.Equal(t, []string{
		"greeter_name",
		"greeter_hello",
		"greeter_farewell",
		"greeter_renamed",
		"heartbeat_interval",
		"heartbeat_beat",
		"heartbeat_audit_capacity",
	}, keys)
}

func TestBuild_UsesSourceValues(t *testing.T) {
	_, tree, _, _ := buildTree(t,
		map[string]any{"greeter_name": "Ada", "heartbeat_interval": "250ms", "heartbeat_audit_capacity": "2"},
		map[string]any{"greeter_hello": "Hallo, {0}!"})

	assert.Equal(t, "Ada", tree.Greeting.Name)
	assert.Equal(t, core.Message("Hallo, {0}!"), tree.Greeting.Hello)
	assert.Equal(t, 250*time.Millisecond, tree.Heartbeat.Interval)
	assert.Equal(t, 2, tree.Audit.Capacity)
}

func TestBuild_InvalidValue(t *testing.T) {
	cfg := source.NewMap(map[string]any{"heartbeat_interval": "soon"})
	m, err := core.NewModule("vane", cfg, source.NewMap(nil))
	require.NoError(t, err)

	_, err = Build(m, &lockedBuffer{})

	var fieldErr *core.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "heartbeat_interval", fieldErr.Key)
}

func TestLifecycle_GreetsAndRecords(t *testing.T) {
	m, tree, _, out := buildTree(t, map[string]any{"greeter_name": "Ada"}, nil)

	require.NoError(t, m.Enable())
	require.NoError(t, m.ConfigChange())
	require.NoError(t, m.Disable())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "Hello, Ada!", lines[0])
	assert.Equal(t, "Goodbye, Ada!", lines[len(lines)-1])
	assert.Equal(t, []string{"enable", "config-change", "disable"}, tree.Recorder.Events())
}

func TestGreeting_PicksUpRename(t *testing.T) {
	m, tree, cfg, out := buildTree(t, map[string]any{"greeter_name": "Ada"}, nil)
	require.NoError(t, m.Enable())

	cfg.Set("greeter_name", "Grace")
	require.NoError(t, m.ConfigChange())
	require.NoError(t, m.Disable())

	assert.Contains(t, out.String(), "Now greeting Grace instead of Ada.")
	assert.Contains(t, out.String(), "Goodbye, Grace!")
	assert.Equal(t, "Grace", tree.Greeting.Name)
}

func TestPulse_Beats(t *testing.T) {
	m, tree, _, out := buildTree(t, map[string]any{"heartbeat_interval": "5ms"}, nil)
	require.NoError(t, m.Enable())

	require.Eventually(t, func() bool { return tree.Pulse.Count() >= 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, m.Disable())

	assert.Contains(t, out.String(), "beat #1")
	stopped := tree.Pulse.Count()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, tree.Pulse.Count(), "no pulses after disable")
}

func TestPulse_IntervalChange(t *testing.T) {
	m, tree, cfg, _ := buildTree(t, map[string]any{"heartbeat_interval": "1h"}, nil)
	require.NoError(t, m.Enable())
	defer func() { _ = m.Disable() }()

	cfg.Set("heartbeat_interval", "5ms")
	require.NoError(t, m.ConfigChange())

	require.Eventually(t, func() bool { return tree.Pulse.Count() >= 1 }, 2*time.Second, 5*time.Millisecond)
}

func TestPulse_IntervalSurvivesRestart(t *testing.T) {
	m, tree, cfg, _ := buildTree(t, map[string]any{"heartbeat_interval": "1h"}, nil)
	require.NoError(t, m.Enable())

	cfg.Set("heartbeat_interval", "5ms")
	require.NoError(t, m.ConfigChange())
	require.NoError(t, m.Disable())
	assert.Equal(t, 5*time.Millisecond, tree.Heartbeat.Interval)

	before := tree.Pulse.Count()
	require.NoError(t, m.Enable())
	defer func() { _ = m.Disable() }()

	require.Eventually(t, func() bool { return tree.Pulse.Count() > before }, 2*time.Second, 5*time.Millisecond)
}

func TestPulse_ChangeWhileDisabledAppliesOnEnable(t *testing.T) {
	m, tree, cfg, _ := buildTree(t, map[string]any{"heartbeat_interval": "1h"}, nil)

	cfg.Set("heartbeat_interval", "5ms")
	require.NoError(t, m.ConfigChange())
	assert.Equal(t, 5*time.Millisecond, tree.Heartbeat.Interval)

	require.NoError(t, m.Enable())
	defer func() { _ = m.Disable() }()
	require.Eventually(t, func() bool { return tree.Pulse.Count() >= 1 }, 2*time.Second, 5*time.Millisecond)
}

func TestPulse_SecondEnableKeepsOneLoop(t *testing.T) {
	m, tree, _, _ := buildTree(t, map[string]any{"heartbeat_interval": "5ms"}, nil)
	require.NoError(t, m.Enable())
	require.NoError(t, tree.Pulse.OnEnable())

	require.Eventually(t, func() bool { return tree.Pulse.Count() >= 1 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, m.Disable())

	stopped := tree.Pulse.Count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, tree.Pulse.Count(), "no loop left running after disable")
}

func TestPulse_RejectsNonPositiveInterval(t *testing.T) {
	m, tree, cfg, _ := buildTree(t, map[string]any{"heartbeat_interval": "1h"}, nil)
	require.NoError(t, m.Enable())
	defer func() { _ = m.Disable() }()

	cfg.Set("heartbeat_interval", "0s")
	err := m.ConfigChange()

	var hookErr *core.HookError
	require.ErrorAs(t, err, &hookErr)
	assert.Equal(t, "heartbeat", hookErr.Namespace)
	assert.Equal(t, "*sample.Pulse", hookErr.Component)
	assert.Empty(t, tree.Recorder.Events()[1:], "cascade stops before the audit scope")
}

func TestRecorder_Capacity(t *testing.T) {
	m, tree, _, _ := buildTree(t, map[string]any{"heartbeat_audit_capacity": 2, "heartbeat_interval": "1h"}, nil)

	require.NoError(t, m.Enable())
	require.NoError(t, m.ConfigChange())
	require.NoError(t, m.ConfigChange())

	assert.Equal(t, []string{"config-change", "config-change"}, tree.Recorder.Events())
	require.NoError(t, m.Disable())
}

func TestAudit_CapacityChange(t *testing.T) {
	m, tree, cfg, _ := buildTree(t, map[string]any{"heartbeat_audit_capacity": 3, "heartbeat_interval": "1h"}, nil)

	require.NoError(t, m.Enable())
	require.NoError(t, m.ConfigChange())

	// the scope hook runs before the recorder, so the journal is trimmed at once
	cfg.Set("heartbeat_audit_capacity", 1)
	require.NoError(t, m.ConfigChange())
	assert.Equal(t, 1, tree.Audit.Capacity)
	assert.Equal(t, []string{"config-change"}, tree.Recorder.Events())

	cfg.Set("heartbeat_audit_capacity", 0)
	err := m.ConfigChange()
	var hookErr *core.HookError
	require.ErrorAs(t, err, &hookErr)
	assert.Equal(t, "heartbeat_audit", hookErr.Namespace)
	assert.Empty(t, hookErr.Component)
	assert.Equal(t, 1, tree.Audit.Capacity)

	require.NoError(t, m.Disable())
}
