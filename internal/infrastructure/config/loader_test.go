package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("ENV", "")
	return dir
}

func TestLoad_CreatesDefaultConfig(t *testing.T) {
	dir := isolate(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, 40, cfg.Layout.HeaderHeight)
	assert.Equal(t, 4, cfg.Layout.DividerGap)
	assert.Equal(t, 5000, cfg.Reconcile.IntervalMs)
	assert.True(t, cfg.Reconcile.StateEvents)
	assert.Equal(t, filepath.Join(dir, "data", "twinview", "twinview.sqlite"), cfg.Database.Path)
	assert.Equal(t, filepath.Join(dir, "state", "twinview", "logs"), cfg.Logging.Dir)
	assert.Len(t, cfg.Presets, len(DefaultPresets()))

	assert.FileExists(t, filepath.Join(dir, "config", "twinview", "config.toml"))
	assert.Equal(t, filepath.Join(dir, "config", "twinview", "config.toml"), m.ConfigFile())
}

func TestLoad_ReadsFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[layout]
header_height = 32

[logging]
format = "JSON"

[[presets]]
name = "Example"
url = "https://example.com"
glyph = "E"

[[presets]]
name = "  "
url = ""
`), 0o600))
	t.Setenv("TWINVIEW_SERVER_LISTEN", "0.0.0.0:9000")
	t.Setenv("TWINVIEW_LOG_LEVEL", "DEBUG")

	m, err := NewManager(WithConfigFile(path))
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, 32, cfg.Layout.HeaderHeight)
	assert.Equal(t, 4, cfg.Layout.DividerGap, "unset keys keep defaults")
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Listen)
	require.Len(t, cfg.Presets, 1)
	assert.Equal(t, "Example", cfg.Presets[0].Name)
}

func TestLoad_ValidationAggregatesErrors(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[layout]
header_height = -1

[reconcile]
interval_ms = 5

[server]
listen = "nope"
`), 0o600))

	m, err := NewManager(WithConfigFile(path))
	require.NoError(t, err)
	err = m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout.header_height")
	assert.Contains(t, err.Error(), "reconcile.interval_ms")
	assert.Contains(t, err.Error(), "server.listen")
}

func TestGetReturnsCopy(t *testing.T) {
	isolate(t)
	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	cfg.Presets[0].Name = "changed"
	cfg.Layout.HeaderHeight = 99

	again := m.Get()
	assert.NotEqual(t, "changed", again.Presets[0].Name)
	assert.Equal(t, 40, again.Layout.HeaderHeight)
}

func TestReloadNotifiesCallbacks(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "live.toml")
	require.NoError(t, os.WriteFile(path, []byte("[sync]\nsettle_delay_ms = 100\n"), 0o600))

	m, err := NewManager(WithConfigFile(path))
	require.NoError(t, err)
	require.NoError(t, m.Load())

	var mu sync.Mutex
	var got []int
	m.OnConfigChange(func(c *Config) {
		mu.Lock()
		got = append(got, c.Sync.SettleDelayMs)
		mu.Unlock()
	})

	require.NoError(t, os.WriteFile(path, []byte("[sync]\nsettle_delay_ms = 250\n"), 0o600))
	require.NoError(t, m.Reload())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{250}, got)
	assert.Equal(t, 250, m.Get().Sync.SettleDelayMs)
}

func TestReloadKeepsPreviousOnInvalid(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "live.toml")
	require.NoError(t, os.WriteFile(path, []byte("[drag]\nthrottle_ms = 20\n"), 0o600))

	m, err := NewManager(WithConfigFile(path))
	require.NoError(t, err)
	require.NoError(t, m.Load())

	require.NoError(t, os.WriteFile(path, []byte("[drag]\nthrottle_ms = 0\n"), 0o600))
	assert.Error(t, m.Reload())
	assert.Equal(t, 20, m.Get().Drag.ThrottleMs)
}

func TestWatchIsIdempotent(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "watch.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o600))

	m, err := NewManager(WithConfigFile(path))
	require.NoError(t, err)
	require.NoError(t, m.Load())
	require.NoError(t, m.Watch())
	require.NoError(t, m.Watch())

	changed := make(chan int, 16)
	m.OnConfigChange(func(c *Config) {
		select {
		case changed <- c.Layout.DividerGap:
		default:
		}
	})
	require.NoError(t, os.WriteFile(path, []byte("[layout]\ndivider_gap = 8\n"), 0o600))

	// Editors and WriteFile may produce several events; wait for the final content.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case gap := <-changed:
			if gap == 8 {
				return
			}
		case <-deadline:
			t.Fatal("config change was not observed")
		}
	}
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "twinview configuration", doc["title"])
	assert.Contains(t, string(data), "header_height")
	assert.Contains(t, string(data), "state_events")

	path, err := GenerateSchemaFile(t.TempDir())
	require.NoError(t, err)
	assert.FileExists(t, path)
}
