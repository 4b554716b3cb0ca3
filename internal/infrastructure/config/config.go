// Package config loads twinview settings from TOML and the environment.
package config

import (
	"github.com/bnema/twinview/internal/domain/entity"
)

// Config represents the complete configuration for twinview.
type Config struct {
	Layout     LayoutConfig     `mapstructure:"layout" toml:"layout" json:"layout"`
	Drag       DragConfig       `mapstructure:"drag" toml:"drag" json:"drag"`
	Sync       SyncConfig       `mapstructure:"sync" toml:"sync" json:"sync"`
	Reconcile  ReconcileConfig  `mapstructure:"reconcile" toml:"reconcile" json:"reconcile"`
	Navigation NavigationConfig `mapstructure:"navigation" toml:"navigation" json:"navigation"`
	Viewport   ViewportConfig   `mapstructure:"viewport" toml:"viewport" json:"viewport"`
	// Window is the surface area of the headless host.
	Window   WindowConfig   `mapstructure:"window" toml:"window" json:"window"`
	Terminal TerminalConfig `mapstructure:"terminal" toml:"terminal" json:"terminal"`
	Server   ServerConfig   `mapstructure:"server" toml:"server" json:"server"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
	// Presets are the sites offered on the landing screen.
	Presets []entity.Preset `mapstructure:"presets" toml:"presets" json:"presets"`
}

// LayoutConfig describes the chrome around the surfaces, in pixels.
type LayoutConfig struct {
	HeaderHeight int `mapstructure:"header_height" toml:"header_height" json:"header_height" jsonschema:"minimum=0"`
	DividerGap   int `mapstructure:"divider_gap" toml:"divider_gap" json:"divider_gap" jsonschema:"minimum=0"`
}

// Metrics converts the section to layout metrics.
func (c LayoutConfig) Metrics() entity.LayoutMetrics {
	return entity.LayoutMetrics{HeaderHeight: c.HeaderHeight, DividerGap: c.DividerGap}
}

// DragConfig tunes divider dragging.
type DragConfig struct {
	ThrottleMs    int `mapstructure:"throttle_ms" toml:"throttle_ms" json:"throttle_ms" jsonschema:"minimum=1"`
	DoubleClickMs int `mapstructure:"double_click_ms" toml:"double_click_ms" json:"double_click_ms" jsonschema:"minimum=1"`
}

// SyncConfig tunes the layout synchronizer.
type SyncConfig struct {
	// SettleDelayMs waits for layout transitions before measuring.
	SettleDelayMs int `mapstructure:"settle_delay_ms" toml:"settle_delay_ms" json:"settle_delay_ms" jsonschema:"minimum=0"`
}

// ReconcileConfig tunes drift correction.
type ReconcileConfig struct {
	InitialDelayMs int `mapstructure:"initial_delay_ms" toml:"initial_delay_ms" json:"initial_delay_ms" jsonschema:"minimum=0"`
	IntervalMs     int `mapstructure:"interval_ms" toml:"interval_ms" json:"interval_ms" jsonschema:"minimum=100"`
	// StateEvents applies splitStateChanged events as soon as they arrive.
	StateEvents bool `mapstructure:"state_events" toml:"state_events" json:"state_events"`
}

// NavigationConfig tunes navigation interception.
type NavigationConfig struct {
	DedupeWindowMs int `mapstructure:"dedupe_window_ms" toml:"dedupe_window_ms" json:"dedupe_window_ms" jsonschema:"minimum=0"`
}

// ViewportConfig controls device emulation by surface width.
type ViewportConfig struct {
	Emulate        bool `mapstructure:"emulate" toml:"emulate" json:"emulate"`
	TabletMaxWidth int  `mapstructure:"tablet_max_width" toml:"tablet_max_width" json:"tablet_max_width" jsonschema:"minimum=1"`
	MobileMaxWidth int  `mapstructure:"mobile_max_width" toml:"mobile_max_width" json:"mobile_max_width" jsonschema:"minimum=1"`
}

// WindowConfig is a size in pixels.
type WindowConfig struct {
	Width  int `mapstructure:"width" toml:"width" json:"width" jsonschema:"minimum=1"`
	Height int `mapstructure:"height" toml:"height" json:"height" jsonschema:"minimum=1"`
}

// Size converts the section to an entity size.
func (c WindowConfig) Size() entity.Size {
	return entity.Size{Width: c.Width, Height: c.Height}
}

// TerminalConfig maps terminal cells to pixels.
type TerminalConfig struct {
	CellWidth  int `mapstructure:"cell_width" toml:"cell_width" json:"cell_width" jsonschema:"minimum=1"`
	CellHeight int `mapstructure:"cell_height" toml:"cell_height" json:"cell_height" jsonschema:"minimum=1"`
}

// ServerConfig configures the WebSocket channel endpoint.
type ServerConfig struct {
	Listen string `mapstructure:"listen" toml:"listen" json:"listen"`
}

// DatabaseConfig locates the visit journal.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path"`
	// RetentionDays prunes visits older than this at startup. 0 keeps everything.
	RetentionDays int `mapstructure:"retention_days" toml:"retention_days" json:"retention_days" jsonschema:"minimum=0"`
}

// LogFormat selects the log encoder.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// LoggingConfig controls logging.
type LoggingConfig struct {
	Level  string    `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format LogFormat `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	// File sends logs to a rotating file under the state directory.
	File       bool   `mapstructure:"file" toml:"file" json:"file"`
	Dir        string `mapstructure:"dir" toml:"dir" json:"dir"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
}
