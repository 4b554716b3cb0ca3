package config

import (
	"github.com/bnema/twinview/internal/domain/entity"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			HeaderHeight: 40,
			DividerGap:   4,
		},
		Drag: DragConfig{
			ThrottleMs:    16,
			DoubleClickMs: 400,
		},
		Sync: SyncConfig{
			SettleDelayMs: 300,
		},
		Reconcile: ReconcileConfig{
			InitialDelayMs: 1000,
			IntervalMs:     5000,
			StateEvents:    true,
		},
		Navigation: NavigationConfig{
			DedupeWindowMs: 200,
		},
		Viewport: ViewportConfig{
			Emulate:        true,
			TabletMaxWidth: 1024,
			MobileMaxWidth: 600,
		},
		Window: WindowConfig{
			Width:  1200,
			Height: 800,
		},
		Terminal: TerminalConfig{
			CellWidth:  8,
			CellHeight: 16,
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:7878",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     LogFormatConsole,
			File:       true,
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Presets: DefaultPresets(),
	}
}

// DefaultPresets returns the landing sites shipped with twinview.
func DefaultPresets() []entity.Preset {
	return []entity.Preset{
		{Name: "Hacker News", URL: "https://news.ycombinator.com", Glyph: "Y"},
		{Name: "Wikipedia", URL: "https://en.wikipedia.org", Glyph: "W"},
		{Name: "Go Packages", URL: "https://pkg.go.dev", Glyph: "G"},
		{Name: "Lobsters", URL: "https://lobste.rs", Glyph: "L"},
	}
}
