package config

import (
	"fmt"
	"net"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true, "disabled": true,
}

// validateConfig collects every problem into one error.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLayout(config)...)
	validationErrors = append(validationErrors, validateTimings(config)...)
	validationErrors = append(validationErrors, validateViewport(config)...)
	validationErrors = append(validationErrors, validateHost(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validatePresets(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLayout(config *Config) []string {
	var validationErrors []string
	if config.Layout.HeaderHeight < 0 {
		validationErrors = append(validationErrors, "layout.header_height must be non-negative")
	}
	if config.Layout.DividerGap < 0 {
		validationErrors = append(validationErrors, "layout.divider_gap must be non-negative")
	}
	return validationErrors
}

func validateTimings(config *Config) []string {
	var validationErrors []string
	if config.Drag.ThrottleMs < 1 {
		validationErrors = append(validationErrors, "drag.throttle_ms must be at least 1")
	}
	if config.Drag.DoubleClickMs < 1 {
		validationErrors = append(validationErrors, "drag.double_click_ms must be at least 1")
	}
	if config.Sync.SettleDelayMs < 0 {
		validationErrors = append(validationErrors, "sync.settle_delay_ms must be non-negative")
	}
	if config.Reconcile.InitialDelayMs < 0 {
		validationErrors = append(validationErrors, "reconcile.initial_delay_ms must be non-negative")
	}
	if config.Reconcile.IntervalMs < 100 {
		validationErrors = append(validationErrors, "reconcile.interval_ms must be at least 100")
	}
	if config.Navigation.DedupeWindowMs < 0 {
		validationErrors = append(validationErrors, "navigation.dedupe_window_ms must be non-negative")
	}
	return validationErrors
}

func validateViewport(config *Config) []string {
	v := config.Viewport
	if v.MobileMaxWidth < 1 || v.TabletMaxWidth <= v.MobileMaxWidth {
		return []string{"viewport.tablet_max_width must be greater than viewport.mobile_max_width (both positive)"}
	}
	return nil
}

func validateHost(config *Config) []string {
	var validationErrors []string
	if config.Window.Width < 1 || config.Window.Height < 1 {
		validationErrors = append(validationErrors, "window.width and window.height must be positive")
	}
	if config.Terminal.CellWidth < 1 || config.Terminal.CellHeight < 1 {
		validationErrors = append(validationErrors, "terminal.cell_width and terminal.cell_height must be positive")
	}
	if _, _, err := net.SplitHostPort(config.Server.Listen); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("server.listen %q is not host:port", config.Server.Listen))
	}
	if config.Database.RetentionDays < 0 {
		validationErrors = append(validationErrors, "database.retention_days must be non-negative")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if config.Logging.Level != "" && !validLogLevels[config.Logging.Level] {
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level %q is not a known level", config.Logging.Level))
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	return validationErrors
}

func validatePresets(config *Config) []string {
	var validationErrors []string
	seen := make(map[string]bool, len(config.Presets))
	for _, p := range config.Presets {
		if seen[p.Name] {
			validationErrors = append(validationErrors, fmt.Sprintf("presets: duplicate name %q", p.Name))
		}
		seen[p.Name] = true
	}
	return validationErrors
}
