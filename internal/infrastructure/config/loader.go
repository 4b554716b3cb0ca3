package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/twinview/internal/domain/entity"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	file      string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithConfigFile reads path instead of the XDG config file.
func WithConfigFile(path string) ManagerOption {
	return func(m *Manager) { m.file = path }
}

// NewManager creates a new configuration manager.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		viper:     viper.New(),
		callbacks: make([]func(*Config), 0),
	}
	for _, opt := range opts {
		opt(m)
	}

	v := m.viper
	v.SetConfigType("toml")
	if m.file != "" {
		v.SetConfigFile(m.file)
	} else {
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath(configDir)
	}

	// TWINVIEW_SERVER_LISTEN, TWINVIEW_WINDOW_WIDTH, ...
	v.SetEnvPrefix("TWINVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "TWINVIEW_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind TWINVIEW_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "TWINVIEW_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind TWINVIEW_LOG_FORMAT: %w", err)
	}

	return m, nil
}

// Load loads the configuration from file and environment variables. A
// missing config file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.build()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configPath(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf("failed to create default config at %s: %w", m.configPath(), createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// build unmarshals, fills derived values, normalizes and validates.
func (m *Manager) build() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := ensurePaths(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func ensurePaths(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Logging.Dir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.Dir = logDir
	}
	return nil
}

func normalizeConfig(config *Config) {
	switch LogFormat(strings.ToLower(string(config.Logging.Format))) {
	case LogFormatJSON:
		config.Logging.Format = LogFormatJSON
	default:
		config.Logging.Format = LogFormatConsole
	}
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Server.Listen = strings.TrimSpace(config.Server.Listen)

	presets := config.Presets[:0]
	for _, p := range config.Presets {
		p.Name = strings.TrimSpace(p.Name)
		p.URL = strings.TrimSpace(p.URL)
		if p.URL == "" {
			continue
		}
		if p.Name == "" {
			p.Name = p.URL
		}
		presets = append(presets, p)
	}
	config.Presets = presets
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	configCopy.Presets = append([]entity.Preset(nil), m.config.Presets...)
	return &configCopy
}

// ConfigFile returns the path to the configuration file in use.
func (m *Manager) ConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return m.configPath()
}

func (m *Manager) configPath() string {
	if m.file != "" {
		return m.file
	}
	path, err := GetConfigFile()
	if err != nil {
		return "config.toml"
	}
	return path
}

func (m *Manager) createDefaultConfig() error {
	configFile := m.configPath()
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setLayoutDefaults(defaults)
	m.setTimingDefaults(defaults)
	m.setViewportDefaults(defaults)
	m.setHostDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.viper.SetDefault("presets", defaults.Presets)
}

func (m *Manager) setLayoutDefaults(defaults *Config) {
	m.viper.SetDefault("layout.header_height", defaults.Layout.HeaderHeight)
	m.viper.SetDefault("layout.divider_gap", defaults.Layout.DividerGap)
}

func (m *Manager) setTimingDefaults(defaults *Config) {
	m.viper.SetDefault("drag.throttle_ms", defaults.Drag.ThrottleMs)
	m.viper.SetDefault("drag.double_click_ms", defaults.Drag.DoubleClickMs)
	m.viper.SetDefault("sync.settle_delay_ms", defaults.Sync.SettleDelayMs)
	m.viper.SetDefault("reconcile.initial_delay_ms", defaults.Reconcile.InitialDelayMs)
	m.viper.SetDefault("reconcile.interval_ms", defaults.Reconcile.IntervalMs)
	m.viper.SetDefault("reconcile.state_events", defaults.Reconcile.StateEvents)
	m.viper.SetDefault("navigation.dedupe_window_ms", defaults.Navigation.DedupeWindowMs)
}

func (m *Manager) setViewportDefaults(defaults *Config) {
	m.viper.SetDefault("viewport.emulate", defaults.Viewport.Emulate)
	m.viper.SetDefault("viewport.tablet_max_width", defaults.Viewport.TabletMaxWidth)
	m.viper.SetDefault("viewport.mobile_max_width", defaults.Viewport.MobileMaxWidth)
}

func (m *Manager) setHostDefaults(defaults *Config) {
	m.viper.SetDefault("window.width", defaults.Window.Width)
	m.viper.SetDefault("window.height", defaults.Window.Height)
	m.viper.SetDefault("terminal.cell_width", defaults.Terminal.CellWidth)
	m.viper.SetDefault("terminal.cell_height", defaults.Terminal.CellHeight)
	m.viper.SetDefault("server.listen", defaults.Server.Listen)
	m.viper.SetDefault("database.retention_days", defaults.Database.RetentionDays)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", string(defaults.Logging.Format))
	m.viper.SetDefault("logging.file", defaults.Logging.File)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}
