// Package cli holds the state shared by the twinview commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/twinview/internal/bootstrap"
	"github.com/bnema/twinview/internal/cli/styles"
	"github.com/bnema/twinview/internal/domain/build"
	"github.com/bnema/twinview/internal/infrastructure/config"
	"github.com/bnema/twinview/internal/logging"
)

// Options tune how NewApp sets things up.
type Options struct {
	// ConfigFile overrides the XDG config file.
	ConfigFile string
	// LogToFile sends logs to the rotating log file. Commands that own the
	// terminal set it.
	LogToFile bool
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	journal    *bootstrap.Journal
	ctx        context.Context
	logCleanup func()
}

// NewApp loads the configuration and builds the logger.
func NewApp(opts Options) (*App, error) {
	var mgrOpts []config.ManagerOption
	if opts.ConfigFile != "" {
		mgrOpts = append(mgrOpts, config.WithConfigFile(opts.ConfigFile))
	} else if err := config.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("create xdg directories: %w", err)
	}
	mgr, err := config.NewManager(mgrOpts...)
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger, cleanup, err := bootstrap.SetupLogger(cfg, opts.LogToFile)
	if err != nil {
		return nil, err
	}
	ctx := logging.WithContext(context.Background(), logger)
	logger.Debug().Str("config", mgr.ConfigFile()).Msg("config loaded")

	return &App{
		Config:     cfg,
		Manager:    mgr,
		Theme:      styles.NewTheme(),
		ctx:        ctx,
		logCleanup: cleanup,
	}, nil
}

// Journal opens the visit journal on first use.
func (a *App) Journal() (*bootstrap.Journal, error) {
	if a.journal != nil {
		return a.journal, nil
	}
	j, err := bootstrap.OpenJournal(a.Config)
	if err != nil {
		return nil, err
	}
	a.journal = j
	return j, nil
}

// WatchConfig applies log level changes from the config file until the
// process exits. Timing changes need a restart. SIGHUP forces a reread.
func (a *App) WatchConfig() {
	a.Manager.OnConfigChange(func(cfg *config.Config) {
		bootstrap.ApplyLogLevel(cfg.Logging.Level)
		logging.FromContext(a.ctx).Info().Str("level", cfg.Logging.Level).Msg("config reloaded")
	})
	if err := a.Manager.Watch(); err != nil {
		logging.FromContext(a.ctx).Warn().Err(err).Msg("config watch failed")
	}
	go a.reloadOnHangup()
}

func (a *App) reloadOnHangup() {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	for range hup {
		if err := a.ReloadConfig(); err != nil {
			logging.FromContext(a.ctx).Warn().Err(err).Msg("keeping previous config")
		}
	}
}

// ReloadConfig rereads the config file and applies the log level.
func (a *App) ReloadConfig() error {
	if err := a.Manager.Reload(); err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	bootstrap.ApplyLogLevel(a.Manager.Get().Logging.Level)
	return nil
}

// Close releases all resources.
func (a *App) Close() error {
	var err error
	if a.journal != nil {
		err = a.journal.Close()
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
