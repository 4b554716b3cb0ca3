package bootstrap

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/twinview/internal/infrastructure/config"
	"github.com/bnema/twinview/internal/logging"
)

// LogFileName is the active log file under the log directory.
const LogFileName = "twinview.log"

// SetupLogger builds the process logger. When toFile is set, or the config
// asks for it, output goes to a rotating file instead of stderr so the
// terminal shell stays clean. The returned cleanup closes the file.
//
// The logger itself accepts every level; the configured level is applied
// globally so ApplyLogLevel can change it at runtime.
func SetupLogger(cfg *config.Config, toFile bool) (zerolog.Logger, func(), error) {
	ApplyLogLevel(cfg.Logging.Level)
	lc := logging.DefaultConfig()
	lc.Level = zerolog.TraceLevel
	lc.Format = string(cfg.Logging.Format)

	if !toFile && !cfg.Logging.File {
		return logging.New(lc), func() {}, nil
	}

	w, err := logging.NewFileWriter(cfg.Logging.Dir, LogFileName, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}
	lc.Output = w
	return logging.New(lc), func() { _ = w.Close() }, nil
}

// ApplyLogLevel changes the level of every logger built by SetupLogger.
func ApplyLogLevel(level string) {
	zerolog.SetGlobalLevel(logging.ParseLevel(level))
}
