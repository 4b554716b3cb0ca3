// Package main is the twinview entry point.
package main

import (
	"runtime"

	"github.com/bnema/twinview/internal/cli/cmd"
	"github.com/bnema/twinview/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	enableCrashForensics()

	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})
	cmd.SetCoreDumpLogger(logCoreDumpLimits)

	cmd.Execute()
}
