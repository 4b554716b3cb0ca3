// Package cmd provides Cobra CLI commands for twinview.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/twinview/internal/cli"
	"github.com/bnema/twinview/internal/domain/build"
)

// annotationTerminal marks commands that own the terminal; their logs go to
// the log file.
const annotationTerminal = "twinview/terminal"

var (
	app           *cli.App
	buildInfo     build.Info
	configFile    string
	coreDumpLimit func(context.Context)
	rootCmd       = &cobra.Command{
		Use:   "twinview",
		Short: "Split-view web surfaces driven from the terminal",
		Long: `Twinview - two web surfaces side by side, driven from the terminal.

Open a site in the primary surface. Links that would open a new window land
in a secondary surface beside it instead. Drag the divider to resize the
split, close the secondary to go back to a single surface.

The backend owns the surfaces; the terminal shell owns the layout. They run
in one process with 'twinview run', or apart with 'twinview serve' and
'twinview attach'.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{
				ConfigFile: configFile,
				LogToFile:  cmd.Annotations[annotationTerminal] == "true",
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			if coreDumpLimit != nil {
				coreDumpLimit(app.Ctx())
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/twinview/config.toml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

// SetCoreDumpLogger registers a hook that logs the core dump limits once the
// logger exists.
func SetCoreDumpLogger(fn func(context.Context)) {
	coreDumpLimit = fn
}
