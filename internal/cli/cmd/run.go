package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/twinview/internal/bootstrap"
	"github.com/bnema/twinview/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run [url]",
	Short: "Run the backend and the terminal shell together",
	Long: `Run the compositor and the terminal shell in one process.

If a URL is provided, it opens in the primary surface as soon as the
terminal size is known. Otherwise the landing screen lists the presets.

Examples:
  twinview run                  # Landing screen
  twinview run example.com      # Open example.com`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationTerminal: "true"},
	RunE:        runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx, stop := signalContext(app.Ctx())
	defer stop()
	log := logging.FromContext(ctx)

	app.WatchConfig()

	journal, err := app.Journal()
	if err != nil {
		return err
	}
	platform := bootstrap.NewPlatform(ctx, app.Config)
	local, err := bootstrap.NewLocal(ctx, bootstrap.LocalInput{
		Config:   app.Config,
		Platform: platform,
		Journal:  journal,
	})
	if err != nil {
		return fmt.Errorf("wire runtime: %w", err)
	}

	term := newTerminalShell(ctx, local.UI, app.Theme, app.Config)
	if len(args) == 1 {
		openWhenSized(local.UI, args[0])
	}

	log.Info().Str("host", platform.Name).Str("version", app.BuildInfo.Version).Msg("twinview starting")
	if err := local.Run(ctx, term.Run, term.Relay); err != nil {
		return err
	}
	log.Info().Int64("dropped_visits", journal.Recorder.Dropped()).Msg("twinview stopped")
	return nil
}
