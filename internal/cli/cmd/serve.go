package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/twinview/internal/bootstrap"
	"github.com/bnema/twinview/internal/ipc/wsbridge"
	"github.com/bnema/twinview/internal/logging"
)

var (
	serveListen string
	serveWidth  int
	serveHeight int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the compositor backend",
	Long: `Run the compositor backend and accept shells over WebSocket.

Attach a terminal shell with 'twinview attach'.

Examples:
  twinview serve                          # Listen on server.listen
  twinview serve --listen 127.0.0.1:9000  # Override the address
  twinview serve --width 1600 --height 900`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "address to listen on (default server.listen)")
	serveCmd.Flags().IntVar(&serveWidth, "width", 0, "host window width in pixels (default window.width)")
	serveCmd.Flags().IntVar(&serveHeight, "height", 0, "host window height in pixels (default window.height)")
}

func runServe(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	cfg := app.Config
	if serveListen != "" {
		cfg.Server.Listen = serveListen
	}
	if cfg.Server.Listen == "" {
		return errors.New("no listen address: set server.listen or pass --listen")
	}
	if serveWidth > 0 {
		cfg.Window.Width = serveWidth
	}
	if serveHeight > 0 {
		cfg.Window.Height = serveHeight
	}

	ctx, stop := signalContext(app.Ctx())
	defer stop()
	app.WatchConfig()

	journal, err := app.Journal()
	if err != nil {
		return err
	}
	platform := bootstrap.NewPlatform(ctx, cfg)
	backend, err := bootstrap.NewBackend(ctx, bootstrap.BackendInput{
		Config:    cfg,
		Host:      platform.Host,
		Loop:      platform.Loop,
		Simulator: platform.Simulator,
		Visits:    journal.Recorder,
	})
	if err != nil {
		return fmt.Errorf("wire backend: %w", err)
	}

	logging.FromContext(ctx).Info().
		Str("host", platform.Name).
		Str("listen", cfg.Server.Listen).
		Msg("backend starting")

	err = bootstrap.RunAll(ctx,
		backend.Run,
		journal.Run,
		func(ctx context.Context) error {
			return wsbridge.ListenAndServe(ctx, cfg.Server.Listen, backend.Server)
		},
	)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
