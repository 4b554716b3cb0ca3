package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/twinview/internal/bootstrap"
	"github.com/bnema/twinview/internal/ipc"
	"github.com/bnema/twinview/internal/ipc/wsbridge"
	"github.com/bnema/twinview/internal/logging"
)

var attachAddr string

var attachCmd = &cobra.Command{
	Use:   "attach [url]",
	Short: "Attach the terminal shell to a running backend",
	Long: `Connect the terminal shell to a backend started with 'twinview serve'.

Examples:
  twinview attach                             # Connect to server.listen
  twinview attach --addr ws://10.0.0.2:7700   # Connect elsewhere
  twinview attach example.com                 # Connect and open a site`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationTerminal: "true"},
	RunE:        runAttach,
}

func init() {
	rootCmd.AddCommand(attachCmd)
	attachCmd.Flags().StringVar(&attachAddr, "addr", "", "backend address (default server.listen)")
}

func runAttach(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := attachAddr
	if addr == "" {
		addr = "ws://" + app.Config.Server.Listen
	}

	ctx, stop := signalContext(app.Ctx())
	defer stop()
	app.WatchConfig()

	conn, err := wsbridge.Dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("attach to %s: %w", addr, err)
	}
	client := ipc.NewClient(conn)
	defer func() { _ = client.Close() }()

	ui, err := bootstrap.NewUI(ctx, bootstrap.UIInput{Config: app.Config, Client: client})
	if err != nil {
		return err
	}
	term := newTerminalShell(ctx, ui, app.Theme, app.Config)
	if len(args) == 1 {
		openWhenSized(ui, args[0])
	}

	logging.FromContext(ctx).Info().Str("addr", addr).Msg("attached to backend")
	return bootstrap.RunAll(ctx, client.Run, ui.Run, term.Run, term.Relay)
}
