package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/twinview/internal/bootstrap"
	"github.com/bnema/twinview/internal/cli/styles"
	"github.com/bnema/twinview/internal/infrastructure/config"
	"github.com/bnema/twinview/internal/ui/shell"
	"github.com/bnema/twinview/internal/ui/state"
)

// signalContext ends on SIGINT or SIGTERM.
func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func shellConfig(cfg *config.Config) shell.Config {
	return shell.Config{
		Presets:     cfg.Presets,
		CellWidth:   cfg.Terminal.CellWidth,
		CellHeight:  cfg.Terminal.CellHeight,
		Metrics:     cfg.Layout.Metrics(),
		DoubleClick: time.Duration(cfg.Drag.DoubleClickMs) * time.Millisecond,
	}
}

// terminalShell is the Bubble Tea program bound to a UI.
type terminalShell struct {
	program *tea.Program
	relay   *bootstrap.SnapshotRelay
}

func newTerminalShell(ctx context.Context, ui *bootstrap.UI, theme *styles.Theme, cfg *config.Config) *terminalShell {
	model := shell.New(ctx, ui, theme, shellConfig(cfg))
	s := &terminalShell{
		program: tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()),
		relay:   bootstrap.NewSnapshotRelay(),
	}
	ui.Subscribe(s.relay.Push)
	return s
}

// Run runs the program until the user quits or ctx ends.
func (s *terminalShell) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, s.program.Quit)
	defer stop()
	_, err := s.program.Run()
	return err
}

// Relay forwards UI snapshots to the program until ctx ends.
func (s *terminalShell) Relay(ctx context.Context) error {
	return s.relay.Run(ctx, func(snap state.Snapshot) {
		s.program.Send(shell.SnapshotMsg{Snapshot: snap})
	})
}

// openWhenSized opens target once the terminal size is known, so the
// primary surface gets real bounds.
func openWhenSized(ui *bootstrap.UI, target string) {
	if target == "" {
		return
	}
	opened := false
	ui.Subscribe(func(snap state.Snapshot) {
		if opened || snap.WindowSize.IsEmpty() {
			return
		}
		opened = true
		ui.Open(target)
	})
}
