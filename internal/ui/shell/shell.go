// Package shell is the terminal front end: a preset picker on landing and a
// split view of the two surfaces with a draggable divider.
package shell

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/twinview/internal/cli/styles"
	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/logging"
	"github.com/bnema/twinview/internal/ui/state"
)

// Controller receives user intent. Implementations post onto the UI loop and
// must not block.
type Controller interface {
	Open(input string)
	CloseSecondary()
	CloseSession()
	Resize(size entity.Size)
	FocusGained()
	DividerDown(x int)
	DividerMove(x int)
	DividerUp()
	DividerDoubleClick()
	FollowLink(target string, newWindow bool)
}

// SnapshotMsg delivers a new UI state to the program.
type SnapshotMsg struct {
	Snapshot state.Snapshot
}

// Config controls geometry and input timing.
type Config struct {
	Presets     []entity.Preset
	CellWidth   int
	CellHeight  int
	Metrics     entity.LayoutMetrics
	DoubleClick time.Duration
	// Now is the clock used for double-click detection.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.CellWidth <= 0 {
		c.CellWidth = 8
	}
	if c.CellHeight <= 0 {
		c.CellHeight = 16
	}
	if c.DoubleClick <= 0 {
		c.DoubleClick = 400 * time.Millisecond
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Model is the Bubble Tea model for the shell.
type Model struct {
	ctx   context.Context
	ctrl  Controller
	cfg   Config
	theme *styles.Theme

	landingKeys styles.LandingKeyMap
	sessionKeys styles.SessionKeyMap
	help        help.Model
	input       textinput.Model
	linkInput   textinput.Model

	snap      state.Snapshot
	selected  int
	cols      int
	rows      int
	showHelp  bool
	linkMode  bool
	newWindow bool
	dragging  bool
	lastPress time.Time
}

// New creates the shell model.
func New(ctx context.Context, ctrl Controller, theme *styles.Theme, cfg Config) Model {
	logging.FromContext(ctx).Debug().Msg("creating shell model")

	input := styles.NewURLInput(theme)
	input.Focus()

	return Model{
		ctx:         ctx,
		ctrl:        ctrl,
		cfg:         cfg.withDefaults(),
		theme:       theme,
		landingKeys: styles.DefaultLandingKeyMap(),
		sessionKeys: styles.DefaultSessionKeyMap(),
		help:        styles.NewStyledHelp(theme),
		input:       input,
		linkInput:   styles.NewLinkInput(theme),
		snap:        state.NewStore().Snapshot(),
		cols:        80,
		rows:        24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.FocusMsg:
		m.ctrl.FocusGained()
		return m, nil
	case SnapshotMsg:
		return m.handleSnapshot(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if m.snap.HasPrimary {
			return m.handleSessionKey(msg)
		}
		return m.handleLandingKey(msg)
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.cols = msg.Width
	m.rows = msg.Height
	m.help.Width = msg.Width
	m.input.Width = max(msg.Width-10, 10)
	m.linkInput.Width = max(msg.Width-10, 10)
	m.ctrl.Resize(m.windowSize())
	return m, nil
}

// windowSize is the pixel size of the area the surfaces are laid out in. The
// last terminal row holds the help line.
func (m Model) windowSize() entity.Size {
	rows := max(m.rows-1, 0)
	return entity.Size{Width: m.cols * m.cfg.CellWidth, Height: rows * m.cfg.CellHeight}
}

func (m Model) handleSnapshot(msg SnapshotMsg) (tea.Model, tea.Cmd) {
	wasSession := m.snap.HasPrimary
	m.snap = msg.Snapshot

	switch {
	case wasSession && !m.snap.HasPrimary:
		m.linkMode = false
		m.linkInput.Blur()
		m.input.Reset()
		cmd := m.input.Focus()
		return m, cmd
	case !wasSession && m.snap.HasPrimary:
		m.input.Blur()
	}
	return m, nil
}
