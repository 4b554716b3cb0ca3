// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/twinview/internal/application/usecase"
	"github.com/bnema/twinview/internal/cli/styles"
	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/logging"
)

const timeLayout = "2006-01-02 15:04:05"

// VisitLister reads the visit journal.
type VisitLister interface {
	List(ctx context.Context, input usecase.ListInput) ([]*entity.Visit, error)
}

type visitsLoadedMsg struct {
	visits []*entity.Visit
	err    error
}

// HistoryModel is the Bubble Tea model for the visit table.
type HistoryModel struct {
	table table.Model
	help  help.Model
	keys  styles.HistoryKeyMap

	visits []*entity.Visit
	loaded bool
	width  int
	height int
	err    error

	ctx    context.Context
	lister VisitLister
	input  usecase.ListInput
	theme  *styles.Theme
}

// NewHistoryModel creates a history table model.
func NewHistoryModel(ctx context.Context, theme *styles.Theme, lister VisitLister, input usecase.ListInput) HistoryModel {
	logging.FromContext(ctx).Debug().Str("session", input.SessionID).Int("limit", input.Limit).Msg("creating history model")

	return HistoryModel{
		table:  styles.NewStyledTable(theme, styles.VisitTableColumns(), nil, 80, 20),
		help:   styles.NewStyledHelp(theme),
		keys:   styles.DefaultHistoryKeyMap(),
		ctx:    ctx,
		lister: lister,
		input:  input,
		theme:  theme,
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return m.load
}

func (m HistoryModel) load() tea.Msg {
	visits, err := m.lister.List(m.ctx, m.input)
	return visitsLoadedMsg{visits: visits, err: err}
}

// Update implements tea.Model.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case visitsLoadedMsg:
		m.loaded = true
		m.err = msg.err
		m.visits = msg.visits
		m.table.SetRows(VisitRows(msg.visits))
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width)
		// Title, count line and help.
		m.table.SetHeight(max(msg.Height-4, 3))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m HistoryModel) View() string {
	t := m.theme
	title := t.Title.Render(styles.IconSplit + " Visit journal")

	var body string
	switch {
	case m.err != nil:
		body = t.ErrorStyle.Render(m.err.Error())
	case !m.loaded:
		body = t.Subtle.Render("loading...")
	case len(m.visits) == 0:
		body = t.Subtle.Render("No visits recorded yet.")
	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			t.Subtle.Render(styles.CountLabel(len(m.visits))+" visits"),
			m.table.View(),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, body, m.help.View(m.keys))
}

// Err returns the load error, if any.
func (m HistoryModel) Err() error {
	return m.err
}

// VisitRows converts visits to table rows.
func VisitRows(visits []*entity.Visit) []table.Row {
	rows := make([]table.Row, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, table.Row{
			v.VisitedAt.Local().Format(timeLayout),
			string(v.Role),
			v.URL,
			shortSession(v.SessionID),
		})
	}
	return rows
}

func shortSession(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
