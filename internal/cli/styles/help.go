package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// LandingKeyMap defines keybindings for the preset picker.
type LandingKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k LandingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k LandingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Open, k.Quit}}
}

// DefaultLandingKeyMap returns the default landing keybindings.
func DefaultLandingKeyMap() LandingKeyMap {
	return LandingKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "prev preset"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next preset"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// SessionKeyMap defines keybindings while surfaces are shown.
type SessionKeyMap struct {
	FollowLink     key.Binding
	OpenNewWindow  key.Binding
	CloseSecondary key.Binding
	ResetRatio     key.Binding
	Back           key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k SessionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FollowLink, k.CloseSecondary, k.Back, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k SessionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FollowLink, k.OpenNewWindow},
		{k.CloseSecondary, k.ResetRatio},
		{k.Back, k.Help, k.Quit},
	}
}

// DefaultSessionKeyMap returns the default session keybindings.
func DefaultSessionKeyMap() SessionKeyMap {
	return SessionKeyMap{
		FollowLink: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "follow link"),
		),
		OpenNewWindow: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "link in new window"),
		),
		CloseSecondary: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close secondary"),
		),
		ResetRatio: key.NewBinding(
			key.WithKeys("="),
			key.WithHelp("=", "even split"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryKeyMap defines keybindings for the history table.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultHistoryKeyMap returns the default history keybindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
