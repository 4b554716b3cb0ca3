package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/twinview/internal/logging"
)

func (m Model) handleLandingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.landingKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.landingKeys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.landingKeys.Down):
		if m.selected < len(m.cfg.Presets)-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.landingKeys.Open):
		target := strings.TrimSpace(m.input.Value())
		if target == "" && m.selected < len(m.cfg.Presets) {
			target = m.cfg.Presets[m.selected].URL
		}
		if target == "" {
			return m, nil
		}
		logging.FromContext(m.ctx).Debug().Str("target", target).Msg("opening session")
		m.ctrl.Open(target)
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSessionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.linkMode {
		return m.handleLinkKey(msg)
	}

	switch {
	case key.Matches(msg, m.sessionKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.sessionKeys.Back):
		m.ctrl.CloseSession()
	case key.Matches(msg, m.sessionKeys.CloseSecondary):
		if m.snap.IsSplit {
			m.ctrl.CloseSecondary()
		}
	case key.Matches(msg, m.sessionKeys.ResetRatio):
		if m.snap.IsSplit {
			m.ctrl.DividerDoubleClick()
		}
	case key.Matches(msg, m.sessionKeys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.sessionKeys.FollowLink), key.Matches(msg, m.sessionKeys.OpenNewWindow):
		m.linkMode = true
		m.newWindow = key.Matches(msg, m.sessionKeys.OpenNewWindow)
		m.linkInput.SetValue(strings.TrimSuffix(m.snap.PrimaryURL, "/") + "/")
		m.linkInput.CursorEnd()
		cmd := m.linkInput.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleLinkKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.linkMode = false
		m.linkInput.Blur()
		return m, nil
	case tea.KeyEnter:
		target := strings.TrimSpace(m.linkInput.Value())
		m.linkMode = false
		m.linkInput.Blur()
		if target != "" {
			m.ctrl.FollowLink(target, m.newWindow)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.linkInput, cmd = m.linkInput.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.snap.HasPrimary {
		return m, nil
	}
	x := m.pixelX(msg.X)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.onDivider(msg.X, msg.Y) {
			return m, nil
		}
		now := m.cfg.Now()
		if !m.lastPress.IsZero() && now.Sub(m.lastPress) <= m.cfg.DoubleClick {
			m.lastPress = now.Add(-2 * m.cfg.DoubleClick)
			m.ctrl.DividerDoubleClick()
			return m, nil
		}
		m.lastPress = now
		m.dragging = true
		m.ctrl.DividerDown(x)
	case tea.MouseActionMotion:
		if m.dragging {
			m.ctrl.DividerMove(x)
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.ctrl.DividerUp()
		}
	}
	return m, nil
}

// pixelX maps a terminal column to the pixel at its center.
func (m Model) pixelX(col int) int {
	return col*m.cfg.CellWidth + m.cfg.CellWidth/2
}

func (m Model) onDivider(col, row int) bool {
	g, ok := m.geometry()
	if !ok || !g.split {
		return false
	}
	if row < g.top || row >= g.top+g.height {
		return false
	}
	return col >= g.divider-1 && col <= g.divider+1
}
