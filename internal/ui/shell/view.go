package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/twinview/internal/domain/entity"
	urlutil "github.com/bnema/twinview/internal/domain/url"
	"github.com/bnema/twinview/internal/domain/viewport"
	"github.com/bnema/twinview/internal/ui/layout"
)

// geometry is the placeholder layout in terminal cells.
type geometry struct {
	top     int
	height  int
	primary int
	divider int
	second  int
	split   bool
}

func (m Model) geometry() (geometry, bool) {
	snap := m.snap
	snap.WindowSize = m.windowSize()
	if snap.WindowSize.IsEmpty() {
		return geometry{}, false
	}
	primary, _, split := layout.Placeholders(snap, m.cfg.Metrics)

	g := geometry{
		top:    primary.Y / m.cfg.CellHeight,
		height: primary.Height / m.cfg.CellHeight,
		split:  split,
	}
	if !split {
		g.primary = m.cols
		return g, g.height > 0
	}
	g.divider = primary.Right() / m.cfg.CellWidth
	g.primary = g.divider
	g.second = max(m.cols-g.divider-1, 0)
	return g, g.height > 0
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.snap.HasPrimary {
		return m.landingView()
	}
	return m.sessionView()
}

func (m Model) landingView() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("twinview"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtle.Render("Pick a site to open. Links it opens land beside it."))
	b.WriteString("\n\n")

	for i, p := range m.cfg.Presets {
		line := fmt.Sprintf("%s  %s  %s", glyphOrDot(p.Glyph), p.Name, m.theme.Subtle.Render(p.URL))
		if i == m.selected {
			b.WriteString(m.theme.ListItemSelected.Render(line))
		} else {
			b.WriteString(m.theme.ListItem.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.InputBox(m.input.View(), m.input.Focused()))
	b.WriteString("\n")
	if m.snap.Notice != "" {
		b.WriteString(m.theme.WarningStyle.Render(m.snap.Notice))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.landingKeys))
	return b.String()
}

func (m Model) sessionView() string {
	g, ok := m.geometry()
	if !ok {
		return m.theme.Subtle.Render("window too small")
	}

	header := m.headerView(g.top)

	var body string
	if !g.split {
		body = m.paneView(entity.RolePrimary, m.snap.PrimaryURL, g.primary, g.height)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.paneView(entity.RolePrimary, m.snap.PrimaryURL, g.primary, g.height),
			m.dividerView(g.height),
			m.paneView(entity.RoleSecondary, m.snap.SecondaryURL, g.second, g.height),
		)
	}

	footer := m.help.View(m.sessionKeys)
	if m.linkMode {
		footer = m.linkInput.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) headerView(rows int) string {
	title := m.theme.Title.Render("twinview")
	status := m.theme.BadgeMuted.Render("single")
	if m.snap.IsSplit {
		status = m.theme.Badge.Render(fmt.Sprintf("split %.0f%%", m.snap.Ratio*100))
	}
	lines := []string{m.theme.Header.Width(m.cols).Render(title + " " + status)}
	if m.snap.Notice != "" {
		lines = append(lines, m.theme.Subtle.Render(m.snap.Notice))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines[:max(rows, 0)], "\n")
}

func (m Model) paneView(role entity.Role, url string, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}
	style := m.theme.Pane
	if role == entity.RolePrimary {
		style = m.theme.PaneActive
	}
	style = style.Width(width - 2).Height(height - 2)

	if m.resizing() {
		// Live content is covered during a drag; mirror the overlay glyph.
		glyph := m.theme.Overlay.Render(" " + urlutil.Glyph(url) + " ")
		return style.Align(lipgloss.Center, lipgloss.Center).Render(glyph)
	}

	profile := viewport.Select(width * m.cfg.CellWidth)
	lines := []string{
		m.theme.Highlight.Render(string(role)) + " " + m.theme.BadgeMuted.Render(string(profile)),
		m.theme.Normal.Render(truncate(url, width-4)),
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) dividerView(height int) string {
	style := m.theme.Divider
	if m.resizing() {
		style = m.theme.DividerActive
	}
	return style.Render(strings.TrimSuffix(strings.Repeat("┃\n", height), "\n"))
}

// resizing reports a drag in progress, locally or as seen by the UI state.
func (m Model) resizing() bool {
	return m.dragging || !m.snap.TransitionsEnabled
}

func glyphOrDot(glyph string) string {
	if glyph == "" {
		return "•"
	}
	return glyph
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
