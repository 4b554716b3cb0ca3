package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PathEntry is one labelled location shown by the config renderer.
type PathEntry struct {
	Icon   string
	Label  string
	Path   string
	Exists bool
}

// ConfigRenderer renders configuration output for the CLI.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPaths lists the files twinview reads and writes.
func (r *ConfigRenderer) RenderPaths(entries []PathEntry) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	labelWidth := 0
	for _, e := range entries {
		labelWidth = max(labelWidth, len(e.Label))
	}
	label := r.theme.Subtle.Width(labelWidth + 1)

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		status := r.theme.SuccessStyle.Render(IconCheck)
		if !e.Exists {
			status = r.theme.WarningStyle.Render(IconX)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			iconStyle.Render(e.Icon), label.Render(e.Label), r.theme.Normal.Render(e.Path), status))
	}
	return strings.Join(lines, "\n")
}

// RenderSchemaWritten confirms a schema file was generated.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	return fmt.Sprintf("%s %s %s",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Normal.Render("Schema written to"),
		r.theme.Highlight.Render(path))
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %s", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}
