package styles

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// VisitTableColumns returns columns for the visit journal table.
func VisitTableColumns() []table.Column {
	return []table.Column{
		{Title: "When", Width: 19},
		{Title: "Role", Width: 10},
		{Title: "URL", Width: 60},
		{Title: "Session", Width: 8},
	}
}

// CountLabel formats n compactly: 950, 1.2K, 3M.
func CountLabel(n int) string {
	switch {
	case n >= 1000000:
		return trimFloat(float64(n)/1000000) + "M"
	case n >= 1000:
		return trimFloat(float64(n)/1000) + "K"
	default:
		return strconv.Itoa(n)
	}
}

func trimFloat(f float64) string {
	i := int(f * 10)
	if i%10 == 0 {
		return strconv.Itoa(i / 10)
	}
	return strconv.Itoa(i/10) + "." + strconv.Itoa(i%10)
}
