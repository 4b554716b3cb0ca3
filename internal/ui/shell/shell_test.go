package shell

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/twinview/internal/cli/styles"
	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/ui/state"
)

type recordingController struct {
	calls []string
	xs    []int
	sizes []entity.Size
	links []string
}

func (r *recordingController) Open(input string)       { r.calls = append(r.calls, "open:"+input) }
func (r *recordingController) CloseSecondary()         { r.calls = append(r.calls, "closeSecondary") }
func (r *recordingController) CloseSession()           { r.calls = append(r.calls, "closeSession") }
func (r *recordingController) Resize(size entity.Size) { r.sizes = append(r.sizes, size) }
func (r *recordingController) FocusGained()            { r.calls = append(r.calls, "focus") }
func (r *recordingController) DividerDown(x int) {
	r.calls = append(r.calls, "down")
	r.xs = append(r.xs, x)
}
func (r *recordingController) DividerMove(x int) {
	r.calls = append(r.calls, "move")
	r.xs = append(r.xs, x)
}
func (r *recordingController) DividerUp()          { r.calls = append(r.calls, "up") }
func (r *recordingController) DividerDoubleClick() { r.calls = append(r.calls, "double") }
func (r *recordingController) FollowLink(target string, newWindow bool) {
	if newWindow {
		target += " (new window)"
	}
	r.links = append(r.links, target)
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newModel(t *testing.T) (Model, *recordingController, *clock) {
	t.Helper()
	ctrl := &recordingController{}
	clk := &clock{now: time.Unix(100, 0)}
	m := New(context.Background(), ctrl, styles.NewTheme(), Config{
		Presets: []entity.Preset{
			{Name: "Docs", URL: "https://docs.example"},
			{Name: "News", URL: "https://news.example", Glyph: "N"},
		},
		Metrics: entity.LayoutMetrics{HeaderHeight: 40, DividerGap: 4},
		Now:     clk.Now,
	})
	return m, ctrl, clk
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func splitSnapshot(ratio float64) state.Snapshot {
	return state.Snapshot{
		HasPrimary:         true,
		IsSplit:            true,
		Ratio:              ratio,
		TransitionsEnabled: true,
		PrimaryURL:         "https://a.example",
		SecondaryURL:       "https://a.example/page2",
	}
}

func TestModel_WindowSizeReportsPixels(t *testing.T) {
	m, ctrl, _ := newModel(t)
	update(t, m, tea.WindowSizeMsg{Width: 150, Height: 51})
	require.Len(t, ctrl.sizes, 1)
	assert.Equal(t, entity.Size{Width: 1200, Height: 800}, ctrl.sizes[0])
}

func TestModel_LandingOpensSelectedPreset(t *testing.T) {
	m, ctrl, _ := newModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"open:https://news.example"}, ctrl.calls)
}

func TestModel_LandingOpensTypedURL(t *testing.T) {
	m, ctrl, _ := newModel(t)
	for _, r := range "a.example" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"open:a.example"}, ctrl.calls)
}

func TestModel_FocusTriggersReconcile(t *testing.T) {
	m, ctrl, _ := newModel(t)
	update(t, m, tea.FocusMsg{})
	assert.Equal(t, []string{"focus"}, ctrl.calls)
}

func TestModel_DragOnDivider(t *testing.T) {
	m, ctrl, _ := newModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 150, Height: 51})
	m = update(t, m, SnapshotMsg{Snapshot: splitSnapshot(0.5)})

	// 1200px at 0.5: primary is 598px wide, so the divider sits in column 74.
	g, ok := m.geometry()
	require.True(t, ok)
	assert.Equal(t, 74, g.divider)

	m = update(t, m, tea.MouseMsg{X: 74, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 45, Y: 10, Action: tea.MouseActionMotion})
	m = update(t, m, tea.MouseMsg{X: 45, Y: 10, Action: tea.MouseActionRelease})
	update(t, m, tea.MouseMsg{X: 45, Y: 10, Action: tea.MouseActionMotion})

	assert.Equal(t, []string{"down", "move", "up"}, ctrl.calls)
	assert.Equal(t, []int{596, 364}, ctrl.xs)
}

func TestModel_PressOffDividerIgnored(t *testing.T) {
	m, ctrl, _ := newModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 150, Height: 51})
	m = update(t, m, SnapshotMsg{Snapshot: splitSnapshot(0.5)})

	update(t, m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Empty(t, ctrl.calls)
}

func TestModel_DoubleClickDivider(t *testing.T) {
	m, ctrl, clk := newModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 150, Height: 51})
	m = update(t, m, SnapshotMsg{Snapshot: splitSnapshot(0.5)})

	press := tea.MouseMsg{X: 74, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 74, Y: 10, Action: tea.MouseActionRelease}
	m = update(t, m, press)
	m = update(t, m, release)
	clk.now = clk.now.Add(150 * time.Millisecond)
	m = update(t, m, press)
	update(t, m, release)

	assert.Equal(t, []string{"down", "up", "double"}, ctrl.calls)
}

func TestModel_SessionKeys(t *testing.T) {
	m, ctrl, _ := newModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 150, Height: 51})
	m = update(t, m, SnapshotMsg{Snapshot: splitSnapshot(0.3)})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'='}})
	update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, []string{"closeSecondary", "double", "closeSession"}, ctrl.calls)
}

func TestModel_FollowLink(t *testing.T) {
	m, ctrl, _ := newModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 150, Height: 51})
	m = update(t, m, SnapshotMsg{Snapshot: state.Snapshot{HasPrimary: true, Ratio: 0.5, TransitionsEnabled: true, PrimaryURL: "https://a.example"}})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	require.True(t, m.linkMode)
	for _, r := range "page2" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.linkMode)
	assert.Equal(t, []string{"https://a.example/page2"}, ctrl.links)
}

func TestModel_ViewShowsBothPanes(t *testing.T) {
	m, _, _ := newModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 150, Height: 51})
	m = update(t, m, SnapshotMsg{Snapshot: splitSnapshot(0.5)})

	view := m.View()
	assert.Contains(t, view, "https://a.example")
	assert.Contains(t, view, "page2")
	assert.Contains(t, view, "┃")
}

func TestModel_ReturnToLandingRefocusesInput(t *testing.T) {
	m, _, _ := newModel(t)
	m = update(t, m, SnapshotMsg{Snapshot: splitSnapshot(0.5)})
	assert.False(t, m.input.Focused())

	m = update(t, m, SnapshotMsg{Snapshot: state.NewStore().Snapshot()})
	assert.True(t, m.input.Focused())
	assert.Contains(t, m.View(), "Docs")
}
