// Package layout keeps the backend's surface bounds in step with the
// placeholder regions the UI draws.
package layout

import (
	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/ui/state"
)

// Measurer reports the on-screen rectangle of a surface placeholder.
// ok is false when the placeholder is not currently laid out.
type Measurer interface {
	Measure(role entity.Role) (rect entity.Rect, ok bool)
}

// Placeholders computes placeholder rectangles for a snapshot. The primary
// fills the content area unless split; the secondary exists only when split.
func Placeholders(snap state.Snapshot, metrics entity.LayoutMetrics) (primary, secondary entity.Rect, split bool) {
	if !snap.IsSplit {
		return entity.FullBounds(snap.WindowSize, metrics), entity.Rect{}, false
	}
	primary, secondary = entity.SplitBounds(snap.WindowSize, snap.Ratio, metrics)
	return primary, secondary, true
}

// StoreMeasurer measures placeholders from the UI store, the way the shell
// lays them out.
type StoreMeasurer struct {
	Store   *state.Store
	Metrics entity.LayoutMetrics
}

func (m StoreMeasurer) Measure(role entity.Role) (entity.Rect, bool) {
	snap := m.Store.Snapshot()
	if !snap.HasPrimary || snap.WindowSize.IsEmpty() {
		return entity.Rect{}, false
	}
	primary, secondary, split := Placeholders(snap, m.Metrics)
	switch role {
	case entity.RolePrimary:
		return primary, true
	case entity.RoleSecondary:
		return secondary, split
	default:
		return entity.Rect{}, false
	}
}
