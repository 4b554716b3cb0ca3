// Package navigation decides what happens when a surface tries to navigate.
package navigation

import (
	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/domain/url"
)

// Reason explains a Decision.
type Reason string

const (
	ReasonRedirect     Reason = "redirect"
	ReasonNotPrimary   Reason = "not-primary"
	ReasonNoBounds     Reason = "no-bounds"
	ReasonNotWeb       Reason = "not-web"
	ReasonSameDocument Reason = "same-document"
)

// Attempt is a navigation reported by the host for a surface.
type Attempt struct {
	Source     entity.Role
	CurrentURL string
	TargetURL  string
	// NewWindow is true for new top-level context requests (target=_blank,
	// window.open) and false for in-place link follows.
	NewWindow bool
	// Split is true when a secondary already sits right of the primary.
	Split bool
	// DividerGap separates the surfaces while split.
	DividerGap int
}

// SecondaryRequest is the createOrUpdateSecondary call a redirect produces.
type SecondaryRequest struct {
	URL    string
	Bounds entity.Rect
}

// Decision is the outcome of Decide. When Redirect is false the navigation
// proceeds in place.
type Decision struct {
	Redirect bool
	Request  SecondaryRequest
	Reason   Reason
}

// Decide applies the redirection policy. primaryBounds is nil until the
// primary surface has been positioned.
func Decide(primaryBounds *entity.Rect, window entity.Size, attempt Attempt) Decision {
	if attempt.Source != entity.RolePrimary {
		return Decision{Reason: ReasonNotPrimary}
	}
	if primaryBounds == nil {
		return Decision{Reason: ReasonNoBounds}
	}
	if !url.IsWeb(attempt.TargetURL) {
		return Decision{Reason: ReasonNotWeb}
	}
	if !attempt.NewWindow && url.SameDocument(attempt.CurrentURL, attempt.TargetURL) {
		return Decision{Reason: ReasonSameDocument}
	}

	bounds := SecondaryBounds(*primaryBounds, window)
	if attempt.Split {
		bounds = AdjacentBounds(*primaryBounds, window, attempt.DividerGap)
	}
	return Decision{
		Redirect: true,
		Request: SecondaryRequest{
			URL:    attempt.TargetURL,
			Bounds: bounds,
		},
		Reason: ReasonRedirect,
	}
}

// SecondaryBounds places the secondary to the right of the primary's
// midpoint, filling the rest of the window at the primary's height.
func SecondaryBounds(primary entity.Rect, window entity.Size) entity.Rect {
	x := primary.X + primary.Width/2
	return entity.Rect{
		X:      x,
		Y:      primary.Y,
		Width:  window.Width - x,
		Height: primary.Height,
	}.Normalize()
}

// AdjacentBounds places the secondary one divider gap past the primary's
// right edge. Used once the primary has been laid out at a split ratio.
func AdjacentBounds(primary entity.Rect, window entity.Size, gap int) entity.Rect {
	x := primary.Right() + gap
	return entity.Rect{
		X:      x,
		Y:      primary.Y,
		Width:  window.Width - x,
		Height: primary.Height,
	}.Normalize()
}
