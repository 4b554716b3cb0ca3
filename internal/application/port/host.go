// Package port defines application-layer interfaces for external capabilities.
// Ports abstract the platform (GTK, headless, transport) so the compositor
// can run against any host that can place and load content regions.
package port

import (
	"context"

	"github.com/bnema/twinview/internal/domain/entity"
)

// RegionKind distinguishes content regions from overlay placeholders.
type RegionKind int

const (
	// RegionContent renders arbitrary web content.
	RegionContent RegionKind = iota
	// RegionOverlay is an input-inert placeholder shown over content.
	RegionOverlay
)

func (k RegionKind) String() string {
	switch k {
	case RegionContent:
		return "content"
	case RegionOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// RegionSpec describes a region to create.
type RegionSpec struct {
	Kind RegionKind
	Role entity.Role
	// Glyph is drawn centered on overlay regions.
	Glyph string
}

// NavigationRequest is reported by the host before a content region navigates.
type NavigationRequest struct {
	Region     entity.RegionID
	CurrentURL string
	TargetURL  string
	// NewWindow is set for popup / new top-level context requests.
	NewWindow bool
}

// NavigationVerdict tells the host whether to let a navigation proceed.
type NavigationVerdict int

const (
	NavigationAllow NavigationVerdict = iota
	NavigationCancel
)

// NavigationHandler decides a NavigationRequest. Hosts invoke it on the
// loop that owns the compositor.
type NavigationHandler func(req NavigationRequest) NavigationVerdict

// CommitHandler is told the URL a content region committed to, whether the
// load came from LoadURL or an in-page navigation.
type CommitHandler func(id entity.RegionID, url string)

// SurfaceHost is the platform API the compositor drives.
// Every method is called from the compositor's loop.
type SurfaceHost interface {
	// WindowAvailable reports whether the main window exists.
	WindowAvailable() bool
	// WindowSize returns the content area of the main window.
	WindowSize() entity.Size

	CreateRegion(ctx context.Context, spec RegionSpec) (entity.RegionID, error)
	Attach(ctx context.Context, id entity.RegionID) error
	Detach(ctx context.Context, id entity.RegionID) error
	Destroy(ctx context.Context, id entity.RegionID) error
	SetBounds(ctx context.Context, id entity.RegionID, bounds entity.Rect) error

	LoadURL(ctx context.Context, id entity.RegionID, url string) error
	SetUserAgent(ctx context.Context, id entity.RegionID, userAgent string) error
	InjectCSS(ctx context.Context, id entity.RegionID, css string) error

	// SetNavigationHandler arms the navigation hook for a region. A nil
	// handler disarms it.
	SetNavigationHandler(id entity.RegionID, handler NavigationHandler)
	// SetCommitHandler registers the host-wide commit callback. Hosts invoke
	// it on the loop that owns the compositor.
	SetCommitHandler(handler CommitHandler)
}
