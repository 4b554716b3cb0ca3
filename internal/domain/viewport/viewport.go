// Package viewport picks an emulated device profile for a surface width.
package viewport

import "github.com/bnema/twinview/internal/domain/entity"

// Default breakpoints in pixels. A width at or below the breakpoint selects
// the narrower profile.
const (
	DefaultTabletMaxWidth = 1024
	DefaultMobileMaxWidth = 600
)

// Breakpoints configures profile selection.
type Breakpoints struct {
	TabletMaxWidth int
	MobileMaxWidth int
}

// DefaultBreakpoints returns the stock breakpoints.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{
		TabletMaxWidth: DefaultTabletMaxWidth,
		MobileMaxWidth: DefaultMobileMaxWidth,
	}
}

// Profile is what the host applies to emulate a device class.
type Profile struct {
	Name      entity.ViewportProfile
	UserAgent string
	// CSS is injected as a user stylesheet; empty for desktop.
	CSS string
}

const (
	desktopUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15"
	tabletUA  = "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	mobileUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

	tabletCSS = `html { -webkit-text-size-adjust: 100%; } body { overflow-x: hidden; }`
	mobileCSS = `html { -webkit-text-size-adjust: 100%; touch-action: manipulation; } body { overflow-x: hidden; } img, video, iframe { max-width: 100%; height: auto; }`
)

var profiles = map[entity.ViewportProfile]Profile{
	entity.ViewportDesktop: {Name: entity.ViewportDesktop, UserAgent: desktopUA},
	entity.ViewportTablet:  {Name: entity.ViewportTablet, UserAgent: tabletUA, CSS: tabletCSS},
	entity.ViewportMobile:  {Name: entity.ViewportMobile, UserAgent: mobileUA, CSS: mobileCSS},
}

// Select returns the profile name for a surface width.
func (b Breakpoints) Select(width int) entity.ViewportProfile {
	switch {
	case width <= b.MobileMaxWidth:
		return entity.ViewportMobile
	case width <= b.TabletMaxWidth:
		return entity.ViewportTablet
	default:
		return entity.ViewportDesktop
	}
}

// Select uses the default breakpoints.
func Select(width int) entity.ViewportProfile {
	return DefaultBreakpoints().Select(width)
}

// Lookup returns the profile definition for name.
func Lookup(name entity.ViewportProfile) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}
