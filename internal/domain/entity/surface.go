package entity

import (
	"fmt"
	"time"
)

// Role identifies which side of the split a surface occupies.
type Role string

const (
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePrimary || r == RoleSecondary
}

// ParseRole converts a wire value into a Role.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", fmt.Errorf("unknown surface role %q", s)
	}
	return role, nil
}

// RegionID identifies a host region backing a surface or overlay.
type RegionID string

// Surface is a logical content-rendering region owned by the compositor.
type Surface struct {
	Role     Role
	Region   RegionID
	URL      string
	Bounds   Rect
	Viewport ViewportProfile
	// HasBounds is false until the surface has been positioned once.
	HasBounds bool
	CreatedAt time.Time
}

// Overlay masks a surface while the divider is being dragged.
type Overlay struct {
	Role   Role
	Region RegionID
	Bounds Rect
	Glyph  string
}

// ViewportProfile names the emulated device class applied to a surface.
type ViewportProfile string

const (
	ViewportNone    ViewportProfile = ""
	ViewportDesktop ViewportProfile = "desktop"
	ViewportTablet  ViewportProfile = "tablet"
	ViewportMobile  ViewportProfile = "mobile"
)
