// Package entity defines domain entities for the split-view compositor.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import "fmt"

// Rect is a host-window-relative rectangle in integer pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Size is the content area of the host window.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Normalize clamps negative coordinates and dimensions to zero.
func (r Rect) Normalize() Rect {
	return Rect{
		X:      max(r.X, 0),
		Y:      max(r.Y, 0),
		Width:  max(r.Width, 0),
		Height: max(r.Height, 0),
	}
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("{%d,%d,%d,%d}", r.X, r.Y, r.Width, r.Height)
}

// IsEmpty reports whether the window has no usable area.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}
