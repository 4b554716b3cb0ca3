package entity

import "math"

// Split ratio bounds. No operation may store a ratio outside this range.
const (
	MinRatio     = 0.1
	MaxRatio     = 0.9
	DefaultRatio = 0.5
)

// ClampRatio restricts a split ratio to [MinRatio, MaxRatio].
// NaN collapses to DefaultRatio.
func ClampRatio(ratio float64) float64 {
	if math.IsNaN(ratio) {
		return DefaultRatio
	}
	if ratio < MinRatio {
		return MinRatio
	}
	if ratio > MaxRatio {
		return MaxRatio
	}
	return ratio
}

// SplitState is the replicated split model. The backend holds the
// authoritative copy; the UI holds a cache of it.
type SplitState struct {
	IsSplit    bool    `json:"isSplit"`
	Ratio      float64 `json:"ratio"`
	WindowSize Size    `json:"windowSize"`
}

// SplitStatus is the authoritative snapshot returned by the compositor.
type SplitStatus struct {
	IsSplit      bool   `json:"isSplit"`
	HasSecondary bool   `json:"hasSecondary"`
	PrimaryURL   string `json:"primaryUrl"`
	SecondaryURL string `json:"secondaryUrl"`
}

// LayoutMetrics are the fixed chrome dimensions subtracted from the window.
type LayoutMetrics struct {
	HeaderHeight int
	DividerGap   int
}

// SplitBounds derives the primary and secondary rectangles for a ratio.
// The primary takes ratio of the width left after the divider gap; the
// secondary starts right after the gap and takes the rest.
func SplitBounds(window Size, ratio float64, m LayoutMetrics) (primary, secondary Rect) {
	ratio = ClampRatio(ratio)
	height := max(window.Height-m.HeaderHeight, 0)
	available := max(window.Width-m.DividerGap, 0)

	primaryWidth := int(math.Round(float64(available) * ratio))
	secondaryX := primaryWidth + m.DividerGap

	primary = Rect{X: 0, Y: m.HeaderHeight, Width: primaryWidth, Height: height}
	secondary = Rect{X: secondaryX, Y: m.HeaderHeight, Width: max(window.Width-secondaryX, 0), Height: height}
	return primary, secondary
}

// FullBounds is the single-surface layout used when not split.
func FullBounds(window Size, m LayoutMetrics) Rect {
	return Rect{
		X:      0,
		Y:      m.HeaderHeight,
		Width:  max(window.Width, 0),
		Height: max(window.Height-m.HeaderHeight, 0),
	}
}
