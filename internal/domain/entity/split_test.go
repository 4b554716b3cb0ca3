package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampRatio(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"below min", -3, MinRatio},
		{"at min", 0.1, 0.1},
		{"inside", 0.42, 0.42},
		{"at max", 0.9, 0.9},
		{"above max", 1.7, MaxRatio},
		{"nan", math.NaN(), DefaultRatio},
		{"negative infinity", math.Inf(-1), MinRatio},
		{"positive infinity", math.Inf(1), MaxRatio},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampRatio(tt.in))
		})
	}
}

func TestClampRatio_AlwaysInRange(t *testing.T) {
	for r := -2.0; r <= 2.0; r += 0.01 {
		got := ClampRatio(r)
		assert.GreaterOrEqual(t, got, MinRatio)
		assert.LessOrEqual(t, got, MaxRatio)
	}
}

func TestSplitBounds(t *testing.T) {
	metrics := LayoutMetrics{HeaderHeight: 40, DividerGap: 4}
	window := Size{Width: 1200, Height: 800}

	primary, secondary := SplitBounds(window, 0.3, metrics)

	assert.Equal(t, Rect{X: 0, Y: 40, Width: 359, Height: 760}, primary)
	assert.Equal(t, Rect{X: 363, Y: 40, Width: 837, Height: 760}, secondary)
	assert.Equal(t, secondary.X, primary.Right()+metrics.DividerGap)
}

func TestSplitBounds_NoOverlapAcrossRatios(t *testing.T) {
	metrics := LayoutMetrics{HeaderHeight: 40, DividerGap: 4}
	for _, w := range []int{0, 3, 320, 1199, 1920} {
		window := Size{Width: w, Height: 600}
		for r := 0.0; r <= 1.0; r += 0.05 {
			p, s := SplitBounds(window, r, metrics)
			assert.GreaterOrEqual(t, p.Width, 0)
			assert.GreaterOrEqual(t, s.Width, 0)
			assert.Equal(t, p.Right()+metrics.DividerGap, s.X)
		}
	}
}

func TestFullBounds(t *testing.T) {
	got := FullBounds(Size{Width: 1200, Height: 800}, LayoutMetrics{HeaderHeight: 40, DividerGap: 4})
	assert.Equal(t, Rect{X: 0, Y: 40, Width: 1200, Height: 760}, got)
}
