package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/twinview/internal/domain/entity"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		width int
		want  entity.ViewportProfile
	}{
		{1920, entity.ViewportDesktop},
		{1025, entity.ViewportDesktop},
		{1024, entity.ViewportTablet},
		{601, entity.ViewportTablet},
		{600, entity.ViewportMobile},
		{0, entity.ViewportMobile},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Select(tt.width), "width %d", tt.width)
	}
}

func TestBreakpoints_Custom(t *testing.T) {
	b := Breakpoints{TabletMaxWidth: 800, MobileMaxWidth: 400}
	assert.Equal(t, entity.ViewportDesktop, b.Select(900))
	assert.Equal(t, entity.ViewportTablet, b.Select(500))
	assert.Equal(t, entity.ViewportMobile, b.Select(400))
}

func TestLookup(t *testing.T) {
	p, ok := Lookup(entity.ViewportMobile)
	require.True(t, ok)
	assert.Contains(t, p.UserAgent, "iPhone")
	assert.NotEmpty(t, p.CSS)

	desktop, ok := Lookup(entity.ViewportDesktop)
	require.True(t, ok)
	assert.Empty(t, desktop.CSS)

	_, ok = Lookup(entity.ViewportNone)
	assert.False(t, ok)
}
