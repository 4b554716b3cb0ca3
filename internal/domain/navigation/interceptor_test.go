package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/twinview/internal/domain/entity"
)

func TestDecide_RedirectsPrimaryLink(t *testing.T) {
	primary := entity.Rect{X: 0, Y: 40, Width: 1200, Height: 760}
	window := entity.Size{Width: 1200, Height: 800}

	got := Decide(&primary, window, Attempt{
		Source:     entity.RolePrimary,
		CurrentURL: "https://a.example",
		TargetURL:  "https://a.example/page2",
	})

	assert.True(t, got.Redirect)
	assert.Equal(t, ReasonRedirect, got.Reason)
	assert.Equal(t, "https://a.example/page2", got.Request.URL)
	assert.Equal(t, entity.Rect{X: 600, Y: 40, Width: 600, Height: 760}, got.Request.Bounds)
}

func TestDecide_Declines(t *testing.T) {
	primary := entity.Rect{X: 0, Y: 40, Width: 1200, Height: 760}
	window := entity.Size{Width: 1200, Height: 800}

	tests := []struct {
		name    string
		bounds  *entity.Rect
		attempt Attempt
		want    Reason
	}{
		{
			name:    "secondary navigations pass through",
			bounds:  &primary,
			attempt: Attempt{Source: entity.RoleSecondary, TargetURL: "https://b.example"},
			want:    ReasonNotPrimary,
		},
		{
			name:    "primary without bounds",
			bounds:  nil,
			attempt: Attempt{Source: entity.RolePrimary, TargetURL: "https://b.example"},
			want:    ReasonNoBounds,
		},
		{
			name:    "javascript target",
			bounds:  &primary,
			attempt: Attempt{Source: entity.RolePrimary, TargetURL: "javascript:void(0)"},
			want:    ReasonNotWeb,
		},
		{
			name:    "about blank",
			bounds:  &primary,
			attempt: Attempt{Source: entity.RolePrimary, TargetURL: "about:blank", NewWindow: true},
			want:    ReasonNotWeb,
		},
		{
			name: "fragment jump",
			bounds: &primary,
			attempt: Attempt{
				Source:     entity.RolePrimary,
				CurrentURL: "https://a.example/doc",
				TargetURL:  "https://a.example/doc#section",
			},
			want: ReasonSameDocument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.bounds, window, tt.attempt)
			assert.False(t, got.Redirect)
			assert.Equal(t, tt.want, got.Reason)
		})
	}
}

func TestDecide_NewWindowFragmentStillRedirects(t *testing.T) {
	primary := entity.Rect{X: 0, Y: 40, Width: 800, Height: 560}
	got := Decide(&primary, entity.Size{Width: 800, Height: 600}, Attempt{
		Source:     entity.RolePrimary,
		CurrentURL: "https://a.example/doc",
		TargetURL:  "https://a.example/doc#section",
		NewWindow:  true,
	})
	assert.True(t, got.Redirect)
	assert.Equal(t, entity.Rect{X: 400, Y: 40, Width: 400, Height: 560}, got.Request.Bounds)
}

func TestSecondaryBounds_NeverNegative(t *testing.T) {
	got := SecondaryBounds(entity.Rect{X: 900, Y: 40, Width: 600, Height: 100}, entity.Size{Width: 1000, Height: 140})
	assert.Equal(t, 0, got.Width)
	assert.Equal(t, 1200, got.X)
}

func TestDecide_SplitPlacesSecondaryPastPrimaryEdge(t *testing.T) {
	primary := entity.Rect{X: 0, Y: 40, Width: 598, Height: 760}
	got := Decide(&primary, entity.Size{Width: 1200, Height: 800}, Attempt{
		Source:     entity.RolePrimary,
		CurrentURL: "https://a.example",
		TargetURL:  "https://a.example/page3",
		Split:      true,
		DividerGap: 4,
	})
	require.True(t, got.Redirect)
	assert.Equal(t, entity.Rect{X: 602, Y: 40, Width: 598, Height: 760}, got.Request.Bounds)
	assert.Equal(t, primary.Right()+4, got.Request.Bounds.X)
}
