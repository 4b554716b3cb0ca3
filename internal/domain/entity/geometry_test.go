package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRect_Normalize(t *testing.T) {
	r := Rect{X: -5, Y: 10, Width: -1, Height: 20}
	assert.Equal(t, Rect{X: 0, Y: 10, Width: 0, Height: 20}, r.Normalize())
	assert.True(t, r.Normalize().IsEmpty())
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 5, Height: 5}
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(14, 14))
	assert.False(t, r.Contains(15, 10))
	assert.False(t, r.Contains(9, 12))
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("secondary")
	require.NoError(t, err)
	assert.Equal(t, RoleSecondary, role)

	_, err = ParseRole("tertiary")
	assert.Error(t, err)
}
