package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/twinview/internal/domain/entity"
)

func TestStore_NotifiesOnlyOnChange(t *testing.T) {
	s := NewStore()
	var calls []Snapshot
	s.Subscribe(func(_, next Snapshot) { calls = append(calls, next) })

	s.SetSplit(true)
	s.SetSplit(true)
	s.SetRatio(0.3)
	s.SetRatio(0.3)

	assert.Len(t, calls, 2)
	assert.True(t, calls[1].IsSplit)
	assert.Equal(t, 0.3, calls[1].Ratio)
}

func TestStore_RatioIsClamped(t *testing.T) {
	s := NewStore()
	s.SetRatio(2)
	assert.Equal(t, entity.MaxRatio, s.Snapshot().Ratio)
	s.SetRatio(-1)
	assert.Equal(t, entity.MinRatio, s.Snapshot().Ratio)
}

func TestStore_Unsubscribe(t *testing.T) {
	s := NewStore()
	n := 0
	unsubscribe := s.Subscribe(func(_, _ Snapshot) { n++ })
	s.SetSplit(true)
	unsubscribe()
	s.SetSplit(false)
	assert.Equal(t, 1, n)
}

func TestStore_CloseSecondaryAndReset(t *testing.T) {
	s := NewStore()
	s.SetWindowSize(entity.Size{Width: 1200, Height: 800})
	s.OpenPrimary("https://a.example")
	s.SetSplit(true)
	s.SetRatio(0.7)
	s.SetSecondaryURL("https://a.example/page2")

	s.CloseSecondary()
	snap := s.Snapshot()
	assert.False(t, snap.IsSplit)
	assert.Equal(t, entity.DefaultRatio, snap.Ratio)
	assert.True(t, snap.HasPrimary)

	s.Reset()
	snap = s.Snapshot()
	assert.False(t, snap.HasPrimary)
	assert.Empty(t, snap.PrimaryURL)
	assert.Equal(t, entity.Size{Width: 1200, Height: 800}, snap.WindowSize)
	assert.True(t, snap.TransitionsEnabled)
}

func TestStore_ListenersRunInSubscriptionOrder(t *testing.T) {
	s := NewStore()
	var order []string
	s.Subscribe(func(_, _ Snapshot) { order = append(order, "first") })
	s.Subscribe(func(_, _ Snapshot) { order = append(order, "second") })
	s.SetNotice("hi")
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestStore_OpenPrimaryStartsUnsplit(t *testing.T) {
	s := NewStore()
	s.SetSplit(true)
	s.SetRatio(0.7)
	s.SetSecondaryURL("https://b.example")

	s.OpenPrimary("https://a.example")

	snap := s.Snapshot()
	assert.True(t, snap.HasPrimary)
	assert.False(t, snap.IsSplit)
	assert.Equal(t, entity.DefaultRatio, snap.Ratio)
	assert.Empty(t, snap.SecondaryURL)
}
