package layout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/ui/mainloop"
	"github.com/bnema/twinview/internal/ui/mainloop/mainlooptest"
	"github.com/bnema/twinview/internal/ui/state"
)

var metrics = entity.LayoutMetrics{HeaderHeight: 40, DividerGap: 4}

type sent struct {
	role   entity.Role
	bounds entity.Rect
}

type recordingSender struct {
	calls []sent
}

func (r *recordingSender) UpdateBounds(_ context.Context, role entity.Role, bounds entity.Rect) error {
	r.calls = append(r.calls, sent{role: role, bounds: bounds})
	return nil
}

func newSync(t *testing.T) (*Synchronizer, *state.Store, *recordingSender, *mainlooptest.Scheduler) {
	t.Helper()
	sched := mainlooptest.New(time.Unix(0, 0))
	store := state.NewStore()
	store.SetWindowSize(entity.Size{Width: 1200, Height: 800})
	store.OpenPrimary("https://a.example")
	sender := &recordingSender{}
	s := NewSynchronizer(context.Background(), sched, store, StoreMeasurer{Store: store, Metrics: metrics}, sender, 300*time.Millisecond)
	t.Cleanup(s.Close)
	return s, store, sender, sched
}

func TestSynchronizer_ResizeCoalescesToNextFrame(t *testing.T) {
	_, store, sender, sched := newSync(t)

	store.SetWindowSize(entity.Size{Width: 1000, Height: 700})
	store.SetWindowSize(entity.Size{Width: 1100, Height: 700})
	store.SetWindowSize(entity.Size{Width: 1300, Height: 900})
	assert.Empty(t, sender.calls)

	sched.Advance(mainloop.FrameInterval)

	assert.Equal(t, []sent{{entity.RolePrimary, entity.Rect{X: 0, Y: 40, Width: 1300, Height: 860}}}, sender.calls)
}

func TestSynchronizer_SplitChangeWaitsForSettleDelay(t *testing.T) {
	_, store, sender, sched := newSync(t)

	store.SetSplit(true)
	sched.Advance(200 * time.Millisecond)
	assert.Empty(t, sender.calls)

	// A new trigger restarts the delay.
	store.SetRatio(0.4)
	sched.Advance(200 * time.Millisecond)
	assert.Empty(t, sender.calls)

	sched.Advance(100 * time.Millisecond)
	primary, secondary := entity.SplitBounds(entity.Size{Width: 1200, Height: 800}, 0.4, metrics)
	assert.Equal(t, []sent{
		{entity.RolePrimary, primary},
		{entity.RoleSecondary, secondary},
	}, sender.calls)
}

func TestSynchronizer_RatioDuringDragRunsNextFrame(t *testing.T) {
	_, store, sender, sched := newSync(t)
	store.SetSplit(true)
	sched.Advance(time.Second)
	sender.calls = nil

	store.SetTransitionsEnabled(false)
	store.SetRatio(0.3)
	sched.Advance(mainloop.FrameInterval)

	primary, _ := entity.SplitBounds(entity.Size{Width: 1200, Height: 800}, 0.3, metrics)
	if assert.Len(t, sender.calls, 2) {
		assert.Equal(t, primary, sender.calls[0].bounds)
		assert.Equal(t, 359, sender.calls[0].bounds.Width)
	}
}

func TestSynchronizer_OnlyPrimaryWhenNotSplit(t *testing.T) {
	s, _, sender, _ := newSync(t)
	s.Sync()
	if assert.Len(t, sender.calls, 1) {
		assert.Equal(t, entity.RolePrimary, sender.calls[0].role)
	}
}

func TestSynchronizer_NothingOnLanding(t *testing.T) {
	s, store, sender, _ := newSync(t)
	store.Reset()
	s.Sync()
	assert.Empty(t, sender.calls)
}

func TestSynchronizer_CloseCancelsPendingWork(t *testing.T) {
	s, store, sender, sched := newSync(t)

	store.SetSplit(true)
	store.SetWindowSize(entity.Size{Width: 900, Height: 600})
	s.Close()
	sched.Advance(time.Second)

	assert.Empty(t, sender.calls)
	assert.Zero(t, sched.PendingTimers())
}

func TestStoreMeasurer(t *testing.T) {
	store := state.NewStore()
	m := StoreMeasurer{Store: store, Metrics: metrics}

	_, ok := m.Measure(entity.RolePrimary)
	assert.False(t, ok, "landing has no placeholder")

	store.SetWindowSize(entity.Size{Width: 1200, Height: 800})
	store.OpenPrimary("https://a.example")
	rect, ok := m.Measure(entity.RolePrimary)
	assert.True(t, ok)
	assert.Equal(t, entity.Rect{X: 0, Y: 40, Width: 1200, Height: 760}, rect)

	_, ok = m.Measure(entity.RoleSecondary)
	assert.False(t, ok)
}
