package input

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/ui/mainloop/mainlooptest"
	"github.com/bnema/twinview/internal/ui/state"
)

type fakeDocument struct {
	selection bool
	cursor    Cursor
}

func (f *fakeDocument) SetSelectionEnabled(enabled bool) { f.selection = enabled }
func (f *fakeDocument) SetCursor(c Cursor)               { f.cursor = c }

type fakeSender struct {
	ratios   []float64
	overlays []string
}

func (f *fakeSender) UpdateSplitRatio(_ context.Context, r float64) error {
	f.ratios = append(f.ratios, r)
	return nil
}

func (f *fakeSender) ShowOverlay(context.Context) error {
	f.overlays = append(f.overlays, "show")
	return nil
}

func (f *fakeSender) HideOverlay(context.Context) error {
	f.overlays = append(f.overlays, "hide")
	return nil
}

type dragFixture struct {
	drag   *DragController
	store  *state.Store
	doc    *fakeDocument
	sender *fakeSender
	sched  *mainlooptest.Scheduler
}

func newDragFixture() *dragFixture {
	f := &dragFixture{
		store:  state.NewStore(),
		doc:    &fakeDocument{selection: true, cursor: CursorDefault},
		sender: &fakeSender{},
		sched:  mainlooptest.New(time.Unix(0, 0)),
	}
	f.store.SetSplit(true)
	f.drag = NewDragController(context.Background(), f.sched, f.store, f.doc, f.sender,
		func() (int, int) { return 0, 1200 }, 16*time.Millisecond)
	return f
}

func TestDrag_FromHalfToThirty(t *testing.T) {
	f := newDragFixture()

	var transitions []bool
	f.store.Subscribe(func(prev, next state.Snapshot) {
		if prev.Ratio != next.Ratio {
			transitions = append(transitions, next.TransitionsEnabled)
		}
	})

	f.drag.PointerDown(600)
	assert.True(t, f.drag.Dragging())
	assert.False(t, f.doc.selection)
	assert.Equal(t, CursorColResize, f.doc.cursor)
	assert.False(t, f.store.Snapshot().TransitionsEnabled)

	for _, x := range []int{540, 480, 420, 360} {
		f.drag.PointerMove(x)
		f.sched.Advance(16 * time.Millisecond)
	}
	f.drag.PointerUp()

	assert.InDelta(t, 0.3, f.store.Snapshot().Ratio, 1e-9)
	require.NotEmpty(t, f.sender.ratios)
	assert.InDelta(t, 0.3, f.sender.ratios[len(f.sender.ratios)-1], 1e-9)
	assert.Equal(t, []string{"show", "hide"}, f.sender.overlays)
	for _, enabled := range transitions {
		assert.False(t, enabled, "no transitions while dragging")
	}

	assert.False(t, f.drag.Dragging())
	assert.True(t, f.doc.selection)
	assert.Equal(t, CursorDefault, f.doc.cursor)
	assert.True(t, f.store.Snapshot().TransitionsEnabled)
}

func TestDrag_ThrottlesAndFlushesLastSample(t *testing.T) {
	f := newDragFixture()
	f.drag.PointerDown(600)

	f.drag.PointerMove(540)
	f.drag.PointerMove(500)
	f.drag.PointerMove(480)
	assert.Len(t, f.sender.ratios, 1, "leading sample only within the interval")

	f.drag.PointerUp()
	require.Len(t, f.sender.ratios, 2)
	assert.InDelta(t, 0.4, f.sender.ratios[1], 1e-9)
}

func TestDrag_RatioIsClamped(t *testing.T) {
	f := newDragFixture()
	f.drag.PointerDown(600)
	f.drag.PointerMove(-50)
	f.sched.Advance(20 * time.Millisecond)
	f.drag.PointerMove(5000)
	f.drag.PointerUp()

	assert.Equal(t, []float64{entity.MinRatio, entity.MaxRatio}, f.sender.ratios)
}

func TestDrag_DoubleClickResetsToHalf(t *testing.T) {
	f := newDragFixture()
	f.store.SetRatio(0.73)

	f.drag.DoubleClick()

	assert.Equal(t, 0.5, f.store.Snapshot().Ratio)
	assert.Equal(t, []float64{0.5}, f.sender.ratios)
}

func TestDrag_IgnoresEventsWhenIdle(t *testing.T) {
	f := newDragFixture()
	f.drag.PointerMove(300)
	f.drag.PointerUp()
	f.drag.Cancel()

	assert.Empty(t, f.sender.ratios)
	assert.Empty(t, f.sender.overlays)
}

func TestDrag_CancelEndsDrag(t *testing.T) {
	f := newDragFixture()
	f.drag.PointerDown(600)
	f.drag.PointerMove(480)

	f.drag.Cancel()

	assert.False(t, f.drag.Dragging())
	assert.Equal(t, []string{"show", "hide"}, f.sender.overlays)
	assert.True(t, f.store.Snapshot().TransitionsEnabled)
}
