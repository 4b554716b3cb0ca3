// Package input turns pointer events on the split divider into split ratios.
package input

import (
	"context"
	"time"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/logging"
	"github.com/bnema/twinview/internal/ui/mainloop"
	"github.com/bnema/twinview/internal/ui/state"
)

// DefaultThrottle caps ratio updates at one per frame.
const DefaultThrottle = 16 * time.Millisecond

// Cursor is a document-level pointer shape.
type Cursor string

const (
	CursorDefault   Cursor = "default"
	CursorColResize Cursor = "col-resize"
)

// Document exposes the document-level toggles a drag needs.
type Document interface {
	SetSelectionEnabled(enabled bool)
	SetCursor(cursor Cursor)
}

// RatioSender is the slice of the backend channel the drag drives.
type RatioSender interface {
	UpdateSplitRatio(ctx context.Context, ratio float64) error
	ShowOverlay(ctx context.Context) error
	HideOverlay(ctx context.Context) error
}

// Container reports the horizontal extent the ratio is measured against.
type Container func() (left, width int)

type dragState int

const (
	stateIdle dragState = iota
	stateDragging
)

// DragController is the divider's pointer state machine. It runs on the UI
// loop.
type DragController struct {
	ctx       context.Context
	sched     mainloop.Scheduler
	store     *state.Store
	doc       Document
	sender    RatioSender
	container Container
	throttle  time.Duration

	state      dragState
	lastSample time.Time
	sampled    bool
	pendingX   int
	hasPending bool
}

// NewDragController creates a controller. throttle <= 0 uses DefaultThrottle.
func NewDragController(ctx context.Context, sched mainloop.Scheduler, store *state.Store, doc Document, sender RatioSender, container Container, throttle time.Duration) *DragController {
	if throttle <= 0 {
		throttle = DefaultThrottle
	}
	return &DragController{
		ctx:       logging.WithComponent(ctx, "drag"),
		sched:     sched,
		store:     store,
		doc:       doc,
		sender:    sender,
		container: container,
		throttle:  throttle,
	}
}

// Dragging reports whether a drag is in progress.
func (d *DragController) Dragging() bool {
	return d.state == stateDragging
}

// PointerDown starts a drag. Callers only report presses on the divider.
func (d *DragController) PointerDown(x int) {
	if d.state == stateDragging {
		return
	}
	d.state = stateDragging
	d.sampled = false
	d.hasPending = false

	d.doc.SetSelectionEnabled(false)
	d.doc.SetCursor(CursorColResize)
	if err := d.sender.ShowOverlay(d.ctx); err != nil {
		logging.FromContext(d.ctx).Warn().Err(err).Msg("failed to request overlay")
	}
	d.store.SetTransitionsEnabled(false)
	logging.FromContext(d.ctx).Debug().Int("x", x).Msg("drag started")
}

// PointerMove samples the pointer at most once per throttle interval.
func (d *DragController) PointerMove(x int) {
	if d.state != stateDragging {
		return
	}
	now := d.sched.Now()
	if d.sampled && now.Sub(d.lastSample) < d.throttle {
		d.pendingX = x
		d.hasPending = true
		return
	}
	d.lastSample = now
	d.sampled = true
	d.hasPending = false
	d.apply(x)
}

// PointerUp ends the drag wherever the pointer is released, flushing the
// last dropped sample.
func (d *DragController) PointerUp() {
	if d.state != stateDragging {
		return
	}
	if d.hasPending {
		d.hasPending = false
		d.apply(d.pendingX)
	}
	d.finish()
}

// Cancel ends an active drag the same way PointerUp does.
func (d *DragController) Cancel() {
	d.PointerUp()
}

// DoubleClick resets the split to even halves.
func (d *DragController) DoubleClick() {
	d.setRatio(entity.DefaultRatio)
}

func (d *DragController) finish() {
	d.state = stateIdle
	d.doc.SetSelectionEnabled(true)
	d.doc.SetCursor(CursorDefault)
	d.store.SetTransitionsEnabled(true)
	if err := d.sender.HideOverlay(d.ctx); err != nil {
		logging.FromContext(d.ctx).Warn().Err(err).Msg("failed to hide overlay")
	}
	logging.FromContext(d.ctx).Debug().Float64("ratio", d.store.Snapshot().Ratio).Msg("drag finished")
}

func (d *DragController) apply(x int) {
	left, width := d.container()
	if width <= 0 {
		return
	}
	d.setRatio(float64(x-left) / float64(width))
}

func (d *DragController) setRatio(ratio float64) {
	ratio = entity.ClampRatio(ratio)
	d.store.SetRatio(ratio)
	if err := d.sender.UpdateSplitRatio(d.ctx, ratio); err != nil {
		logging.FromContext(d.ctx).Warn().Err(err).Float64("ratio", ratio).Msg("failed to send split ratio")
	}
}
