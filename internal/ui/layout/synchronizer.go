package layout

import (
	"context"
	"time"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/logging"
	"github.com/bnema/twinview/internal/ui/mainloop"
	"github.com/bnema/twinview/internal/ui/state"
)

// DefaultSettleDelay lets layout transitions finish before measuring.
const DefaultSettleDelay = 300 * time.Millisecond

const frameKey = "layout-sync"

// BoundsSender pushes measured bounds to the backend.
type BoundsSender interface {
	UpdateBounds(ctx context.Context, role entity.Role, bounds entity.Rect) error
}

// Synchronizer measures placeholders and sends updateBounds. It runs on the
// UI loop.
type Synchronizer struct {
	ctx         context.Context
	sched       mainloop.Scheduler
	store       *state.Store
	measurer    Measurer
	sender      BoundsSender
	settleDelay time.Duration

	frames      *mainloop.Coalescer
	settle      mainloop.Timer
	unsubscribe func()
	closed      bool
}

// NewSynchronizer wires a synchronizer to store changes. settleDelay <= 0
// uses DefaultSettleDelay.
func NewSynchronizer(ctx context.Context, sched mainloop.Scheduler, store *state.Store, measurer Measurer, sender BoundsSender, settleDelay time.Duration) *Synchronizer {
	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}
	s := &Synchronizer{
		ctx:         logging.WithComponent(ctx, "layout-sync"),
		sched:       sched,
		store:       store,
		measurer:    measurer,
		sender:      sender,
		settleDelay: settleDelay,
	}
	s.frames = mainloop.NewCoalescer(func(fn func()) { sched.NextFrame(fn) })
	s.unsubscribe = store.Subscribe(s.onChange)
	return s
}

func (s *Synchronizer) onChange(prev, next state.Snapshot) {
	switch {
	case prev.WindowSize != next.WindowSize:
		s.ScheduleFrame()
	case prev.IsSplit != next.IsSplit:
		s.ScheduleSettled()
	case prev.Ratio != next.Ratio:
		if next.TransitionsEnabled {
			s.ScheduleSettled()
		} else {
			s.ScheduleFrame()
		}
	}
}

// ScheduleFrame syncs on the next frame; bursts collapse into one pass.
func (s *Synchronizer) ScheduleFrame() {
	if s.closed {
		return
	}
	s.frames.Post(frameKey, s.Sync)
}

// ScheduleSettled syncs after the settle delay, restarting it if a settled
// sync is already pending.
func (s *Synchronizer) ScheduleSettled() {
	if s.closed {
		return
	}
	if s.settle != nil {
		s.settle.Stop()
	}
	s.settle = s.sched.After(s.settleDelay, func() {
		s.settle = nil
		s.Sync()
	})
}

// TriggerInitial schedules the first sync after a surface is created.
func (s *Synchronizer) TriggerInitial() {
	s.ScheduleSettled()
}

// Sync measures and pushes bounds now.
func (s *Synchronizer) Sync() {
	if s.closed {
		return
	}
	snap := s.store.Snapshot()
	if !snap.HasPrimary {
		return
	}
	s.push(entity.RolePrimary)
	if snap.IsSplit {
		s.push(entity.RoleSecondary)
	}
}

func (s *Synchronizer) push(role entity.Role) {
	log := logging.FromContext(s.ctx)
	rect, ok := s.measurer.Measure(role)
	if !ok {
		log.Debug().Str("role", string(role)).Msg("placeholder not laid out")
		return
	}
	if err := s.sender.UpdateBounds(s.ctx, role, rect); err != nil {
		log.Warn().Err(err).Str("role", string(role)).Msg("failed to send bounds")
	}
}

// Close cancels pending passes and detaches from the store.
func (s *Synchronizer) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.settle != nil {
		s.settle.Stop()
		s.settle = nil
	}
	s.frames.Destroy()
	s.unsubscribe()
}
