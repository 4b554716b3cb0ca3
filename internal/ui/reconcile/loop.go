// Package reconcile corrects drift between the UI's split cache and the
// backend's authoritative state.
package reconcile

import (
	"context"
	"time"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/logging"
	"github.com/bnema/twinview/internal/ui/mainloop"
	"github.com/bnema/twinview/internal/ui/state"
)

const (
	DefaultInitialDelay   = time.Second
	DefaultInterval       = 5 * time.Second
	DefaultRequestTimeout = 2 * time.Second
)

// StatusFetcher queries the backend.
type StatusFetcher interface {
	GetDetailedStatus(ctx context.Context) (entity.SplitStatus, error)
}

// Config holds reconciliation timings; zero values take the defaults.
type Config struct {
	InitialDelay   time.Duration
	Interval       time.Duration
	RequestTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.InitialDelay <= 0 {
		c.InitialDelay = DefaultInitialDelay
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	return c
}

// Loop runs on the UI loop. Status requests run on helper goroutines and
// their results are posted back.
type Loop struct {
	ctx     context.Context
	sched   mainloop.Scheduler
	store   *state.Store
	fetcher StatusFetcher
	cfg     Config

	mount      mainloop.Timer
	periodic   mainloop.Timer
	generation uint64
	stopped    bool
}

// New creates a reconciliation loop.
func New(ctx context.Context, sched mainloop.Scheduler, store *state.Store, fetcher StatusFetcher, cfg Config) *Loop {
	return &Loop{
		ctx:     logging.WithComponent(ctx, "reconcile"),
		sched:   sched,
		store:   store,
		fetcher: fetcher,
		cfg:     cfg.withDefaults(),
	}
}

// Mount schedules the first check after the initial delay.
func (l *Loop) Mount() {
	if l.stopped || l.mount != nil {
		return
	}
	l.mount = l.sched.After(l.cfg.InitialDelay, func() {
		l.mount = nil
		l.Tick()
	})
}

// FocusGained checks immediately.
func (l *Loop) FocusGained() {
	l.Tick()
}

// SetActive starts or stops the periodic check. It is active while a
// primary surface exists. Deactivating discards results still in flight.
func (l *Loop) SetActive(active bool) {
	if l.stopped {
		return
	}
	if !active {
		l.generation++
	}
	switch {
	case active && l.periodic == nil:
		l.periodic = mainloop.Every(l.sched, l.cfg.Interval, l.Tick)
	case !active && l.periodic != nil:
		l.periodic.Stop()
		l.periodic = nil
	}
}

// Tick fetches the authoritative state and applies it when it arrives.
func (l *Loop) Tick() {
	if l.stopped {
		return
	}
	gen := l.generation
	go func() {
		ctx, cancel := context.WithTimeout(l.ctx, l.cfg.RequestTimeout)
		defer cancel()
		status, err := l.fetcher.GetDetailedStatus(ctx)
		l.sched.Post(func() {
			if l.stopped || gen != l.generation {
				logging.FromContext(l.ctx).Debug().Msg("discarding stale status")
				return
			}
			if err != nil {
				logging.FromContext(l.ctx).Debug().Err(err).Msg("status request failed")
				return
			}
			l.Apply(status.HasSecondary)
		})
	}()
}

// Apply runs the correction rule against the local cache. Only the split
// flag, and the ratio when leaving split mode, are ever touched. Without a
// primary there is nothing to correct.
func (l *Loop) Apply(hasSecondary bool) {
	snap := l.store.Snapshot()
	if !snap.HasPrimary {
		logging.FromContext(l.ctx).Debug().Msg("no primary, skipping correction")
		return
	}
	switch {
	case hasSecondary && !snap.IsSplit:
		logging.FromContext(l.ctx).Info().Msg("backend is split, correcting local state")
		l.store.SetSplit(true)
	case !hasSecondary && snap.IsSplit:
		logging.FromContext(l.ctx).Info().Msg("backend is not split, correcting local state")
		l.store.SetSplit(false)
		l.store.SetRatio(entity.DefaultRatio)
	}
}

// Stop cancels timers and discards results of requests already in flight.
func (l *Loop) Stop() {
	if l.stopped {
		return
	}
	l.stopped = true
	l.generation++
	if l.mount != nil {
		l.mount.Stop()
		l.mount = nil
	}
	if l.periodic != nil {
		l.periodic.Stop()
		l.periodic = nil
	}
}
