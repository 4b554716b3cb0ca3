package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/ui/mainloop/mainlooptest"
	"github.com/bnema/twinview/internal/ui/state"
)

type fakeFetcher struct {
	mu     sync.Mutex
	status entity.SplitStatus
	err    error
	calls  int
	gate   chan struct{}
}

func (f *fakeFetcher) GetDetailedStatus(ctx context.Context) (entity.SplitStatus, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	status, err := f.status, f.err
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return entity.SplitStatus{}, ctx.Err()
		}
	}
	return status, err
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newLoop(fetcher StatusFetcher) (*Loop, *state.Store, *mainlooptest.Scheduler) {
	sched := mainlooptest.New(time.Unix(0, 0))
	store := state.NewStore()
	l := New(context.Background(), sched, store, fetcher, Config{})
	return l, store, sched
}

// settle drains posted results from fetch goroutines.
func settle(t *testing.T, sched *mainlooptest.Scheduler, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		sched.RunPending()
		return cond()
	}, time.Second, time.Millisecond)
}

func TestLoop_BackendSplitLocalNot(t *testing.T) {
	fetcher := &fakeFetcher{status: entity.SplitStatus{IsSplit: true, HasSecondary: true}}
	l, store, sched := newLoop(fetcher)
	store.OpenPrimary("https://a.example")
	store.SetRatio(0.62)
	before := store.Snapshot()

	l.Tick()
	settle(t, sched, func() bool { return store.Snapshot().IsSplit })

	after := store.Snapshot()
	after.IsSplit = before.IsSplit
	assert.Equal(t, before, after, "only the split flag changes")
}

func TestLoop_BackendNotSplitLocalSplit(t *testing.T) {
	fetcher := &fakeFetcher{status: entity.SplitStatus{}}
	l, store, sched := newLoop(fetcher)
	store.OpenPrimary("https://a.example")
	store.SetSplit(true)
	store.SetRatio(0.3)

	l.Tick()
	settle(t, sched, func() bool { return !store.Snapshot().IsSplit })
	assert.Equal(t, entity.DefaultRatio, store.Snapshot().Ratio)
}

func TestLoop_AgreementChangesNothing(t *testing.T) {
	fetcher := &fakeFetcher{status: entity.SplitStatus{IsSplit: true, HasSecondary: true}}
	l, store, sched := newLoop(fetcher)
	store.OpenPrimary("https://a.example")
	store.SetSplit(true)
	store.SetRatio(0.3)

	changes := 0
	store.Subscribe(func(_, _ state.Snapshot) { changes++ })
	l.Tick()
	settle(t, sched, func() bool { return fetcher.Calls() == 1 })
	sched.RunPending()
	assert.Zero(t, changes)
}

func TestLoop_MountWaitsInitialDelay(t *testing.T) {
	fetcher := &fakeFetcher{status: entity.SplitStatus{HasSecondary: true}}
	l, _, sched := newLoop(fetcher)

	l.Mount()
	sched.Advance(999 * time.Millisecond)
	assert.Zero(t, fetcher.Calls())

	sched.Advance(time.Millisecond)
	assert.Eventually(t, func() bool { return fetcher.Calls() == 1 }, time.Second, time.Millisecond)
}

func TestLoop_PeriodicWhileActive(t *testing.T) {
	fetcher := &fakeFetcher{}
	l, _, sched := newLoop(fetcher)

	l.SetActive(true)
	sched.Advance(15 * time.Second)
	assert.Eventually(t, func() bool { return fetcher.Calls() == 3 }, time.Second, time.Millisecond)

	l.SetActive(false)
	sched.Advance(15 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 3, fetcher.Calls())
}

func TestLoop_StaleResultDiscardedAfterStop(t *testing.T) {
	gate := make(chan struct{})
	fetcher := &fakeFetcher{status: entity.SplitStatus{HasSecondary: true}, gate: gate}
	l, store, sched := newLoop(fetcher)
	store.OpenPrimary("https://a.example")

	l.Tick()
	require.Eventually(t, func() bool { return fetcher.Calls() == 1 }, time.Second, time.Millisecond)
	l.Stop()
	close(gate)

	// Give the goroutine time to post its result.
	time.Sleep(10 * time.Millisecond)
	sched.RunPending()
	assert.False(t, store.Snapshot().IsSplit)

	l.Tick()
	l.Mount()
	l.SetActive(true)
	assert.Zero(t, sched.PendingTimers())
}

func TestLoop_ErrorsLeaveStateAlone(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("channel down")}
	l, store, sched := newLoop(fetcher)
	store.SetSplit(true)

	l.FocusGained()
	settle(t, sched, func() bool { return fetcher.Calls() == 1 })
	time.Sleep(5 * time.Millisecond)
	sched.RunPending()
	assert.True(t, store.Snapshot().IsSplit)
}

func TestLoop_ResultInFlightAtDeactivationIsDiscarded(t *testing.T) {
	gate := make(chan struct{})
	fetcher := &fakeFetcher{status: entity.SplitStatus{IsSplit: true, HasSecondary: true}, gate: gate}
	l, store, sched := newLoop(fetcher)
	store.OpenPrimary("https://a.example")
	l.SetActive(true)

	l.Tick()
	require.Eventually(t, func() bool { return fetcher.Calls() == 1 }, time.Second, time.Millisecond)
	l.SetActive(false)
	store.Reset()
	close(gate)

	time.Sleep(10 * time.Millisecond)
	sched.RunPending()
	landing := store.Snapshot()
	assert.False(t, landing.HasPrimary)
	assert.False(t, landing.IsSplit)
}

func TestLoop_ApplyWithoutPrimaryIsNoop(t *testing.T) {
	l, store, _ := newLoop(&fakeFetcher{})

	l.Apply(true)

	assert.False(t, store.Snapshot().IsSplit)
}
