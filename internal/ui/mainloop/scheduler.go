// Package mainloop provides the single-threaded cooperative loops the UI and
// backend run on, plus helpers for scheduling work onto them.
package mainloop

import "time"

// FrameInterval is the paint-frame cadence used by NextFrame.
const FrameInterval = 16 * time.Millisecond

// Timer is a cancellable scheduled task.
type Timer interface {
	// Stop cancels the task. It reports whether the task had not yet run.
	Stop() bool
}

// Scheduler queues work onto a loop. Every callback runs on the loop
// goroutine, one at a time, in posting order.
type Scheduler interface {
	Post(fn func())
	After(d time.Duration, fn func()) Timer
	NextFrame(fn func()) Timer
	Now() time.Time
}

// Every runs fn on s every interval until the returned Timer is stopped.
func Every(s Scheduler, interval time.Duration, fn func()) Timer {
	r := &repeater{s: s, interval: interval, fn: fn}
	r.arm()
	return r
}

type repeater struct {
	s        Scheduler
	interval time.Duration
	fn       func()
	current  Timer
	stopped  bool
}

// arm and tick run on the loop; Stop must be called from the loop too.
func (r *repeater) arm() {
	r.current = r.s.After(r.interval, r.tick)
}

func (r *repeater) tick() {
	if r.stopped {
		return
	}
	r.fn()
	if !r.stopped {
		r.arm()
	}
}

func (r *repeater) Stop() bool {
	if r.stopped {
		return false
	}
	r.stopped = true
	if r.current != nil {
		r.current.Stop()
	}
	return true
}

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return false }

// StoppedTimer is a Timer that never fires.
var StoppedTimer Timer = stoppedTimer{}
