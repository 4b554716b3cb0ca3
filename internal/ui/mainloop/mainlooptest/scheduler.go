// Package mainlooptest provides a deterministic mainloop.Scheduler driven by
// a manual clock.
package mainlooptest

import (
	"sort"
	"sync"
	"time"

	"github.com/bnema/twinview/internal/ui/mainloop"
)

type timer struct {
	s       *Scheduler
	due     time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Scheduler runs posted work only when the test drives it with RunPending or
// Advance. Post is safe from any goroutine; callbacks run on the caller of
// RunPending/Advance.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	queue  []func()
	timers []*timer
}

var _ mainloop.Scheduler = (*Scheduler)(nil)

// New returns a Scheduler whose clock starts at start.
func New(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

func (s *Scheduler) Post(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
}

func (s *Scheduler) After(d time.Duration, fn func()) mainloop.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &timer{s: s, due: s.now.Add(d), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *Scheduler) NextFrame(fn func()) mainloop.Timer {
	return s.After(mainloop.FrameInterval, fn)
}

func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// RunPending runs posted tasks until the queue is empty, including tasks
// posted while draining. It returns how many ran.
func (s *Scheduler) RunPending() int {
	n := 0
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return n
		}
		fn := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		fn()
		n++
	}
}

// Advance moves the clock forward by d, firing due timers in due order and
// draining posted tasks after each one.
func (s *Scheduler) Advance(d time.Duration) {
	s.RunPending()

	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
		s.RunPending()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

func (s *Scheduler) nextDue(target time.Time) *timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.timers = live
	if len(live) == 0 {
		return nil
	}

	sort.Slice(live, func(i, j int) bool {
		if live[i].due.Equal(live[j].due) {
			return live[i].seq < live[j].seq
		}
		return live[i].due.Before(live[j].due)
	})
	next := live[0]
	if next.due.After(target) {
		return nil
	}
	if next.due.After(s.now) {
		s.now = next.due
	}
	next.fired = true
	return next
}

// PendingTimers counts timers that have neither fired nor been stopped.
func (s *Scheduler) PendingTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}
