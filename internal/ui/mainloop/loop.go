package mainloop

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ErrStopped is returned by Run when the loop was stopped explicitly.
var ErrStopped = errors.New("mainloop stopped")

// Loop is a single goroutine draining a FIFO of posted closures.
// Posting never blocks; the queue is unbounded.
type Loop struct {
	name   string
	logger zerolog.Logger

	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	stop   chan struct{}
	closed bool

	frameMu     sync.Mutex
	frameQueue  []*loopTimer
	frameArmed  bool
	frameTicker func(time.Duration, func()) *time.Timer

	running atomic.Bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for recovered panics.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// New creates a Loop; call Run to start draining it.
func New(name string, opts ...Option) *Loop {
	l := &Loop{
		name:        name,
		logger:      zerolog.Nop(),
		wake:        make(chan struct{}, 1),
		stop:        make(chan struct{}),
		frameTicker: time.AfterFunc,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With().Str("loop", name).Logger()
	return l
}

// Run drains the queue until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return fmt.Errorf("mainloop %s: already running", l.name)
	}
	defer l.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			if l.close() {
				close(l.stop)
			}
			return ctx.Err()
		case <-l.stop:
			return ErrStopped
		case <-l.wake:
		}

		for {
			task, ok := l.next()
			if !ok {
				break
			}
			l.runTask(task)
		}
	}
}

// Stop ends Run after the current task. Later posts are dropped.
func (l *Loop) Stop() {
	if l.close() {
		close(l.stop)
	}
}

func (l *Loop) close() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.closed = true
	l.queue = nil
	return true
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || len(l.queue) == 0 {
		return nil, false
	}
	task := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return task, true
}

func (l *Loop) runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("recovered panic in loop task")
		}
	}()
	task()
}

// Post appends fn to the queue.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// PostWait runs fn on the loop and waits for it to finish.
func (l *Loop) PostWait(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stop:
		return ErrStopped
	}
}

// Now returns the wall clock.
func (l *Loop) Now() time.Time {
	return time.Now()
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
	fired   atomic.Bool
	fn      func()
}

func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	return !t.fired.Load()
}

func (t *loopTimer) run() {
	if t.stopped.Load() {
		return
	}
	t.fired.Store(true)
	t.fn()
}

// After runs fn on the loop once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) Timer {
	t := &loopTimer{fn: fn}
	t.timer = time.AfterFunc(d, func() { l.Post(t.run) })
	return t
}

// NextFrame runs fn on the next frame tick. Callbacks queued for the same
// frame run together in order.
func (l *Loop) NextFrame(fn func()) Timer {
	t := &loopTimer{fn: fn}

	l.frameMu.Lock()
	l.frameQueue = append(l.frameQueue, t)
	arm := !l.frameArmed
	l.frameArmed = true
	l.frameMu.Unlock()

	if arm {
		l.frameTicker(FrameInterval, func() { l.Post(l.flushFrame) })
	}
	return t
}

func (l *Loop) flushFrame() {
	l.frameMu.Lock()
	batch := l.frameQueue
	l.frameQueue = nil
	l.frameArmed = false
	l.frameMu.Unlock()

	for _, t := range batch {
		t.run()
	}
}
