//go:build gtk

package gtkhost

import (
	"context"
	"errors"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/twinview/internal/ui/mainloop"
)

// ApplicationID is the GTK application identifier.
const ApplicationID = "io.github.bnema.twinview"

// Loop runs the GTK main loop and schedules compositor work onto it.
type Loop struct {
	app      *gtk.Application
	onReady  func(*gtk.Application)
	mu       sync.Mutex
	quitting bool
}

var _ mainloop.Scheduler = (*Loop)(nil)

// NewLoop creates the GTK application. onReady runs on activation, on the
// GTK thread, before any posted work.
func NewLoop(onReady func(*gtk.Application)) *Loop {
	return &Loop{
		app:     gtk.NewApplication(ApplicationID, gio.ApplicationNonUnique),
		onReady: onReady,
	}
}

// Run blocks in the GTK main loop until ctx ends or the window closes.
func (l *Loop) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	l.app.ConnectActivate(func() {
		if l.onReady != nil {
			l.onReady(l.app)
		}
	})

	stop := context.AfterFunc(ctx, func() {
		glib.IdleAdd(func() { l.app.Quit() })
	})
	defer stop()

	if code := l.app.Run(os.Args[:1]); code != 0 {
		return errors.New("gtk application exited with an error")
	}
	return ctx.Err()
}

func (l *Loop) Post(fn func()) {
	glib.IdleAdd(fn)
}

func (l *Loop) After(d time.Duration, fn func()) mainloop.Timer {
	t := &sourceTimer{}
	t.handle = glib.TimeoutAdd(uint(d.Milliseconds()), func() bool {
		t.mu.Lock()
		t.fired = true
		t.mu.Unlock()
		fn()
		return false
	})
	return t
}

func (l *Loop) NextFrame(fn func()) mainloop.Timer {
	return l.After(mainloop.FrameInterval, fn)
}

func (l *Loop) Now() time.Time {
	return time.Now()
}

type sourceTimer struct {
	mu      sync.Mutex
	handle  glib.SourceHandle
	fired   bool
	stopped bool
}

func (t *sourceTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	glib.SourceRemove(t.handle)
	return true
}
