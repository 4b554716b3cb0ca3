package mainloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) *Loop {
	t.Helper()
	l := New("test")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = l.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return l
}

func TestLoop_RunsTasksInOrder(t *testing.T) {
	l := startLoop(t)

	var mu sync.Mutex
	var got []int
	for i := 0; i < 50; i++ {
		v := i
		l.Post(func() {
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
		})
	}
	require.NoError(t, l.PostWait(context.Background(), func() {}))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 50)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestLoop_RecoversPanics(t *testing.T) {
	l := startLoop(t)

	l.Post(func() { panic("boom") })
	ran := false
	require.NoError(t, l.PostWait(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestLoop_PostFromLoopDoesNotDeadlock(t *testing.T) {
	l := startLoop(t)

	done := make(chan struct{})
	l.Post(func() {
		l.Post(func() { close(done) })
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested post never ran")
	}
}

func TestLoop_AfterCanBeStopped(t *testing.T) {
	l := startLoop(t)

	fired := make(chan struct{}, 1)
	timer := l.After(20*time.Millisecond, func() { fired <- struct{}{} })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestLoop_NextFrameBatches(t *testing.T) {
	l := startLoop(t)

	done := make(chan []int, 1)
	var got []int
	l.Post(func() {
		l.NextFrame(func() { got = append(got, 1) })
		l.NextFrame(func() { got = append(got, 2); done <- got })
	})
	select {
	case batch := <-done:
		assert.Equal(t, []int{1, 2}, batch)
	case <-time.After(time.Second):
		t.Fatal("frame never flushed")
	}
}

func TestLoop_StopReturnsErrStopped(t *testing.T) {
	l := New("stoppable")
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(context.Background()) }()

	require.NoError(t, l.PostWait(context.Background(), func() {}))
	l.Stop()
	assert.ErrorIs(t, <-errCh, ErrStopped)
}

func TestEvery(t *testing.T) {
	l := startLoop(t)

	ticks := make(chan struct{}, 10)
	var timer Timer
	require.NoError(t, l.PostWait(context.Background(), func() {
		timer = Every(l, 5*time.Millisecond, func() { ticks <- struct{}{} })
	}))
	for i := 0; i < 3; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatal("tick missing")
		}
	}
	require.NoError(t, l.PostWait(context.Background(), func() { timer.Stop() }))
}
