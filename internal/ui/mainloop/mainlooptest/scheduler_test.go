package mainlooptest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/twinview/internal/ui/mainloop"
)

func TestScheduler_AdvanceFiresInOrder(t *testing.T) {
	s := New(time.Unix(0, 0))
	var got []string

	s.After(30*time.Millisecond, func() { got = append(got, "c") })
	s.After(10*time.Millisecond, func() { got = append(got, "a") })
	s.After(10*time.Millisecond, func() { got = append(got, "b") })

	s.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)

	s.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, time.Unix(0, 0).Add(30*time.Millisecond), s.Now())
}

func TestScheduler_StoppedTimerNeverFires(t *testing.T) {
	s := New(time.Unix(0, 0))
	fired := false
	tm := s.After(time.Millisecond, func() { fired = true })
	assert.True(t, tm.Stop())
	s.Advance(time.Second)
	assert.False(t, fired)
	assert.Zero(t, s.PendingTimers())
}

func TestScheduler_TimerArmedByTimerFiresWithinAdvance(t *testing.T) {
	s := New(time.Unix(0, 0))
	count := 0
	mainloop.Every(s, 100*time.Millisecond, func() { count++ })

	s.Advance(350 * time.Millisecond)
	assert.Equal(t, 3, count)
}

func TestScheduler_RunPendingDrainsNestedPosts(t *testing.T) {
	s := New(time.Unix(0, 0))
	var got []int
	s.Post(func() {
		got = append(got, 1)
		s.Post(func() { got = append(got, 2) })
	})
	assert.Equal(t, 2, s.RunPending())
	assert.Equal(t, []int{1, 2}, got)
}
