// Package state holds the UI's cached view of the split. The backend is
// authoritative; this cache may drift until reconciliation corrects it.
package state

import (
	"sort"

	"github.com/bnema/twinview/internal/domain/entity"
)

// Snapshot is an immutable copy of the UI state.
type Snapshot struct {
	IsSplit    bool
	Ratio      float64
	WindowSize entity.Size
	// TransitionsEnabled is false while the divider is being dragged.
	TransitionsEnabled bool

	HasPrimary   bool
	PrimaryURL   string
	SecondaryURL string
	Notice       string
}

// Listener receives the state before and after a change.
type Listener func(prev, next Snapshot)

// Store owns the UI state. It is not safe for concurrent use: call it only
// from the UI loop.
type Store struct {
	current   Snapshot
	listeners map[int]Listener
	nextID    int
}

// NewStore returns a store in the landing state.
func NewStore() *Store {
	return &Store{
		current: Snapshot{
			Ratio:              entity.DefaultRatio,
			TransitionsEnabled: true,
		},
		listeners: make(map[int]Listener),
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	return s.current
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() { delete(s.listeners, id) }
}

func (s *Store) update(mutate func(*Snapshot)) {
	prev := s.current
	next := prev
	mutate(&next)
	if next == prev {
		return
	}
	s.current = next
	for _, id := range s.sortedIDs() {
		if l, ok := s.listeners[id]; ok {
			l(prev, next)
		}
	}
}

func (s *Store) sortedIDs() []int {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *Store) SetSplit(split bool) {
	s.update(func(st *Snapshot) { st.IsSplit = split })
}

// SetRatio stores the clamped ratio.
func (s *Store) SetRatio(ratio float64) {
	s.update(func(st *Snapshot) { st.Ratio = entity.ClampRatio(ratio) })
}

func (s *Store) SetWindowSize(size entity.Size) {
	s.update(func(st *Snapshot) { st.WindowSize = size })
}

func (s *Store) SetTransitionsEnabled(enabled bool) {
	s.update(func(st *Snapshot) { st.TransitionsEnabled = enabled })
}

// OpenPrimary leaves the landing state.
func (s *Store) OpenPrimary(url string) {
	s.update(func(st *Snapshot) {
		st.HasPrimary = true
		st.PrimaryURL = url
		st.IsSplit = false
		st.Ratio = entity.DefaultRatio
		st.SecondaryURL = ""
		st.Notice = ""
	})
}

func (s *Store) SetSecondaryURL(url string) {
	s.update(func(st *Snapshot) { st.SecondaryURL = url })
}

func (s *Store) SetNotice(notice string) {
	s.update(func(st *Snapshot) { st.Notice = notice })
}

// CloseSecondary drops split mode locally and resets the ratio.
func (s *Store) CloseSecondary() {
	s.update(func(st *Snapshot) {
		st.IsSplit = false
		st.Ratio = entity.DefaultRatio
		st.SecondaryURL = ""
	})
}

// Reset returns to the landing state, keeping the window size.
func (s *Store) Reset() {
	s.update(func(st *Snapshot) {
		*st = Snapshot{
			Ratio:              entity.DefaultRatio,
			TransitionsEnabled: true,
			WindowSize:         st.WindowSize,
		}
	})
}
