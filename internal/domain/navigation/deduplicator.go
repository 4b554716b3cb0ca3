package navigation

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// DefaultDedupeWindow matches how closely an engine reports one click as
// both a link follow and a new-window request.
const DefaultDedupeWindow = 200 * time.Millisecond

type fingerprint struct {
	target string
	seenAt time.Time
}

// Deduplicator drops repeated attempts for the same target within a window.
type Deduplicator struct {
	mu          sync.Mutex
	recent      map[string]fingerprint
	window      time.Duration
	lastCleanup time.Time
}

// NewDeduplicator returns a Deduplicator; window <= 0 uses DefaultDedupeWindow.
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = DefaultDedupeWindow
	}
	return &Deduplicator{
		recent: make(map[string]fingerprint),
		window: window,
	}
}

func (d *Deduplicator) key(source, target string) string {
	sum := sha256.Sum256([]byte(source + "\x00" + target))
	return hex.EncodeToString(sum[:8])
}

// IsDuplicate records the attempt and reports whether an identical one was
// seen less than the window ago.
func (d *Deduplicator) IsDuplicate(source, target string, now time.Time) (bool, string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if now.Sub(d.lastCleanup) > 25*d.window {
		d.cleanup(now)
	}

	key := d.key(source, target)
	if prev, ok := d.recent[key]; ok {
		if elapsed := now.Sub(prev.seenAt); elapsed >= 0 && elapsed < d.window {
			return true, fmt.Sprintf("duplicate navigation to %s within %v", target, elapsed)
		}
	}

	d.recent[key] = fingerprint{target: target, seenAt: now}
	return false, ""
}

// Reset forgets every recorded attempt.
func (d *Deduplicator) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recent = make(map[string]fingerprint)
}

func (d *Deduplicator) cleanup(now time.Time) {
	for key, fp := range d.recent {
		if now.Sub(fp.seenAt) > 3*d.window {
			delete(d.recent, key)
		}
	}
	d.lastCleanup = now
}
