package mainloop

import "sync"

type coalesced struct {
	fn        func()
	scheduled bool
}

// Coalescer merges bursts of same-key tasks into one run of the latest task.
// The post function decides when the merged task runs (next turn, next frame).
type Coalescer struct {
	mu      sync.Mutex
	entries map[string]*coalesced
	post    func(func())
	closed  bool
}

func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}
	return &Coalescer{
		entries: make(map[string]*coalesced),
		post:    post,
	}
}

// Post replaces the pending task for key, scheduling it if none is queued.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	entry, ok := c.entries[key]
	if !ok {
		entry = &coalesced{}
		c.entries[key] = entry
	}
	entry.fn = fn
	if entry.scheduled {
		c.mu.Unlock()
		return
	}
	entry.scheduled = true
	c.mu.Unlock()

	c.post(func() { c.fire(key, entry) })
}

func (c *Coalescer) fire(key string, entry *coalesced) {
	c.mu.Lock()
	current, ok := c.entries[key]
	if c.closed || !ok || current != entry {
		c.mu.Unlock()
		return
	}
	fn := entry.fn
	delete(c.entries, key)
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Pending reports whether a task for key is waiting to run.
func (c *Coalescer) Pending(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Cancel drops the pending task for key.
func (c *Coalescer) Cancel(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Destroy drops all pending work and ignores later posts.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.closed = true
	c.entries = map[string]*coalesced{}
	c.mu.Unlock()
}
