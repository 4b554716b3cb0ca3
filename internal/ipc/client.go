package ipc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/logging"
)

// EventHandler is called for every backend event, on the client's reader
// goroutine. Handlers should post work to their own loop.
type EventHandler func(ev Event)

// Client is the UI side of the message channel. Outgoing frames go through
// a bounded queue drained by Run, so callers never wait on the network.
type Client struct {
	conn   Conn
	nextID atomic.Uint64
	out    chan Frame

	mu       sync.Mutex
	pending  map[uint64]chan *Response
	handlers []EventHandler
	closed   bool
	done     chan struct{}
}

// NewClient wraps conn. Call Run to start reading.
func NewClient(conn Conn) *Client {
	return &Client{
		conn:    conn,
		out:     make(chan Frame, outboundBuffer),
		pending: make(map[uint64]chan *Response),
		done:    make(chan struct{}),
	}
}

// OnEvent registers an event handler.
func (c *Client) OnEvent(handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Run reads frames until the connection closes or ctx ends. Pending
// requests fail with ErrClosed when it returns.
func (c *Client) Run(ctx context.Context) error {
	defer c.shutdown()
	log := logging.FromContext(ctx)

	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.writeLoop(writeCtx)

	for {
		f, err := c.conn.Recv(ctx)
		if err != nil {
			if errors.Is(err, ErrClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("receive frame: %w", err)
		}

		switch {
		case f.Response != nil:
			c.resolve(f)
		case f.Kind.IsEvent():
			ev, err := DecodeEvent(f)
			if err != nil {
				log.Warn().Err(err).Msg("skipping malformed event")
				continue
			}
			c.emit(ev)
		default:
			log.Debug().Str("kind", string(f.Kind)).Msg("ignoring unexpected frame")
		}
	}
}

func (c *Client) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-c.out:
			if err := c.conn.Send(ctx, f); err != nil {
				if !errors.Is(err, ErrClosed) && !errors.Is(err, context.Canceled) {
					logging.FromContext(ctx).Warn().Err(err).Str("kind", string(f.Kind)).Msg("write failed, closing connection")
				}
				_ = c.conn.Close()
				return
			}
		}
	}
}

// enqueue hands f to the writer without blocking.
func (c *Client) enqueue(ctx context.Context, f Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.out <- f:
		return nil
	default:
		logging.FromContext(ctx).Warn().Str("kind", string(f.Kind)).Msg("outbound queue full, dropping frame")
		return ErrQueueFull
	}
}

func (c *Client) resolve(f Frame) {
	c.mu.Lock()
	ch, ok := c.pending[f.ID]
	delete(c.pending, f.ID)
	c.mu.Unlock()
	if ok {
		ch <- f.Response
	}
}

func (c *Client) emit(ev Event) {
	c.mu.Lock()
	handlers := make([]EventHandler, len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	c.pending = make(map[uint64]chan *Response)
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) send(ctx context.Context, kind Kind, payload any) error {
	f, err := NewFrame(kind, payload)
	if err != nil {
		return err
	}
	f.ID = c.nextID.Add(1)
	return c.enqueue(ctx, f)
}

func (c *Client) request(ctx context.Context, kind Kind, into any) error {
	f, err := NewFrame(kind, nil)
	if err != nil {
		return err
	}
	f.ID = c.nextID.Add(1)
	ch := make(chan *Response, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.pending[f.ID] = ch
	c.mu.Unlock()

	forget := func() {
		c.mu.Lock()
		delete(c.pending, f.ID)
		c.mu.Unlock()
	}

	if err := c.enqueue(ctx, f); err != nil {
		forget()
		return fmt.Errorf("send %s: %w", kind, err)
	}

	select {
	case resp := <-ch:
		return resp.Decode(into)
	case <-ctx.Done():
		forget()
		return ctx.Err()
	case <-c.done:
		return ErrClosed
	}
}

func (c *Client) CreatePrimary(ctx context.Context, url string, bounds entity.Rect) error {
	return c.send(ctx, KindCreatePrimary, CreatePrimaryPayload{URL: url, Bounds: bounds})
}

func (c *Client) UpdateBounds(ctx context.Context, role entity.Role, bounds entity.Rect) error {
	return c.send(ctx, KindUpdateBounds, UpdateBoundsPayload{Role: role, Bounds: bounds})
}

func (c *Client) DestroySecondary(ctx context.Context) error {
	return c.send(ctx, KindDestroySecondary, nil)
}

func (c *Client) DestroyAll(ctx context.Context) error {
	return c.send(ctx, KindDestroyAll, nil)
}

func (c *Client) UpdateSplitRatio(ctx context.Context, ratio float64) error {
	return c.send(ctx, KindUpdateSplitRatio, UpdateSplitRatioPayload{Ratio: ratio})
}

func (c *Client) ShowOverlay(ctx context.Context) error {
	return c.send(ctx, KindShowOverlay, nil)
}

func (c *Client) HideOverlay(ctx context.Context) error {
	return c.send(ctx, KindHideOverlay, nil)
}

// SimulateNavigation asks the host to report a navigation on role, as if
// the user had followed a link there.
func (c *Client) SimulateNavigation(ctx context.Context, role entity.Role, url string, newWindow bool) error {
	return c.send(ctx, KindSimulateNavigation, SimulateNavigationPayload{Role: role, URL: url, NewWindow: newWindow})
}

// GetStatus returns whether the backend is split.
func (c *Client) GetStatus(ctx context.Context) (bool, error) {
	var split bool
	if err := c.request(ctx, KindGetStatus, &split); err != nil {
		return false, err
	}
	return split, nil
}

// GetDetailedStatus returns the authoritative split snapshot.
func (c *Client) GetDetailedStatus(ctx context.Context) (entity.SplitStatus, error) {
	var status entity.SplitStatus
	if err := c.request(ctx, KindGetDetailedStatus, &status); err != nil {
		return entity.SplitStatus{}, err
	}
	return status, nil
}
