package ipc

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/twinview/internal/logging"
	"github.com/bnema/twinview/internal/ui/mainloop"
)

// outboundBuffer bounds responses waiting to be written per connection.
const outboundBuffer = 256

// Server runs routed handlers on the backend loop for each connection.
type Server struct {
	router *Router
	sched  mainloop.Scheduler
	broker *Broker
}

// NewServer creates a server. broker may be nil when no events are sent.
func NewServer(router *Router, sched mainloop.Scheduler, broker *Broker) *Server {
	return &Server{router: router, sched: sched, broker: broker}
}

// ServeConn reads frames from conn until it closes or ctx ends. Every frame
// is dispatched on the loop in arrival order; responses and events are
// written from a separate goroutine so the loop never waits on the wire.
func (s *Server) ServeConn(ctx context.Context, conn Conn) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	log := logging.FromContext(ctx)

	out := make(chan Frame, outboundBuffer)
	var events <-chan Frame
	if s.broker != nil {
		sub := s.broker.Subscribe()
		defer sub.Close()
		events = sub.Chan()
	}

	writeErr := make(chan error, 1)
	go func() {
		writeErr <- s.writeLoop(ctx, conn, out, events)
	}()

	for {
		f, err := conn.Recv(ctx)
		if err != nil {
			cancel()
			<-writeErr
			if errors.Is(err, ErrClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("receive frame: %w", err)
		}
		if f.Response != nil {
			log.Debug().Str("kind", string(f.Kind)).Msg("ignoring stray response frame")
			continue
		}

		frame := f
		s.sched.Post(func() {
			resp := s.router.Dispatch(ctx, frame)
			if !frame.Kind.IsRequest() {
				return
			}
			reply := Frame{ID: frame.ID, Kind: frame.Kind, Response: resp}
			select {
			case out <- reply:
			default:
				log.Error().Str("kind", string(frame.Kind)).Msg("outbound queue full, dropping response")
			}
		})
	}
}

func (s *Server) writeLoop(ctx context.Context, conn Conn, out <-chan Frame, events <-chan Frame) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case f := <-out:
			if err := conn.Send(ctx, f); err != nil {
				return err
			}
		case f, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if err := conn.Send(ctx, f); err != nil {
				return err
			}
		}
	}
}
