package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/twinview/internal/logging"
)

// Handler handles a decoded message payload.
type Handler interface {
	Handle(ctx context.Context, payload json.RawMessage) (any, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Handle calls f(ctx, payload).
func (f HandlerFunc) Handle(ctx context.Context, payload json.RawMessage) (any, error) {
	return f(ctx, payload)
}

// Router dispatches frames to registered handlers.
type Router struct {
	mu       sync.RWMutex
	handlers map[Kind]Handler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{handlers: make(map[Kind]Handler)}
}

// RegisterHandler registers a handler for a message kind.
func (r *Router) RegisterHandler(kind Kind, handler Handler) error {
	if kind == "" {
		return errors.New("message kind cannot be empty")
	}
	if handler == nil {
		return errors.New("message handler cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = handler
	return nil
}

// Dispatch runs the handler for f. Handler errors and panics are reported
// as failed responses.
func (r *Router) Dispatch(ctx context.Context, f Frame) (resp *Response) {
	log := logging.FromContext(ctx).With().Str("kind", string(f.Kind)).Uint64("id", f.ID).Logger()

	r.mu.RLock()
	handler, ok := r.handlers[f.Kind]
	r.mu.RUnlock()
	if !ok {
		log.Error().Msg("no handler registered")
		return Fail(fmt.Errorf("%w: %s", ErrUnknownKind, f.Kind))
	}

	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Msg("handler panicked")
			resp = Fail(fmt.Errorf("handler panic: %v", p))
		}
	}()

	data, err := handler.Handle(ctx, f.Payload)
	if err != nil {
		log.Error().Err(err).Msg("handler failed")
		return Fail(err)
	}
	return OK(data)
}

// Decode is a helper for handlers: it unmarshals payload into a T.
func Decode[T any](payload json.RawMessage) (T, error) {
	var v T
	if len(payload) == 0 {
		return v, errors.New("missing payload")
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, fmt.Errorf("decode payload: %w", err)
	}
	return v, nil
}
