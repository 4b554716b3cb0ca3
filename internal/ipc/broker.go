package ipc

import (
	"context"
	"sync"

	"github.com/bnema/twinview/internal/application/port"
	"github.com/bnema/twinview/internal/logging"
)

type subscriber struct {
	ch chan Frame
}

// Broker fans backend events out to every connected UI. It implements
// port.EventSink; slow subscribers drop events rather than block the loop.
type Broker struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

var _ port.EventSink = (*Broker)(nil)

// NewBroker creates a new broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[*subscriber]struct{})}
}

// Subscribe registers a subscriber for every event.
func (b *Broker) Subscribe() *Subscription {
	sub := &subscriber{ch: make(chan Frame, 64)}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return &Subscription{broker: b, sub: sub}
}

// Publish broadcasts an event frame.
func (b *Broker) Publish(ctx context.Context, f Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.ch <- f:
		default:
			logging.FromContext(ctx).Warn().Str("kind", string(f.Kind)).Msg("dropping event for slow subscriber")
		}
	}
}

func (b *Broker) publish(ctx context.Context, kind Kind, payload any) {
	f, err := NewFrame(kind, payload)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to encode event")
		return
	}
	b.Publish(ctx, f)
}

func (b *Broker) SecondaryCreated(ctx context.Context, ev port.SecondaryCreatedEvent) {
	b.publish(ctx, KindSecondaryCreated, SecondaryCreatedPayload{URL: ev.URL, Timestamp: ev.Timestamp.UnixMilli()})
}

func (b *Broker) NavigationBlocked(ctx context.Context, ev port.NavigationBlockedEvent) {
	b.publish(ctx, KindNavigationBlocked, NavigationBlockedPayload{FromURL: ev.FromURL, ToURL: ev.ToURL})
}

func (b *Broker) SplitStateChanged(ctx context.Context, ev port.SplitStateChangedEvent) {
	b.publish(ctx, KindSplitStateChanged, SplitStateChangedPayload{IsSplit: ev.IsSplit, HasSecondary: ev.HasSecondary})
}

// Subscription represents an active broker subscription.
type Subscription struct {
	broker *Broker
	sub    *subscriber
	once   sync.Once
}

// Chan exposes the event channel. It is closed by Close.
func (s *Subscription) Chan() <-chan Frame {
	return s.sub.ch
}

// Close removes the subscription.
func (s *Subscription) Close() {
	if s == nil || s.broker == nil || s.sub == nil {
		return
	}
	s.once.Do(func() {
		s.broker.mu.Lock()
		delete(s.broker.subs, s.sub)
		s.broker.mu.Unlock()
		close(s.sub.ch)
	})
}
