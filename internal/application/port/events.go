package port

import (
	"context"
	"time"
)

// SecondaryCreatedEvent fires when split mode is entered.
type SecondaryCreatedEvent struct {
	URL       string
	Timestamp time.Time
}

// NavigationBlockedEvent fires when a primary navigation is redirected.
type NavigationBlockedEvent struct {
	FromURL string
	ToURL   string
}

// SplitStateChangedEvent fires after every split-flag mutation.
type SplitStateChangedEvent struct {
	IsSplit      bool
	HasSecondary bool
}

//go:generate mockery --name=EventSink --with-expecter --output=mocks --outpkg=mocks --filename=mock_event_sink.go

// EventSink receives backend events bound for the UI.
// Implementations must not block the caller.
type EventSink interface {
	SecondaryCreated(ctx context.Context, ev SecondaryCreatedEvent)
	NavigationBlocked(ctx context.Context, ev NavigationBlockedEvent)
	SplitStateChanged(ctx context.Context, ev SplitStateChangedEvent)
}

// NopEventSink discards every event.
type NopEventSink struct{}

func (NopEventSink) SecondaryCreated(context.Context, SecondaryCreatedEvent)   {}
func (NopEventSink) NavigationBlocked(context.Context, NavigationBlockedEvent) {}
func (NopEventSink) SplitStateChanged(context.Context, SplitStateChangedEvent) {}
