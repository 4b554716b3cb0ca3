// Package coordinator moves the UI between the landing state and a browsing
// session, and applies backend events to the UI state.
package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/twinview/internal/domain/entity"
	urlutil "github.com/bnema/twinview/internal/domain/url"
	"github.com/bnema/twinview/internal/ipc"
	"github.com/bnema/twinview/internal/logging"
	"github.com/bnema/twinview/internal/ui/layout"
	"github.com/bnema/twinview/internal/ui/state"
)

// ErrEmptyURL is returned by Open for blank input.
var ErrEmptyURL = errors.New("empty url")

// Backend is the slice of the message channel the session drives.
type Backend interface {
	CreatePrimary(ctx context.Context, url string, bounds entity.Rect) error
	DestroySecondary(ctx context.Context) error
	DestroyAll(ctx context.Context) error
}

// Reconciler is the part of the reconciliation loop the session controls.
type Reconciler interface {
	SetActive(active bool)
	Apply(hasSecondary bool)
}

// LayoutTrigger schedules a bounds sync.
type LayoutTrigger interface {
	TriggerInitial()
	ScheduleSettled()
}

// Option configures a Session.
type Option func(*Session)

// WithStateEvents applies splitStateChanged events immediately instead of
// waiting for the next reconciliation tick.
func WithStateEvents(enabled bool) Option {
	return func(s *Session) { s.stateEvents = enabled }
}

// Session runs on the UI loop.
type Session struct {
	ctx         context.Context
	store       *state.Store
	measurer    layout.Measurer
	backend     Backend
	layout      LayoutTrigger
	reconciler  Reconciler
	stateEvents bool
}

// NewSession builds a session coordinator.
func NewSession(ctx context.Context, store *state.Store, measurer layout.Measurer, backend Backend, trigger LayoutTrigger, reconciler Reconciler, opts ...Option) *Session {
	s := &Session{
		ctx:         logging.WithComponent(ctx, "session"),
		store:       store,
		measurer:    measurer,
		backend:     backend,
		layout:      trigger,
		reconciler:  reconciler,
		stateEvents: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open leaves the landing state and asks the backend for a primary surface.
// An existing session is torn down first.
func (s *Session) Open(input string) error {
	target := urlutil.Normalize(input)
	if target == "" {
		return ErrEmptyURL
	}
	log := logging.FromContext(s.ctx)

	if s.store.Snapshot().HasPrimary {
		if err := s.backend.DestroyAll(s.ctx); err != nil {
			log.Warn().Err(err).Msg("failed to tear down previous session")
		}
		s.store.Reset()
	}

	s.store.OpenPrimary(target)
	bounds, ok := s.measurer.Measure(entity.RolePrimary)
	if !ok {
		log.Debug().Msg("primary placeholder not laid out yet")
	}
	if err := s.backend.CreatePrimary(s.ctx, target, bounds); err != nil {
		return fmt.Errorf("create primary: %w", err)
	}

	s.layout.TriggerInitial()
	s.reconciler.SetActive(true)
	log.Info().Str("url", logging.TruncateURL(target, 80)).Msg("session opened")
	return nil
}

// CloseSecondary leaves split mode.
func (s *Session) CloseSecondary() {
	if !s.store.Snapshot().HasPrimary {
		return
	}
	if err := s.backend.DestroySecondary(s.ctx); err != nil {
		logging.FromContext(s.ctx).Warn().Err(err).Msg("failed to destroy secondary")
	}
	s.store.CloseSecondary()
}

// Close ends the session and returns to landing.
func (s *Session) Close() {
	if !s.store.Snapshot().HasPrimary {
		return
	}
	if err := s.backend.DestroyAll(s.ctx); err != nil {
		logging.FromContext(s.ctx).Warn().Err(err).Msg("failed to destroy surfaces")
	}
	s.reconciler.SetActive(false)
	s.store.Reset()
	logging.FromContext(s.ctx).Info().Msg("session closed")
}

// HandleEvent applies a backend event. Call it on the UI loop.
func (s *Session) HandleEvent(ev ipc.Event) {
	log := logging.FromContext(s.ctx)
	snap := s.store.Snapshot()

	switch ev.Kind {
	case ipc.KindSecondaryCreated:
		if !snap.HasPrimary {
			log.Debug().Msg("ignoring secondaryCreated outside a session")
			return
		}
		s.store.SetSecondaryURL(ev.SecondaryCreated.URL)
		s.store.SetSplit(true)
		s.layout.ScheduleSettled()
	case ipc.KindNavigationBlocked:
		s.store.SetNotice(fmt.Sprintf("opened %s beside %s",
			urlutil.ExtractDomain(ev.NavigationBlocked.ToURL),
			urlutil.ExtractDomain(ev.NavigationBlocked.FromURL)))
		s.store.SetSecondaryURL(ev.NavigationBlocked.ToURL)
	case ipc.KindSplitStateChanged:
		if s.stateEvents && snap.HasPrimary {
			s.reconciler.Apply(ev.SplitStateChanged.HasSecondary)
		}
	default:
		log.Debug().Str("kind", string(ev.Kind)).Msg("unhandled event")
	}
}
