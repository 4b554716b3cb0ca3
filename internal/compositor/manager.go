// Package compositor owns the content surfaces of the split view: their
// lifecycle, their geometry, and the policy that redirects primary
// navigations into the secondary surface.
//
// Every Manager method must be called from the backend loop.
package compositor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/twinview/internal/application/port"
	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/domain/navigation"
	"github.com/bnema/twinview/internal/domain/viewport"
	"github.com/bnema/twinview/internal/logging"
	"github.com/bnema/twinview/internal/ui/mainloop"
)

// ErrNoWindow means the host has no main window. It is logged, never returned.
var ErrNoWindow = errors.New("main window not available")

// Config tunes geometry and emulation.
type Config struct {
	Layout          entity.LayoutMetrics
	Breakpoints     viewport.Breakpoints
	EmulateViewport bool
	DedupeWindow    time.Duration
}

// DefaultConfig returns the stock layout metrics and breakpoints.
func DefaultConfig() Config {
	return Config{
		Layout:          entity.LayoutMetrics{HeaderHeight: 40, DividerGap: 4},
		Breakpoints:     viewport.DefaultBreakpoints(),
		EmulateViewport: true,
		DedupeWindow:    navigation.DefaultDedupeWindow,
	}
}

// Manager is the authoritative owner of surfaces and overlays.
type Manager struct {
	host   port.SurfaceHost
	sched  mainloop.Scheduler
	events port.EventSink
	visits port.VisitRecorder
	cfg    Config
	dedupe *navigation.Deduplicator

	// baseCtx carries the logger for host callbacks that arrive without one.
	baseCtx context.Context

	primary   *entity.Surface
	secondary *entity.Surface
	overlays  map[entity.Role]*entity.Overlay

	isSplit     bool
	ratio       float64
	sessionID   string
	initialized bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithConfig overrides DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.cfg = cfg }
}

// WithVisitRecorder journals every surface load.
func WithVisitRecorder(r port.VisitRecorder) Option {
	return func(m *Manager) { m.visits = r }
}

// NewManager creates a Manager. events may be nil.
func NewManager(host port.SurfaceHost, sched mainloop.Scheduler, events port.EventSink, opts ...Option) *Manager {
	if events == nil {
		events = port.NopEventSink{}
	}
	m := &Manager{
		host:     host,
		sched:    sched,
		events:   events,
		cfg:      DefaultConfig(),
		overlays: make(map[entity.Role]*entity.Overlay),
		ratio:    entity.DefaultRatio,
		baseCtx:  context.Background(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.dedupe = navigation.NewDeduplicator(m.cfg.DedupeWindow)
	return m
}

// Init binds the manager to ctx for host callbacks.
func (m *Manager) Init(ctx context.Context) {
	m.baseCtx = logging.WithComponent(ctx, "compositor")
	m.initialized = true
	m.host.SetCommitHandler(m.handleCommit)
	logging.FromContext(m.baseCtx).Debug().Msg("compositor initialized")
}

// Teardown destroys every surface and disarms hooks.
func (m *Manager) Teardown(ctx context.Context) {
	m.DestroyAll(ctx)
	m.host.SetCommitHandler(nil)
	m.initialized = false
	logging.FromContext(ctx).Debug().Msg("compositor torn down")
}

// SplitState returns the authoritative snapshot.
func (m *Manager) SplitState() entity.SplitStatus {
	status := entity.SplitStatus{
		IsSplit:      m.isSplit,
		HasSecondary: m.secondary != nil,
	}
	if m.primary != nil {
		status.PrimaryURL = m.primary.URL
	}
	if m.secondary != nil {
		status.SecondaryURL = m.secondary.URL
	}
	return status
}

// Ratio returns the stored split ratio.
func (m *Manager) Ratio() float64 {
	return m.ratio
}

// SessionID identifies the current primary session; empty on landing.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Surface returns a copy of the surface for role.
func (m *Manager) Surface(role entity.Role) (entity.Surface, bool) {
	if s := m.surface(role); s != nil {
		return *s, true
	}
	return entity.Surface{}, false
}

func (m *Manager) surface(role entity.Role) *entity.Surface {
	switch role {
	case entity.RolePrimary:
		return m.primary
	case entity.RoleSecondary:
		return m.secondary
	default:
		return nil
	}
}

func (m *Manager) windowReady(ctx context.Context, op string) bool {
	if m.host.WindowAvailable() {
		return true
	}
	logging.FromContext(ctx).Warn().Err(ErrNoWindow).Str("op", op).Msg("ignoring surface operation")
	return false
}

func (m *Manager) setSplit(ctx context.Context, split bool) {
	if m.isSplit == split {
		return
	}
	m.isSplit = split
	m.events.SplitStateChanged(ctx, port.SplitStateChangedEvent{
		IsSplit:      m.isSplit,
		HasSecondary: m.secondary != nil,
	})
}

func (m *Manager) recordVisit(ctx context.Context, s *entity.Surface) {
	if m.visits == nil {
		return
	}
	m.visits.RecordVisit(ctx, entity.Visit{
		SessionID: m.sessionID,
		Role:      s.Role,
		URL:       s.URL,
		VisitedAt: m.sched.Now(),
	})
}

func newSessionID() string {
	return uuid.NewString()
}
