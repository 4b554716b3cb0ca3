package compositor

import (
	"context"

	"github.com/bnema/twinview/internal/application/port"
	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/logging"
)

// CreatePrimary replaces any existing primary with a fresh surface loading
// url and starts a new session.
func (m *Manager) CreatePrimary(ctx context.Context, url string, bounds entity.Rect) {
	if !m.windowReady(ctx, "createPrimary") {
		return
	}
	log := logging.FromContext(ctx)

	if m.primary != nil {
		m.destroyOverlay(ctx, entity.RolePrimary)
		m.teardownSurface(ctx, m.primary)
		m.primary = nil
	}

	m.sessionID = newSessionID()
	m.dedupe.Reset()
	ctx = logging.WithSession(ctx, m.sessionID)
	log = logging.FromContext(ctx)

	s, ok := m.buildSurface(ctx, entity.RolePrimary, url, bounds)
	if !ok {
		return
	}
	m.primary = s
	m.host.SetNavigationHandler(s.Region, m.handleNavigation)

	log.Info().
		Str("url", logging.TruncateURL(url, 80)).
		Stringer("bounds", s.Bounds).
		Msg("primary surface created")
}

// CreateOrUpdateSecondary enters split mode with a new secondary, or loads
// url into the existing one and moves it to bounds.
func (m *Manager) CreateOrUpdateSecondary(ctx context.Context, url string, bounds entity.Rect) {
	if !m.windowReady(ctx, "createOrUpdateSecondary") {
		return
	}
	log := logging.FromContext(ctx)

	if m.secondary != nil {
		m.UpdateBounds(ctx, entity.RoleSecondary, bounds)
		if err := m.host.LoadURL(ctx, m.secondary.Region, url); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("failed to load secondary url")
			return
		}
		m.secondary.URL = url
		m.recordVisit(ctx, m.secondary)
		log.Debug().Str("url", logging.TruncateURL(url, 80)).Msg("secondary surface updated")
		return
	}

	s, ok := m.buildSurface(ctx, entity.RoleSecondary, url, bounds)
	if !ok {
		return
	}
	m.secondary = s
	m.setSplit(ctx, true)
	m.events.SecondaryCreated(ctx, port.SecondaryCreatedEvent{URL: url, Timestamp: m.sched.Now()})

	log.Info().
		Str("url", logging.TruncateURL(url, 80)).
		Stringer("bounds", s.Bounds).
		Msg("secondary surface created")
}

func (m *Manager) buildSurface(ctx context.Context, role entity.Role, url string, bounds entity.Rect) (*entity.Surface, bool) {
	ctx = logging.WithRole(ctx, string(role))
	log := logging.FromContext(ctx)

	id, err := m.host.CreateRegion(ctx, port.RegionSpec{Kind: port.RegionContent, Role: role})
	if err != nil {
		log.Warn().Err(err).Msg("failed to create region")
		return nil, false
	}
	s := &entity.Surface{Role: role, Region: id, CreatedAt: m.sched.Now()}

	if err := m.host.Attach(ctx, id); err != nil {
		log.Warn().Err(err).Msg("failed to attach region")
		if derr := m.host.Destroy(ctx, id); derr != nil {
			log.Debug().Err(derr).Msg("failed to destroy unattached region")
		}
		return nil, false
	}

	m.placeSurface(ctx, s, bounds)

	if err := m.host.LoadURL(ctx, id, url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("failed to load url")
	}
	s.URL = url
	m.recordVisit(ctx, s)
	return s, true
}

func (m *Manager) placeSurface(ctx context.Context, s *entity.Surface, bounds entity.Rect) {
	bounds = bounds.Normalize()
	if err := m.host.SetBounds(ctx, s.Region, bounds); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to set bounds")
		return
	}
	s.Bounds = bounds
	s.HasBounds = true
	m.applyViewport(ctx, s)
}

// UpdateBounds moves the surface for role, and its overlay when shown.
// A missing surface is a no-op.
func (m *Manager) UpdateBounds(ctx context.Context, role entity.Role, bounds entity.Rect) {
	if !m.windowReady(ctx, "updateBounds") {
		return
	}
	ctx = logging.WithRole(ctx, string(role))
	s := m.surface(role)
	if s == nil {
		logging.FromContext(ctx).Debug().Msg("updateBounds: no such surface")
		return
	}
	m.placeSurface(ctx, s, bounds)

	if o, ok := m.overlays[role]; ok {
		if err := m.host.SetBounds(ctx, o.Region, s.Bounds); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("failed to move overlay")
			return
		}
		o.Bounds = s.Bounds
	}
}

// DestroySecondary leaves split mode.
func (m *Manager) DestroySecondary(ctx context.Context) {
	if !m.windowReady(ctx, "destroySecondary") {
		return
	}
	if m.secondary == nil {
		logging.FromContext(ctx).Debug().Msg("destroySecondary: no secondary")
		m.setSplit(ctx, false)
		return
	}
	m.destroyOverlay(ctx, entity.RoleSecondary)
	m.teardownSurface(ctx, m.secondary)
	m.secondary = nil
	m.ratio = entity.DefaultRatio
	m.setSplit(ctx, false)
	logging.FromContext(ctx).Info().Msg("secondary surface destroyed")
}

// DestroyAll tears down every surface and overlay.
func (m *Manager) DestroyAll(ctx context.Context) {
	wasSplit := m.isSplit

	for _, role := range []entity.Role{entity.RolePrimary, entity.RoleSecondary} {
		m.destroyOverlay(ctx, role)
	}
	if m.secondary != nil {
		m.teardownSurface(ctx, m.secondary)
		m.secondary = nil
	}
	if m.primary != nil {
		m.teardownSurface(ctx, m.primary)
		m.primary = nil
	}

	m.isSplit = false
	m.ratio = entity.DefaultRatio
	m.sessionID = ""
	m.dedupe.Reset()

	if wasSplit {
		m.events.SplitStateChanged(ctx, port.SplitStateChangedEvent{})
	}
	logging.FromContext(ctx).Debug().Msg("all surfaces destroyed")
}

func (m *Manager) teardownSurface(ctx context.Context, s *entity.Surface) {
	log := logging.FromContext(ctx).With().Str("role", string(s.Role)).Logger()
	m.host.SetNavigationHandler(s.Region, nil)
	if err := m.host.Detach(ctx, s.Region); err != nil {
		log.Warn().Err(err).Msg("failed to detach region")
	}
	if err := m.host.Destroy(ctx, s.Region); err != nil {
		log.Warn().Err(err).Msg("failed to destroy region")
	}
}

// SetRatio stores the clamped ratio and lays both surfaces out from it.
// Without a secondary the primary takes the full width.
func (m *Manager) SetRatio(ctx context.Context, ratio float64) {
	old := m.ratio
	m.ratio = entity.ClampRatio(ratio)

	logging.FromContext(ctx).Debug().
		Float64("old_ratio", old).
		Float64("new_ratio", m.ratio).
		Msg("split ratio set")

	if !m.windowReady(ctx, "setRatio") {
		return
	}
	window := m.host.WindowSize()
	if m.isSplit && m.secondary != nil {
		primary, secondary := entity.SplitBounds(window, m.ratio, m.cfg.Layout)
		m.UpdateBounds(ctx, entity.RolePrimary, primary)
		m.UpdateBounds(ctx, entity.RoleSecondary, secondary)
		return
	}
	m.UpdateBounds(ctx, entity.RolePrimary, entity.FullBounds(window, m.cfg.Layout))
}
