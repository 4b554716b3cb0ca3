package compositor

import (
	"context"

	"github.com/bnema/twinview/internal/application/port"
	"github.com/bnema/twinview/internal/domain/entity"
	domainurl "github.com/bnema/twinview/internal/domain/url"
	"github.com/bnema/twinview/internal/logging"
)

// ShowOverlay masks every visible surface with an input-inert placeholder.
// Calling it again while overlays are shown changes nothing.
func (m *Manager) ShowOverlay(ctx context.Context) {
	if !m.windowReady(ctx, "showOverlay") {
		return
	}
	for _, s := range []*entity.Surface{m.primary, m.secondary} {
		if s == nil {
			continue
		}
		if _, shown := m.overlays[s.Role]; shown {
			continue
		}
		m.createOverlay(ctx, s)
	}
}

// HideOverlay removes the overlays. Without overlays it is a no-op.
func (m *Manager) HideOverlay(ctx context.Context) {
	for _, role := range []entity.Role{entity.RolePrimary, entity.RoleSecondary} {
		m.destroyOverlay(ctx, role)
	}
}

// OverlayShown reports whether role is currently masked.
func (m *Manager) OverlayShown(role entity.Role) bool {
	_, ok := m.overlays[role]
	return ok
}

func (m *Manager) createOverlay(ctx context.Context, s *entity.Surface) {
	log := logging.FromContext(ctx).With().Str("role", string(s.Role)).Logger()
	glyph := domainurl.Glyph(s.URL)

	id, err := m.host.CreateRegion(ctx, port.RegionSpec{Kind: port.RegionOverlay, Role: s.Role, Glyph: glyph})
	if err != nil {
		log.Warn().Err(err).Msg("failed to create overlay")
		return
	}
	if err := m.host.Attach(ctx, id); err != nil {
		log.Warn().Err(err).Msg("failed to attach overlay")
		_ = m.host.Destroy(ctx, id)
		return
	}
	if err := m.host.SetBounds(ctx, id, s.Bounds); err != nil {
		log.Warn().Err(err).Msg("failed to place overlay")
	}
	m.overlays[s.Role] = &entity.Overlay{Role: s.Role, Region: id, Bounds: s.Bounds, Glyph: glyph}
}

func (m *Manager) destroyOverlay(ctx context.Context, role entity.Role) {
	o, ok := m.overlays[role]
	if !ok {
		return
	}
	delete(m.overlays, role)
	log := logging.FromContext(ctx).With().Str("role", string(role)).Logger()
	if err := m.host.Detach(ctx, o.Region); err != nil {
		log.Debug().Err(err).Msg("failed to detach overlay")
	}
	if err := m.host.Destroy(ctx, o.Region); err != nil {
		log.Debug().Err(err).Msg("failed to destroy overlay")
	}
}
