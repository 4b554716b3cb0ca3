package compositor

import (
	"context"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/domain/viewport"
	"github.com/bnema/twinview/internal/logging"
)

// applyViewport switches the emulated device profile when the surface width
// crosses a breakpoint.
func (m *Manager) applyViewport(ctx context.Context, s *entity.Surface) {
	if !m.cfg.EmulateViewport {
		return
	}
	name := m.cfg.Breakpoints.Select(s.Bounds.Width)
	if name == s.Viewport {
		return
	}
	profile, ok := viewport.Lookup(name)
	if !ok {
		return
	}
	log := logging.FromContext(ctx).With().
		Str("profile", string(name)).
		Int("width", s.Bounds.Width).
		Logger()

	if err := m.host.SetUserAgent(ctx, s.Region, profile.UserAgent); err != nil {
		log.Warn().Err(err).Msg("failed to set user agent")
		return
	}
	if profile.CSS != "" {
		if err := m.host.InjectCSS(ctx, s.Region, profile.CSS); err != nil {
			log.Warn().Err(err).Msg("failed to inject viewport css")
		}
	}
	s.Viewport = name
	log.Debug().Msg("viewport profile applied")
}
