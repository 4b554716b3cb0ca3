package compositor

import (
	"github.com/bnema/twinview/internal/application/port"
	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/domain/navigation"
	"github.com/bnema/twinview/internal/logging"
)

// handleNavigation is the hook armed on the primary region. Redirected
// navigations are cancelled at once; the secondary is created on a later
// loop turn.
func (m *Manager) handleNavigation(req port.NavigationRequest) port.NavigationVerdict {
	ctx := m.baseCtx
	log := logging.FromContext(ctx)

	if m.primary == nil || m.primary.Region != req.Region {
		return port.NavigationAllow
	}

	var bounds *entity.Rect
	if m.primary.HasBounds {
		b := m.primary.Bounds
		bounds = &b
	}
	decision := navigation.Decide(bounds, m.host.WindowSize(), navigation.Attempt{
		Source:     entity.RolePrimary,
		CurrentURL: m.primary.URL,
		TargetURL:  req.TargetURL,
		NewWindow:  req.NewWindow,
		Split:      m.isSplit && m.secondary != nil,
		DividerGap: m.cfg.Layout.DividerGap,
	})
	if !decision.Redirect {
		log.Debug().
			Str("target", logging.TruncateURL(req.TargetURL, 80)).
			Str("reason", string(decision.Reason)).
			Msg("navigation allowed in place")
		return port.NavigationAllow
	}

	if dup, reason := m.dedupe.IsDuplicate(string(entity.RolePrimary), req.TargetURL, m.sched.Now()); dup {
		log.Debug().Str("reason", reason).Msg("dropping duplicate navigation")
		return port.NavigationCancel
	}

	from := m.primary.URL
	m.events.NavigationBlocked(ctx, port.NavigationBlockedEvent{FromURL: from, ToURL: req.TargetURL})
	log.Info().
		Str("from", logging.TruncateURL(from, 80)).
		Str("to", logging.TruncateURL(req.TargetURL, 80)).
		Bool("new_window", req.NewWindow).
		Msg("redirecting primary navigation to secondary")

	request := decision.Request
	m.sched.Post(func() {
		m.CreateOrUpdateSecondary(ctx, request.URL, request.Bounds)
	})
	return port.NavigationCancel
}

// handleCommit keeps surface URLs in step with what the regions show, so
// in-place and secondary navigations are reflected in the split status.
func (m *Manager) handleCommit(id entity.RegionID, url string) {
	if url == "" {
		return
	}
	for _, s := range []*entity.Surface{m.primary, m.secondary} {
		if s == nil || s.Region != id || s.URL == url {
			continue
		}
		logging.FromContext(m.baseCtx).Debug().
			Str("role", string(s.Role)).
			Str("url", logging.TruncateURL(url, 80)).
			Msg("surface url committed")
		s.URL = url
	}
}
