//go:build gtk

package gtkhost

import (
	"context"
	"errors"
	"fmt"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/google/uuid"

	"github.com/bnema/twinview/internal/application/port"
	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/logging"
)

// ErrUnknownRegion is returned for operations on a region that does not exist.
var ErrUnknownRegion = errors.New("unknown region")

const overlayCSS = `
.twinview-overlay { background-color: #1e1e2e; color: #cdd6f4; font-size: 48px; }
`

type region struct {
	spec    port.RegionSpec
	widget  gtk.Widgetter
	view    *webkit.WebView
	placed  bool
	bounds  entity.Rect
	handler port.NavigationHandler
}

// Host places regions on a gtk.Fixed filling the main window.
type Host struct {
	ctx     context.Context
	window  *gtk.ApplicationWindow
	fixed   *gtk.Fixed
	regions map[entity.RegionID]*region
	commit  port.CommitHandler
}

var _ port.SurfaceHost = (*Host)(nil)

// New returns a host without a window; Activate creates it.
func New(ctx context.Context) *Host {
	return &Host{
		ctx:     logging.WithComponent(ctx, "gtkhost"),
		regions: make(map[entity.RegionID]*region),
	}
}

// Activate creates the main window. Call it on the GTK thread once the
// application is active.
func (h *Host) Activate(app *gtk.Application, size entity.Size) {
	window := gtk.NewApplicationWindow(app)
	window.SetTitle("twinview")
	window.SetDefaultSize(size.Width, size.Height)

	fixed := gtk.NewFixed()
	window.SetChild(fixed)

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(overlayCSS)
	gtk.StyleContextAddProviderForDisplay(window.Display(), provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)

	window.ConnectCloseRequest(func() bool {
		h.window = nil
		logging.FromContext(h.ctx).Info().Msg("main window closed")
		return false
	})
	window.Present()

	h.window = window
	h.fixed = fixed
	logging.FromContext(h.ctx).Debug().Int("width", size.Width).Int("height", size.Height).Msg("main window created")
}

func (h *Host) WindowAvailable() bool {
	return h.window != nil
}

func (h *Host) WindowSize() entity.Size {
	if h.window == nil {
		return entity.Size{}
	}
	if w, ht := h.fixed.Width(), h.fixed.Height(); w > 0 && ht > 0 {
		return entity.Size{Width: w, Height: ht}
	}
	w, ht := h.window.DefaultSize()
	return entity.Size{Width: w, Height: ht}
}

func (h *Host) CreateRegion(_ context.Context, spec port.RegionSpec) (entity.RegionID, error) {
	id := entity.RegionID(fmt.Sprintf("%s-%s", spec.Kind, uuid.NewString()[:8]))
	r := &region{spec: spec}

	switch spec.Kind {
	case port.RegionContent:
		view := webkit.NewWebView()
		if view == nil {
			return "", errors.New("failed to create web view")
		}
		r.view = view
		r.widget = view
		h.connectPolicy(id, r)
	case port.RegionOverlay:
		label := gtk.NewLabel(spec.Glyph)
		label.AddCSSClass("twinview-overlay")
		label.SetCanTarget(false)
		r.widget = label
	default:
		return "", fmt.Errorf("unsupported region kind %s", spec.Kind)
	}

	h.regions[id] = r
	return id, nil
}

func (h *Host) lookup(id entity.RegionID) (*region, error) {
	r, ok := h.regions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, id)
	}
	return r, nil
}

func (h *Host) Attach(_ context.Context, id entity.RegionID) error {
	r, err := h.lookup(id)
	if err != nil {
		return err
	}
	if h.window == nil {
		return errors.New("main window not available")
	}
	if r.placed {
		return nil
	}
	h.fixed.Put(r.widget, float64(r.bounds.X), float64(r.bounds.Y))
	r.placed = true
	return nil
}

func (h *Host) Detach(_ context.Context, id entity.RegionID) error {
	r, err := h.lookup(id)
	if err != nil {
		return err
	}
	if r.placed && h.fixed != nil {
		h.fixed.Remove(r.widget)
	}
	r.placed = false
	return nil
}

func (h *Host) Destroy(ctx context.Context, id entity.RegionID) error {
	if err := h.Detach(ctx, id); err != nil {
		return err
	}
	r := h.regions[id]
	if r.view != nil {
		r.view.TryClose()
	}
	delete(h.regions, id)
	return nil
}

func (h *Host) SetBounds(_ context.Context, id entity.RegionID, bounds entity.Rect) error {
	r, err := h.lookup(id)
	if err != nil {
		return err
	}
	r.bounds = bounds
	gtk.BaseWidget(r.widget).SetSizeRequest(bounds.Width, bounds.Height)
	if r.placed {
		h.fixed.Move(r.widget, float64(bounds.X), float64(bounds.Y))
	}
	return nil
}

func (h *Host) LoadURL(_ context.Context, id entity.RegionID, url string) error {
	r, err := h.content(id)
	if err != nil {
		return err
	}
	r.view.LoadURI(url)
	return nil
}

func (h *Host) SetUserAgent(_ context.Context, id entity.RegionID, userAgent string) error {
	r, err := h.content(id)
	if err != nil {
		return err
	}
	r.view.Settings().SetUserAgent(userAgent)
	return nil
}

func (h *Host) InjectCSS(_ context.Context, id entity.RegionID, css string) error {
	r, err := h.content(id)
	if err != nil {
		return err
	}
	ucm := r.view.UserContentManager()
	ucm.RemoveAllStyleSheets()
	ucm.AddStyleSheet(webkit.NewUserStyleSheet(
		css,
		webkit.UserContentInjectTopFrame,
		webkit.UserStyleLevelUser,
		nil,
		nil,
	))
	return nil
}

func (h *Host) SetNavigationHandler(id entity.RegionID, handler port.NavigationHandler) {
	if r, ok := h.regions[id]; ok {
		r.handler = handler
	}
}

func (h *Host) SetCommitHandler(handler port.CommitHandler) {
	h.commit = handler
}

func (h *Host) content(id entity.RegionID) (*region, error) {
	r, err := h.lookup(id)
	if err != nil {
		return nil, err
	}
	if r.view == nil {
		return nil, fmt.Errorf("region %s has no web view", id)
	}
	return r, nil
}

// connectPolicy routes link clicks and popup requests through the region's
// navigation handler.
func (h *Host) connectPolicy(id entity.RegionID, r *region) {
	r.view.ConnectDecidePolicy(func(decision webkit.PolicyDecisioner, kind webkit.PolicyDecisionType) bool {
		nav, ok := decision.(*webkit.NavigationPolicyDecision)
		if !ok || r.handler == nil {
			return false
		}
		if kind != webkit.PolicyDecisionTypeNavigationAction && kind != webkit.PolicyDecisionTypeNewWindowAction {
			return false
		}
		action := nav.NavigationAction()
		if action == nil || action.Request() == nil {
			return false
		}

		req := port.NavigationRequest{
			Region:     id,
			CurrentURL: r.view.URI(),
			TargetURL:  action.Request().URI(),
			NewWindow:  kind == webkit.PolicyDecisionTypeNewWindowAction,
		}
		if r.handler(req) == port.NavigationCancel {
			logging.FromContext(h.ctx).Debug().Str("target", logging.TruncateURL(req.TargetURL, 80)).Msg("navigation cancelled by compositor")
			nav.Ignore()
			return true
		}
		return false
	})

	r.view.ConnectLoadChanged(func(event webkit.LoadEvent) {
		if event != webkit.LoadCommitted || h.commit == nil {
			return
		}
		h.commit(id, r.view.URI())
	})

	// Popups never get their own window: the policy above already routed them.
	r.view.ConnectCreate(func(*webkit.NavigationAction) gtk.Widgetter {
		return nil
	})
}
