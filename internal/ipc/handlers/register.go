// Package handlers binds the channel's UI-to-backend messages to the
// compositor.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/ipc"
	"github.com/bnema/twinview/internal/logging"
)

// ErrNoSimulator is returned for simulateNavigation when the host cannot
// fake navigations.
var ErrNoSimulator = errors.New("host does not support simulated navigation")

// Compositor is the slice of compositor.Manager the handlers drive.
type Compositor interface {
	CreatePrimary(ctx context.Context, url string, bounds entity.Rect)
	UpdateBounds(ctx context.Context, role entity.Role, bounds entity.Rect)
	DestroySecondary(ctx context.Context)
	DestroyAll(ctx context.Context)
	SetRatio(ctx context.Context, ratio float64)
	ShowOverlay(ctx context.Context)
	HideOverlay(ctx context.Context)
	SplitState() entity.SplitStatus
}

// NavigationSimulator fakes a link click or popup inside a surface.
type NavigationSimulator interface {
	SimulateNavigation(role entity.Role, target string, newWindow bool) error
}

// NavigationSimulatorFunc adapts a function to NavigationSimulator.
type NavigationSimulatorFunc func(role entity.Role, target string, newWindow bool) error

func (f NavigationSimulatorFunc) SimulateNavigation(role entity.Role, target string, newWindow bool) error {
	return f(role, target, newWindow)
}

// Config holds the handler dependencies. Simulator may be nil.
type Config struct {
	Compositor Compositor
	Simulator  NavigationSimulator
}

// RegisterAll registers every backend handler with the router.
func RegisterAll(ctx context.Context, router *ipc.Router, cfg Config) error {
	if cfg.Compositor == nil {
		return errors.New("handlers: compositor is required")
	}
	h := &compositorHandler{mgr: cfg.Compositor, sim: cfg.Simulator}

	table := map[ipc.Kind]ipc.HandlerFunc{
		ipc.KindCreatePrimary:      h.createPrimary,
		ipc.KindUpdateBounds:       h.updateBounds,
		ipc.KindDestroySecondary:   h.destroySecondary,
		ipc.KindDestroyAll:         h.destroyAll,
		ipc.KindGetStatus:          h.getStatus,
		ipc.KindGetDetailedStatus:  h.getDetailedStatus,
		ipc.KindUpdateSplitRatio:   h.updateSplitRatio,
		ipc.KindShowOverlay:        h.showOverlay,
		ipc.KindHideOverlay:        h.hideOverlay,
		ipc.KindSimulateNavigation: h.simulateNavigation,
	}
	for kind, fn := range table {
		if err := router.RegisterHandler(kind, fn); err != nil {
			return fmt.Errorf("register %s: %w", kind, err)
		}
	}

	logging.FromContext(ctx).Debug().Int("count", len(table)).Msg("registered backend handlers")
	return nil
}

type compositorHandler struct {
	mgr Compositor
	sim NavigationSimulator
}

func (h *compositorHandler) createPrimary(ctx context.Context, payload json.RawMessage) (any, error) {
	req, err := ipc.Decode[ipc.CreatePrimaryPayload](payload)
	if err != nil {
		return nil, err
	}
	if req.URL == "" {
		return nil, errors.New("createPrimary: url is required")
	}
	h.mgr.CreatePrimary(ctx, req.URL, req.Bounds)
	return nil, nil
}

func (h *compositorHandler) updateBounds(ctx context.Context, payload json.RawMessage) (any, error) {
	req, err := ipc.Decode[ipc.UpdateBoundsPayload](payload)
	if err != nil {
		return nil, err
	}
	if !req.Role.Valid() {
		return nil, fmt.Errorf("updateBounds: invalid role %q", req.Role)
	}
	h.mgr.UpdateBounds(ctx, req.Role, req.Bounds)
	return nil, nil
}

func (h *compositorHandler) destroySecondary(ctx context.Context, _ json.RawMessage) (any, error) {
	h.mgr.DestroySecondary(ctx)
	return nil, nil
}

func (h *compositorHandler) destroyAll(ctx context.Context, _ json.RawMessage) (any, error) {
	h.mgr.DestroyAll(ctx)
	return nil, nil
}

func (h *compositorHandler) getStatus(context.Context, json.RawMessage) (any, error) {
	return h.mgr.SplitState().IsSplit, nil
}

func (h *compositorHandler) getDetailedStatus(context.Context, json.RawMessage) (any, error) {
	return h.mgr.SplitState(), nil
}

func (h *compositorHandler) updateSplitRatio(ctx context.Context, payload json.RawMessage) (any, error) {
	req, err := ipc.Decode[ipc.UpdateSplitRatioPayload](payload)
	if err != nil {
		return nil, err
	}
	h.mgr.SetRatio(ctx, req.Ratio)
	return nil, nil
}

func (h *compositorHandler) showOverlay(ctx context.Context, _ json.RawMessage) (any, error) {
	h.mgr.ShowOverlay(ctx)
	return nil, nil
}

func (h *compositorHandler) hideOverlay(ctx context.Context, _ json.RawMessage) (any, error) {
	h.mgr.HideOverlay(ctx)
	return nil, nil
}

func (h *compositorHandler) simulateNavigation(ctx context.Context, payload json.RawMessage) (any, error) {
	if h.sim == nil {
		return nil, ErrNoSimulator
	}
	req, err := ipc.Decode[ipc.SimulateNavigationPayload](payload)
	if err != nil {
		return nil, err
	}
	if err := h.sim.SimulateNavigation(req.Role, req.URL, req.NewWindow); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("role", string(req.Role)).Msg("simulated navigation failed")
		return nil, err
	}
	return nil, nil
}
