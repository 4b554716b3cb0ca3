package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/twinview/internal/compositor"
	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/infrastructure/headless"
	"github.com/bnema/twinview/internal/ipc"
	"github.com/bnema/twinview/internal/ipc/handlers"
	"github.com/bnema/twinview/internal/ui/mainloop/mainlooptest"
)

type fixture struct {
	ctx    context.Context
	host   *headless.Host
	sched  *mainlooptest.Scheduler
	mgr    *compositor.Manager
	router *ipc.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:    context.Background(),
		host:   headless.New(entity.Size{Width: 1200, Height: 800}),
		sched:  mainlooptest.New(time.Unix(1_700_000_000, 0)),
		router: ipc.NewRouter(),
	}
	f.mgr = compositor.NewManager(f.host, f.sched, nil)
	f.mgr.Init(f.ctx)

	sim := handlers.NavigationSimulatorFunc(func(role entity.Role, target string, newWindow bool) error {
		_, err := f.host.SimulateNavigation(role, target, newWindow)
		return err
	})
	require.NoError(t, handlers.RegisterAll(f.ctx, f.router, handlers.Config{Compositor: f.mgr, Simulator: sim}))
	return f
}

func (f *fixture) dispatch(t *testing.T, kind ipc.Kind, payload any) *ipc.Response {
	t.Helper()
	frame, err := ipc.NewFrame(kind, payload)
	require.NoError(t, err)
	return f.router.Dispatch(f.ctx, frame)
}

func TestHandlers_SplitLifecycle(t *testing.T) {
	f := newFixture(t)

	resp := f.dispatch(t, ipc.KindCreatePrimary, ipc.CreatePrimaryPayload{
		URL:    "https://a.example",
		Bounds: entity.Rect{X: 0, Y: 40, Width: 1200, Height: 760},
	})
	require.True(t, resp.Success, resp.Error)

	resp = f.dispatch(t, ipc.KindSimulateNavigation, ipc.SimulateNavigationPayload{
		Role: entity.RolePrimary,
		URL:  "https://a.example/page2",
	})
	require.True(t, resp.Success, resp.Error)
	f.sched.RunPending()

	var status entity.SplitStatus
	require.NoError(t, f.dispatch(t, ipc.KindGetDetailedStatus, nil).Decode(&status))
	assert.Equal(t, entity.SplitStatus{
		IsSplit:      true,
		HasSecondary: true,
		PrimaryURL:   "https://a.example",
		SecondaryURL: "https://a.example/page2",
	}, status)

	secondary, ok := f.host.Content(entity.RoleSecondary)
	require.True(t, ok)
	assert.Equal(t, entity.Rect{X: 600, Y: 40, Width: 600, Height: 760}, secondary.Bounds)

	require.True(t, f.dispatch(t, ipc.KindUpdateSplitRatio, ipc.UpdateSplitRatioPayload{Ratio: 0.95}).Success)
	assert.InDelta(t, 0.9, f.mgr.Ratio(), 1e-9)

	require.True(t, f.dispatch(t, ipc.KindShowOverlay, nil).Success)
	assert.True(t, f.mgr.OverlayShown(entity.RolePrimary))
	require.True(t, f.dispatch(t, ipc.KindHideOverlay, nil).Success)
	assert.False(t, f.mgr.OverlayShown(entity.RolePrimary))

	require.True(t, f.dispatch(t, ipc.KindDestroySecondary, nil).Success)
	var split bool
	require.NoError(t, f.dispatch(t, ipc.KindGetStatus, nil).Decode(&split))
	assert.False(t, split)

	require.True(t, f.dispatch(t, ipc.KindDestroyAll, nil).Success)
	require.NoError(t, f.dispatch(t, ipc.KindGetDetailedStatus, nil).Decode(&status))
	assert.Equal(t, entity.SplitStatus{}, status)
}

func TestHandlers_UpdateBoundsWithoutSecondaryIsNoop(t *testing.T) {
	f := newFixture(t)

	resp := f.dispatch(t, ipc.KindUpdateBounds, ipc.UpdateBoundsPayload{
		Role:   entity.RoleSecondary,
		Bounds: entity.Rect{X: 600, Y: 40, Width: 600, Height: 760},
	})
	assert.True(t, resp.Success)
	assert.Empty(t, f.host.Regions())
}

func TestHandlers_RejectMalformedPayloads(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.dispatch(t, ipc.KindCreatePrimary, nil).Success)
	assert.False(t, f.dispatch(t, ipc.KindCreatePrimary, ipc.CreatePrimaryPayload{}).Success)

	bad := f.router.Dispatch(f.ctx, ipc.Frame{Kind: ipc.KindUpdateSplitRatio, Payload: json.RawMessage(`{"ratio":"wide"}`)})
	assert.False(t, bad.Success)

	resp := f.dispatch(t, ipc.KindUpdateBounds, ipc.UpdateBoundsPayload{Role: "tertiary"})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "invalid role")

	resp = f.dispatch(t, ipc.KindSimulateNavigation, ipc.SimulateNavigationPayload{Role: entity.RolePrimary, URL: "https://x.example"})
	assert.False(t, resp.Success, "no primary to navigate")
}

func TestHandlers_SimulatorOptional(t *testing.T) {
	router := ipc.NewRouter()
	mgr := compositor.NewManager(headless.NewWithoutWindow(), mainlooptest.New(time.Now()), nil)
	require.NoError(t, handlers.RegisterAll(context.Background(), router, handlers.Config{Compositor: mgr}))

	frame, err := ipc.NewFrame(ipc.KindSimulateNavigation, ipc.SimulateNavigationPayload{Role: entity.RolePrimary, URL: "https://a.example"})
	require.NoError(t, err)
	resp := router.Dispatch(context.Background(), frame)
	require.False(t, resp.Success)
	assert.True(t, errors.Is(resp.Decode(nil), ipc.ErrRemote))
	assert.Equal(t, handlers.ErrNoSimulator.Error(), resp.Error)

	assert.Error(t, handlers.RegisterAll(context.Background(), router, handlers.Config{}))
}
