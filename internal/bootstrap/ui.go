package bootstrap

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/twinview/internal/domain/entity"
	domainurl "github.com/bnema/twinview/internal/domain/url"
	"github.com/bnema/twinview/internal/infrastructure/config"
	"github.com/bnema/twinview/internal/ipc"
	"github.com/bnema/twinview/internal/logging"
	"github.com/bnema/twinview/internal/ui/coordinator"
	"github.com/bnema/twinview/internal/ui/input"
	"github.com/bnema/twinview/internal/ui/layout"
	"github.com/bnema/twinview/internal/ui/mainloop"
	"github.com/bnema/twinview/internal/ui/reconcile"
	"github.com/bnema/twinview/internal/ui/shell"
	"github.com/bnema/twinview/internal/ui/state"
)

// navigationTimeout bounds a simulated link click round trip.
const navigationTimeout = 2 * time.Second

// UIInput holds what the UI needs.
type UIInput struct {
	Config *config.Config
	Client *ipc.Client
	// OnWindowSize is called on the UI loop whenever the terminal resizes.
	// In-process runs use it to size the headless host.
	OnWindowSize func(size entity.Size)
}

// UI is the front half: the store, the session coordinator and the input
// state machines, all on one loop. Its methods implement shell.Controller.
type UI struct {
	Loop  *mainloop.Loop
	Store *state.Store

	ctx       context.Context
	client    *ipc.Client
	sync      *layout.Synchronizer
	drag      *input.DragController
	reconcile *reconcile.Loop
	session   *coordinator.Session
	doc       *terminalDocument
}

var _ shell.Controller = (*UI)(nil)

// NewUI builds the UI. Nothing runs until Run.
func NewUI(ctx context.Context, in UIInput) (*UI, error) {
	if in.Config == nil {
		return nil, errors.New("ui: config is required")
	}
	if in.Client == nil {
		return nil, errors.New("ui: client is required")
	}
	ctx = logging.WithComponent(ctx, "ui")
	cfg := in.Config

	loop := mainloop.New("ui", mainloop.WithLogger(*logging.FromContext(ctx)))
	store := state.NewStore()
	measurer := layout.StoreMeasurer{Store: store, Metrics: cfg.Layout.Metrics()}
	doc := &terminalDocument{ctx: ctx, selection: true, cursor: input.CursorDefault}

	u := &UI{
		Loop:   loop,
		Store:  store,
		ctx:    ctx,
		client: in.Client,
		doc:    doc,
	}
	u.sync = layout.NewSynchronizer(ctx, loop, store, measurer, in.Client, ms(cfg.Sync.SettleDelayMs))
	u.drag = input.NewDragController(ctx, loop, store, doc, in.Client, u.container, ms(cfg.Drag.ThrottleMs))
	u.reconcile = reconcile.New(ctx, loop, store, in.Client, reconcile.Config{
		InitialDelay: ms(cfg.Reconcile.InitialDelayMs),
		Interval:     ms(cfg.Reconcile.IntervalMs),
	})
	u.session = coordinator.NewSession(ctx, store, measurer, in.Client, u.sync, u.reconcile,
		coordinator.WithStateEvents(cfg.Reconcile.StateEvents))

	if in.OnWindowSize != nil {
		store.Subscribe(func(prev, next state.Snapshot) {
			if prev.WindowSize != next.WindowSize {
				in.OnWindowSize(next.WindowSize)
			}
		})
	}
	in.Client.OnEvent(func(ev ipc.Event) {
		loop.Post(func() { u.session.HandleEvent(ev) })
	})
	return u, nil
}

// Run drives the UI loop until ctx ends.
func (u *UI) Run(ctx context.Context) error {
	u.Loop.Post(u.reconcile.Mount)
	err := u.Loop.Run(ctx)
	u.reconcile.Stop()
	u.sync.Close()
	return ignoreCanceled(err)
}

// Subscribe forwards every state change to fn, on the UI loop. fn must not
// block.
func (u *UI) Subscribe(fn func(state.Snapshot)) {
	u.Loop.Post(func() {
		fn(u.Store.Snapshot())
		u.Store.Subscribe(func(_, next state.Snapshot) { fn(next) })
	})
}

func (u *UI) Open(input string) {
	u.Loop.Post(func() {
		if err := u.session.Open(input); err != nil {
			logging.FromContext(u.ctx).Warn().Err(err).Msg("failed to open session")
			u.Store.SetNotice(err.Error())
		}
	})
}

func (u *UI) CloseSecondary() {
	u.Loop.Post(u.session.CloseSecondary)
}

func (u *UI) CloseSession() {
	u.Loop.Post(func() {
		u.drag.Cancel()
		u.session.Close()
	})
}

func (u *UI) Resize(size entity.Size) {
	u.Loop.Post(func() { u.Store.SetWindowSize(size) })
}

func (u *UI) FocusGained() {
	u.Loop.Post(u.reconcile.FocusGained)
}

func (u *UI) DividerDown(x int) {
	u.Loop.Post(func() { u.drag.PointerDown(x) })
}

func (u *UI) DividerMove(x int) {
	u.Loop.Post(func() { u.drag.PointerMove(x) })
}

func (u *UI) DividerUp() {
	u.Loop.Post(u.drag.PointerUp)
}

func (u *UI) DividerDoubleClick() {
	u.Loop.Post(u.drag.DoubleClick)
}

// FollowLink asks the backend to navigate the primary surface to target,
// as if a link there had been clicked.
func (u *UI) FollowLink(target string, newWindow bool) {
	normalized := domainurl.Normalize(target)
	if normalized == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(u.ctx, navigationTimeout)
		defer cancel()
		if err := u.client.SimulateNavigation(ctx, entity.RolePrimary, normalized, newWindow); err != nil {
			logging.FromContext(u.ctx).Warn().Err(err).Str("url", logging.TruncateURL(normalized, 80)).Msg("failed to follow link")
			u.Loop.Post(func() { u.Store.SetNotice("link failed: " + err.Error()) })
		}
	}()
}

func (u *UI) container() (left, width int) {
	return 0, u.Store.Snapshot().WindowSize.Width
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// terminalDocument records the drag toggles. A terminal has no text
// selection or pointer shape to change, so they are only logged.
type terminalDocument struct {
	ctx       context.Context
	selection bool
	cursor    input.Cursor
}

func (d *terminalDocument) SetSelectionEnabled(enabled bool) {
	d.selection = enabled
	logging.FromContext(d.ctx).Trace().Bool("enabled", enabled).Msg("selection toggled")
}

func (d *terminalDocument) SetCursor(cursor input.Cursor) {
	d.cursor = cursor
	logging.FromContext(d.ctx).Trace().Str("cursor", string(cursor)).Msg("cursor changed")
}
