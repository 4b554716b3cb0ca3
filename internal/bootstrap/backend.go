// Package bootstrap wires the backend and UI halves of twinview and the
// storage behind them.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/twinview/internal/application/port"
	"github.com/bnema/twinview/internal/compositor"
	"github.com/bnema/twinview/internal/domain/viewport"
	"github.com/bnema/twinview/internal/infrastructure/config"
	"github.com/bnema/twinview/internal/ipc"
	"github.com/bnema/twinview/internal/ipc/handlers"
	"github.com/bnema/twinview/internal/logging"
	"github.com/bnema/twinview/internal/ui/mainloop"
)

// EventLoop is a loop the compositor can run on.
type EventLoop interface {
	mainloop.Scheduler
	Run(ctx context.Context) error
}

// BackendInput holds what the backend needs.
type BackendInput struct {
	Config *config.Config
	Host   port.SurfaceHost
	// Loop defaults to a fresh mainloop.Loop. Hosts bound to a toolkit
	// thread supply their own.
	Loop EventLoop
	// Simulator is optional; without it simulateNavigation fails.
	Simulator handlers.NavigationSimulator
	// Visits is optional.
	Visits port.VisitRecorder
}

// Backend is the compositor running on its own loop, reachable through
// Server.
type Backend struct {
	Loop    EventLoop
	Manager *compositor.Manager
	Broker  *ipc.Broker
	Server  *ipc.Server

	ctx context.Context
}

// CompositorConfig maps configuration onto compositor settings.
func CompositorConfig(cfg *config.Config) compositor.Config {
	return compositor.Config{
		Layout: cfg.Layout.Metrics(),
		Breakpoints: viewport.Breakpoints{
			TabletMaxWidth: cfg.Viewport.TabletMaxWidth,
			MobileMaxWidth: cfg.Viewport.MobileMaxWidth,
		},
		EmulateViewport: cfg.Viewport.Emulate,
		DedupeWindow:    time.Duration(cfg.Navigation.DedupeWindowMs) * time.Millisecond,
	}
}

// NewBackend builds the backend. Nothing runs until Run.
func NewBackend(ctx context.Context, in BackendInput) (*Backend, error) {
	if in.Config == nil {
		return nil, errors.New("backend: config is required")
	}
	if in.Host == nil {
		return nil, errors.New("backend: surface host is required")
	}
	ctx = logging.WithComponent(ctx, "backend")

	loop := in.Loop
	if loop == nil {
		loop = mainloop.New("backend", mainloop.WithLogger(*logging.FromContext(ctx)))
	}
	broker := ipc.NewBroker()

	opts := []compositor.Option{compositor.WithConfig(CompositorConfig(in.Config))}
	if in.Visits != nil {
		opts = append(opts, compositor.WithVisitRecorder(in.Visits))
	}
	mgr := compositor.NewManager(in.Host, loop, broker, opts...)

	router := ipc.NewRouter()
	if err := handlers.RegisterAll(ctx, router, handlers.Config{
		Compositor: mgr,
		Simulator:  in.Simulator,
	}); err != nil {
		return nil, fmt.Errorf("register handlers: %w", err)
	}

	return &Backend{
		Loop:    loop,
		Manager: mgr,
		Broker:  broker,
		Server:  ipc.NewServer(router, loop, broker),
		ctx:     ctx,
	}, nil
}

// Run drives the backend loop until ctx ends, then tears the compositor
// down.
func (b *Backend) Run(ctx context.Context) error {
	b.Loop.Post(func() { b.Manager.Init(b.ctx) })
	err := b.Loop.Run(ctx)
	// The loop goroutine has returned; nothing else touches the manager.
	b.Manager.Teardown(b.ctx)
	return ignoreCanceled(err)
}

// ServeConn serves one UI connection.
func (b *Backend) ServeConn(ctx context.Context, conn ipc.Conn) error {
	return b.Server.ServeConn(b.withLogger(ctx), conn)
}

func (b *Backend) withLogger(ctx context.Context) context.Context {
	return logging.WithContext(ctx, *logging.FromContext(b.ctx))
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, mainloop.ErrStopped) {
		return nil
	}
	return err
}
