package bootstrap

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/twinview/internal/application/port"
	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/infrastructure/config"
	"github.com/bnema/twinview/internal/ipc"
	"github.com/bnema/twinview/internal/ui/state"
)

// RunAll runs fns together. The first one to return, with or without an
// error, cancels the others; RunAll returns the first error.
func RunAll(ctx context.Context, fns ...func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error {
			defer cancel()
			return fn(gctx)
		})
	}
	return g.Wait()
}

// LocalInput holds what an in-process run needs.
type LocalInput struct {
	Config   *config.Config
	Platform *Platform
	// Journal is optional.
	Journal *Journal
}

// Local runs the backend and the UI in one process, joined by a pipe.
type Local struct {
	Backend *Backend
	UI      *UI
	Client  *ipc.Client

	backendConn ipc.Conn
	journal     *Journal
}

// NewLocal wires both halves.
func NewLocal(ctx context.Context, in LocalInput) (*Local, error) {
	if in.Platform == nil {
		return nil, errors.New("local: platform is required")
	}
	uiConn, backendConn := ipc.Pipe(ipc.DefaultPipeBuffer)

	var visits port.VisitRecorder
	if in.Journal != nil {
		visits = in.Journal.Recorder
	}
	backend, err := NewBackend(ctx, BackendInput{
		Config:    in.Config,
		Host:      in.Platform.Host,
		Loop:      in.Platform.Loop,
		Simulator: in.Platform.Simulator,
		Visits:    visits,
	})
	if err != nil {
		return nil, err
	}

	var onSize func(entity.Size)
	if resize := in.Platform.SetWindowSize; resize != nil {
		onSize = func(size entity.Size) {
			backend.Loop.Post(func() { resize(size) })
		}
	}

	client := ipc.NewClient(uiConn)
	ui, err := NewUI(ctx, UIInput{Config: in.Config, Client: client, OnWindowSize: onSize})
	if err != nil {
		return nil, err
	}

	return &Local{
		Backend:     backend,
		UI:          ui,
		Client:      client,
		backendConn: backendConn,
		journal:     in.Journal,
	}, nil
}

// Run runs every part, plus extra, until one of them returns.
func (l *Local) Run(ctx context.Context, extra ...func(context.Context) error) error {
	fns := []func(context.Context) error{
		l.Backend.Run,
		func(ctx context.Context) error { return l.Backend.ServeConn(ctx, l.backendConn) },
		l.Client.Run,
		l.UI.Run,
	}
	if l.journal != nil {
		fns = append(fns, l.journal.Run)
	}
	fns = append(fns, extra...)

	err := RunAll(ctx, fns...)
	_ = l.Client.Close()
	return err
}

// SnapshotRelay hands the newest UI snapshot to a consumer goroutine,
// replacing any it has not picked up yet. Push never blocks.
type SnapshotRelay struct {
	ch chan state.Snapshot
}

// NewSnapshotRelay creates a relay.
func NewSnapshotRelay() *SnapshotRelay {
	return &SnapshotRelay{ch: make(chan state.Snapshot, 1)}
}

// Push offers s. Call it from a single goroutine.
func (r *SnapshotRelay) Push(s state.Snapshot) {
	select {
	case r.ch <- s:
		return
	default:
	}
	select {
	case <-r.ch:
	default:
	}
	r.ch <- s
}

// Run calls send for each snapshot until ctx ends.
func (r *SnapshotRelay) Run(ctx context.Context, send func(state.Snapshot)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-r.ch:
			send(s)
		}
	}
}
