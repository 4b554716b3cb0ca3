package wsbridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/bnema/twinview/internal/ipc"
	"github.com/bnema/twinview/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Handler upgrades requests and serves each connection with srv.
func Handler(ctx context.Context, srv *ipc.Server) http.Handler {
	log := logging.FromContext(ctx)
	mux := http.NewServeMux()
	mux.HandleFunc(Path, func(w http.ResponseWriter, r *http.Request) {
		ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{})
		if err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		conn := NewConn(ws)
		defer conn.Close()

		log.Info().Str("remote", r.RemoteAddr).Msg("ui attached")
		connCtx := logging.WithContext(r.Context(), log.With().Str("remote", r.RemoteAddr).Logger())
		if err := srv.ServeConn(connCtx, conn); err != nil {
			log.Warn().Err(err).Msg("ui connection ended with error")
			return
		}
		log.Info().Str("remote", r.RemoteAddr).Msg("ui detached")
	})
	return mux
}

// ListenAndServe serves the channel on addr until ctx ends.
func ListenAndServe(ctx context.Context, addr string, srv *ipc.Server) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return Serve(ctx, ln, srv)
}

// Serve serves the channel on ln until ctx ends.
func Serve(ctx context.Context, ln net.Listener, srv *ipc.Server) error {
	httpSrv := &http.Server{
		Handler:           Handler(ctx, srv),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logging.FromContext(ctx).Info().Str("addr", ln.Addr().String()).Msg("ipc server listening")
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown ipc server: %w", err)
		}
		return nil
	}
}
