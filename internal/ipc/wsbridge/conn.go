// Package wsbridge carries the ipc message channel over a WebSocket, so the
// UI and the backend can run as separate processes.
package wsbridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/bnema/twinview/internal/ipc"
)

// Path is the HTTP path the backend serves the channel on.
const Path = "/ipc"

const dialTimeout = 10 * time.Second

// Conn adapts a websocket connection to ipc.Conn. Writes are serialized;
// reads must come from a single goroutine.
type Conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
	once    sync.Once
}

var _ ipc.Conn = (*Conn)(nil)

// NewConn wraps an established websocket connection.
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

func (c *Conn) Send(ctx context.Context, f ipc.Frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := wsjson.Write(ctx, c.ws, f); err != nil {
		return translate(err)
	}
	return nil
}

func (c *Conn) Recv(ctx context.Context) (ipc.Frame, error) {
	var f ipc.Frame
	if err := wsjson.Read(ctx, c.ws, &f); err != nil {
		return ipc.Frame{}, translate(err)
	}
	return f, nil
}

func (c *Conn) Close() error {
	var err error
	c.once.Do(func() {
		err = c.ws.Close(websocket.StatusNormalClosure, "closing")
	})
	return err
}

func translate(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return ipc.ErrClosed
	}
	if errors.Is(err, net.ErrClosed) {
		return ipc.ErrClosed
	}
	return err
}

// Dial connects to a backend at baseURL (http://host:port or ws://host:port).
func Dial(ctx context.Context, baseURL string) (*Conn, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	switch u.Scheme {
	case "http", "":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = Path
	}

	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	ws, _, err := websocket.Dial(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial websocket: %w", err)
	}
	return NewConn(ws), nil
}
