package bootstrap

import (
	"github.com/bnema/twinview/internal/application/port"
	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/ipc/handlers"
)

// Platform is the surface host a build provides, with the loop it must run
// on. Optional fields are nil when the host does not support them.
type Platform struct {
	Name      string
	Host      port.SurfaceHost
	Loop      EventLoop
	Simulator handlers.NavigationSimulator
	// SetWindowSize resizes the host window to follow the terminal.
	SetWindowSize func(entity.Size)
}
