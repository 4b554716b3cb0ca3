//go:build !gtk

package bootstrap

import (
	"context"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/infrastructure/config"
	"github.com/bnema/twinview/internal/infrastructure/headless"
	"github.com/bnema/twinview/internal/ipc/handlers"
	"github.com/bnema/twinview/internal/logging"
)

// NewPlatform returns the in-memory host sized from the window section.
func NewPlatform(ctx context.Context, cfg *config.Config) *Platform {
	host := headless.New(cfg.Window.Size())
	logging.FromContext(ctx).Debug().Int("width", cfg.Window.Width).Int("height", cfg.Window.Height).Msg("using headless surface host")
	return &Platform{
		Name: "headless",
		Host: host,
		Simulator: handlers.NavigationSimulatorFunc(func(role entity.Role, target string, newWindow bool) error {
			_, err := host.SimulateNavigation(role, target, newWindow)
			return err
		}),
		SetWindowSize: host.SetWindowSize,
	}
}
