//go:build gtk

package bootstrap

import (
	"context"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/twinview/internal/infrastructure/config"
	"github.com/bnema/twinview/internal/infrastructure/gtkhost"
)

// NewPlatform returns the WebKitGTK host. Its window size is owned by the
// window manager, and navigations come from real clicks.
func NewPlatform(ctx context.Context, cfg *config.Config) *Platform {
	host := gtkhost.New(ctx)
	size := cfg.Window.Size()
	return &Platform{
		Name: "gtk",
		Host: host,
		Loop: gtkhost.NewLoop(func(app *gtk.Application) {
			host.Activate(app, size)
		}),
	}
}
