// Package gtkhost implements port.SurfaceHost with GTK 4 and WebKitGTK 6.
// It is only built with the gtk tag; every method must run on the GTK main
// thread, which Loop guarantees for the compositor.
package gtkhost
