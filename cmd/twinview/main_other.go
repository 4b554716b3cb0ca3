//go:build !linux && !darwin

package main

import (
	"context"
	"runtime/debug"
)

func enableCrashForensics() {
	debug.SetTraceback("crash")
}

func logCoreDumpLimits(context.Context) {}
