// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sprite

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for sprite and all its sub-packages
// (render, loader, app). By default nothing is logged.
//
// Pass nil to restore the silent default. SetLogger is safe for
// concurrent use.
//
// Log levels used:
//   - [slog.LevelDebug]: texture cache misses, buffer sizes, per-frame stats
//   - [slog.LevelInfo]: adapter and device selection, surface configuration
//   - [slog.LevelWarn]: skipped frames, resource load failures
//   - [slog.LevelError]: unrecoverable frame errors before exit
//
// Example:
//
//	sprite.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call this to share
// one logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
