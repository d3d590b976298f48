// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package greenspace

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record.
// Enabled returns false so callers skip formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var logger atomic.Pointer[slog.Logger]

func init() { logger.Store(slog.New(nopHandler{})) }

// SetLogger sets the logger used by greenspace and its
// sub-packages. By default nothing is logged.
// Passing nil restores the default.
//
// Levels in use:
//   - Debug: object insertions/removals, resizes
//   - Info: host mount/unmount
//   - Warn: failures during teardown
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	logger.Store(l)
}

// Logger returns the current logger.
// It is safe for concurrent use.
func Logger() *slog.Logger { return logger.Load() }
