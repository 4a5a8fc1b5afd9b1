// seehuhn.de/go/hierarchy - hierarchical modelling with 2D transforms
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package hierarchy contains two small demonstrations of 2D affine
// transforms: a selector which draws a polygon under one of ten fixed
// transform sequences, and an animated scene of windmills which is built by
// nesting scoped transform changes.
//
// The sub-packages are layered as follows:
//
//   - [seehuhn.de/go/hierarchy/transform] keeps the current transformation
//     matrix together with a save/restore stack.
//   - [seehuhn.de/go/hierarchy/shape] generates vertex lists in local
//     coordinates.
//   - [seehuhn.de/go/hierarchy/viewport] maps a logical rectangle onto a
//     pixel viewport.
//   - [seehuhn.de/go/hierarchy/scene] walks the demo scenes and produces
//     draw calls.
//   - [seehuhn.de/go/hierarchy/raster] and [seehuhn.de/go/hierarchy/pdfout]
//     turn draw calls into pixels or PDF pages.
//   - [seehuhn.de/go/hierarchy/anim] supplies the frame clock for the
//     animation.
//
// This package only holds the logger shared by the sub-packages.
package hierarchy

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler is a slog.Handler which drops all records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(discardHandler{}))
}

// SetLogger sets the logger used by all packages in this module.
// By default nothing is logged.  Passing nil restores the default.
//
// Debug level is used for per-frame diagnostics, for example coalesced
// redraw requests or draw calls with a collapsed transformation.
// Info level is used by the commands for files written.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	logger.Store(l)
}

// Logger returns the current logger.
// It is safe to call Logger concurrently with SetLogger.
func Logger() *slog.Logger {
	return logger.Load()
}
