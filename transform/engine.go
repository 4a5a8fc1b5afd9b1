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

package transform

import (
	"errors"
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// ErrRestoreUnderflow is the panic value used when Restore is called
// without a matching Save.
var ErrRestoreUnderflow = errors.New("transform: restore without matching save")

// state is the part of an Engine which is saved and restored.
type state struct {
	ctm       matrix.Matrix
	color     color.NRGBA
	lineWidth float64
}

// Token identifies a stack depth returned by [Engine.Save].
type Token int

// Engine holds the current transformation matrix, the current draw color
// and line width, and a stack of saved copies of these.
//
// An Engine belongs to a single draw pass and is not safe for concurrent use.
type Engine struct {
	state
	stack []state
}

// New returns an Engine with the identity matrix, opaque black as the
// color, a line width of 1 and an empty stack.
func New() *Engine {
	return NewWithBase(matrix.Identity)
}

// NewWithBase returns an Engine whose current matrix is base.
// This is used to start a draw pass in logical coordinates, with base
// mapping these to device space.
func NewWithBase(base matrix.Matrix) *Engine {
	return &Engine{
		state: state{
			ctm:       base,
			color:     color.NRGBA{A: 255},
			lineWidth: 1,
		},
	}
}

// Reset restores the initial state with the given base matrix, keeping the
// capacity of the stack.
func (e *Engine) Reset(base matrix.Matrix) {
	e.ctm = base
	e.color = color.NRGBA{A: 255}
	e.lineWidth = 1
	e.stack = e.stack[:0]
}

// Matrix returns the current transformation matrix, which maps local
// coordinates to device coordinates.
func (e *Engine) Matrix() matrix.Matrix {
	return e.ctm
}

// Apply maps a point in local coordinates to device coordinates.
func (e *Engine) Apply(p vec.Vec2) vec.Vec2 {
	return Apply(e.ctm, p)
}

// Transform concatenates m with the current matrix.  Points are mapped
// through m first, and through the previous matrix afterwards.
func (e *Engine) Transform(m matrix.Matrix) {
	e.ctm = m.Mul(e.ctm)
}

// Translate moves the local origin to (dx, dy).
func (e *Engine) Translate(dx, dy float64) {
	e.Transform(Translation(dx, dy))
}

// Scale scales the local coordinate axes.
//
// The factors may be negative to mirror the axes.  Zero factors are a
// mistake in the caller, but are not checked: the resulting matrix is
// singular and everything drawn afterwards collapses onto a line or a point.
func (e *Engine) Scale(sx, sy float64) {
	e.Transform(Scaling(sx, sy))
}

// Rotate rotates the local coordinate axes by theta radians.
func (e *Engine) Rotate(theta float64) {
	e.Transform(Rotation(theta))
}

// Shear shears the local coordinate axes, see [Shearing].
func (e *Engine) Shear(shx, shy float64) {
	e.Transform(Shearing(shx, shy))
}

// Color returns the current draw color.
func (e *Engine) Color() color.NRGBA {
	return e.color
}

// SetColor sets the current draw color.
func (e *Engine) SetColor(c color.NRGBA) {
	e.color = c
}

// LineWidth returns the current line width, in local units.
func (e *Engine) LineWidth() float64 {
	return e.lineWidth
}

// SetLineWidth sets the line width used for stroking.
// The width is measured in the local coordinate system in effect when a
// shape is drawn, not when the width is set.
func (e *Engine) SetLineWidth(w float64) {
	e.lineWidth = w
}

// Depth returns the number of saved states.
func (e *Engine) Depth() int {
	return len(e.stack)
}

// Save pushes a copy of the matrix, color and line width onto the stack.
// The returned token is the depth before the push, so that RestoreTo(tok)
// undoes this call together with all later ones.
func (e *Engine) Save() Token {
	tok := Token(len(e.stack))
	e.stack = append(e.stack, e.state)
	return tok
}

// Restore pops the most recently saved state and makes it current.
// Calling Restore on an empty stack is a bug in the caller and panics with
// [ErrRestoreUnderflow].
func (e *Engine) Restore() {
	n := len(e.stack)
	if n == 0 {
		panic(ErrRestoreUnderflow)
	}
	e.state = e.stack[n-1]
	e.stack = e.stack[:n-1]
}

// RestoreTo pops saved states until the stack depth equals tok.
// It panics if the stack is already shallower than tok, since this means
// that the state belonging to tok has been restored before.
func (e *Engine) RestoreTo(tok Token) {
	if int(tok) < 0 || int(tok) >= len(e.stack) {
		panic(fmt.Errorf("%w: token %d at depth %d", ErrRestoreUnderflow, tok, len(e.stack)))
	}
	e.state = e.stack[tok]
	e.stack = e.stack[:tok]
}

// Scope saves the current state and returns a function which restores it.
// The intended use is
//
//	defer e.Scope()()
//
// at the top of a function which draws a part of a scene.  The restore
// function unwinds to the depth at the time of the call, so that Save calls
// left unmatched inside the scope cannot leak into the caller.
func (e *Engine) Scope() func() {
	tok := e.Save()
	return func() {
		e.RestoreTo(tok)
	}
}
