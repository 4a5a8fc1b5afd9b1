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

// Package scene walks the demo scenes and turns them into a list of draw
// calls.
//
// Hierarchy is expressed by nested function calls.  Every part of a scene
// runs inside [Composer.Group], which saves the transformation state on
// entry and restores it on exit, so that the changes made by one part are
// never visible to its siblings.
package scene

import (
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/hierarchy"
	"seehuhn.de/go/hierarchy/shape"
	"seehuhn.de/go/hierarchy/transform"
)

// DrawCall is one shape to be painted, together with the state of the
// transform engine at the time it was drawn.
type DrawCall struct {
	Shape shape.Shape

	// Matrix maps the local coordinates of Shape to device coordinates.
	Matrix matrix.Matrix

	Color color.NRGBA

	// LineWidth is the stroke width in the local coordinates of Shape.
	// It is ignored for filled shapes.
	LineWidth float64
}

// Composer collects the draw calls of one draw pass.
//
// A Composer is not safe for concurrent use.  Every draw pass uses its own
// Composer.
type Composer struct {
	eng   *transform.Engine
	calls []DrawCall
}

// NewComposer starts a draw pass.  The base matrix maps the coordinates used
// by the scene to device coordinates.
func NewComposer(base matrix.Matrix) *Composer {
	return &Composer{
		eng: transform.NewWithBase(base),
	}
}

// Engine gives access to the transformation state of the draw pass.
func (c *Composer) Engine() *transform.Engine {
	return c.eng
}

// Group runs fn with a saved copy of the transformation state, and
// restores the state afterwards.  The state is restored also if fn panics.
func (c *Composer) Group(fn func()) {
	defer c.eng.Scope()()
	fn()
}

// Draw records a draw call for s with the current matrix, color and line
// width.
func (c *Composer) Draw(s shape.Shape) {
	m := c.eng.Matrix()
	if transform.Det(m) == 0 {
		hierarchy.Logger().Debug("drawing with a singular matrix",
			"shape", s.Kind, "matrix", m)
	}
	c.calls = append(c.calls, DrawCall{
		Shape:     s,
		Matrix:    m,
		Color:     c.eng.Color(),
		LineWidth: c.eng.LineWidth(),
	})
}

// Calls returns the draw calls recorded so far, in painting order.
// It panics if a saved state has not been restored, since this indicates a
// bug in the scene description.
func (c *Composer) Calls() []DrawCall {
	if d := c.eng.Depth(); d != 0 {
		panic(fmt.Sprintf("scene: %d unbalanced save operations", d))
	}
	return c.calls
}
