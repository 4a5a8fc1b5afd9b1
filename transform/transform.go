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

// Package transform maintains a current 2D transformation matrix with a
// save/restore stack, in the style of a PostScript graphics state.
//
// Matrices use the layout of [matrix.Matrix]: M = [a b c d e f] maps a
// point (x, y) to (a*x + c*y + e, b*x + d*y + f).  Every operation on an
// [Engine] acts in the local coordinate system established by the previous
// operations: the new transformation is applied to a point first, and the
// accumulated matrix afterwards.
package transform

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Compose returns the matrix which first applies a and then b.
func Compose(a, b matrix.Matrix) matrix.Matrix {
	return a.Mul(b)
}

// Translation returns the matrix which moves the origin to (dx, dy).
func Translation(dx, dy float64) matrix.Matrix {
	return matrix.Matrix{1, 0, 0, 1, dx, dy}
}

// Scaling returns the matrix which scales x by sx and y by sy.
// Negative factors mirror, a zero factor collapses the plane onto a line.
func Scaling(sx, sy float64) matrix.Matrix {
	return matrix.Scale(sx, sy)
}

// Rotation returns the matrix which rotates by theta radians.
// Positive angles turn the x-axis towards the y-axis, which is
// counter-clockwise when the y-axis points up.
func Rotation(theta float64) matrix.Matrix {
	s, c := math.Sincos(theta)
	return matrix.Matrix{c, s, -s, c, 0, 0}
}

// Shearing returns the matrix which maps (x, y) to (x + shx*y, shy*x + y).
func Shearing(shx, shy float64) matrix.Matrix {
	return matrix.Matrix{1, shy, shx, 1, 0, 0}
}

// Apply maps the point p through m.
func Apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Det returns the determinant of the linear part of m.
// A zero determinant means that m collapses the plane.
func Det(m matrix.Matrix) float64 {
	return m[0]*m[3] - m[1]*m[2]
}
