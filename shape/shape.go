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

// Package shape generates the basic shapes used by the demos, in their own
// local coordinate systems.  All functions return fresh values and have no
// side effects.
package shape

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Mode selects whether a shape is filled or stroked.
type Mode int

const (
	Stroke Mode = iota
	Fill
)

func (m Mode) String() string {
	switch m {
	case Stroke:
		return "stroke"
	case Fill:
		return "fill"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Kind identifies the primitive a shape was generated from.
type Kind int

const (
	KindPolygon Kind = iota
	KindSquare
	KindCircle
	KindTriangle
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindPolygon:
		return "polygon"
	case KindSquare:
		return "square"
	case KindCircle:
		return "circle"
	case KindTriangle:
		return "triangle"
	case KindLine:
		return "line"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape is a sequence of points in local coordinates.
type Shape struct {
	Kind   Kind
	Points []vec.Vec2
	Closed bool // whether the last point connects back to the first
	Mode   Mode
}

// CircleSegments is the number of vertices in the polygon approximating a
// circle in [Shape.Points].
const CircleSegments = 64

// kappa is the control point distance for approximating a quarter circle
// of radius 1 by a cubic Bézier curve.
const kappa = 0.5522847498307936

// RegularPolygon returns a stroked regular polygon centered at the origin.
// Vertex i lies at angle 2πi/sides, at distance radius from the origin.
// The function panics if sides is less than 3.
func RegularPolygon(sides int, radius float64) Shape {
	if sides < 3 {
		panic(fmt.Sprintf("shape: polygon with %d sides", sides))
	}
	return Shape{
		Kind:   KindPolygon,
		Points: circlePoints(sides, radius),
		Closed: true,
		Mode:   Stroke,
	}
}

// Square returns the outline of the square with side length 1, centered at
// the origin.
func Square() Shape {
	return Shape{
		Kind: KindSquare,
		Points: []vec.Vec2{
			{X: -0.5, Y: -0.5},
			{X: 0.5, Y: -0.5},
			{X: 0.5, Y: 0.5},
			{X: -0.5, Y: 0.5},
		},
		Closed: true,
		Mode:   Stroke,
	}
}

// FilledSquare returns the filled square with side length 1, centered at
// the origin.
func FilledSquare() Shape {
	s := Square()
	s.Mode = Fill
	return s
}

// Circle returns the outline of the circle with diameter 1, centered at the
// origin.
func Circle() Shape {
	return Shape{
		Kind:   KindCircle,
		Points: circlePoints(CircleSegments, 0.5),
		Closed: true,
		Mode:   Stroke,
	}
}

// FilledCircle returns the filled circle with diameter 1, centered at the
// origin.
func FilledCircle() Shape {
	s := Circle()
	s.Mode = Fill
	return s
}

// FilledTriangle returns the filled triangle with width 1 and height 1.
// The center of the base is at the origin and the apex at (0, 1).
func FilledTriangle() Shape {
	return Shape{
		Kind: KindTriangle,
		Points: []vec.Vec2{
			{X: -0.5, Y: 0},
			{X: 0.5, Y: 0},
			{X: 0, Y: 1},
		},
		Closed: true,
		Mode:   Fill,
	}
}

// Line returns the line segment from (-0.5, 0) to (0.5, 0).
func Line() Shape {
	return Shape{
		Kind: KindLine,
		Points: []vec.Vec2{
			{X: -0.5, Y: 0},
			{X: 0.5, Y: 0},
		},
		Mode: Stroke,
	}
}

func circlePoints(n int, radius float64) []vec.Vec2 {
	pts := make([]vec.Vec2, n)
	for i := range n {
		angle := 2 * math.Pi * float64(i) / float64(n)
		s, c := math.Sincos(angle)
		pts[i] = vec.Vec2{X: radius * c, Y: radius * s}
	}
	return pts
}

// Path returns the outline of the shape as a path in local coordinates.
//
// Circles are returned as four cubic Bézier curves instead of the polygon in
// s.Points, so that the result stays smooth under any magnification.
func (s Shape) Path() *path.Data {
	if s.Kind == KindCircle {
		return ellipse(0.5, 0.5)
	}

	p := &path.Data{}
	if len(s.Points) == 0 {
		return p
	}
	p = p.MoveTo(s.Points[0])
	for _, pt := range s.Points[1:] {
		p = p.LineTo(pt)
	}
	if s.Closed {
		p = p.Close()
	}
	return p
}

// ellipse builds an ellipse centered at the origin using four cubic Bézier
// curves.
func ellipse(rx, ry float64) *path.Data {
	kx := rx * kappa
	ky := ry * kappa
	pt := func(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

	return (&path.Data{}).
		MoveTo(pt(rx, 0)).
		CubeTo(pt(rx, ky), pt(kx, ry), pt(0, ry)).
		CubeTo(pt(-kx, ry), pt(-rx, ky), pt(-rx, 0)).
		CubeTo(pt(-rx, -ky), pt(-kx, -ry), pt(0, -ry)).
		CubeTo(pt(kx, -ry), pt(rx, -ky), pt(rx, 0)).
		Close()
}
