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

// Package viewport maps a rectangle in logical coordinates onto a pixel
// viewport whose upper left corner is (0, 0).
package viewport

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hierarchy/transform"
)

// ErrInvalidViewport is returned for an empty logical rectangle or an
// empty pixel area.
var ErrInvalidViewport = errors.New("invalid viewport")

// Spec describes the requested mapping.
//
// YBottom may be smaller than YTop.  This reverses the y-axis, so that
// positive y points upwards.
type Spec struct {
	XLeft, XRight float64 // logical x at the left and right edge
	YTop, YBottom float64 // logical y at the top and bottom edge

	// PreserveAspect expands the requested rectangle in one direction so
	// that both axes use the same number of pixels per unit.  If false, the
	// rectangle exactly fills the viewport.
	PreserveAspect bool

	Width, Height int // viewport size in pixels
}

// Mapping is the result of [Spec.Map].
type Mapping struct {
	// Matrix maps logical coordinates to pixel coordinates.
	Matrix matrix.Matrix

	// PixelSize is the size of one pixel in logical units.  If the two axes
	// use different scales, the smaller value is used.
	PixelSize float64

	// The logical limits after the aspect ratio adjustment.
	XLeft, XRight float64
	YTop, YBottom float64
}

// Map computes the transformation for the viewport.
func (s Spec) Map() (*Mapping, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrInvalidViewport, s.Width, s.Height)
	}
	for _, v := range []float64{s.XLeft, s.XRight, s.YTop, s.YBottom} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: limit %g", ErrInvalidViewport, v)
		}
	}
	if s.XRight == s.XLeft || s.YBottom == s.YTop {
		return nil, fmt.Errorf("%w: empty rectangle x=[%g,%g] y=[%g,%g]",
			ErrInvalidViewport, s.XLeft, s.XRight, s.YTop, s.YBottom)
	}

	width := float64(s.Width)
	height := float64(s.Height)
	xLeft, xRight := s.XLeft, s.XRight
	yTop, yBottom := s.YTop, s.YBottom

	if s.PreserveAspect {
		displayAspect := math.Abs(height / width)
		requestedAspect := math.Abs((yBottom - yTop) / (xRight - xLeft))
		if displayAspect > requestedAspect {
			excess := (yBottom - yTop) * (displayAspect/requestedAspect - 1)
			yBottom += excess / 2
			yTop -= excess / 2
		} else if displayAspect < requestedAspect {
			excess := (xRight - xLeft) * (requestedAspect/displayAspect - 1)
			xRight += excess / 2
			xLeft -= excess / 2
		}
	}

	pixelWidth := math.Abs((xRight - xLeft) / width)
	pixelHeight := math.Abs((yBottom - yTop) / height)

	// translate by (-xLeft, -yTop) first, then scale
	m := transform.Compose(
		transform.Translation(-xLeft, -yTop),
		transform.Scaling(width/(xRight-xLeft), height/(yBottom-yTop)),
	)

	return &Mapping{
		Matrix:    m,
		PixelSize: min(pixelWidth, pixelHeight),
		XLeft:     xLeft,
		XRight:    xRight,
		YTop:      yTop,
		YBottom:   yBottom,
	}, nil
}

// ToPixel maps a logical point to pixel coordinates.
func (m *Mapping) ToPixel(p vec.Vec2) vec.Vec2 {
	return transform.Apply(m.Matrix, p)
}

// ToLogical maps pixel coordinates back to logical coordinates.
func (m *Mapping) ToLogical(p vec.Vec2) vec.Vec2 {
	sx := m.Matrix[0]
	sy := m.Matrix[3]
	return vec.Vec2{
		X: (p.X - m.Matrix[4]) / sx,
		Y: (p.Y - m.Matrix[5]) / sy,
	}
}
