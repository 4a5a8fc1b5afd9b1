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

package scene

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/hierarchy/shape"
	"seehuhn.de/go/hierarchy/transform"
)

// ErrUnknownSelection is returned by [Selector.RenderFrame] for an index
// outside the list of transforms.
var ErrUnknownSelection = errors.New("unknown selection")

// DefaultSelectorSize is the default side length of the square drawing
// area, in pixels.
const DefaultSelectorSize = 600

// Parameters of the polygon drawn by the selector.
const (
	selectorSides  = 12
	selectorRadius = 150
)

// selections lists the transforms offered by the selector.  Index 0 leaves
// the coordinate system unchanged.
var selections = []func(e *transform.Engine){
	func(e *transform.Engine) {},
	func(e *transform.Engine) {
		e.Scale(.5, .5)
	},
	func(e *transform.Engine) {
		e.Rotate(math.Pi / 4)
	},
	func(e *transform.Engine) {
		e.Rotate(math.Pi)
		e.Scale(-.5, 1)
	},
	func(e *transform.Engine) {
		e.Shear(.25, 0)
	},
	func(e *transform.Engine) {
		e.Translate(0, -300)
	},
	func(e *transform.Engine) {
		e.Shear(-.25, 0)
		e.Rotate(math.Pi / 2)
	},
	func(e *transform.Engine) {
		e.Rotate(math.Pi)
		e.Scale(.5, 1)
	},
	func(e *transform.Engine) {
		e.Rotate(math.Pi / 6)
		e.Scale(1, .5)
		e.Translate(0, 200)
	},
	func(e *transform.Engine) {
		e.Shear(0, .25)
		e.Rotate(math.Pi)
		e.Translate(-150, 0)
	},
}

// NumSelections is the number of entries in the selector, including the
// identity at index 0.
var NumSelections = len(selections)

// SelectionLabels returns the labels shown for the selector entries.
func SelectionLabels() []string {
	labels := make([]string, len(selections))
	labels[0] = "None"
	for i := 1; i < len(labels); i++ {
		labels[i] = fmt.Sprintf("No. %d", i)
	}
	return labels
}

// Selector draws a regular 12-gon after applying one of a fixed list of
// transforms.  The origin is moved to the center of the drawing area first;
// the y-axis points down, as in device space.
type Selector struct {
	size int
}

// NewSelector returns the selector demo for a square drawing area with the
// given side length in pixels.
func NewSelector(size int) *Selector {
	return &Selector{size: size}
}

// Name implements the [Demo] interface.
func (s *Selector) Name() string {
	return "transforms"
}

// Size implements the [Demo] interface.
func (s *Selector) Size() (int, int) {
	return s.size, s.size
}

// Background implements the [Demo] interface.
func (s *Selector) Background() color.NRGBA {
	return Yellow
}

// RenderFrame draws the polygon using the transform with index n.
func (s *Selector) RenderFrame(n int) ([]DrawCall, error) {
	if n < 0 || n >= len(selections) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrUnknownSelection, n, len(selections))
	}

	c := NewComposer(matrix.Identity)
	c.Group(func() {
		e := c.Engine()
		center := float64(s.size) / 2
		e.Translate(center, center)
		selections[n](e)
		c.Draw(shape.RegularPolygon(selectorSides, selectorRadius))
	})
	return c.Calls(), nil
}
