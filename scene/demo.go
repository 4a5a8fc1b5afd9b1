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
	"image/color"
	"maps"
	"slices"
)

// Demo is a scene which can be rendered frame by frame.
type Demo interface {
	// Name is a short identifier, lowercase a-z only.
	Name() string

	// Size returns the size of the drawing area in pixels.
	Size() (width, height int)

	// Background is the color the drawing area is cleared to before the
	// draw calls are painted.
	Background() color.NRGBA

	// RenderFrame walks the scene once.  The meaning of n depends on the
	// demo: the selector uses it as the selection index, the animation as
	// the frame number.  Each call uses a fresh transformation state.
	RenderFrame(n int) ([]DrawCall, error)
}

// Colors used by the demos.
var (
	Black  = color.NRGBA{A: 255}
	White  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Red    = color.NRGBA{R: 255, A: 255}
	Green  = color.NRGBA{G: 255, A: 255}
	Blue   = color.NRGBA{B: 255, A: 255}
	Cyan   = color.NRGBA{G: 255, B: 255, A: 255}
	Yellow = color.NRGBA{R: 255, G: 255, A: 255}
)

// Demos returns the available demos, with default settings, by name.
func Demos() map[string]Demo {
	all := []Demo{
		NewSelector(DefaultSelectorSize),
		NewWindmill(DefaultWindmillOptions()),
	}
	res := make(map[string]Demo, len(all))
	for _, d := range all {
		res[d.Name()] = d
	}
	return res
}

// DemoNames returns the names of all demos in sorted order.
func DemoNames() []string {
	return slices.Sorted(maps.Keys(Demos()))
}
