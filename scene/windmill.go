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
	"math"

	"seehuhn.de/go/hierarchy/shape"
	"seehuhn.de/go/hierarchy/viewport"
)

// WindmillOptions configures the drawing area of the windmill animation.
type WindmillOptions struct {
	Width, Height int // pixels

	// Logical limits of the drawing area.  YBottom < YTop makes the y-axis
	// point upwards.
	XLeft, XRight float64
	YTop, YBottom float64

	PreserveAspect bool
}

// DefaultWindmillOptions returns an 800x600 drawing area showing x from -4
// to 4 and y from -3 to 3.
func DefaultWindmillOptions() WindmillOptions {
	return WindmillOptions{
		Width:   800,
		Height:  600,
		XLeft:   -4,
		XRight:  4,
		YTop:    3,
		YBottom: -3,
	}
}

// Angular speeds, in degrees per frame.
const (
	vaneSpeed  = 0.75
	wheelSpeed = -3
)

// Windmill is an animated scene with three windmills.  Each windmill
// consists of a base, a rotating vane, and two wheels which ride on the
// ends of the vane while spinning about their own centers.
type Windmill struct {
	opt WindmillOptions
}

// NewWindmill returns the windmill demo.
func NewWindmill(opt WindmillOptions) *Windmill {
	return &Windmill{opt: opt}
}

// Name implements the [Demo] interface.
func (w *Windmill) Name() string {
	return "windmill"
}

// Size implements the [Demo] interface.
func (w *Windmill) Size() (int, int) {
	return w.opt.Width, w.opt.Height
}

// Background implements the [Demo] interface.
func (w *Windmill) Background() color.NRGBA {
	return White
}

// Viewport returns the mapping from scene coordinates to pixels.
func (w *Windmill) Viewport() (*viewport.Mapping, error) {
	spec := viewport.Spec{
		XLeft:          w.opt.XLeft,
		XRight:         w.opt.XRight,
		YTop:           w.opt.YTop,
		YBottom:        w.opt.YBottom,
		PreserveAspect: w.opt.PreserveAspect,
		Width:          w.opt.Width,
		Height:         w.opt.Height,
	}
	return spec.Map()
}

// RenderFrame draws the scene at the given frame number.
func (w *Windmill) RenderFrame(frame int) ([]DrawCall, error) {
	vp, err := w.Viewport()
	if err != nil {
		return nil, err
	}

	p := &windmillPass{
		Composer: NewComposer(vp.Matrix),
		frame:    float64(frame),
	}
	p.Engine().SetLineWidth(vp.PixelSize)

	p.windmill(Blue, 0, 2)
	p.windmill(Cyan, 2, -2.5)
	p.windmill(Green, -4, 0)

	return p.Calls(), nil
}

// windmillPass holds the state of drawing one frame.
type windmillPass struct {
	*Composer
	frame float64
}

func (p *windmillPass) windmill(base color.NRGBA, x, y float64) {
	p.Group(func() {
		p.Engine().Translate(x, y)
		p.wheel(1)
		p.wheel(-1)
		p.vane()
		p.base(base)
	})
}

func (p *windmillPass) base(c color.NRGBA) {
	p.Group(func() {
		e := p.Engine()
		e.SetColor(c)
		e.Scale(1, 2)
		e.Translate(0, -1)
		p.Draw(shape.FilledTriangle())
	})
}

func (p *windmillPass) vane() {
	p.Group(func() {
		e := p.Engine()
		e.SetColor(Red)
		e.Rotate(degrees(p.frame * vaneSpeed))
		e.Scale(2, .25)
		p.Draw(shape.FilledSquare())
	})
}

// wheel draws a wheel at distance 1 from the hub, on the side given by
// the sign of x.
func (p *windmillPass) wheel(x float64) {
	p.Group(func() {
		e := p.Engine()
		e.SetColor(Black)
		e.Rotate(degrees(p.frame * vaneSpeed))
		e.Translate(x, 0)
		e.SetLineWidth(1)
		e.Scale(.005, .005)
		p.rim()
	})
}

func (p *windmillPass) rim() {
	p.Group(func() {
		p.Engine().Rotate(degrees(p.frame * wheelSpeed))
		p.Draw(shape.RegularPolygon(12, 100))
	})
}

func degrees(deg float64) float64 {
	return deg * math.Pi / 180
}
