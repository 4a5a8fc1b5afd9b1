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

package raster

import (
	"bufio"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/hierarchy"
	"seehuhn.de/go/hierarchy/scene"
	"seehuhn.de/go/hierarchy/shape"
)

// Canvas is an RGBA image which draw calls can be painted onto.
type Canvas struct {
	img  *image.RGBA
	mask *image.Alpha
	r    *Rasterizer

	// bounding box of the coverage written to mask by the current call
	dirty image.Rectangle
}

// NewCanvas allocates a canvas of the given size and clears it to bg.
func NewCanvas(width, height int, bg color.Color) *Canvas {
	bounds := image.Rect(0, 0, width, height)
	c := &Canvas{
		img:  image.NewRGBA(bounds),
		mask: image.NewAlpha(bounds),
		r:    NewRasterizer(rect.Rect{URx: float64(width), URy: float64(height)}),
	}
	draw.Draw(c.img, bounds, image.NewUniform(bg), image.Point{}, draw.Src)
	return c
}

// Draw paints the draw calls in order.  Later calls cover earlier ones.
func (c *Canvas) Draw(calls ...scene.DrawCall) {
	for _, call := range calls {
		c.draw(call)
	}
}

func (c *Canvas) draw(call scene.DrawCall) {
	r := c.r
	r.Reset(r.Clip)
	r.CTM = call.Matrix
	r.Width = call.LineWidth
	r.Cap = graphics.LineCapSquare
	r.Join = graphics.LineJoinMiter

	c.dirty = image.Rectangle{}
	p := call.Shape.Path()
	switch call.Shape.Mode {
	case shape.Fill:
		r.Fill(p, c.emit)
	default:
		r.Stroke(p, c.emit)
	}
	if c.dirty.Empty() {
		hierarchy.Logger().Debug("draw call has no coverage", "kind", call.Shape.Kind)
		return
	}

	draw.DrawMask(c.img, c.dirty, image.NewUniform(call.Color), image.Point{}, c.mask, c.dirty.Min, draw.Over)

	for y := c.dirty.Min.Y; y < c.dirty.Max.Y; y++ {
		i := c.mask.PixOffset(c.dirty.Min.X, y)
		clear(c.mask.Pix[i : i+c.dirty.Dx()])
	}
}

func (c *Canvas) emit(y, xMin int, coverage []float32) {
	row := c.mask.Pix[c.mask.PixOffset(xMin, y):]
	for i, v := range coverage {
		row[i] = uint8(v*255 + 0.5)
	}
	c.dirty = c.dirty.Union(image.Rect(xMin, y, xMin+len(coverage), y+1))
}

// Label writes text with its baseline starting at pixel (x, y).
func (c *Canvas) Label(x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// Image returns the canvas contents.  The image is shared with the canvas.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// WritePNG encodes the canvas as a PNG image.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// SavePNG writes the canvas to the named file.
func (c *Canvas) SavePNG(fname string) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := c.WritePNG(w); err != nil {
		return err
	}
	return w.Flush()
}

// Render paints one frame of a demo onto a new canvas.
func Render(d scene.Demo, n int) (*Canvas, error) {
	calls, err := d.RenderFrame(n)
	if err != nil {
		return nil, err
	}
	w, h := d.Size()
	c := NewCanvas(w, h, d.Background())
	c.Draw(calls...)
	return c, nil
}
