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

// Package pdfout writes draw calls as vector graphics to a PDF file.
//
// One pixel of the drawing area becomes one PDF point.  Every shape is
// written in its local coordinates, under its own transformation matrix,
// so that strokes are widened in the local coordinate system of the shape.
package pdfout

import (
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/hierarchy"
	"seehuhn.de/go/hierarchy/scene"
	"seehuhn.de/go/hierarchy/shape"
	"seehuhn.de/go/hierarchy/transform"
)

// contentWriter is the part of a PDF page used to paint draw calls.
type contentWriter interface {
	PushGraphicsState()
	PopGraphicsState()
	Transform(m matrix.Matrix)
	SetLineWidth(w float64)
	SetFillColor(c pdfcolor.Color)
	SetStrokeColor(c pdfcolor.Color)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
	Fill()
	Stroke()
}

// Write creates a single page PDF file of the given size, filled with bg,
// and paints the draw calls onto it.  The alpha channel of colors is
// ignored.
func Write(fname string, width, height int, bg color.NRGBA, calls []scene.DrawCall) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("pdfout: invalid page size %dx%d", width, height)
	}

	w, h := float64(width), float64(height)
	page, err := document.CreateSinglePage(fname, &pdf.Rectangle{URx: w, URy: h}, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(deviceColor(bg))
	page.Rectangle(0, 0, w, h)
	page.Fill()

	// PDF has the origin at the bottom left, device space at the top left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})

	page.SetLineCap(graphics.LineCapSquare)
	page.SetLineJoin(graphics.LineJoinMiter)
	page.SetMiterLimit(10)

	paint(page, calls)

	return page.Close()
}

// paint writes the draw calls in order.  Calls with a singular matrix are
// skipped.
func paint(page contentWriter, calls []scene.DrawCall) {
	log := hierarchy.Logger()
	for i, call := range calls {
		if transform.Det(call.Matrix) == 0 {
			log.Debug("skipping collapsed shape", "call", i, "kind", call.Shape.Kind)
			continue
		}

		page.PushGraphicsState()

		// graphics state must be set before the path is constructed
		page.Transform(call.Matrix)
		fill := call.Shape.Mode == shape.Fill
		if fill {
			page.SetFillColor(deviceColor(call.Color))
		} else {
			page.SetLineWidth(call.LineWidth)
			page.SetStrokeColor(deviceColor(call.Color))
		}

		writePath(page, call.Shape.Path())

		if fill {
			page.Fill()
		} else {
			page.Stroke()
		}

		page.PopGraphicsState()
	}
}

func writePath(page contentWriter, p *path.Data) {
	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = p.Coords[k]
			start = cur
			page.MoveTo(cur.X, cur.Y)
			k++
		case path.CmdLineTo:
			cur = p.Coords[k]
			page.LineTo(cur.X, cur.Y)
			k++
		case path.CmdQuadTo:
			// PDF has no quadratic curves
			q, to := p.Coords[k], p.Coords[k+1]
			c1 := cur.Add(q.Sub(cur).Mul(2.0 / 3))
			c2 := to.Add(q.Sub(to).Mul(2.0 / 3))
			page.CurveTo(c1.X, c1.Y, c2.X, c2.Y, to.X, to.Y)
			cur = to
			k += 2
		case path.CmdCubeTo:
			c1, c2 := p.Coords[k], p.Coords[k+1]
			cur = p.Coords[k+2]
			page.CurveTo(c1.X, c1.Y, c2.X, c2.Y, cur.X, cur.Y)
			k += 3
		case path.CmdClose:
			page.ClosePath()
			cur = start
		}
	}
}

// WriteDemo writes frame n of d to the named file.
func WriteDemo(fname string, d scene.Demo, n int) error {
	calls, err := d.RenderFrame(n)
	if err != nil {
		return err
	}
	w, h := d.Size()
	return Write(fname, w, h, d.Background(), calls)
}

func deviceColor(c color.NRGBA) pdfcolor.Color {
	return pdfcolor.DeviceRGB{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}
