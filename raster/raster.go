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

// Package raster paints draw calls into pixel images.
//
// The [Rasterizer] computes anti-aliased coverage for filled and stroked
// paths under an arbitrary affine transformation.  A [Canvas] uses it to
// composite a list of draw calls onto an RGBA image.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one row of pixels, starting at column
// xMin.  Coverage values range from 0 (outside) to 1 (inside).  The slice is
// only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device space.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // inverse slope, (x1-x0)/(y1-y0)
}

// Rasterizer converts paths to pixel coverage.  Internal buffers are
// reused between calls, so a single Rasterizer should be used for all
// shapes of a frame.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  A singular CTM is allowed; the
	// collapsed shapes then have no coverage.
	CTM matrix.Matrix

	// Clip limits the output to this device-space rectangle.
	// The coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the line segments used to approximate it.
	Flatness float64

	// Width is the stroke width in user space.
	Width float64

	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64

	// Paths whose device-space bounding box has fewer pixels than this use
	// full 2D accumulation buffers.  Larger paths use an active edge list
	// and a single row of buffers.
	smallPathThreshold int

	cover    []float32 // signed vertical extent of edges per pixel
	area     []float32 // the same, weighted by horizontal position
	edges    []edge
	active   []int
	rowDirty []bool

	bboxEmpty          bool
	bboxXMin, bboxXMax float64
	bboxYMin, bboxYMax float64

	// stroking
	outline       []vec.Vec2 // polygons, one after another
	outlineStart  []int
	segs          []strokeSegment
	subpathStart  []int
	subpathClosed []bool
	dots          []vec.Vec2 // subpaths of length zero
}

// NewRasterizer returns a Rasterizer for the given clip rectangle, with the
// identity CTM and a stroke width of 1.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// The capacity of the internal buffers is kept.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.smallPathThreshold = smallPathThreshold
}

// toDevice maps a user space point to device space.
func (r *Rasterizer) toDevice(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*p.X + r.CTM[2]*p.Y + r.CTM[4],
		Y: r.CTM[1]*p.X + r.CTM[3]*p.Y + r.CTM[5],
	}
}

// toDeviceLinear applies the CTM without the translation part.
func (r *Rasterizer) toDeviceLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenCubic approximates the Bézier curve p0, p1, p2, p3 (in user space)
// by line segments, which are passed to emit.  The number of segments is
// chosen using Wang's formula, measured in device space.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	dd1 := r.toDeviceLinear(p0.Sub(p1.Mul(2)).Add(p2))
	dd2 := r.toDeviceLinear(p1.Sub(p2.Mul(2)).Add(p3))

	n := 1
	if m := max(dd1.Length(), dd2.Length()); m > 0 {
		if k := math.Sqrt(3 * m / (4 * r.Flatness)); k > 1 {
			n = int(math.Ceil(k))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

// walk flattens p.  Every line segment, including the segment added by a
// CmdClose, is passed to seg.  At the end of each subpath, end is called
// with the current point, the start point, and whether the subpath was
// closed explicitly.  Subpaths without drawing commands are reported with
// drawn set to false.
func (r *Rasterizer) walk(p *path.Data, seg func(a, b vec.Vec2), end func(cur, start vec.Vec2, closed, drawn bool)) {
	var cur, start vec.Vec2
	open := false
	drawn := false
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				end(cur, start, false, drawn)
			}
			cur = p.Coords[k]
			start = cur
			open = true
			drawn = false
			k++
		case path.CmdLineTo:
			seg(cur, p.Coords[k])
			cur = p.Coords[k]
			drawn = true
			k++
		case path.CmdQuadTo:
			// raise the degree, the curve is unchanged
			q, to := p.Coords[k], p.Coords[k+1]
			c1 := cur.Add(q.Sub(cur).Mul(2.0 / 3))
			c2 := to.Add(q.Sub(to).Mul(2.0 / 3))
			r.flattenCubic(cur, c1, c2, to, seg)
			cur = to
			drawn = true
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2], seg)
			cur = p.Coords[k+2]
			drawn = true
			k += 3
		case path.CmdClose:
			if !open {
				continue
			}
			if cur != start {
				seg(cur, start)
			}
			end(start, start, true, drawn)
			cur = start
			open = false
		}
	}
	if open {
		end(cur, start, false, drawn)
	}
}

// Fill computes the coverage of the interior of p, using the nonzero
// winding rule.  Open subpaths are closed implicitly.  Rows are passed to
// emit from top to bottom; rows without coverage are skipped.
func (r *Rasterizer) Fill(p *path.Data, emit EmitFunc) {
	r.beginEdges()
	r.walk(p, r.addEdge, func(cur, start vec.Vec2, _, _ bool) {
		if cur != start {
			r.addEdge(cur, start)
		}
	})
	r.fillEdges(emit)
}

func (r *Rasterizer) beginEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// addEdge transforms the user space segment p0-p1 to device space and adds
// it to the edge list.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	a := r.toDevice(p0)
	b := r.toDevice(p1)

	dy := b.Y - a.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return // horizontal edges have no effect on coverage
	}
	r.edges = append(r.edges, edge{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy: (b.X - a.X) / dy,
	})

	if r.bboxEmpty {
		r.bboxXMin, r.bboxXMax = min(a.X, b.X), max(a.X, b.X)
		r.bboxYMin, r.bboxYMax = min(a.Y, b.Y), max(a.Y, b.Y)
		r.bboxEmpty = false
		return
	}
	r.bboxXMin = min(r.bboxXMin, a.X, b.X)
	r.bboxXMax = max(r.bboxXMax, a.X, b.X)
	r.bboxYMin = min(r.bboxYMin, a.Y, b.Y)
	r.bboxYMax = max(r.bboxYMax, a.Y, b.Y)
}

// fillEdges rasterizes the current edge list.
func (r *Rasterizer) fillEdges(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.bboxXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bboxXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.bboxYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.bboxYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmall(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillLarge(xMin, xMax, yMin, yMax, emit)
	}
}

// The coverage of a pixel is found by accumulating, for every edge which
// crosses the pixel row, two quantities:
//
//   - cover: the signed height of the part of the edge inside the pixel
//     column (positive for edges pointing down);
//   - area: cover, weighted by the fraction of the pixel to the right of
//     the edge.
//
// Summing cover from the left edge of the row and adding area gives the
// signed area inside the path for each pixel.  The nonzero rule then
// clamps the absolute value to [0, 1].

// accumulate adds the contribution of e to row y.  The buffers cover the
// columns xMin to xMax-1.  Edges to the left of xMin add their full height
// to the first column.
func (r *Rasterizer) accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	colA := int(math.Floor(min(xa, xb)))
	colB := int(math.Floor(max(xa, xb)))

	switch {
	case colB < xMin:
		h := sign * float32(yBot-yTop)
		cover[0] += h
		area[0] += h
		return
	case colA >= xMax:
		return
	case colA == colB:
		r.addPiece(e, yTop, yBot, sign, colA, cover, area, xMin, xMax)
		return
	}

	// The edge crosses several columns: split it at the column boundaries.
	dydx := 1 / e.dxdy
	for col := colA; col <= colB; col++ {
		ya := e.y0 + dydx*(float64(col)-e.x0)
		yb := e.y0 + dydx*(float64(col+1)-e.x0)
		lo := max(min(ya, yb), yTop)
		hi := min(max(ya, yb), yBot)
		if hi <= lo {
			continue
		}
		r.addPiece(e, lo, hi, sign, col, cover, area, xMin, xMax)
	}
}

// addPiece adds the part of e between yTop and yBot, which lies inside
// pixel column col.
func (r *Rasterizer) addPiece(e *edge, yTop, yBot float64, sign float32, col int, cover, area []float32, xMin, xMax int) {
	h := sign * float32(yBot-yTop)
	if col < xMin {
		cover[0] += h
		area[0] += h
		return
	}
	if col >= xMax {
		return
	}

	xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
	frac := xMid - float64(col)

	i := col - xMin
	cover[i] += h
	area[i] += h * float32(1-frac)
}

// integrate turns the accumulated values of one row into coverage, in place.
func integrate(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// trimZeros strips columns without coverage from both ends of a row.
func trimZeros(row []float32) ([]float32, int) {
	lo, hi := 0, len(row)
	for lo < hi && row[lo] == 0 {
		lo++
	}
	for hi > lo && row[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return row[lo:hi], lo
}

// fillSmall accumulates all rows at once into 2D buffers.
func (r *Rasterizer) fillSmall(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	w := xMax - xMin
	h := yMax - yMin

	r.cover = slices.Grow(r.cover[:0], w*h)[:w*h]
	r.area = slices.Grow(r.area[:0], w*h)[:w*h]
	r.rowDirty = slices.Grow(r.rowDirty[:0], h)[:h]
	clear(r.cover)
	clear(r.area)
	clear(r.rowDirty)

	for i := range r.edges {
		e := &r.edges[i]
		y0 := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		y1 := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := y0; y < y1; y++ {
			row := y - yMin
			r.accumulate(e, y, r.cover[row*w:(row+1)*w], r.area[row*w:(row+1)*w], xMin, xMax)
			r.rowDirty[row] = true
		}
	}

	for row := range h {
		if !r.rowDirty[row] {
			continue
		}
		cover := r.cover[row*w : (row+1)*w]
		integrate(cover, r.area[row*w:(row+1)*w])
		if cov, off := trimZeros(cover); cov != nil {
			emit(yMin+row, xMin+off, cov)
		}
	}
}

// fillLarge walks the rows from top to bottom, keeping a list of the edges
// which intersect the current row.
func (r *Rasterizer) fillLarge(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	w := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top, bot := float64(y), float64(y+1)

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < bot {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if max(e.y0, e.y1) <= top {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			r.accumulate(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area)
		if cov, off := trimZeros(r.cover); cov != nil {
			emit(y, xMin+off, cov)
		}
	}
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit turns joins sharper than about 11.5 degrees into
	// bevels, as in PDF and PostScript.
	defaultMiterLimit = 10.0

	horizontalEdgeThreshold = 1e-10

	smallPathThreshold = 65536

	zeroLengthThreshold = 1e-10

	collinearityThreshold = 1e-6

	// cos(179.43°); sharper turns are treated as the path reversing.
	cuspCosineThreshold = -0.9999
)
