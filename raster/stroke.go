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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a line segment of a flattened path, in user space.
type strokeSegment struct {
	a, b vec.Vec2
	t    vec.Vec2 // unit tangent, from a to b
	n    vec.Vec2 // unit normal, t rotated by 90° counter-clockwise
}

// Stroke computes the coverage of the outline of p, using Width, Cap, Join
// and MiterLimit.  The stroke is built in user space, so a non-uniform CTM
// distorts the pen in the same way as the path.
//
// The outline is assembled from one quadrilateral per segment, plus
// polygons for the joins and caps.  All polygons are oriented the same way
// and filled together, so that overlaps are painted once.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	if r.Width <= 0 {
		return
	}

	r.flattenForStroke(p)

	r.outline = r.outline[:0]
	r.outlineStart = r.outlineStart[:0]
	d := r.Width / 2

	for i := range r.subpathStart {
		segs := r.subpath(i)
		for j := range segs {
			s := &segs[j]
			r.polygon(s.a.Add(s.n.Mul(d)), s.b.Add(s.n.Mul(d)), s.b.Sub(s.n.Mul(d)), s.a.Sub(s.n.Mul(d)))
		}
		for j := 1; j < len(segs); j++ {
			r.addJoin(&segs[j-1], &segs[j], d)
		}
		if r.subpathClosed[i] {
			r.addJoin(&segs[len(segs)-1], &segs[0], d)
		} else {
			first, last := &segs[0], &segs[len(segs)-1]
			r.addCap(first.a, first.t.Mul(-1), d)
			r.addCap(last.b, last.t, d)
		}
	}
	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.dots {
			r.beginPolygon()
			r.arc(pt, d, vec.Vec2{X: 1}, 2*math.Pi)
			r.endPolygon()
		}
	}

	r.beginEdges()
	for i, start := range r.outlineStart {
		end := len(r.outline)
		if i+1 < len(r.outlineStart) {
			end = r.outlineStart[i+1]
		}
		poly := r.outline[start:end]
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.fillEdges(emit)
}

// flattenForStroke splits p into subpaths of non-degenerate line segments.
func (r *Rasterizer) flattenForStroke(p *path.Data) {
	r.segs = r.segs[:0]
	r.subpathStart = r.subpathStart[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.dots = r.dots[:0]

	first := 0
	r.walk(p, r.addStrokeSegment, func(_, start vec.Vec2, closed, drawn bool) {
		switch {
		case len(r.segs) > first:
			r.subpathStart = append(r.subpathStart, first)
			r.subpathClosed = append(r.subpathClosed, closed)
		case drawn:
			r.dots = append(r.dots, start)
		}
		first = len(r.segs)
	})
}

func (r *Rasterizer) addStrokeSegment(a, b vec.Vec2) {
	v := b.Sub(a)
	l := v.Length()
	if l < zeroLengthThreshold {
		return
	}
	t := v.Mul(1 / l)
	r.segs = append(r.segs, strokeSegment{a: a, b: b, t: t, n: vec.Vec2{X: -t.Y, Y: t.X}})
}

// subpath returns the segments of subpath i.
func (r *Rasterizer) subpath(i int) []strokeSegment {
	end := len(r.segs)
	if i+1 < len(r.subpathStart) {
		end = r.subpathStart[i+1]
	}
	return r.segs[r.subpathStart[i]:end]
}

// addJoin adds the polygon which fills the gap on the outer side of the
// corner where segment s1 meets segment s2.
func (r *Rasterizer) addJoin(s1, s2 *strokeSegment, d float64) {
	cos := s1.t.Dot(s2.t)
	sin := s1.t.X*s2.t.Y - s1.t.Y*s2.t.X
	if math.Abs(sin) < collinearityThreshold && cos > 0 {
		return
	}
	if cos < cuspCosineThreshold {
		// the path reverses direction
		r.addCap(s2.a, s1.t, d)
		r.addCap(s2.a, s2.t.Mul(-1), d)
		return
	}

	// the outer side is on the right for a left turn
	side := 1.0
	if sin > 0 {
		side = -1
	}
	c := s2.a
	n1 := s1.n.Mul(side)
	n2 := s2.n.Mul(side)
	p1 := c.Add(n1.Mul(d))
	p2 := c.Add(n2.Mul(d))

	switch r.Join {
	case graphics.LineJoinRound:
		r.beginPolygon()
		r.outline = append(r.outline, c)
		r.arc(c, d, n1, math.Copysign(math.Acos(max(-1, min(1, cos))), sin))
		r.endPolygon()
		return
	case graphics.LineJoinMiter:
		// The miter length, relative to the line width, is 1/sin(φ/2)
		// where φ is the angle between the segments.
		sinHalf := math.Sqrt((1 + cos) / 2)
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+1e-10 {
			bisector := n1.Add(n2)
			if l := bisector.Length(); l > zeroLengthThreshold {
				tip := c.Add(bisector.Mul(d / (sinHalf * l)))
				r.polygon(c, p1, tip, p2)
				return
			}
		}
	}
	r.polygon(c, p1, p2)
}

// addCap adds the cap at the end point p of an open subpath.  The vector t
// points away from the path.
func (r *Rasterizer) addCap(p, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := p.Add(t.Mul(d))
		r.polygon(p.Add(n.Mul(d)), ext.Add(n.Mul(d)), ext.Sub(n.Mul(d)), p.Sub(n.Mul(d)))
	case graphics.LineCapRound:
		r.beginPolygon()
		r.arc(p, d, n, -math.Pi)
		r.endPolygon()
	}
}

// arc appends points on the circle around c with the given radius, starting
// in direction dir and turning by sweep radians.  The number of points is
// chosen so that the chords stay within Flatness in device space.
func (r *Rasterizer) arc(c vec.Vec2, radius float64, dir vec.Vec2, sweep float64) {
	devRadius := max(
		r.toDeviceLinear(vec.Vec2{X: radius}).Length(),
		r.toDeviceLinear(vec.Vec2{Y: radius}).Length())

	n := 1
	if devRadius > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}
	for i := 0; i <= n; i++ {
		sin, cos := math.Sincos(sweep * float64(i) / float64(n))
		v := vec.Vec2{
			X: dir.X*cos - dir.Y*sin,
			Y: dir.X*sin + dir.Y*cos,
		}
		r.outline = append(r.outline, c.Add(v.Mul(radius)))
	}
}

// polygon adds a polygon with the given vertices to the outline.
func (r *Rasterizer) polygon(pts ...vec.Vec2) {
	r.beginPolygon()
	r.outline = append(r.outline, pts...)
	r.endPolygon()
}

func (r *Rasterizer) beginPolygon() {
	r.outlineStart = append(r.outlineStart, len(r.outline))
}

// endPolygon completes the last polygon.  Polygons with fewer than three
// vertices are dropped, all others are oriented counter-clockwise.
func (r *Rasterizer) endPolygon() {
	last := len(r.outlineStart) - 1
	poly := r.outline[r.outlineStart[last]:]
	if len(poly) < 3 {
		r.outline = r.outline[:r.outlineStart[last]]
		r.outlineStart = r.outlineStart[:last]
		return
	}

	var area float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		area += p.X*q.Y - q.X*p.Y
	}
	if area < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
}
