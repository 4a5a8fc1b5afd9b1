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
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hierarchy/shape"
	"seehuhn.de/go/hierarchy/transform"
	"seehuhn.de/go/hierarchy/viewport"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestComposerGroupIsolatesSiblings(t *testing.T) {
	c := NewComposer(matrix.Identity)
	c.Group(func() {
		c.Engine().Translate(10, 0)
		c.Engine().SetColor(Red)
		c.Draw(shape.Square())
	})
	c.Group(func() {
		c.Draw(shape.Square())
	})

	calls := c.Calls()
	if len(calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(calls))
	}
	if calls[1].Matrix != matrix.Identity {
		t.Errorf("sibling sees matrix %v", calls[1].Matrix)
	}
	if calls[1].Color != Black {
		t.Errorf("sibling sees color %v", calls[1].Color)
	}
}

func TestComposerGroupRestoresOnPanic(t *testing.T) {
	c := NewComposer(matrix.Identity)
	func() {
		defer func() { recover() }()
		c.Group(func() {
			c.Engine().Scale(3, 3)
			panic("broken scene")
		})
	}()
	if c.Engine().Depth() != 0 || c.Engine().Matrix() != matrix.Identity {
		t.Errorf("state not restored after panic")
	}
}

func TestComposerUnbalanced(t *testing.T) {
	c := NewComposer(matrix.Identity)
	c.Engine().Save()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unbalanced save")
		}
	}()
	c.Calls()
}

func devicePoints(dc DrawCall) []vec.Vec2 {
	res := make([]vec.Vec2, len(dc.Shape.Points))
	for i, p := range dc.Shape.Points {
		res[i] = transform.Apply(dc.Matrix, p)
	}
	return res
}

func TestSelectorIdentity(t *testing.T) {
	s := NewSelector(DefaultSelectorSize)
	calls, err := s.RenderFrame(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(calls))
	}

	baseline := shape.RegularPolygon(12, 150).Points
	want := make([]vec.Vec2, len(baseline))
	for i, p := range baseline {
		want[i] = vec.Vec2{X: p.X + 300, Y: p.Y + 300}
	}
	if d := cmp.Diff(want, devicePoints(calls[0])); d != "" {
		t.Errorf("identity selection differs from baseline (-want +got):\n%s", d)
	}
}

func TestSelectorPoints(t *testing.T) {
	center := vec.Vec2{X: 300, Y: 300}
	type testCase struct {
		selection int
		local     vec.Vec2
		want      vec.Vec2
	}
	cases := []testCase{
		{1, vec.Vec2{X: 150, Y: 0}, center.Add(vec.Vec2{X: 75, Y: 0})},
		{2, vec.Vec2{X: 0, Y: 0}, center},
		{3, vec.Vec2{X: 150, Y: 0}, center.Add(vec.Vec2{X: 75, Y: 0})},
		{4, vec.Vec2{X: 0, Y: 100}, center.Add(vec.Vec2{X: 25, Y: 100})},
		{5, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 300, Y: 0}},
		{6, vec.Vec2{X: 150, Y: 0}, center.Add(vec.Vec2{X: -37.5, Y: 150})},
		{7, vec.Vec2{X: 150, Y: 0}, center.Add(vec.Vec2{X: -75, Y: 0})},
		{8, vec.Vec2{X: 0, Y: 0}, center.Add(vec.Vec2{X: -50, Y: 50 * math.Sqrt(3)})},
		{8, vec.Vec2{X: 150, Y: 0}, center.Add(vec.Vec2{X: 75*math.Sqrt(3) - 50, Y: 75 + 50*math.Sqrt(3)})},
		{9, vec.Vec2{X: 150, Y: 0}, center},
	}
	s := NewSelector(DefaultSelectorSize)
	for _, tc := range cases {
		calls, err := s.RenderFrame(tc.selection)
		if err != nil {
			t.Fatal(err)
		}
		got := transform.Apply(calls[0].Matrix, tc.local)
		if d := cmp.Diff(tc.want, got, approx); d != "" {
			t.Errorf("selection %d (-want +got):\n%s", tc.selection, d)
		}
	}
}

func TestSelectorAllBalanced(t *testing.T) {
	s := NewSelector(400)
	for i := range NumSelections {
		calls, err := s.RenderFrame(i)
		if err != nil {
			t.Fatalf("selection %d: %v", i, err)
		}
		if len(calls) != 1 || calls[0].Shape.Mode != shape.Stroke {
			t.Errorf("selection %d: unexpected calls %v", i, calls)
		}
	}
}

func TestSelectorUnknown(t *testing.T) {
	s := NewSelector(DefaultSelectorSize)
	for _, n := range []int{-1, NumSelections} {
		_, err := s.RenderFrame(n)
		if !errors.Is(err, ErrUnknownSelection) {
			t.Errorf("selection %d: got %v, want ErrUnknownSelection", n, err)
		}
	}
}

func TestSelectionLabels(t *testing.T) {
	labels := SelectionLabels()
	if len(labels) != 10 || labels[0] != "None" || labels[9] != "No. 9" {
		t.Errorf("unexpected labels %q", labels)
	}
}

func TestWindmillStructure(t *testing.T) {
	w := NewWindmill(DefaultWindmillOptions())
	calls, err := w.RenderFrame(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(calls) != 12 {
		t.Fatalf("got %d calls, want 12", len(calls))
	}

	bases := []struct {
		col    color.NRGBA
		origin vec.Vec2
	}{
		{Blue, vec.Vec2{X: 0, Y: 2}},
		{Cyan, vec.Vec2{X: 2, Y: -2.5}},
		{Green, vec.Vec2{X: -4, Y: 0}},
	}
	vp, _ := w.Viewport()
	for i, b := range bases {
		group := calls[4*i : 4*i+4]
		for j := range 2 {
			if group[j].Shape.Kind != shape.KindPolygon || group[j].Color != Black {
				t.Errorf("windmill %d call %d: expected black polygon", i, j)
			}
			if group[j].LineWidth != 1 {
				t.Errorf("windmill %d call %d: line width %g", i, j, group[j].LineWidth)
			}
		}
		if group[2].Shape.Kind != shape.KindSquare || group[2].Color != Red {
			t.Errorf("windmill %d: expected red vane", i)
		}
		if group[3].Shape.Kind != shape.KindTriangle || group[3].Color != b.col {
			t.Errorf("windmill %d: expected %v base, got %v", i, b.col, group[3].Color)
		}
		if group[3].LineWidth != vp.PixelSize {
			t.Errorf("windmill %d: base line width %g, want %g", i, group[3].LineWidth, vp.PixelSize)
		}

		// the apex of the base is at the hub of the windmill
		apex := transform.Apply(group[3].Matrix, vec.Vec2{X: 0, Y: 1})
		if d := cmp.Diff(vp.ToPixel(b.origin), apex, approx); d != "" {
			t.Errorf("windmill %d: apex (-want +got):\n%s", i, d)
		}
	}
}

func TestWindmillBaseGeometry(t *testing.T) {
	w := NewWindmill(DefaultWindmillOptions())
	calls, err := w.RenderFrame(17)
	if err != nil {
		t.Fatal(err)
	}
	base := calls[3]
	got := devicePoints(base)
	want := []vec.Vec2{{X: 350, Y: 300}, {X: 450, Y: 300}, {X: 400, Y: 100}}
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Errorf("unexpected base triangle (-want +got):\n%s", d)
	}
}

func TestWindmillAnimation(t *testing.T) {
	w := NewWindmill(DefaultWindmillOptions())

	// after 120 frames the vane has turned by 90 degrees
	calls, err := w.RenderFrame(120)
	if err != nil {
		t.Fatal(err)
	}
	hub := transform.Apply(calls[0].Matrix, vec.Vec2{})
	if d := cmp.Diff(vec.Vec2{X: 400, Y: 0}, hub, approx); d != "" {
		t.Errorf("wheel center (-want +got):\n%s", d)
	}
	tip := transform.Apply(calls[2].Matrix, vec.Vec2{X: 0.5, Y: 0})
	if d := cmp.Diff(vec.Vec2{X: 400, Y: 0}, tip, approx); d != "" {
		t.Errorf("vane tip (-want +got):\n%s", d)
	}

	// the base does not move
	c0, err := w.RenderFrame(0)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(c0[3].Matrix, calls[3].Matrix, approx); d != "" {
		t.Errorf("base moved between frames:\n%s", d)
	}
}

func TestWindmillFramesIndependent(t *testing.T) {
	w := NewWindmill(DefaultWindmillOptions())
	a, err := w.RenderFrame(42)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.RenderFrame(7); err != nil {
		t.Fatal(err)
	}
	b, err := w.RenderFrame(42)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(a, b); d != "" {
		t.Errorf("same frame rendered differently:\n%s", d)
	}
}

func TestWindmillInvalidViewport(t *testing.T) {
	opt := DefaultWindmillOptions()
	opt.XRight = opt.XLeft
	_, err := NewWindmill(opt).RenderFrame(0)
	if !errors.Is(err, viewport.ErrInvalidViewport) {
		t.Errorf("got %v, want ErrInvalidViewport", err)
	}
}

func TestDemos(t *testing.T) {
	names := DemoNames()
	if d := cmp.Diff([]string{"transforms", "windmill"}, names); d != "" {
		t.Errorf("unexpected demo names (-want +got):\n%s", d)
	}
	for name, d := range Demos() {
		if _, err := d.RenderFrame(1); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}
