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
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/hierarchy/scene"
	"seehuhn.de/go/hierarchy/shape"
)

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestCanvasBackground(t *testing.T) {
	c := NewCanvas(20, 10, scene.Yellow)
	for _, p := range []image.Point{{0, 0}, {19, 9}, {10, 5}} {
		if got := c.Image().RGBAAt(p.X, p.Y); got != rgba(scene.Yellow) {
			t.Errorf("pixel %v: got %v", p, got)
		}
	}
}

func TestCanvasPaintOrder(t *testing.T) {
	c := NewCanvas(40, 40, scene.White)
	c.Draw(
		scene.DrawCall{
			Shape:  shape.FilledSquare(),
			Matrix: matrix.Scale(20, 20).Translate(20, 20),
			Color:  scene.Red,
		},
		scene.DrawCall{
			Shape:  shape.FilledSquare(),
			Matrix: matrix.Scale(10, 10).Translate(25, 25),
			Color:  scene.Blue,
		},
	)

	img := c.Image()
	type testCase struct {
		x, y int
		want color.NRGBA
	}
	cases := []testCase{
		{2, 2, scene.White},
		{12, 12, scene.Red},
		{25, 25, scene.Blue},
		{29, 21, scene.Blue},
		{18, 28, scene.Red},
	}
	for _, tc := range cases {
		if got := img.RGBAAt(tc.x, tc.y); got != rgba(tc.want) {
			t.Errorf("pixel (%d, %d): got %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestCanvasStroke(t *testing.T) {
	c := NewCanvas(40, 40, scene.White)
	c.Draw(scene.DrawCall{
		Shape:     shape.Square(),
		Matrix:    matrix.Scale(20, 20).Translate(20, 20),
		Color:     scene.Black,
		LineWidth: 0.1,
	})

	img := c.Image()
	if got := img.RGBAAt(20, 20); got != rgba(scene.White) {
		t.Errorf("interior painted: %v", got)
	}
	if got := img.RGBAAt(10, 20); got != rgba(scene.Black) {
		t.Errorf("outline missing: %v", got)
	}
}

func TestCanvasCollapsedShape(t *testing.T) {
	c := NewCanvas(16, 16, scene.White)
	c.Draw(scene.DrawCall{
		Shape:  shape.FilledSquare(),
		Matrix: matrix.Scale(0, 0).Translate(8, 8),
		Color:  scene.Black,
	})
	want := NewCanvas(16, 16, scene.White)
	if d := cmp.Diff(want.Image().Pix, c.Image().Pix); d != "" {
		t.Errorf("collapsed shape changed the image:\n%s", d)
	}
}

func TestCanvasLabel(t *testing.T) {
	c := NewCanvas(100, 20, scene.White)
	c.Label(4, 15, "frame 1", scene.Black)

	dark := 0
	img := c.Image()
	for y := range 20 {
		for x := range 100 {
			if img.RGBAAt(x, y).R < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("label left no marks")
	}
}

func TestRenderSelector(t *testing.T) {
	c, err := Render(scene.NewSelector(scene.DefaultSelectorSize), 0)
	if err != nil {
		t.Fatal(err)
	}
	img := c.Image()
	if got := img.RGBAAt(300, 300); got != rgba(scene.Yellow) {
		t.Errorf("center: got %v, want background", got)
	}

	// vertex 0 of the polygon lies at (150, 0) relative to the center,
	// where the outline is about one pixel wide
	var ink float64
	for x := 440; x < 460; x++ {
		ink += float64(255-img.RGBAAt(x, 300).R) / 255
	}
	if ink < 0.7 || ink > 2 {
		t.Errorf("outline at vertex 0 has width %g", ink)
	}
}

func TestRenderWindmill(t *testing.T) {
	d := scene.NewWindmill(scene.DefaultWindmillOptions())
	c, err := Render(d, 0)
	if err != nil {
		t.Fatal(err)
	}
	img := c.Image()

	// the blue base, below the hub
	if got := img.RGBAAt(400, 250); got != rgba(scene.Blue) {
		t.Errorf("base: got %v, want blue", got)
	}
	// the red vane, left of the hub at frame 0
	if got := img.RGBAAt(330, 95); got != rgba(scene.Red) {
		t.Errorf("vane: got %v, want red", got)
	}
	if got := img.RGBAAt(5, 5); got != rgba(scene.White) {
		t.Errorf("corner: got %v, want white", got)
	}
}

func TestWritePNG(t *testing.T) {
	c := NewCanvas(8, 6, scene.Cyan)
	buf := &bytes.Buffer{}
	if err := c.WritePNG(buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("decoded size %v", b)
	}

	fname := filepath.Join(t.TempDir(), "out.png")
	if err := c.SavePNG(fname); err != nil {
		t.Fatal(err)
	}
}
