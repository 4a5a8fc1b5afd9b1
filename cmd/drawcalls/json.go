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

package main

import (
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/hierarchy/scene"
)

type jsonFrame struct {
	Demo       string     `json:"demo"`
	Frame      int        `json:"frame"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Background string     `json:"background"`
	Calls      []jsonCall `json:"calls"`
}

type jsonCall struct {
	Kind      string        `json:"kind"`
	Mode      string        `json:"mode"`
	Closed    bool          `json:"closed"`
	Points    [][2]float64  `json:"points"`
	Path      []jsonSegment `json:"path"`
	Matrix    [6]float64    `json:"matrix"`
	Color     string        `json:"color"`
	LineWidth float64       `json:"line_width,omitempty"`
}

type jsonSegment struct {
	Cmd string       `json:"cmd"`
	Pts [][2]float64 `json:"pts,omitempty"`
}

func toJSON(d scene.Demo, frame int) (*jsonFrame, error) {
	calls, err := d.RenderFrame(frame)
	if err != nil {
		return nil, err
	}

	w, h := d.Size()
	out := &jsonFrame{
		Demo:       d.Name(),
		Frame:      frame,
		Width:      w,
		Height:     h,
		Background: hexColor(d.Background()),
		Calls:      make([]jsonCall, len(calls)),
	}
	for i, call := range calls {
		jc := jsonCall{
			Kind:      call.Shape.Kind.String(),
			Mode:      call.Shape.Mode.String(),
			Closed:    call.Shape.Closed,
			Points:    make([][2]float64, len(call.Shape.Points)),
			Path:      pathToJSON(call.Shape.Path()),
			Matrix:    [6]float64(call.Matrix),
			Color:     hexColor(call.Color),
			LineWidth: call.LineWidth,
		}
		for j, p := range call.Shape.Points {
			jc.Points[j] = [2]float64{p.X, p.Y}
		}
		out.Calls[i] = jc
	}
	return out, nil
}

func pathToJSON(p *path.Data) []jsonSegment {
	var segs []jsonSegment
	for cmd, pts := range p.Iter() {
		seg := jsonSegment{}
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd = "M"
		case path.CmdLineTo:
			seg.Cmd = "L"
		case path.CmdQuadTo:
			seg.Cmd = "Q"
		case path.CmdCubeTo:
			seg.Cmd = "C"
		case path.CmdClose:
			seg.Cmd = "Z"
		}
		for _, pt := range pts {
			seg.Pts = append(seg.Pts, [2]float64{pt.X, pt.Y})
		}
		segs = append(segs, seg)
	}
	return segs
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
