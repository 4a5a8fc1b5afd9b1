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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/hierarchy/scene"
)

func TestToJSONWindmill(t *testing.T) {
	out, err := toJSON(scene.NewWindmill(scene.DefaultWindmillOptions()), 5)
	if err != nil {
		t.Fatal(err)
	}
	if out.Demo != "windmill" || out.Width != 800 || out.Height != 600 {
		t.Errorf("unexpected header %+v", out)
	}
	if out.Background != "#ffffffff" {
		t.Errorf("background %s", out.Background)
	}
	if len(out.Calls) != 12 {
		t.Fatalf("got %d calls, want 12", len(out.Calls))
	}

	vane := out.Calls[2]
	if vane.Kind != "square" || vane.Mode != "fill" || vane.Color != "#ff0000ff" {
		t.Errorf("unexpected vane %+v", vane)
	}
	if len(vane.Path) != 5 || vane.Path[0].Cmd != "M" || vane.Path[4].Cmd != "Z" {
		t.Errorf("unexpected vane path %+v", vane.Path)
	}
}

func TestRunWritesFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "calls.json")
	if err := run("transforms", 2, fname); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	var got jsonFrame
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Demo != "transforms" || len(got.Calls) != 1 || len(got.Calls[0].Points) != 12 {
		t.Errorf("unexpected content %+v", got)
	}
}

func TestRunUnknownDemo(t *testing.T) {
	if err := run("clock", 0, ""); err == nil {
		t.Error("unknown demo accepted")
	}
}
