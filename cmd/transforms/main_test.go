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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/hierarchy/scene"
)

func TestRender(t *testing.T) {
	dir := t.TempDir()
	s := scene.NewSelector(200)

	fname, err := render(s, 4, dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if fname != filepath.Join(dir, "transforms-4.png") {
		t.Errorf("unexpected file name %q", fname)
	}
	for _, name := range []string{"transforms-4.png", "transforms-4.pdf"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Error(err)
		}
	}

	_, err = render(s, scene.NumSelections, dir, false)
	if !errors.Is(err, scene.ErrUnknownSelection) {
		t.Errorf("got %v, want ErrUnknownSelection", err)
	}
}
