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

// Command transforms draws a regular polygon under one of ten transforms.
// Each selection is written to transforms-N.png; with -selection -1 all of
// them are written.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"seehuhn.de/go/hierarchy"
	"seehuhn.de/go/hierarchy/pdfout"
	"seehuhn.de/go/hierarchy/raster"
	"seehuhn.de/go/hierarchy/scene"
)

func main() {
	selection := flag.Int("selection", -1, "transform to apply, 0-9 (-1 for all)")
	size := flag.Int("size", scene.DefaultSelectorSize, "side length of the image in pixels")
	outDir := flag.String("out", ".", "output directory")
	writePDF := flag.Bool("pdf", false, "also write PDF files")
	verbose := flag.Bool("v", false, "log debug messages")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	hierarchy.SetLogger(logger)

	sel := []int{*selection}
	if *selection < 0 {
		sel = sel[:0]
		for i := range scene.NumSelections {
			sel = append(sel, i)
		}
	}

	s := scene.NewSelector(*size)
	for _, n := range sel {
		fname, err := render(s, n, *outDir, *writePDF)
		if err != nil {
			logger.Error("rendering failed", "selection", n, "error", err)
			os.Exit(1)
		}
		logger.Info("selection written", "selection", n, "file", fname)
	}
}

func render(s *scene.Selector, n int, outDir string, writePDF bool) (string, error) {
	c, err := raster.Render(s, n)
	if err != nil {
		return "", err
	}
	c.Label(10, 20, scene.SelectionLabels()[n], scene.Black)

	base := filepath.Join(outDir, fmt.Sprintf("transforms-%d", n))
	if err := c.SavePNG(base + ".png"); err != nil {
		return "", err
	}
	if writePDF {
		if err := pdfout.WriteDemo(base+".pdf", s, n); err != nil {
			return "", err
		}
	}
	return base + ".png", nil
}
