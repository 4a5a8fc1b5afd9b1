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

// Command drawcalls writes the draw calls of one frame of a demo as JSON,
// for use by external renderers.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"seehuhn.de/go/hierarchy"
	"seehuhn.de/go/hierarchy/scene"
)

func main() {
	demo := flag.String("demo", "windmill", "demo to export: "+strings.Join(scene.DemoNames(), ", "))
	frame := flag.Int("frame", 0, "frame number, or selection index for the transforms demo")
	outFile := flag.String("o", "", "output file (default standard output)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	hierarchy.SetLogger(logger)

	if err := run(*demo, *frame, *outFile); err != nil {
		logger.Error("export failed", "demo", *demo, "frame", *frame, "error", err)
		os.Exit(1)
	}
}

func run(demo string, frame int, outFile string) (err error) {
	d, ok := scene.Demos()[demo]
	if !ok {
		return fmt.Errorf("unknown demo %q", demo)
	}
	out, err := toJSON(d, frame)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
