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

// Command windmill renders the windmill animation.
//
// By default a range of frames is written as PNG files, rendered in
// parallel.  With -live, the animation runs in real time for the given
// duration and the most recent frame is written to windmill-live.png.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/hierarchy"
	"seehuhn.de/go/hierarchy/anim"
	"seehuhn.de/go/hierarchy/pdfout"
	"seehuhn.de/go/hierarchy/raster"
	"seehuhn.de/go/hierarchy/scene"
)

func main() {
	configFile := flag.String("config", "", "TOML file with the drawing area settings")
	first := flag.Int("first", 0, "first frame to render")
	frames := flag.Int("frames", 1, "number of frames to render")
	outDir := flag.String("out", ".", "output directory")
	workers := flag.Int("workers", runtime.NumCPU(), "number of frames rendered in parallel")
	writePDF := flag.Bool("pdf", false, "also write each frame as PDF")
	live := flag.Duration("live", 0, "run the animation in real time for this long")
	verbose := flag.Bool("v", false, "log debug messages")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	hierarchy.SetLogger(logger)

	cfg := defaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = loadConfig(*configFile)
		if err != nil {
			logger.Error("cannot read config", "file", *configFile, "error", err)
			os.Exit(1)
		}
	}

	w := scene.NewWindmill(cfg.options())
	if _, err := w.Viewport(); err != nil {
		logger.Error("invalid drawing area", "error", err)
		os.Exit(1)
	}

	var err error
	if *live > 0 {
		err = runLive(w, cfg.interval(), *live, *outDir)
	} else {
		err = export(context.Background(), w, *first, *frames, *workers, *outDir, *writePDF)
	}
	if err != nil {
		logger.Error("rendering failed", "error", err)
		os.Exit(1)
	}
}

// export renders the frames first, ..., first+n-1.  Every frame builds its
// own scene, so frames can be rendered concurrently.  After the first
// failure, frames which have not been started yet are skipped.
func export(ctx context.Context, w *scene.Windmill, first, n, workers int, outDir string, writePDF bool) error {
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for frame := first; frame < first+n; frame++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			base := filepath.Join(outDir, fmt.Sprintf("windmill-%04d", frame))
			if err := writeFrame(w, frame, base+".png"); err != nil {
				return fmt.Errorf("frame %d: %w", frame, err)
			}
			if writePDF {
				if err := pdfout.WriteDemo(base+".pdf", w, frame); err != nil {
					return fmt.Errorf("frame %d: %w", frame, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	hierarchy.Logger().Info("frames written",
		"count", n, "dir", outDir, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// runLive draws the animation in real time.  Frames which cannot be drawn
// in time are skipped.
func runLive(w *scene.Windmill, interval, duration time.Duration, outDir string) error {
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	fname := filepath.Join(outDir, "windmill-live.png")
	d := anim.NewDriver(interval)
	drawn := 0
	err := d.Run(ctx, func(frame int) error {
		drawn++
		return writeFrame(w, frame, fname)
	})
	if err != nil {
		return err
	}

	hierarchy.Logger().Info("animation finished",
		"ticks", d.Frame(), "drawn", drawn, "file", fname)
	return nil
}

func writeFrame(w *scene.Windmill, frame int, fname string) error {
	c, err := raster.Render(w, frame)
	if err != nil {
		return err
	}
	_, height := w.Size()
	c.Label(8, height-8, fmt.Sprintf("frame %d", frame), scene.Black)
	return c.SavePNG(fname)
}
