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
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/hierarchy/anim"
	"seehuhn.de/go/hierarchy/scene"
)

// config is the content of the optional TOML file.  Keys which are not
// present keep their default values.
//
//	width = 800
//	height = 600
//	x_left = -4.0
//	x_right = 4.0
//	y_top = 3.0
//	y_bottom = -3.0
//	preserve_aspect = false
//	interval_ms = 17
type config struct {
	Width          int     `toml:"width"`
	Height         int     `toml:"height"`
	XLeft          float64 `toml:"x_left"`
	XRight         float64 `toml:"x_right"`
	YTop           float64 `toml:"y_top"`
	YBottom        float64 `toml:"y_bottom"`
	PreserveAspect bool    `toml:"preserve_aspect"`
	IntervalMS     int     `toml:"interval_ms"`
}

func defaultConfig() config {
	opt := scene.DefaultWindmillOptions()
	return config{
		Width:          opt.Width,
		Height:         opt.Height,
		XLeft:          opt.XLeft,
		XRight:         opt.XRight,
		YTop:           opt.YTop,
		YBottom:        opt.YBottom,
		PreserveAspect: opt.PreserveAspect,
		IntervalMS:     int(anim.DefaultInterval / time.Millisecond),
	}
}

func loadConfig(fname string) (config, error) {
	f, err := os.Open(fname)
	if err != nil {
		return config{}, err
	}
	defer f.Close()
	return decodeConfig(f)
}

func decodeConfig(r io.Reader) (config, error) {
	cfg := defaultConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) options() scene.WindmillOptions {
	return scene.WindmillOptions{
		Width:          c.Width,
		Height:         c.Height,
		XLeft:          c.XLeft,
		XRight:         c.XRight,
		YTop:           c.YTop,
		YBottom:        c.YBottom,
		PreserveAspect: c.PreserveAspect,
	}
}

func (c config) interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}
