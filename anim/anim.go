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

// Package anim drives an animation by a periodic frame counter.
//
// A [Driver] advances its [Clock] at a fixed interval and requests a redraw
// for every tick.  Requests which arrive while a frame is still being drawn
// are merged, so that a slow draw function skips frames instead of falling
// behind.
package anim

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"seehuhn.de/go/hierarchy"
)

// DefaultInterval is the time between frames, about 60 frames per second.
const DefaultInterval = 17 * time.Millisecond

// Clock is a frame counter.  The zero value starts at frame 0.
// All methods are safe for concurrent use.
type Clock struct {
	frame atomic.Int64
}

// Frame returns the current frame number.
func (c *Clock) Frame() int {
	return int(c.frame.Load())
}

// Advance increments the frame number and returns the new value.
func (c *Clock) Advance() int {
	return int(c.frame.Add(1))
}

// Reset sets the frame number back to 0.
func (c *Clock) Reset() {
	c.frame.Store(0)
}

// Driver ticks a [Clock] while it is running.
type Driver struct {
	Clock

	interval time.Duration
	frames   chan int

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDriver returns a stopped driver.  If interval is not positive,
// [DefaultInterval] is used.
func NewDriver(interval time.Duration) *Driver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Driver{
		interval: interval,
		frames:   make(chan int, 1),
	}
}

// Interval returns the time between ticks.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Start begins ticking.  The driver stops when ctx is cancelled or when
// [Driver.Stop] is called.  Start does nothing if the driver is already
// running.
func (d *Driver) Start(ctx context.Context) {
	d.start(ctx)
}

// start returns the channel which is closed when the running ticker
// goroutine exits.
func (d *Driver) start(ctx context.Context) chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return d.done
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	d.cancel = cancel
	d.done = done
	go d.loop(ctx, done)
	return done
}

// Stop ends ticking and waits for the ticker goroutine to exit.
// A pending redraw request stays available on [Driver.Frames].
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the driver is ticking.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}

// Frames returns the channel of redraw requests.  Each value is the frame
// number to draw.  At most one request is pending at any time.
func (d *Driver) Frames() <-chan int {
	return d.frames
}

// Run starts the driver and calls draw for every redraw request, one call
// at a time.  Run returns nil when ctx is done or the driver is stopped,
// and the error if draw fails.  The driver is stopped when Run returns.
func (d *Driver) Run(ctx context.Context, draw func(frame int) error) error {
	done := d.start(ctx)
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case n := <-d.frames:
			if err := draw(n); err != nil {
				return err
			}
		}
	}
}

func (d *Driver) loop(ctx context.Context, done chan struct{}) {
	defer func() {
		d.mu.Lock()
		if d.done == done {
			d.cancel()
			d.cancel = nil
			d.done = nil
		}
		d.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.request(d.Advance())
		}
	}
}

// request posts a redraw for frame n, replacing an older pending request.
func (d *Driver) request(n int) {
	for {
		select {
		case d.frames <- n:
			return
		default:
		}
		select {
		case old := <-d.frames:
			hierarchy.Logger().Debug("frame dropped", "frame", old, "next", n)
		default:
		}
	}
}
