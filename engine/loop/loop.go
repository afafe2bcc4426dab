// Package loop drives the continuous per-frame sequence of a managed surface.
package loop

import (
	"time"

	"github.com/Carmen-Shannon/oxy-canvas/engine/clock"
	"github.com/Carmen-Shannon/oxy-canvas/engine/host"
	"github.com/Carmen-Shannon/oxy-canvas/engine/profiler"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
)

// Driver is a cancellable repeating frame task. Each frame runs, in order: re-schedule,
// reconcile, released check, clock tick, draw, reset.
type Driver struct {
	scheduler host.Scheduler
	clock     *clock.FrameClock
	profiler  *profiler.Profiler

	reconcile func() (bool, error)
	released  func() bool
	draw      func(now, delta time.Duration)
	reset     func()

	pending host.FrameID
	running bool
}

// NewDriver creates a stopped Driver.
//
// Parameters:
//   - s: the host frame scheduler
//   - c: the clock providing per-frame deltas
//   - options: functional options supplying the frame stages
//
// Returns:
//   - *Driver: the driver
func NewDriver(s host.Scheduler, c *clock.FrameClock, options ...DriverBuilderOption) *Driver {
	d := &Driver{
		scheduler: s,
		clock:     c,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// Running reports whether a frame is scheduled.
func (d *Driver) Running() bool {
	return d.running
}

// Start schedules the first frame and resets the clock so the first delta is 0.
// Starting a running driver is a no-op.
func (d *Driver) Start() {
	if d.running {
		return
	}
	d.running = true
	d.clock.Reset()
	d.pending = d.scheduler.RequestFrame(d.frame)
}

// Stop cancels the pending frame. No frame callback runs after Stop returns, including when
// Stop is called from inside a frame. Stopping a stopped driver is a no-op.
func (d *Driver) Stop() {
	if !d.running {
		return
	}
	d.scheduler.CancelFrame(d.pending)
	d.pending = 0
	d.running = false
}

func (d *Driver) frame(now time.Duration) {
	if !d.running {
		return
	}
	// Re-schedule before any work so a panic or early return in this frame keeps the loop alive.
	d.pending = d.scheduler.RequestFrame(d.frame)
	d.Step(now)
}

// Step runs one frame without scheduling another, for callers that own the draw loop.
// A reconciliation failure is a lifecycle bug and panics with a *surface.InvariantError.
//
// Parameters:
//   - now: the frame timestamp
func (d *Driver) Step(now time.Duration) {
	if d.reconcile != nil {
		if _, err := d.reconcile(); err != nil {
			panic(&surface.InvariantError{Op: "frame", Err: err})
		}
	}
	if d.released != nil && d.released() {
		return
	}

	delta := d.clock.Tick(now)

	if d.draw != nil {
		d.draw(now, delta)
	}
	if d.reset != nil {
		d.reset()
	}
	if d.profiler != nil {
		d.profiler.Tick(delta)
	}
}
