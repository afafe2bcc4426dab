package loop

import (
	"time"

	"github.com/Carmen-Shannon/oxy-canvas/engine/profiler"
)

// DriverBuilderOption is a functional option for configuring a Driver.
type DriverBuilderOption func(d *Driver)

// WithReconcile sets the resize reconciliation run at the start of each frame.
//
// Parameters:
//   - reconcile: returns whether a resize happened, or an error if the surface is gone
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithReconcile(reconcile func() (bool, error)) DriverBuilderOption {
	return func(d *Driver) {
		d.reconcile = reconcile
	}
}

// WithReleased sets the check that ends a frame early once the surface was released.
//
// Parameters:
//   - released: reports whether the surface is gone
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithReleased(released func() bool) DriverBuilderOption {
	return func(d *Driver) {
		d.released = released
	}
}

// WithDraw sets the draw stage.
//
// Parameters:
//   - draw: receives the frame timestamp and the delta since the previous frame
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithDraw(draw func(now, delta time.Duration)) DriverBuilderOption {
	return func(d *Driver) {
		d.draw = draw
	}
}

// WithReset sets the stage run after draw, typically clearing per-frame input.
//
// Parameters:
//   - reset: the post-draw function
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithReset(reset func()) DriverBuilderOption {
	return func(d *Driver) {
		d.reset = reset
	}
}

// WithProfiler feeds each frame delta to p.
//
// Parameters:
//   - p: the profiler (nil disables profiling)
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) DriverBuilderOption {
	return func(d *Driver) {
		d.profiler = p
	}
}
