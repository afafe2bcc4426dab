package canvas

import "github.com/Carmen-Shannon/oxy-canvas/engine/profiler"

// CanvasBuilderOption is a functional option for configuring a Canvas.
type CanvasBuilderOption func(c *Canvas)

// WithLocksCursor selects locked-delta input: a primary-button press requests pointer lock and
// only relative motion is reported. When false the absolute cursor position is tracked.
//
// Parameters:
//   - locks: true for locked-delta mode
//
// Returns:
//   - CanvasBuilderOption: option function to apply
func WithLocksCursor(locks bool) CanvasBuilderOption {
	return func(c *Canvas) {
		c.locksCursor = locks
	}
}

// WithCapabilities sets the capability set.
//
// Parameters:
//   - capabilities: any combination of Driveable, Resizable and InputAware
//
// Returns:
//   - CanvasBuilderOption: option function to apply
func WithCapabilities(capabilities Capabilities) CanvasBuilderOption {
	return func(c *Canvas) {
		c.capabilities = capabilities
	}
}

// WithEdgeSuppression sets the predicate that drops key press/release edges, for example while
// the host window is not focused. Pointer button edges are never dropped.
//
// Parameters:
//   - suppress: returns true while key edges should be dropped
//
// Returns:
//   - CanvasBuilderOption: option function to apply
func WithEdgeSuppression(suppress func() bool) CanvasBuilderOption {
	return func(c *Canvas) {
		c.suppress = suppress
	}
}

// WithOnInit sets the hook called after the renderer is initialized on mount.
//
// Parameters:
//   - fn: the init hook
//
// Returns:
//   - CanvasBuilderOption: option function to apply
func WithOnInit(fn InitFunc) CanvasBuilderOption {
	return func(c *Canvas) {
		c.onInit = fn
	}
}

// WithOnResize sets the hook called after each backing-store resize.
//
// Parameters:
//   - fn: the resize hook
//
// Returns:
//   - CanvasBuilderOption: option function to apply
func WithOnResize(fn ResizeFunc) CanvasBuilderOption {
	return func(c *Canvas) {
		c.onResize = fn
	}
}

// WithOnDraw replaces the default draw (renderer.Draw) with fn.
//
// Parameters:
//   - fn: the draw hook
//
// Returns:
//   - CanvasBuilderOption: option function to apply
func WithOnDraw(fn DrawFunc) CanvasBuilderOption {
	return func(c *Canvas) {
		if fn != nil {
			c.onDraw = fn
		}
	}
}

// WithProfiler feeds every frame delta to p.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - CanvasBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) CanvasBuilderOption {
	return func(c *Canvas) {
		c.profiler = p
	}
}
