package surface

import (
	"errors"
	"fmt"
)

// ErrSurfaceReleased is returned when a surface operation runs after the surface's rendering
// resources were released.
var ErrSurfaceReleased = errors.New("surface has been released")

// ErrContextUnavailable is returned by Surface.Acquire when the rendering context cannot be created.
var ErrContextUnavailable = errors.New("rendering context unavailable")

// Surface is an owned drawing target with a client (CSS) size and a backing-store (device pixel) size.
// Implementations are provided by the host environment (see the window package for GLFW and
// host.MemorySurface for tests).
type Surface interface {
	// ClientSize returns the displayed size of the surface in logical units.
	//
	// Returns:
	//   - width, height: the client rectangle size
	ClientSize() (width, height float64)

	// DevicePixelRatio returns the ratio of device pixels to logical units.
	//
	// Returns:
	//   - float64: the current device pixel ratio
	DevicePixelRatio() float64

	// BackingSize returns the current backing-store resolution in device pixels.
	//
	// Returns:
	//   - width, height: the backing-store size
	BackingSize() (width, height int)

	// SetBackingSize resizes the backing store.
	//
	// Parameters:
	//   - width, height: the new backing-store size in device pixels
	SetBackingSize(width, height int)

	// Acquire obtains the rendering context for the surface, reacquiring it after a Release.
	//
	// Returns:
	//   - Context: the rendering context handle
	//   - error: ErrContextUnavailable (or a wrapped cause) if no context can be created
	Acquire() (Context, error)

	// Release frees the surface's rendering resources. Released reports true until the next Acquire.
	//
	// Returns:
	//   - error: error if releasing platform resources fails
	Release() error

	// Released reports whether the rendering resources have been released.
	//
	// Returns:
	//   - bool: true if no context is currently held
	Released() bool
}

// Context is the rendering context handle of an acquired surface.
type Context interface {
	// SetViewport sets the rendering viewport in device pixels.
	SetViewport(x, y, width, height int)

	// Viewport returns the current viewport.
	Viewport() (x, y, width, height int)
}

// InvariantError reports a lifecycle bug: an operation expected a live surface and found none.
// It is raised as a panic value from frame and resize callbacks, where no caller can receive an error.
type InvariantError struct {
	Op  string
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in %s: %v", e.Op, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
