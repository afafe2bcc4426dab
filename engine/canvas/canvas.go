// Package canvas mounts a managed 3D surface: it owns the surface for the mounted lifetime,
// attaches every listener and observer, and drives the frame loop that keeps backing-store size,
// frame timing and input in step.
package canvas

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-canvas/engine/clock"
	"github.com/Carmen-Shannon/oxy-canvas/engine/host"
	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/Carmen-Shannon/oxy-canvas/engine/lock"
	"github.com/Carmen-Shannon/oxy-canvas/engine/loop"
	"github.com/Carmen-Shannon/oxy-canvas/engine/profiler"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
	"github.com/hashicorp/go-multierror"
	"github.com/kataras/golog"
)

var logger = golog.Child("[canvas]")

// ErrNotMounted is returned by Step when the canvas is not mounted.
var ErrNotMounted = errors.New("canvas is not mounted")

// Capabilities selects which parts of the coordinator a canvas uses.
type Capabilities uint8

const (
	// Driveable makes the canvas own its draw loop. Without it the caller invokes Step.
	Driveable Capabilities = 1 << iota
	// Resizable keeps the backing store reconciled to the client size every frame and on resize
	// notifications. Without it the backing store is sized once at mount.
	Resizable
	// InputAware attaches input listeners and hands a snapshot to every draw.
	InputAware

	// AllCapabilities is the fully managed canvas.
	AllCapabilities = Driveable | Resizable | InputAware
)

// Has reports whether every capability in other is set.
func (c Capabilities) Has(other Capabilities) bool {
	return c&other == other
}

// InitFunc is called once per mount after the renderer was initialized.
type InitFunc func(r renderer.Renderer)

// ResizeFunc is called after the backing store changed size and the renderer was resized.
type ResizeFunc func(r renderer.Renderer, width, height int)

// DrawFunc draws one frame. The default calls r.Draw(frame).
type DrawFunc func(r renderer.Renderer, frame renderer.Frame)

// Canvas coordinates one surface, its renderer and its input for the mounted lifetime.
// All methods must be called from the host's UI thread.
type Canvas struct {
	host     host.Host
	surface  surface.Surface
	renderer renderer.Renderer

	capabilities Capabilities
	locksCursor  bool
	suppress     func() bool
	profiler     *profiler.Profiler

	onInit   InitFunc
	onResize ResizeFunc
	onDraw   DrawFunc

	// Mount scope; reset on every mount.
	mounted       bool
	clock         *clock.FrameClock
	input         *input.Aggregator
	lock          *lock.Controller
	synchronizer  *surface.Synchronizer
	driver        *loop.Driver
	observer      host.Registration
	registrations []host.Registration
}

// New creates an unmounted Canvas. By default it has every capability and uses free-cursor input.
//
// Parameters:
//   - h: the host providing scheduling, events and pointer lock
//   - s: the surface to draw into
//   - r: the renderer collaborator
//   - options: functional options to configure the canvas
//
// Returns:
//   - *Canvas: the canvas
func New(h host.Host, s surface.Surface, r renderer.Renderer, options ...CanvasBuilderOption) *Canvas {
	c := &Canvas{
		host:         h,
		surface:      s,
		renderer:     r,
		capabilities: AllCapabilities,
		onDraw: func(r renderer.Renderer, frame renderer.Frame) {
			r.Draw(frame)
		},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Mounted reports whether the canvas is mounted.
func (c *Canvas) Mounted() bool {
	return c.mounted
}

// Capabilities returns the configured capability set.
func (c *Canvas) Capabilities() Capabilities {
	return c.capabilities
}

// Surface returns the canvas surface.
func (c *Canvas) Surface() surface.Surface {
	return c.surface
}

// Renderer returns the renderer collaborator.
func (c *Canvas) Renderer() renderer.Renderer {
	return c.renderer
}

// LockState returns the pointer-lock state, Unlocked when not mounted or not locking.
func (c *Canvas) LockState() lock.State {
	if c.lock == nil {
		return lock.Unlocked
	}
	return c.lock.State()
}

// Mount acquires the surface context, initializes the renderer, attaches the resize observer and
// input listeners, calls the init hook and starts the frame loop. Mounting a mounted canvas is a
// no-op. When the context or renderer cannot be set up, Mount logs the cause and leaves the
// canvas unmounted with nothing attached.
func (c *Canvas) Mount() {
	if c.mounted {
		return
	}

	ctx, err := c.surface.Acquire()
	if err != nil {
		logger.Debugf("mount aborted, surface unavailable: %v", err)
		return
	}
	if err := c.renderer.Init(ctx); err != nil {
		logger.Debugf("mount aborted, renderer init failed: %v", err)
		if relErr := c.surface.Release(); relErr != nil {
			logger.Debugf("release after failed init: %v", relErr)
		}
		return
	}

	c.mounted = true
	c.clock = clock.NewFrameClock()
	c.synchronizer = surface.NewSynchronizer(c.surface, ctx, c.handleResize)
	c.input = nil
	c.lock = nil

	if c.capabilities.Has(Resizable) {
		c.observer = c.host.ObserveResize(c.surface, c.observeResize)
	}
	if c.capabilities.Has(InputAware) {
		mode := input.ModeFreeCursor
		if c.locksCursor {
			mode = input.ModeLockedDelta
		}
		c.input = input.NewAggregator(
			input.WithCursorMode(mode),
			input.WithEdgeSuppression(c.suppress),
		)
		c.lock = lock.NewController(c.host, c.surface, c.input, lock.WithEnabled(c.locksCursor))
		c.attachInput()
	}

	options := []loop.DriverBuilderOption{
		loop.WithReleased(c.surface.Released),
		loop.WithDraw(c.draw),
		loop.WithProfiler(c.profiler),
	}
	if c.capabilities.Has(Resizable) {
		options = append(options, loop.WithReconcile(c.synchronizer.Reconcile))
	}
	if c.input != nil {
		options = append(options, loop.WithReset(c.input.ResetFrameFields))
	}
	c.driver = loop.NewDriver(c.host, c.clock, options...)

	if c.onInit != nil {
		c.onInit(c.renderer)
		if !c.mounted {
			// Unmounted from inside the init hook.
			return
		}
	}

	if !c.capabilities.Has(Resizable) {
		// Fixed-size canvases are sized once from the client size.
		if _, err := c.synchronizer.Reconcile(); err != nil {
			panic(&surface.InvariantError{Op: "mount", Err: err})
		}
	}

	if c.capabilities.Has(Driveable) {
		c.driver.Start()
	}
	logger.Debugf("mounted (capabilities=%03b, locksCursor=%v)", c.capabilities, c.locksCursor)
}

// Unmount disconnects the resize observer, cancels the pending frame, removes every listener,
// exits a held pointer lock, deletes the renderer and releases the surface. Unmounting an unmounted
// canvas is a no-op. It may be called from inside a frame or hook.
//
// Returns:
//   - error: aggregated renderer and surface release errors
func (c *Canvas) Unmount() error {
	if !c.mounted {
		return nil
	}
	c.mounted = false

	if c.observer != nil {
		c.observer.Remove()
		c.observer = nil
	}
	if c.driver != nil {
		c.driver.Stop()
	}
	for _, reg := range c.registrations {
		reg.Remove()
	}
	c.registrations = nil

	if c.lock != nil && c.lock.Locked() {
		c.host.ExitPointerLock()
	}

	var result *multierror.Error
	if err := c.renderer.Delete(); err != nil {
		result = multierror.Append(result, fmt.Errorf("delete renderer: %w", err))
	}
	if err := c.surface.Release(); err != nil {
		result = multierror.Append(result, fmt.Errorf("release surface: %w", err))
	}
	logger.Debug("unmounted")
	return result.ErrorOrNil()
}

// Step runs one frame for canvases without the Driveable capability.
//
// Parameters:
//   - now: the frame timestamp
//
// Returns:
//   - error: ErrNotMounted, or a *surface.InvariantError if the surface disappeared mid-lifecycle
func (c *Canvas) Step(now time.Duration) (err error) {
	if !c.mounted {
		return ErrNotMounted
	}
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*surface.InvariantError)
			if !ok {
				panic(r)
			}
			err = ie
		}
	}()
	c.driver.Step(now)
	return nil
}

func (c *Canvas) handleResize(width, height int) {
	c.renderer.Resize(width, height)
	if c.onResize != nil {
		c.onResize(c.renderer, width, height)
	}
}

func (c *Canvas) observeResize() {
	if _, err := c.synchronizer.Reconcile(); err != nil {
		panic(&surface.InvariantError{Op: "resize observer", Err: err})
	}
}

func (c *Canvas) draw(now, delta time.Duration) {
	frame := renderer.Frame{Now: now, Delta: delta}
	if c.input != nil {
		frame.Input = c.input.Snapshot()
	}
	c.onDraw(c.renderer, frame)
}
