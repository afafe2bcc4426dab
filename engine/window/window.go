package window

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/host"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kataras/golog"
)

var logger = golog.Child("[window]")

var (
	// ErrNotFocused is returned by RequestPointerLock while the window does not have input focus.
	ErrNotFocused = errors.New("window is not focused")

	// ErrForeignSurface is returned by RequestPointerLock for a surface that is not this window.
	ErrForeignSurface = errors.New("surface does not belong to this window")
)

// Window is a GLFW window acting as the host of a single canvas.
// It schedules frames, dispatches input events, observes resizes and grabs the cursor for pointer
// lock, and it is the surface the canvas draws into.
type Window interface {
	host.Host
	surface.Surface

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Title returns the window title.
	//
	// Returns:
	//   - string: the title
	Title() string

	// Focused reports whether the window has input focus.
	//
	// Returns:
	//   - bool: true while focused
	Focused() bool

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Pump polls pending window events, delivers queued pointer-lock notifications and runs the
	// frame callbacks that were requested before this call.
	//
	// Returns:
	//   - bool: false once the window has been closed
	Pump() bool

	// ProcessMessages runs Pump until the window is closed.
	ProcessMessages()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	*host.FrameQueue

	listeners *host.Registry

	title     string
	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the client size in screen coordinates.
	width  int
	height int

	// fbWidth and fbHeight are the framebuffer size in pixels.
	fbWidth  int
	fbHeight int

	backingWidth  int
	backingHeight int

	start   time.Time
	focused bool
	locked  bool

	// lockEvents holds pointer-lock notifications until the next Pump, the way a browser delivers
	// pointerlockchange after requestPointerLock returns.
	lockEvents []host.EventType

	cursorX     float64
	cursorY     float64
	cursorKnown bool

	context *glfwContext

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		FrameQueue: host.NewFrameQueue(),
		listeners:  host.NewRegistry(),
		title:      "oxy-canvas",
		maxWidth:   glfwDontCare,
		maxHeight:  glfwDontCare,
		minWidth:   200,
		minHeight:  150,
		width:      1280,
		height:     720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	w.start = time.Now()
	logger.Infof("window %q created (%dx%d, framebuffer %dx%d)", w.title, w.width, w.height, w.fbWidth, w.fbHeight)
	return w, nil
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) Focused() bool {
	return w.focused
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Pump() bool {
	if !platformProcessMessages(w) {
		return false
	}
	w.flushLockEvents()
	w.RunFrame(time.Since(w.start))
	return w.IsRunning()
}

func (w *engineWindow) ProcessMessages() {
	for w.Pump() {
		runtime.Gosched()
	}
}

func (w *engineWindow) Listen(scope host.Scope, target surface.Surface, t host.EventType, listener host.Listener) host.Registration {
	return w.listeners.Add(scope, target, t, listener)
}

func (w *engineWindow) ObserveResize(s surface.Surface, callback func()) host.Registration {
	return w.listeners.Add(host.ScopeSurface, s, host.EventResize, func(*host.Event) {
		callback()
	})
}

func (w *engineWindow) RequestPointerLock(s surface.Surface) error {
	if s != surface.Surface(w) {
		return ErrForeignSurface
	}
	if !w.focused {
		w.lockEvents = append(w.lockEvents, host.EventPointerLockError)
		return ErrNotFocused
	}
	if w.locked {
		return nil
	}
	platformSetCursorLocked(w, true)
	w.locked = true
	w.cursorKnown = false
	w.lockEvents = append(w.lockEvents, host.EventPointerLockChange)
	return nil
}

func (w *engineWindow) ExitPointerLock() {
	if !w.locked {
		return
	}
	platformSetCursorLocked(w, false)
	w.locked = false
	w.cursorKnown = false
	w.lockEvents = append(w.lockEvents, host.EventPointerLockChange)
}

func (w *engineWindow) PointerLockElement() surface.Surface {
	if !w.locked {
		return nil
	}
	return w
}

func (w *engineWindow) ClientSize() (float64, float64) {
	return float64(w.width), float64(w.height)
}

func (w *engineWindow) DevicePixelRatio() float64 {
	return pixelRatio(w.fbWidth, w.width)
}

func (w *engineWindow) BackingSize() (int, int) {
	return w.backingWidth, w.backingHeight
}

func (w *engineWindow) SetBackingSize(width, height int) {
	w.backingWidth = width
	w.backingHeight = height
}

func (w *engineWindow) Acquire() (surface.Context, error) {
	if w.internalWindow == nil || !w.IsRunning() {
		return nil, surface.ErrContextUnavailable
	}
	if w.context == nil {
		w.context = &glfwContext{window: w}
	}
	return w.context, nil
}

func (w *engineWindow) Release() error {
	w.context = nil
	return nil
}

func (w *engineWindow) Released() bool {
	return w.context == nil
}

// dispatch delivers ev to the listeners registered for scope. The window is the only surface it
// hosts, so surface-scoped events are aimed at the window itself.
func (w *engineWindow) dispatch(scope host.Scope, ev *host.Event) {
	w.listeners.Dispatch(scope, w, ev)
}

func (w *engineWindow) notifyResize() {
	w.dispatch(host.ScopeSurface, &host.Event{Type: host.EventResize})
}

func (w *engineWindow) flushLockEvents() {
	queued := w.lockEvents
	w.lockEvents = nil
	for _, t := range queued {
		logger.Debugf("pointer lock notification: %s (locked=%v)", t, w.locked)
		w.dispatch(host.ScopeDocument, &host.Event{Type: t})
	}
}

// cursorMoved turns an absolute cursor position into a pointermove event whose movement is the
// distance from the previous position.
func (w *engineWindow) cursorMoved(x, y float64) *host.Event {
	ev := &host.Event{Type: host.EventPointerMove, X: x, Y: y}
	if w.cursorKnown {
		ev.MovementX = x - w.cursorX
		ev.MovementY = y - w.cursorY
	}
	w.cursorX, w.cursorY, w.cursorKnown = x, y, true
	return ev
}

// glfwContext is the rendering context of a window: the WebGPU surface descriptor plus the
// current viewport.
type glfwContext struct {
	window *engineWindow

	x, y, width, height int
}

var _ surface.Context = &glfwContext{}

func (c *glfwContext) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return c.window.SurfaceDescriptor()
}

func (c *glfwContext) SetViewport(x, y, width, height int) {
	c.x, c.y, c.width, c.height = x, y, width, height
}

func (c *glfwContext) Viewport() (int, int, int, int) {
	if c.width == 0 || c.height == 0 {
		return 0, 0, c.window.fbWidth, c.window.fbHeight
	}
	return c.x, c.y, c.width, c.height
}

// pixelRatio derives the device pixel ratio from framebuffer and window widths.
func pixelRatio(framebufferWidth, windowWidth int) float64 {
	if framebufferWidth <= 0 || windowWidth <= 0 {
		return 1
	}
	ratio := float64(framebufferWidth) / float64(windowWidth)
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 1
	}
	return ratio
}

// pointerButton maps GLFW mouse buttons to the left=0, middle=1, right=2 numbering.
func pointerButton(glfwButton int) int {
	switch glfwButton {
	case 1:
		return 2
	case 2:
		return 1
	default:
		return glfwButton
	}
}

// keyCode names a GLFW key. Named keys use common.NamedKeys, printable keys use the layout name
// and anything else falls back to "key-<n>".
func keyCode(key int, printable string) common.InputCode {
	if code, ok := common.NamedKeys[key]; ok {
		return code
	}
	if printable != "" {
		return common.InputCode(printable)
	}
	return common.InputCode(fmt.Sprintf("key-%d", key))
}
