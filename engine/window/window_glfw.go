package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-canvas/engine/host"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const glfwDontCare = glfw.DontCare

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// newPlatformWindow creates the GLFW window, registers input and window callbacks that feed the
// host listener registry, and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		code := keyCode(int(key), glfw.GetKeyName(key, scancode))
		switch action {
		case glfw.Press, glfw.Repeat:
			w.dispatch(host.ScopeWindow, &host.Event{Type: host.EventKeyDown, Key: code})
		case glfw.Release:
			w.dispatch(host.ScopeWindow, &host.Event{Type: host.EventKeyUp, Key: code})
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := win.GetCursorPos()
		ev := &host.Event{Button: pointerButton(int(button)), X: x, Y: y}
		switch action {
		case glfw.Press:
			ev.Type = host.EventPointerDown
		case glfw.Release:
			ev.Type = host.EventPointerUp
		default:
			return
		}
		w.dispatch(host.ScopeSurface, ev)
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.dispatch(host.ScopeSurface, w.cursorMoved(xpos, ypos))
	})

	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			return
		}
		x, y := win.GetCursorPos()
		w.cursorX, w.cursorY, w.cursorKnown = x, y, true
		w.dispatch(host.ScopeSurface, &host.Event{Type: host.EventPointerEnter, X: x, Y: y})
	})

	// GLFW reports positive y offsets for scrolling up; wheel events use positive for down.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.dispatch(host.ScopeSurface, &host.Event{Type: host.EventWheel, DeltaX: -xoff, DeltaY: -yoff})
	})

	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.focused = focused
		if !focused {
			w.ExitPointerLock()
		}
	})

	// Window size, framebuffer size and content scale all feed the device pixel ratio, so any of
	// them changing notifies resize observers.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		w.notifyResize()
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.fbWidth, w.fbHeight = width, height
		w.notifyResize()
	})
	win.SetContentScaleCallback(func(_ *glfw.Window, _, _ float32) {
		w.notifyResize()
	})

	w.width, w.height = win.GetSize()
	w.fbWidth, w.fbHeight = win.GetFramebufferSize()
	w.backingWidth, w.backingHeight = w.fbWidth, w.fbHeight
	w.focused = win.GetAttrib(glfw.Focused) == glfw.True

	return nil
}

// platformSetCursorLocked hides and captures the cursor, using raw motion where the platform
// supports it, or restores the normal cursor.
//
// Reference: https://www.glfw.org/docs/latest/input_guide.html#cursor_mode
func platformSetCursorLocked(w *engineWindow, locked bool) {
	if w.internalWindow == nil {
		return
	}
	gw := w.internalWindow.(*glfwWindow)
	if locked {
		gw.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			gw.window.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
		return
	}
	if glfw.RawMouseMotionSupported() {
		gw.window.SetInputMode(glfw.RawMouseMotion, glfw.False)
	}
	gw.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil, the running flag is cleared, or GLFW reports ShouldClose.
func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
// Returns an error if the internal window has not been initialized.
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	if !gw.running {
		return nil
	}
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	if !platformIsRunningCheck(w) {
		return false
	}
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
