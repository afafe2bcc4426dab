package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial client size in screen coordinates. Non-positive values keep the
// default 1280x720 for that dimension.
//
// Parameters:
//   - width, height: the initial client size
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithMinSize limits how small the user can resize the window. A non-positive value leaves that
// dimension unbounded (GLFW_DONT_CARE).
//
// Parameters:
//   - width, height: the minimum client size
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = sizeLimit(width), sizeLimit(height)
	}
}

// WithMaxSize limits how large the user can resize the window. A non-positive value leaves that
// dimension unbounded (GLFW_DONT_CARE).
//
// Parameters:
//   - width, height: the maximum client size
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth, w.maxHeight = sizeLimit(width), sizeLimit(height)
	}
}

func sizeLimit(v int) int {
	if v <= 0 {
		return glfwDontCare
	}
	return v
}
