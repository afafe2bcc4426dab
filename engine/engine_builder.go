package engine

import "github.com/Carmen-Shannon/oxy-canvas/engine/canvas"

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithHost sets the host the engine pumps and mounts canvases on.
//
// Parameters:
//   - h: the host, usually a window.Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithHost(h Host) EngineBuilderOption {
	return func(e *engine) {
		e.host = h
	}
}

// WithCanvas registers a canvas at the given key during engine construction.
//
// Parameters:
//   - key: the ordering key (lower mounts first)
//   - c: the canvas to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCanvas(key int, c *canvas.Canvas) EngineBuilderOption {
	return func(e *engine) {
		e.canvases[key] = c
	}
}

// WithFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = frameDuration(fps)
	}
}
