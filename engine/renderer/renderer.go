package renderer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kataras/golog"
)

var logger = golog.Child("[renderer]")

// ErrUnsupportedContext is returned by Init when the surface context cannot back a WebGPU surface.
var ErrUnsupportedContext = errors.New("surface context does not provide a WebGPU surface descriptor")

// ErrNotInitialized is returned when a renderer is used before Init or after Delete.
var ErrNotInitialized = errors.New("renderer is not initialized")

// Frame is what a renderer receives each frame.
type Frame struct {
	// Now is the host timestamp of the frame.
	Now time.Duration

	// Delta is the time since the previous frame; 0 on the first frame.
	Delta time.Duration

	// Input is the frozen input snapshot, or nil when the surface is not input-aware.
	Input *input.Snapshot
}

// Renderer is the scene/renderer collaborator driven by a managed surface.
// The coordinator calls Init on mount, Resize whenever the backing store changes,
// Draw (through the draw hook) once per frame and Delete on unmount.
type Renderer interface {
	// Init binds the renderer to an acquired surface context.
	//
	// Parameters:
	//   - ctx: the rendering context of the surface
	//
	// Returns:
	//   - error: error if the context cannot be used; the mount is then abandoned
	Init(ctx surface.Context) error

	// Resize reconfigures render targets for a new backing-store size.
	//
	// Parameters:
	//   - width: the new width in device pixels
	//   - height: the new height in device pixels
	Resize(width, height int)

	// Draw renders one frame.
	//
	// Parameters:
	//   - frame: timing and input for the frame
	Draw(frame Frame)

	// Delete releases every resource created by Init. The renderer may be initialized again afterwards.
	//
	// Returns:
	//   - error: error if releasing resources fails
	Delete() error
}

// DescriptorProvider is implemented by surface contexts that can back a WebGPU surface.
type DescriptorProvider interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// renderer is the WebGPU implementation of the Renderer interface. It clears the surface to a
// configurable color each frame and exposes its backend to draw hooks.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	clearColor wgpu.Color
	width      int
	height     int
	frames     uint64

	forceFallbackAdapter bool
	presentMode          PresentMode
}

var _ Renderer = &renderer{}

// ClearRenderer is the Renderer returned by NewRenderer. Draw hooks may change the clear color.
type ClearRenderer interface {
	Renderer

	// SetClearColor sets the color the surface is cleared to each frame.
	//
	// Parameters:
	//   - r, g, b, a: color components in [0, 1]
	SetClearColor(r, g, b, a float64)

	// ClearColor returns the current clear color.
	//
	// Returns:
	//   - r, g, b, a: color components
	ClearColor() (r, g, b, a float64)

	// Size returns the configured render target size.
	//
	// Returns:
	//   - width, height: size in device pixels
	Size() (width, height int)

	// Frames returns the number of frames presented since Init.
	//
	// Returns:
	//   - uint64: presented frame count
	Frames() uint64
}

// NewRenderer creates an uninitialized renderer with the given backend type.
// GPU resources are created by Init once the surface context is acquired.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - ClearRenderer: a new renderer
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) ClearRenderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		presentMode: PresentModeVSync,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Init(ctx surface.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	provider, ok := ctx.(DescriptorProvider)
	if !ok {
		return ErrUnsupportedContext
	}
	desc := provider.SurfaceDescriptor()
	if desc == nil {
		return ErrUnsupportedContext
	}

	switch r.backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(desc, r.forceFallbackAdapter, r.presentMode)
		if err != nil {
			return fmt.Errorf("failed to create wgpu backend: %w", err)
		}
		r.backend = backend
	}

	_, _, width, height := ctx.Viewport()
	if width > 0 && height > 0 {
		r.configure(width, height)
	}
	r.frames = 0
	logger.Debug("renderer initialized")
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		return
	}
	r.configure(width, height)
}

// configure reconfigures the backend surface. Caller must hold the mutex.
func (r *renderer) configure(width, height int) {
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Draw(frame Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil || r.width == 0 || r.height == 0 {
		return
	}
	if err := r.backend.Clear(r.clearColor); err != nil {
		logger.Debugf("frame skipped: %v", err)
		return
	}
	r.frames++
}

func (r *renderer) Delete() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		return ErrNotInitialized
	}
	r.backend.Release()
	r.backend = nil
	r.width, r.height = 0, 0
	logger.Debug("renderer deleted")
	return nil
}

func (r *renderer) SetClearColor(red, green, blue, alpha float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = wgpu.Color{R: red, G: green, B: blue, A: alpha}
}

func (r *renderer) ClearColor() (float64, float64, float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor.R, r.clearColor.G, r.clearColor.B, r.clearColor.A
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}
