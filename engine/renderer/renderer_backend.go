package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ParsePresentMode maps a config name ("vsync", "uncapped") to a PresentMode.
//
// Parameters:
//   - name: the mode name
//
// Returns:
//   - PresentMode: the mode, PresentModeVSync for unknown names
//   - bool: false if the name was not recognized
func ParsePresentMode(name string) (PresentMode, bool) {
	switch name {
	case "vsync", "":
		return PresentModeVSync, true
	case "uncapped":
		return PresentModeUncapped, true
	default:
		return PresentModeVSync, false
	}
}

// RendererBackend is the GPU API behind a renderer.
type RendererBackend interface {
	// ConfigureSurface (re)configures the presentation surface for the given size.
	ConfigureSurface(width, height int)

	// Clear acquires the next surface texture, clears it to color and presents it.
	Clear(color wgpu.Color) error

	// Release frees every GPU object owned by the backend.
	Release()
}
