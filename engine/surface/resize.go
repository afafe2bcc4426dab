package surface

import (
	"math"

	"github.com/kataras/golog"
)

var logger = golog.Child("[surface]")

// Synchronizer reconciles a surface's client size and device pixel ratio to its backing-store resolution.
// The per-frame poll and the host's resize notifications both call Reconcile.
type Synchronizer struct {
	surface  Surface
	context  Context
	onResize func(width, height int)
}

// NewSynchronizer creates a Synchronizer for the given surface and context.
//
// Parameters:
//   - s: the surface whose backing store is kept in sync
//   - ctx: the acquired rendering context whose viewport follows the backing store
//   - onResize: called with the new backing size after each change (may be nil)
//
// Returns:
//   - *Synchronizer: the configured synchronizer
func NewSynchronizer(s Surface, ctx Context, onResize func(width, height int)) *Synchronizer {
	return &Synchronizer{
		surface:  s,
		context:  ctx,
		onResize: onResize,
	}
}

// TargetSize computes the backing-store size for a client size and device pixel ratio.
// Each dimension is floor(client * ratio), never smaller than 1. Ratios that are not
// positive finite numbers are treated as 1.
//
// Parameters:
//   - clientWidth, clientHeight: the client rectangle size
//   - ratio: the device pixel ratio
//
// Returns:
//   - width, height: the backing-store size in device pixels
func TargetSize(clientWidth, clientHeight, ratio float64) (width, height int) {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	return scaleDimension(clientWidth, ratio), scaleDimension(clientHeight, ratio)
}

func scaleDimension(client, ratio float64) int {
	v := math.Floor(client * ratio)
	if !(v >= 1) {
		return 1
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

// Reconcile resizes the backing store, viewport and renderer when the target size differs from
// the current backing size. Width and height are compared independently. Nothing happens when
// the size is unchanged.
//
// Returns:
//   - bool: true if a resize occurred
//   - error: ErrSurfaceReleased if the surface's resources are gone
func (s *Synchronizer) Reconcile() (bool, error) {
	if s.surface == nil || s.surface.Released() {
		return false, ErrSurfaceReleased
	}

	clientWidth, clientHeight := s.surface.ClientSize()
	width, height := TargetSize(clientWidth, clientHeight, s.surface.DevicePixelRatio())

	currentWidth, currentHeight := s.surface.BackingSize()
	if currentWidth == width && currentHeight == height {
		return false, nil
	}

	logger.Debugf("resize %dx%d -> %dx%d", currentWidth, currentHeight, width, height)

	s.surface.SetBackingSize(width, height)
	if s.context != nil {
		s.context.SetViewport(0, 0, width, height)
	}
	if s.onResize != nil {
		s.onResize(width, height)
	}
	return true, nil
}
