package host

import (
	"errors"
	"time"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
)

// ErrLockRejected is returned by MemoryHost.RequestPointerLock while lock rejection is enabled.
var ErrLockRejected = errors.New("pointer lock request rejected")

// MemoryHost is a deterministic, single-threaded Host. Time only advances through Advance,
// and pointer-lock outcomes are delivered on the next Advance or Flush, mirroring the
// asynchronous grant of a real platform.
type MemoryHost struct {
	*FrameQueue

	registry *Registry
	now      time.Duration

	lockElement surface.Surface
	rejectLock  bool
	queued      []EventType

	// LockRequests counts RequestPointerLock calls.
	LockRequests int
	// ExitRequests counts ExitPointerLock calls.
	ExitRequests int
}

var _ Host = &MemoryHost{}

// NewMemoryHost creates a MemoryHost at timestamp 0.
//
// Returns:
//   - *MemoryHost: the host
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		FrameQueue: NewFrameQueue(),
		registry:   NewRegistry(),
	}
}

// Now returns the current host timestamp.
func (h *MemoryHost) Now() time.Duration {
	return h.now
}

// Listeners returns the registry holding every attached listener and observer.
func (h *MemoryHost) Listeners() *Registry {
	return h.registry
}

// Advance moves the clock forward by d, delivers queued lock notifications and runs one frame.
//
// Parameters:
//   - d: the elapsed time
//
// Returns:
//   - int: the number of frame callbacks invoked
func (h *MemoryHost) Advance(d time.Duration) int {
	h.now += d
	h.Flush()
	return h.RunFrame(h.now)
}

// Flush delivers queued pointer-lock notifications without running a frame.
func (h *MemoryHost) Flush() {
	queued := h.queued
	h.queued = nil
	for _, t := range queued {
		h.registry.Dispatch(ScopeDocument, nil, &Event{Type: t})
	}
}

func (h *MemoryHost) Listen(scope Scope, target surface.Surface, t EventType, listener Listener) Registration {
	return h.registry.Add(scope, target, t, listener)
}

func (h *MemoryHost) ObserveResize(s surface.Surface, callback func()) Registration {
	return h.registry.Add(ScopeSurface, s, EventResize, func(*Event) { callback() })
}

// RejectPointerLock makes subsequent lock requests fail with ErrLockRejected.
//
// Parameters:
//   - reject: true to reject requests
func (h *MemoryHost) RejectPointerLock(reject bool) {
	h.rejectLock = reject
}

func (h *MemoryHost) RequestPointerLock(s surface.Surface) error {
	h.LockRequests++
	if h.rejectLock {
		h.queued = append(h.queued, EventPointerLockError)
		return ErrLockRejected
	}
	h.lockElement = s
	h.queued = append(h.queued, EventPointerLockChange)
	return nil
}

func (h *MemoryHost) ExitPointerLock() {
	h.ExitRequests++
	if h.lockElement == nil {
		return
	}
	h.lockElement = nil
	h.queued = append(h.queued, EventPointerLockChange)
}

func (h *MemoryHost) PointerLockElement() surface.Surface {
	return h.lockElement
}

// SetPointerLockElement moves the lock to s (possibly a foreign surface) and queues a lock-change notification.
//
// Parameters:
//   - s: the new lock owner, or nil
func (h *MemoryHost) SetPointerLockElement(s surface.Surface) {
	h.lockElement = s
	h.queued = append(h.queued, EventPointerLockChange)
}

// KeyDown dispatches a key press on the window scope.
func (h *MemoryHost) KeyDown(key common.InputCode) *Event {
	return h.dispatch(ScopeWindow, nil, &Event{Type: EventKeyDown, Key: key})
}

// KeyUp dispatches a key release on the window scope.
func (h *MemoryHost) KeyUp(key common.InputCode) *Event {
	return h.dispatch(ScopeWindow, nil, &Event{Type: EventKeyUp, Key: key})
}

// PointerDown dispatches a pointer button press on s.
func (h *MemoryHost) PointerDown(s surface.Surface, button int) *Event {
	return h.dispatch(ScopeSurface, s, &Event{Type: EventPointerDown, Button: button})
}

// PointerUp dispatches a pointer button release on s.
func (h *MemoryHost) PointerUp(s surface.Surface, button int) *Event {
	return h.dispatch(ScopeSurface, s, &Event{Type: EventPointerUp, Button: button})
}

// PointerMove dispatches pointer motion over s with absolute position and relative movement.
func (h *MemoryHost) PointerMove(s surface.Surface, x, y, movementX, movementY float64) *Event {
	return h.dispatch(ScopeSurface, s, &Event{Type: EventPointerMove, X: x, Y: y, MovementX: movementX, MovementY: movementY})
}

// PointerEnter dispatches the pointer entering s at (x, y).
func (h *MemoryHost) PointerEnter(s surface.Surface, x, y float64) *Event {
	return h.dispatch(ScopeSurface, s, &Event{Type: EventPointerEnter, X: x, Y: y})
}

// Wheel dispatches a scroll event on s.
func (h *MemoryHost) Wheel(s surface.Surface, dx, dy float64) *Event {
	return h.dispatch(ScopeSurface, s, &Event{Type: EventWheel, DeltaX: dx, DeltaY: dy})
}

// NotifyResize notifies the resize observers of s.
func (h *MemoryHost) NotifyResize(s surface.Surface) {
	h.dispatch(ScopeSurface, s, &Event{Type: EventResize})
}

func (h *MemoryHost) dispatch(scope Scope, target surface.Surface, ev *Event) *Event {
	h.registry.Dispatch(scope, target, ev)
	return ev
}

// MemorySurface is an in-memory surface.Surface. A new surface starts with the 300x150
// backing store of an unsized canvas and no acquired context.
type MemorySurface struct {
	clientWidth, clientHeight   float64
	ratio                       float64
	backingWidth, backingHeight int

	context     *MemoryContext
	unavailable bool

	// Acquires counts successful Acquire calls.
	Acquires int
	// Releases counts Release calls that freed a context.
	Releases int
}

var _ surface.Surface = &MemorySurface{}

// NewMemorySurface creates a surface with the given client size and device pixel ratio.
//
// Parameters:
//   - clientWidth, clientHeight: the client rectangle size
//   - ratio: the device pixel ratio
//
// Returns:
//   - *MemorySurface: the surface
func NewMemorySurface(clientWidth, clientHeight, ratio float64) *MemorySurface {
	return &MemorySurface{
		clientWidth:   clientWidth,
		clientHeight:  clientHeight,
		ratio:         ratio,
		backingWidth:  300,
		backingHeight: 150,
	}
}

// SetClientSize changes the client rectangle size.
func (s *MemorySurface) SetClientSize(width, height float64) {
	s.clientWidth = width
	s.clientHeight = height
}

// SetDevicePixelRatio changes the device pixel ratio.
func (s *MemorySurface) SetDevicePixelRatio(ratio float64) {
	s.ratio = ratio
}

// SetUnavailable makes Acquire fail with surface.ErrContextUnavailable.
func (s *MemorySurface) SetUnavailable(unavailable bool) {
	s.unavailable = unavailable
}

func (s *MemorySurface) ClientSize() (float64, float64) {
	return s.clientWidth, s.clientHeight
}

func (s *MemorySurface) DevicePixelRatio() float64 {
	return s.ratio
}

func (s *MemorySurface) BackingSize() (int, int) {
	return s.backingWidth, s.backingHeight
}

func (s *MemorySurface) SetBackingSize(width, height int) {
	s.backingWidth = width
	s.backingHeight = height
}

func (s *MemorySurface) Acquire() (surface.Context, error) {
	if s.unavailable {
		return nil, surface.ErrContextUnavailable
	}
	if s.context == nil {
		s.context = &MemoryContext{width: s.backingWidth, height: s.backingHeight}
		s.Acquires++
	}
	return s.context, nil
}

func (s *MemorySurface) Release() error {
	if s.context == nil {
		return nil
	}
	s.context = nil
	s.Releases++
	return nil
}

func (s *MemorySurface) Released() bool {
	return s.context == nil
}

// Context returns the currently acquired context, or nil.
func (s *MemorySurface) Context() *MemoryContext {
	return s.context
}

// MemoryContext is the rendering context of a MemorySurface.
type MemoryContext struct {
	x, y, width, height int
}

var _ surface.Context = &MemoryContext{}

func (c *MemoryContext) SetViewport(x, y, width, height int) {
	c.x, c.y, c.width, c.height = x, y, width, height
}

func (c *MemoryContext) Viewport() (int, int, int, int) {
	return c.x, c.y, c.width, c.height
}
