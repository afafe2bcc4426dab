// Package host defines what the surface coordinator needs from its embedding environment:
// a frame scheduler, scoped event targets, resize observation and pointer-lock primitives.
// It also provides the shared listener registry and frame queue used by host implementations,
// and a deterministic in-memory host.
package host

import (
	"time"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
)

// FrameID identifies a scheduled frame callback. The zero value is never issued.
type FrameID uint64

// FrameCallback is invoked once per display refresh with the host timestamp.
type FrameCallback func(now time.Duration)

// Scheduler is the host's frame-scheduling primitive.
type Scheduler interface {
	// RequestFrame schedules callback for the next frame.
	//
	// Parameters:
	//   - callback: the function to invoke on the next frame
	//
	// Returns:
	//   - FrameID: handle for CancelFrame
	RequestFrame(callback FrameCallback) FrameID

	// CancelFrame cancels a pending callback. Cancelling an unknown or already-run id is a no-op.
	//
	// Parameters:
	//   - id: the handle returned by RequestFrame
	CancelFrame(id FrameID)
}

// Scope is the event target a listener is attached to.
type Scope int

const (
	// ScopeWindow receives keyboard events regardless of pointer position.
	ScopeWindow Scope = iota
	// ScopeSurface receives pointer, wheel and resize events for the surface.
	ScopeSurface
	// ScopeDocument receives pointer-lock notifications.
	ScopeDocument
)

// EventType identifies a raw host event.
type EventType int

const (
	EventKeyDown EventType = iota
	EventKeyUp
	EventPointerDown
	EventPointerUp
	EventPointerMove
	EventPointerEnter
	EventWheel
	EventPointerLockChange
	EventPointerLockError
	EventResize
)

var eventTypeNames = [...]string{
	"keydown", "keyup", "pointerdown", "pointerup", "pointermove",
	"pointerenter", "wheel", "pointerlockchange", "pointerlockerror", "resize",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventTypeNames) {
		return "unknown"
	}
	return eventTypeNames[t]
}

// Event is a raw host event. Only the fields relevant to its Type are set.
type Event struct {
	Type EventType

	// Key is the key identifier for keyboard events.
	Key common.InputCode

	// Button is the pointer button index for pointer button events.
	Button int

	// X, Y is the absolute cursor position in surface pixels.
	X, Y float64

	// MovementX, MovementY is the relative motion since the previous move event.
	MovementX, MovementY float64

	// DeltaX, DeltaY is the scroll amount; positive DeltaY scrolls down.
	DeltaX, DeltaY float64

	prevented bool
}

// PreventDefault marks the event so the host skips its default action.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// Listener handles a raw host event.
type Listener func(ev *Event)

// Registration is the handle of an attached listener or observer.
type Registration interface {
	// Remove detaches the listener. Calling it more than once is a no-op.
	Remove()
}

// Host is the embedding environment of a managed surface.
type Host interface {
	Scheduler

	// Listen attaches a listener for events of type t on the given scope. Listeners on
	// ScopeSurface only receive events aimed at target; the window and document scopes ignore it.
	//
	// Parameters:
	//   - scope: the target the listener is attached to
	//   - target: the surface for ScopeSurface listeners, nil otherwise
	//   - t: the event type
	//   - listener: the handler
	//
	// Returns:
	//   - Registration: handle that removes the listener
	Listen(scope Scope, target surface.Surface, t EventType, listener Listener) Registration

	// ObserveResize calls callback whenever the client size or device pixel ratio of s changes.
	//
	// Parameters:
	//   - s: the observed surface
	//   - callback: the notification function
	//
	// Returns:
	//   - Registration: handle that disconnects the observer
	ObserveResize(s surface.Surface, callback func()) Registration

	// RequestPointerLock asks the platform to lock the pointer to s. The outcome is reported later
	// through EventPointerLockChange or EventPointerLockError.
	//
	// Parameters:
	//   - s: the surface requesting exclusive pointer input
	//
	// Returns:
	//   - error: non-nil if the platform rejected the request outright
	RequestPointerLock(s surface.Surface) error

	// ExitPointerLock releases any pointer lock held by this host.
	ExitPointerLock()

	// PointerLockElement returns the surface currently holding the pointer lock, or nil.
	//
	// Returns:
	//   - surface.Surface: the locked surface or nil
	PointerLockElement() surface.Surface
}
