// Package input accumulates raw keyboard, pointer and wheel events into a frame-scoped Snapshot.
package input

import (
	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/kataras/golog"
)

var logger = golog.Child("[input]")

// CursorMode selects how cursor motion is tracked.
type CursorMode int

const (
	// ModeFreeCursor tracks the absolute cursor position and derives delta from consecutive positions.
	ModeFreeCursor CursorMode = iota

	// ModeLockedDelta tracks relative motion only, and only while the pointer is locked.
	ModeLockedDelta
)

func (m CursorMode) String() string {
	switch m {
	case ModeFreeCursor:
		return "free-cursor"
	case ModeLockedDelta:
		return "locked-delta"
	default:
		return "unknown"
	}
}

// Transition is a single press or release edge.
type Transition struct {
	Code    common.InputCode
	Pressed bool
}

// Aggregator collects input between frames. Held state survives ResetFrameFields; transitions,
// cursor delta and scroll delta are per-frame.
type Aggregator struct {
	mode     CursorMode
	suppress func() bool

	held        map[common.InputCode]struct{}
	transitions []Transition

	cursorX, cursorY float64
	positionKnown    bool

	deltaX, deltaY   float64
	scrollX, scrollY float64

	locked bool
}

// NewAggregator creates an Aggregator in free-cursor mode with no edge suppression.
//
// Parameters:
//   - options: functional options to configure the aggregator
//
// Returns:
//   - *Aggregator: the aggregator
func NewAggregator(options ...AggregatorBuilderOption) *Aggregator {
	a := &Aggregator{
		mode:        ModeFreeCursor,
		held:        make(map[common.InputCode]struct{}),
		transitions: make([]Transition, 0, 8),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// Mode returns the cursor mode.
func (a *Aggregator) Mode() CursorMode {
	return a.mode
}

// Locked reports the lock status last set with SetLocked.
func (a *Aggregator) Locked() bool {
	return a.locked
}

// RecordKeyDown marks code as held and records a press edge unless the edge is suppressed.
// A press of an already-held code is an auto-repeat and produces no edge.
//
// Parameters:
//   - code: the key identifier
func (a *Aggregator) RecordKeyDown(code common.InputCode) {
	a.press(code, a.suppressed())
}

// RecordKeyUp clears code from the held set and records a release edge unless the edge is suppressed.
// Releasing a code that is not held produces no edge.
//
// Parameters:
//   - code: the key identifier
func (a *Aggregator) RecordKeyUp(code common.InputCode) {
	a.release(code, a.suppressed())
}

// RecordButtonDown records a pointer button press. Button edges are never suppressed, since a
// button press is what requests the pointer lock.
//
// Parameters:
//   - button: the pointer button index
func (a *Aggregator) RecordButtonDown(button int) {
	a.press(common.PointerButton(button), false)
}

// RecordButtonUp records a pointer button release. Never suppressed.
//
// Parameters:
//   - button: the pointer button index
func (a *Aggregator) RecordButtonUp(button int) {
	a.release(common.PointerButton(button), false)
}

func (a *Aggregator) press(code common.InputCode, suppressEdge bool) {
	if _, ok := a.held[code]; ok {
		return
	}
	a.held[code] = struct{}{}
	if suppressEdge {
		logger.Debugf("press edge suppressed: %s", code)
		return
	}
	a.transitions = append(a.transitions, Transition{Code: code, Pressed: true})
}

func (a *Aggregator) release(code common.InputCode, suppressEdge bool) {
	if _, ok := a.held[code]; !ok {
		return
	}
	delete(a.held, code)
	if suppressEdge {
		logger.Debugf("release edge suppressed: %s", code)
		return
	}
	a.transitions = append(a.transitions, Transition{Code: code, Pressed: false})
}

func (a *Aggregator) suppressed() bool {
	return a.suppress != nil && a.suppress()
}

// RecordCursorDelta accumulates relative motion. Only used in locked-delta mode, and only while locked.
//
// Parameters:
//   - dx, dy: the relative motion
func (a *Aggregator) RecordCursorDelta(dx, dy float64) {
	if a.mode != ModeLockedDelta || !a.locked {
		return
	}
	a.deltaX += dx
	a.deltaY += dy
}

// RecordCursorPosition records an absolute cursor position in free-cursor mode and accumulates the
// difference from the previous position into the cursor delta. The first known position produces no delta.
//
// Parameters:
//   - x, y: the cursor position in surface pixels
func (a *Aggregator) RecordCursorPosition(x, y float64) {
	if a.mode != ModeFreeCursor {
		return
	}
	if a.positionKnown {
		a.deltaX += x - a.cursorX
		a.deltaY += y - a.cursorY
	}
	a.cursorX, a.cursorY = x, y
	a.positionKnown = true
}

// RecordCursorEnter records the position at which the cursor entered the surface without
// producing delta, so the first move after entering does not jump.
//
// Parameters:
//   - x, y: the cursor position in surface pixels
func (a *Aggregator) RecordCursorEnter(x, y float64) {
	if a.mode != ModeFreeCursor {
		return
	}
	a.cursorX, a.cursorY = x, y
	a.positionKnown = true
}

// RecordScrollDelta accumulates scroll.
//
// Parameters:
//   - dx, dy: the scroll amount
func (a *Aggregator) RecordScrollDelta(dx, dy float64) {
	a.scrollX += dx
	a.scrollY += dy
}

// SetLocked updates the lock status and clears the accumulated cursor delta.
//
// Parameters:
//   - locked: the new lock status
func (a *Aggregator) SetLocked(locked bool) {
	a.locked = locked
	a.deltaX, a.deltaY = 0, 0
}

// ClearCursorDelta discards accumulated cursor motion.
func (a *Aggregator) ClearCursorDelta() {
	a.deltaX, a.deltaY = 0, 0
}

// ResetFrameFields clears transitions, cursor delta and scroll delta. Held codes and the last
// absolute cursor position are kept.
func (a *Aggregator) ResetFrameFields() {
	a.transitions = a.transitions[:0]
	a.deltaX, a.deltaY = 0, 0
	a.scrollX, a.scrollY = 0, 0
}

// Snapshot returns a frozen copy of the current input state.
//
// Returns:
//   - *Snapshot: the copy
func (a *Aggregator) Snapshot() *Snapshot {
	held := make(map[common.InputCode]struct{}, len(a.held))
	for code := range a.held {
		held[code] = struct{}{}
	}
	transitions := make([]Transition, len(a.transitions))
	copy(transitions, a.transitions)

	return &Snapshot{
		mode:          a.mode,
		held:          held,
		transitions:   transitions,
		cursorX:       a.cursorX,
		cursorY:       a.cursorY,
		positionKnown: a.positionKnown && a.mode == ModeFreeCursor,
		deltaX:        a.deltaX,
		deltaY:        a.deltaY,
		scrollX:       a.scrollX,
		scrollY:       a.scrollY,
		locked:        a.locked,
	}
}
