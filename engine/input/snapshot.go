package input

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-canvas/common"
)

// Snapshot is the frozen per-frame view of input handed to the draw callback.
// It is not affected by events recorded after it was taken.
type Snapshot struct {
	mode        CursorMode
	held        map[common.InputCode]struct{}
	transitions []Transition

	cursorX, cursorY float64
	positionKnown    bool

	deltaX, deltaY   float64
	scrollX, scrollY float64

	locked bool
}

// Mode returns the cursor mode the snapshot was taken in.
func (s *Snapshot) Mode() CursorMode {
	return s.mode
}

// Held reports whether code is currently held.
func (s *Snapshot) Held(code common.InputCode) bool {
	_, ok := s.held[code]
	return ok
}

// HeldCodes returns the held codes in lexical order.
func (s *Snapshot) HeldCodes() []common.InputCode {
	codes := make([]common.InputCode, 0, len(s.held))
	for code := range s.held {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Pressed reports whether code had a press edge during the frame.
func (s *Snapshot) Pressed(code common.InputCode) bool {
	return s.hasEdge(code, true)
}

// Released reports whether code had a release edge during the frame.
func (s *Snapshot) Released(code common.InputCode) bool {
	return s.hasEdge(code, false)
}

func (s *Snapshot) hasEdge(code common.InputCode, pressed bool) bool {
	for _, t := range s.transitions {
		if t.Code == code && t.Pressed == pressed {
			return true
		}
	}
	return false
}

// Transitions returns the press/release edges of the frame in arrival order.
func (s *Snapshot) Transitions() []Transition {
	return slices.Clone(s.transitions)
}

// CursorPosition returns the absolute cursor position. ok is false in locked-delta mode or before
// any position was recorded.
//
// Returns:
//   - x, y: the position in surface pixels
//   - ok: whether the position is meaningful
func (s *Snapshot) CursorPosition() (x, y float64, ok bool) {
	return s.cursorX, s.cursorY, s.positionKnown
}

// CursorDelta returns the cursor motion accumulated during the frame.
func (s *Snapshot) CursorDelta() (dx, dy float64) {
	return s.deltaX, s.deltaY
}

// ScrollDelta returns the scroll accumulated during the frame.
func (s *Snapshot) ScrollDelta() (dx, dy float64) {
	return s.scrollX, s.scrollY
}

// Locked reports whether the pointer was locked when the snapshot was taken.
func (s *Snapshot) Locked() bool {
	return s.locked
}
