package common

import "strconv"

// InputCode identifies a key or pointer button tracked by the input aggregator.
// Keys use their printable name ("w", "Escape"); pointer buttons use "pointer-<n>".
type InputCode string

// Named non-printable keys.
const (
	KeyEscape     InputCode = "Escape"
	KeySpace      InputCode = " "
	KeyEnter      InputCode = "Enter"
	KeyTab        InputCode = "Tab"
	KeyBackspace  InputCode = "Backspace"
	KeyLeftShift  InputCode = "ShiftLeft"
	KeyRightShift InputCode = "ShiftRight"
	KeyLeftCtrl   InputCode = "ControlLeft"
	KeyRightCtrl  InputCode = "ControlRight"
	KeyLeftAlt    InputCode = "AltLeft"
	KeyRightAlt   InputCode = "AltRight"
	KeyArrowUp    InputCode = "ArrowUp"
	KeyArrowDown  InputCode = "ArrowDown"
	KeyArrowLeft  InputCode = "ArrowLeft"
	KeyArrowRight InputCode = "ArrowRight"
)

// PrimaryButton is the pointer button index that requests pointer lock.
const PrimaryButton = 0

// PointerButton returns the InputCode for the given pointer button index.
//
// Parameters:
//   - button: zero-based pointer button index (0 = primary)
//
// Returns:
//   - InputCode: the code in "pointer-<n>" form
func PointerButton(button int) InputCode {
	return InputCode("pointer-" + strconv.Itoa(button))
}

// NamedKeys maps GLFW key codes for non-printable keys to their InputCode.
// Printable keys are resolved by the platform layout instead.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
var NamedKeys = map[int]InputCode{
	32:  KeySpace,      // Spacebar (ASCII)
	256: KeyEscape,     // Escape (GLFW)
	257: KeyEnter,      // Enter (GLFW)
	258: KeyTab,        // Tab (GLFW)
	259: KeyBackspace,  // Backspace (GLFW)
	262: KeyArrowRight, // Right (GLFW)
	263: KeyArrowLeft,  // Left (GLFW)
	264: KeyArrowDown,  // Down (GLFW)
	265: KeyArrowUp,    // Up (GLFW)
	340: KeyLeftShift,  // Left Shift (GLFW)
	341: KeyLeftCtrl,   // Left Control (GLFW)
	342: KeyLeftAlt,    // Left Alt (GLFW)
	344: KeyRightShift, // Right Shift (GLFW)
	345: KeyRightCtrl,  // Right Control (GLFW)
	346: KeyRightAlt,   // Right Alt (GLFW)
}
