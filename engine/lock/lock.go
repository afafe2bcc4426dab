// Package lock implements the pointer-lock state machine of a managed surface.
package lock

import (
	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
	"github.com/kataras/golog"
)

var logger = golog.Child("[lock]")

// State is the pointer-lock state of a surface.
type State int

const (
	// Unlocked is the initial state: the cursor moves freely.
	Unlocked State = iota
	// Locked means the platform granted exclusive relative pointer input to the surface.
	Locked
)

func (s State) String() string {
	if s == Locked {
		return "locked"
	}
	return "unlocked"
}

// Platform is the subset of the host the controller drives. host.Host satisfies it.
type Platform interface {
	RequestPointerLock(s surface.Surface) error
	ExitPointerLock()
	PointerLockElement() surface.Surface
}

// Controller cycles between Unlocked and Locked for the life of a mount. Requests are fire-and-forget;
// the state only changes when the platform reports the outcome.
type Controller struct {
	platform Platform
	surface  surface.Surface
	input    *input.Aggregator

	enabled bool
	state   State

	// requesting is set while a lock request of this controller awaits its outcome.
	requesting bool
}

// NewController creates a Controller in the Unlocked state with locking enabled.
//
// Parameters:
//   - p: the platform issuing lock requests and notifications
//   - s: the surface that requests the lock
//   - a: the aggregator whose lock status and relative motion follow the controller
//   - options: functional options to configure the controller
//
// Returns:
//   - *Controller: the controller
func NewController(p Platform, s surface.Surface, a *input.Aggregator, options ...ControllerBuilderOption) *Controller {
	c := &Controller{
		platform: p,
		surface:  s,
		input:    a,
		enabled:  true,
		state:    Unlocked,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// State returns the current lock state.
func (c *Controller) State() State {
	return c.state
}

// Locked reports whether the state is Locked.
func (c *Controller) Locked() bool {
	return c.state == Locked
}

// Enabled reports whether primary-button presses request a lock.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// HandleButtonDown requests a lock when the primary button is pressed while Unlocked.
// A rejected request is logged and otherwise ignored.
//
// Parameters:
//   - button: the pointer button index
//
// Returns:
//   - bool: true if a lock request was issued
func (c *Controller) HandleButtonDown(button int) bool {
	if !c.enabled || c.state != Unlocked || button != common.PrimaryButton {
		return false
	}
	c.requesting = true
	if err := c.platform.RequestPointerLock(c.surface); err != nil {
		logger.Debugf("pointer lock request rejected: %v", err)
	}
	return true
}

// HandleKeyDown requests release of the lock when Escape is pressed while Locked.
//
// Parameters:
//   - code: the key identifier
//
// Returns:
//   - bool: true if a release was requested
func (c *Controller) HandleKeyDown(code common.InputCode) bool {
	if c.state != Locked || code != common.KeyEscape {
		return false
	}
	c.platform.ExitPointerLock()
	return true
}

// HandleLockChange applies a platform lock-change notification: Locked iff the platform's
// locked element is this surface. Relative motion accumulated so far is discarded.
func (c *Controller) HandleLockChange() {
	next := Unlocked
	if c.surface != nil && !c.surface.Released() && c.platform.PointerLockElement() == c.surface {
		next = Locked
	}
	logger.Debugf("lock changed: %s -> %s", c.state, next)
	c.requesting = false
	c.apply(next)
}

// HandleLockError releases any lock after a platform lock error for this controller's request
// and returns to Unlocked. Lock errors are broadcast to every controller on the host, so an error
// arriving while this controller has no request outstanding belongs to another surface: only the
// relative motion is discarded.
func (c *Controller) HandleLockError() {
	if !c.requesting {
		logger.Debug("lock error for another surface")
		if c.input != nil {
			c.input.ClearCursorDelta()
		}
		return
	}
	logger.Debug("lock error")
	c.requesting = false
	c.platform.ExitPointerLock()
	c.apply(Unlocked)
}

func (c *Controller) apply(next State) {
	c.state = next
	if c.input != nil {
		c.input.SetLocked(next == Locked)
	}
}
