package canvas

import (
	"github.com/Carmen-Shannon/oxy-canvas/engine/host"
)

// attachInput registers every input and pointer-lock listener and keeps the registrations for Unmount.
// Pointer and wheel listeners are bound to this canvas's surface.
func (c *Canvas) attachInput() {
	c.listen(host.ScopeWindow, host.EventKeyDown, c.onKeyDown)
	c.listen(host.ScopeWindow, host.EventKeyUp, c.onKeyUp)
	c.listen(host.ScopeSurface, host.EventPointerDown, c.onPointerDown)
	c.listen(host.ScopeSurface, host.EventPointerUp, c.onPointerUp)
	c.listen(host.ScopeSurface, host.EventPointerMove, c.onPointerMove)
	c.listen(host.ScopeSurface, host.EventPointerEnter, c.onPointerEnter)
	c.listen(host.ScopeSurface, host.EventWheel, c.onWheel)
	if c.locksCursor {
		c.listen(host.ScopeDocument, host.EventPointerLockChange, c.onLockChange)
		c.listen(host.ScopeDocument, host.EventPointerLockError, c.onLockError)
	}
}

func (c *Canvas) listen(scope host.Scope, t host.EventType, l host.Listener) {
	c.registrations = append(c.registrations, c.host.Listen(scope, c.surface, t, l))
}

func (c *Canvas) onKeyDown(ev *host.Event) {
	logger.Debugf("down: %s", ev.Key)
	if c.locksCursor {
		c.lock.HandleKeyDown(ev.Key)
		if c.lock.Locked() {
			ev.PreventDefault()
		}
	}
	c.input.RecordKeyDown(ev.Key)
}

func (c *Canvas) onKeyUp(ev *host.Event) {
	logger.Debugf("up: %s", ev.Key)
	c.input.RecordKeyUp(ev.Key)
}

func (c *Canvas) onPointerDown(ev *host.Event) {
	logger.Debugf("pointer-down: %d", ev.Button)
	if c.locksCursor {
		c.lock.HandleButtonDown(ev.Button)
	}
	c.input.RecordButtonDown(ev.Button)
}

func (c *Canvas) onPointerUp(ev *host.Event) {
	logger.Debugf("pointer-up: %d", ev.Button)
	c.input.RecordButtonUp(ev.Button)
}

func (c *Canvas) onPointerMove(ev *host.Event) {
	if c.locksCursor {
		c.input.RecordCursorDelta(ev.MovementX, ev.MovementY)
		return
	}
	c.input.RecordCursorPosition(ev.X, ev.Y)
}

func (c *Canvas) onPointerEnter(ev *host.Event) {
	c.input.RecordCursorEnter(ev.X, ev.Y)
}

func (c *Canvas) onWheel(ev *host.Event) {
	logger.Debug("wheel")
	if c.lock.Locked() {
		ev.PreventDefault()
	}
	c.input.RecordScrollDelta(ev.DeltaX, ev.DeltaY)
}

func (c *Canvas) onLockChange(*host.Event) {
	c.lock.HandleLockChange()
}

func (c *Canvas) onLockError(*host.Event) {
	c.lock.HandleLockError()
}
