package host

import "github.com/Carmen-Shannon/oxy-canvas/engine/surface"

// Registry stores scoped listeners and dispatches events to them in registration order.
// Surface-scoped listeners are keyed by their surface and only see events aimed at it.
// Listeners may add or remove registrations while an event is being dispatched; a listener
// removed mid-dispatch is not called.
type Registry struct {
	entries []*registryEntry
	nextID  uint64
}

type registryEntry struct {
	id       uint64
	scope    Scope
	target   surface.Surface
	typ      EventType
	listener Listener
	removed  bool
}

type registration struct {
	registry *Registry
	entry    *registryEntry
}

var _ Registration = &registration{}

// NewRegistry creates an empty Registry.
//
// Returns:
//   - *Registry: the registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Add attaches listener for events of type t on scope.
//
// Parameters:
//   - scope: the event target
//   - target: the surface a ScopeSurface listener belongs to; ignored for other scopes
//   - t: the event type
//   - listener: the handler
//
// Returns:
//   - Registration: handle whose Remove detaches the listener exactly once
func (r *Registry) Add(scope Scope, target surface.Surface, t EventType, listener Listener) Registration {
	if scope != ScopeSurface {
		target = nil
	}
	r.nextID++
	e := &registryEntry{
		id:       r.nextID,
		scope:    scope,
		target:   target,
		typ:      t,
		listener: listener,
	}
	r.entries = append(r.entries, e)
	return &registration{registry: r, entry: e}
}

// Dispatch delivers ev to every listener attached to scope for ev.Type. On ScopeSurface only
// listeners of target are called.
//
// Parameters:
//   - scope: the event target
//   - target: the surface the event is aimed at; ignored for other scopes
//   - ev: the event to deliver
func (r *Registry) Dispatch(scope Scope, target surface.Surface, ev *Event) {
	matched := make([]*registryEntry, 0, 4)
	for _, e := range r.entries {
		if e.matches(scope, target, ev.Type) {
			matched = append(matched, e)
		}
	}
	for _, e := range matched {
		if e.removed {
			continue
		}
		e.listener(ev)
	}
}

// Len returns the number of attached listeners.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Count returns the number of listeners attached to scope for t.
func (r *Registry) Count(scope Scope, t EventType) int {
	n := 0
	for _, e := range r.entries {
		if e.scope == scope && e.typ == t {
			n++
		}
	}
	return n
}

func (e *registryEntry) matches(scope Scope, target surface.Surface, t EventType) bool {
	if e.scope != scope || e.typ != t {
		return false
	}
	return scope != ScopeSurface || e.target == target
}

func (r *Registry) remove(e *registryEntry) {
	if e.removed {
		return
	}
	e.removed = true
	for i, other := range r.entries {
		if other.id == e.id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

func (reg *registration) Remove() {
	reg.registry.remove(reg.entry)
}
