// Package event provides the listener plumbing between pointer sources and
// the documents they target: a minimal EventTarget, a dispatcher that
// documents embed, and a throttling wrapper for high-frequency events.
package event

import (
	"github.com/google/uuid"
)

// Event types dispatched by pointer sources.
const (
	MouseMove = "mousemove"
	TouchMove = "touchmove"
)

// Touch is a single touch point of a touch event.
type Touch struct {
	ClientX float64
	ClientY float64
	PageX   float64
	PageY   float64
}

// Event is a normalized pointer event. Mouse events carry ClientX/ClientY,
// touch events carry their active points in Touches.
type Event struct {
	Type    string
	ClientX float64
	ClientY float64
	Touches []Touch
}

// Listener receives dispatched events.
type Listener func(Event)

// Handle identifies a registered listener so it can be removed later.
type Handle struct {
	ID   uuid.UUID
	Type string
}

// Valid reports whether h refers to a registration.
func (h Handle) Valid() bool {
	return h.ID != uuid.Nil
}

// Target is anything listeners can be attached to.
type Target interface {
	AddEventListener(typ string, l Listener) Handle
	RemoveEventListener(h Handle) bool
}

type registration struct {
	id uuid.UUID
	fn Listener
}

// Dispatcher is a Target that delivers events synchronously, in
// registration order. The zero value is ready to use.
type Dispatcher struct {
	listeners map[string][]registration
}

// AddEventListener registers l for events of type typ.
func (d *Dispatcher) AddEventListener(typ string, l Listener) Handle {
	if d.listeners == nil {
		d.listeners = make(map[string][]registration)
	}
	id := uuid.New()
	d.listeners[typ] = append(d.listeners[typ], registration{id: id, fn: l})
	return Handle{ID: id, Type: typ}
}

// RemoveEventListener unregisters the listener behind h. It returns false
// if h was not registered on d.
func (d *Dispatcher) RemoveEventListener(h Handle) bool {
	regs := d.listeners[h.Type]
	for i, r := range regs {
		if r.id == h.ID {
			d.listeners[h.Type] = append(regs[:i:i], regs[i+1:]...)
			return true
		}
	}
	return false
}

// DispatchEvent calls every listener registered for ev.Type and returns
// how many were called.
func (d *Dispatcher) DispatchEvent(ev Event) int {
	// Copy so listeners may add or remove registrations while running.
	regs := append([]registration(nil), d.listeners[ev.Type]...)
	for _, r := range regs {
		r.fn(ev)
	}
	return len(regs)
}

// ListenerCount returns the number of listeners registered for typ.
func (d *Dispatcher) ListenerCount(typ string) int {
	return len(d.listeners[typ])
}
