// Package event is a small DOM-style event substrate: listeners are
// registered per target and event type, removed by identity, and events
// bubble from their target through the ancestors the host supplies.
//
// Like the DOM it models, nothing here is safe for concurrent use.
package event

// Event is a named notification travelling along a propagation path.
type Event struct {
	Type    string
	Bubbles bool

	// Target is the object the event was dispatched on, CurrentTarget the
	// one whose listeners are running. Both are set during dispatch.
	Target        any
	CurrentTarget any

	stopped bool
}

// New returns a non-bubbling event, like `new Event(type)`.
func New(typ string) *Event {
	return &Event{Type: typ}
}

// NewBubbling returns an event that propagates to ancestors.
func NewBubbling(typ string) *Event {
	return &Event{Type: typ, Bubbles: true}
}

// StopPropagation keeps the event from reaching further targets.
func (e *Event) StopPropagation() {
	e.stopped = true
}

func (e *Event) Stopped() bool {
	return e.stopped
}

// Handler is the callback behind a Listener.
type Handler func(*Event)

// Listener is a handle on a registered callback. Removal is by listener
// identity, so callers keep the pointer they registered.
type Listener struct {
	handle Handler
}

func NewListener(h Handler) *Listener {
	return &Listener{handle: h}
}

// Handle invokes the callback.
func (l *Listener) Handle(e *Event) {
	if l.handle != nil {
		l.handle(e)
	}
}

// Target is anything listeners can be attached to and events dispatched on.
type Target interface {
	AddEventListener(typ string, l *Listener)
	RemoveEventListener(typ string, l *Listener)
	DispatchEvent(e *Event) error
}
