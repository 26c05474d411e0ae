package sim

// VTimeInSec is a point on the simulated time line, in seconds.
type VTimeInSec float64

// An Event is something an Engine hands to its Handler once simulated time
// reaches Time.
type Event interface {
	Time() VTimeInSec
	Handler() Handler
}

// A Handler owns the state that its events change. Only the handler of an
// event may be modified while the event is handled.
type Handler interface {
	Handle(e Event) error
}

// EventBase carries the time and the handler of an event. Concrete events
// embed it.
type EventBase struct {
	ID      string
	time    VTimeInSec
	handler Handler
}

// NewEventBase creates an EventBase with a fresh ID.
func NewEventBase(t VTimeInSec, handler Handler) *EventBase {
	return &EventBase{
		ID:      GetIDGenerator().Generate(),
		time:    t,
		handler: handler,
	}
}

// Time returns when the event happens.
func (e EventBase) Time() VTimeInSec {
	return e.time
}

// Handler returns the handler of the event.
func (e EventBase) Handler() Handler {
	return e.handler
}
