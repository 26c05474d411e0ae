package sim

import "sync"

// TickEvent asks its handler to advance by one cycle.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a tick for handler at time.
func MakeTickEvent(handler Handler, time VTimeInSec) TickEvent {
	return TickEvent{EventBase: *NewEventBase(time, handler)}
}

// A Ticker advances its state by one cycle. Tick returns false once nothing
// changed, which lets the component sleep until woken again.
type Ticker interface {
	Tick() bool
}

// TickScheduler places at most one tick per clock edge on an engine.
type TickScheduler struct {
	Freq   Freq
	Engine Engine

	handler Handler

	lock          sync.Mutex
	lastScheduled VTimeInSec
}

// NewTickScheduler creates a scheduler that ticks handler at freq.
func NewTickScheduler(
	handler Handler,
	engine Engine,
	freq Freq,
) *TickScheduler {
	return &TickScheduler{
		Freq:          freq,
		Engine:        engine,
		handler:       handler,
		lastScheduled: -1,
	}
}

// TickLater schedules a tick on the first clock edge after now, unless that
// edge already has one.
func (t *TickScheduler) TickLater() {
	t.lock.Lock()
	defer t.lock.Unlock()

	next := t.Freq.NextTick(t.CurrentTime())
	if next <= t.lastScheduled {
		return
	}

	t.lastScheduled = next
	t.Engine.Schedule(MakeTickEvent(t.handler, next))
}

// CurrentTime returns the engine time.
func (t *TickScheduler) CurrentTime() VTimeInSec {
	return t.Engine.CurrentTime()
}

// CurrentCycle returns the engine time in cycles of Freq.
func (t *TickScheduler) CurrentCycle() uint64 {
	return t.Freq.Cycle(t.CurrentTime())
}

// TickingComponent is a component driven by a clock. Its Ticker runs once
// per cycle for as long as it reports progress.
type TickingComponent struct {
	*ComponentBase
	*TickScheduler

	ticker Ticker
}

// NewTickingComponent creates a component that calls ticker.Tick every cycle
// of freq.
func NewTickingComponent(
	name string,
	engine Engine,
	freq Freq,
	ticker Ticker,
) *TickingComponent {
	tc := &TickingComponent{
		ComponentBase: NewComponentBase(name),
		ticker:        ticker,
	}
	tc.TickScheduler = NewTickScheduler(tc, engine, freq)

	return tc
}

// Handle runs one cycle and books the next one if the cycle made progress.
func (c *TickingComponent) Handle(_ Event) error {
	if c.ticker.Tick() {
		c.TickLater()
	}

	return nil
}
