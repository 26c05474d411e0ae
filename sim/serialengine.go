package sim

import (
	"log"
	"reflect"
	"sync"
)

// A SerialEngine handles one event at a time on the calling goroutine.
// Events at the same time run in the order they were scheduled, which keeps
// cycle-level models deterministic.
type SerialEngine struct {
	HookableBase

	timeLock sync.RWMutex
	now      VTimeInSec
	queue    EventQueue

	// runLock is held while an event is handled. Pause takes it to stop Run
	// between two events.
	runLock   sync.Mutex
	pauseLock sync.Mutex
	paused    bool

	endHandlers []SimulationEndHandler
}

// NewSerialEngine creates an engine with an empty event queue at time 0.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{queue: NewEventQueue()}
}

// Schedule queues evt. It panics if evt lies in the past.
func (e *SerialEngine) Schedule(evt Event) {
	if now := e.CurrentTime(); evt.Time() < now {
		log.Panicf("event %s @ %.10f scheduled at %.10f",
			reflect.TypeOf(evt), evt.Time(), now)
	}

	e.queue.Push(evt)
}

// CurrentTime returns the time of the event being handled, or of the last
// one handled.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	e.timeLock.RLock()
	defer e.timeLock.RUnlock()

	return e.now
}

func (e *SerialEngine) advanceTo(t VTimeInSec) {
	e.timeLock.Lock()
	e.now = t
	e.timeLock.Unlock()
}

// Run handles queued events, including the ones they schedule, until the
// queue is empty. It returns the first error a handler reports.
func (e *SerialEngine) Run() error {
	for e.queue.Len() > 0 {
		if err := e.handleNext(); err != nil {
			return err
		}
	}

	return nil
}

func (e *SerialEngine) handleNext() error {
	e.runLock.Lock()
	defer e.runLock.Unlock()

	evt := e.queue.Pop()
	e.advanceTo(evt.Time())

	ctx := HookCtx{Domain: e, Pos: HookPosBeforeEvent, Item: evt}
	e.InvokeHook(ctx)

	err := evt.Handler().Handle(evt)

	ctx.Pos = HookPosAfterEvent
	e.InvokeHook(ctx)

	return err
}

// Pause stops Run before its next event. Pausing twice has no effect.
func (e *SerialEngine) Pause() {
	e.pauseLock.Lock()
	defer e.pauseLock.Unlock()

	if e.paused {
		return
	}

	e.runLock.Lock()
	e.paused = true
}

// Continue lets a paused Run go on.
func (e *SerialEngine) Continue() {
	e.pauseLock.Lock()
	defer e.pauseLock.Unlock()

	if !e.paused {
		return
	}

	e.paused = false
	e.runLock.Unlock()
}

// RegisterSimulationEndHandler adds a handler for Finished to call.
func (e *SerialEngine) RegisterSimulationEndHandler(
	handler SimulationEndHandler,
) {
	e.endHandlers = append(e.endHandlers, handler)
}

// Finished calls the simulation end handlers in registration order.
func (e *SerialEngine) Finished() {
	now := e.CurrentTime()

	for _, h := range e.endHandlers {
		h.Handle(now)
	}
}
