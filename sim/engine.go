package sim

// TimeTeller tells the current simulated time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// A CycleTeller tells the current time in cycles of its own clock.
type CycleTeller interface {
	CurrentCycle() uint64
}

// EventScheduler accepts events to be handled later.
type EventScheduler interface {
	Schedule(e Event)
}

// A SimulationEndHandler runs when a simulation is declared finished, for
// example to flush recorders.
type SimulationEndHandler interface {
	Handle(now VTimeInSec)
}

// An Engine handles events in time order. A ticking component places one
// event per clock edge on it for as long as it makes progress.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	// Run handles events until none is left or a handler fails.
	Run() error

	// Pause holds Run before its next event. Continue releases it.
	Pause()
	Continue()

	// RegisterSimulationEndHandler adds a handler for Finished to call.
	RegisterSimulationEndHandler(handler SimulationEndHandler)

	// Finished calls every simulation end handler with the current time.
	Finished()
}
