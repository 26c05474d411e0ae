// Package cmdseq turns one access at a time into correctly timed SDRAM
// commands and keeps the device refreshed.
package cmdseq

import "fmt"

// State is a state of the command sequencer.
type State int

// The sequencer states.
const (
	StateInit State = iota
	StateDelay
	StateIdle
	StateActivate
	StateRead
	StateReadWait
	StateWrite0
	StateWrite1
	StatePrecharge
	StateRefresh
)

var stateNames = [...]string{
	StateInit:      "INIT",
	StateDelay:     "DELAY",
	StateIdle:      "IDLE",
	StateActivate:  "ACTIVATE",
	StateRead:      "READ",
	StateReadWait:  "READ_WAIT",
	StateWrite0:    "WRITE0",
	StateWrite1:    "WRITE1",
	StatePrecharge: "PRECHARGE",
	StateRefresh:   "REFRESH",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}

// Accepting tells if an access offered in this state is consumed.
func (s State) Accepting() bool {
	return s == StateRead || s == StateWrite0
}

// Steps of the power-up sequence run in StateInit.
const (
	initPowerUp = iota
	initPrechargeAll
	initRefresh1
	initRefresh2
	initLoadMode
)

// Config holds the cycle counts and the mode register value the sequencer
// works with.
type Config struct {
	TRCD int
	TRP  int
	TRFC int
	TMRD int

	// ReadLatency is the number of cycles between the READ state and the
	// first data beat on DQ. The sequencer also waits this long after a
	// read before anything else may use the data pins.
	ReadLatency int

	// RefreshInterval is the reload value of the refresh countdown. A
	// refresh becomes due every RefreshInterval+1 cycles.
	RefreshInterval int

	// StartDelay is the power-up wait before the first command.
	StartDelay int

	Mode uint16
}
