package sdram

import (
	"github.com/sarchlab/sdramaxi/mem/axi"
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/trans"
	"github.com/sarchlab/sdramaxi/mem/sdram/signal"
)

// InflightRecord is what the controller remembers about an accepted access
// until its response leaves.
type InflightRecord = trans.InflightRecord

// A BusMaster drives the bus side of the controller.
type BusMaster interface {
	// Drive returns the master signals for the cycle.
	Drive(cycle uint64) axi.MasterSignals

	// Observe reports the signals of both sides at the end of the cycle.
	Observe(cycle uint64, m axi.MasterSignals, s axi.SlaveSignals)

	// Done tells if the master has nothing more to send or receive.
	Done() bool
}

// A Device is the SDRAM chip behind the controller.
type Device interface {
	// Clock presents the pins for one cycle and returns the value the
	// device drives on DQ in that cycle.
	Clock(pins signal.Pins) uint16
}
