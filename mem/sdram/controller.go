package sdram

import (
	"log"

	"github.com/sarchlab/sdramaxi/mem/axi"
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/cmdseq"
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/org"
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/resp"
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/tracker"
	"github.com/sarchlab/sdramaxi/mem/sdram/signal"
	"github.com/sarchlab/sdramaxi/sim"
)

// Controller is the cycle model of the SDRAM controller. Every Step
// evaluates the cycle from the registered state and the inputs, then loads
// all registers at once.
type Controller struct {
	cfg     Config
	timing  Timing
	tracker *tracker.Tracker
	seq     *cmdseq.Sequencer
	resp    *resp.Pipeline

	checkProtocol bool
	cycle         uint64
}

// NewController creates a controller, or returns the reason why cfg cannot
// be served.
func NewController(name string, cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:     cfg,
		timing:  cfg.Timing(),
		tracker: tracker.New(),
		seq: cmdseq.New(
			cfg.sequencerConfig(), cfg.mapper(), cfg.NumBanks()),
		resp: resp.New(name, cfg.InflightDepth),
	}

	return c, nil
}

// SetProtocolCheck sets if Step panics on bus requests that break the
// burst rules.
func (c *Controller) SetProtocolCheck(on bool) {
	c.checkProtocol = on
}

// Config returns the configuration the controller was built with.
func (c *Controller) Config() Config {
	return c.cfg
}

// Timing returns the cycle counts the controller works with.
func (c *Controller) Timing() Timing {
	return c.timing
}

// Cycle returns the number of cycles stepped so far.
func (c *Controller) Cycle() uint64 {
	return c.cycle
}

// Pins returns the device pins driven in the current cycle.
func (c *Controller) Pins() signal.Pins {
	return c.seq.Pins()
}

// State returns the command sequencer state.
func (c *Controller) State() cmdseq.State {
	return c.seq.State()
}

// Banks returns a copy of the open-row table.
func (c *Controller) Banks() org.Banks {
	return c.seq.Snapshot().Banks
}

// Initialized tells if the device power-up sequence has completed.
func (c *Controller) Initialized() bool {
	return c.seq.Initialized()
}

// LastDecision returns what the sequencer decided in the previous step.
func (c *Controller) LastDecision() cmdseq.Decision {
	return c.seq.LastDecision()
}

// InflightBuffer returns the queue of accepted accesses awaiting a response.
func (c *Controller) InflightBuffer() *sim.Buffer[InflightRecord] {
	return c.resp.InflightBuffer()
}

// ResponseBuffer returns the queue of completed accesses.
func (c *Controller) ResponseBuffer() *sim.Buffer[uint32] {
	return c.resp.ResponseBuffer()
}

// Busy tells if the controller still has work that is not visible on the
// bus, or has not finished powering up the device.
func (c *Controller) Busy() bool {
	return !c.seq.Initialized() ||
		!c.tracker.Idle() ||
		c.resp.Outstanding() > 0 ||
		c.seq.ReadInFlight() ||
		c.seq.State() != cmdseq.StateIdle
}

// Step runs one clock cycle. m is what the bus master drives and dq is what
// the device drives on the data pins during the cycle.
func (c *Controller) Step(m axi.MasterSignals, dq uint16) axi.SlaveSignals {
	ramAccept := c.seq.Accepting()
	td := c.tracker.Evaluate(m, c.resp.CanTrack(), ramAccept)
	out := c.resp.Output()
	ack, word := c.seq.Ack()

	s := axi.SlaveSignals{
		AWReady: td.AWReady,
		WReady:  td.WReady,
		ARReady: td.ARReady,
		B:       out.B,
		R:       out.R,
	}

	if c.checkProtocol {
		c.mustFollowProtocol(m, s, td)
	}

	c.resp.Drain(out, m.BReady, m.RReady)

	if td.Access.Valid && ramAccept {
		c.resp.Track(td.Access.Record())
	}

	if ack {
		c.resp.Complete(word)
	}

	c.seq.Tick(td.Access, dq)
	c.tracker.Commit(m, td, ramAccept)
	c.cycle++

	return s
}

func (c *Controller) mustFollowProtocol(
	m axi.MasterSignals,
	s axi.SlaveSignals,
	td tracker.Decision,
) {
	fire := axi.Fire(m, s)

	if fire.AW {
		if err := axi.CheckAddrChannel(m.AW); err != nil {
			log.Panicf("cycle %d: write address: %v", c.cycle, err)
		}
	}

	if fire.AR {
		if err := axi.CheckAddrChannel(m.AR); err != nil {
			log.Panicf("cycle %d: read address: %v", c.cycle, err)
		}
	}

	if fire.W && td.Access.Write && td.Access.Last != m.W.Last {
		log.Panicf("cycle %d: write last flag is %t, burst expects %t",
			c.cycle, m.W.Last, td.Access.Last)
	}
}
