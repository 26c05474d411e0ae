package cmdseq

import (
	"log"

	"github.com/sarchlab/sdramaxi/mem/sdram/internal/addressmapping"
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/datapath"
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/org"
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/trans"
	"github.com/sarchlab/sdramaxi/mem/sdram/signal"
)

// Sequencer owns the bank state, the refresh countdown and every register
// that drives the device pins.
type Sequencer struct {
	cfg    Config
	mapper addressmapping.Mapper

	snap         Snapshot
	refreshTimer int
	timerRunning bool

	pins     signal.Pins
	dp       datapath.DataPath
	readPipe datapath.ReadPipe
	ack      bool

	last Decision
}

// New creates a sequencer in StateInit with every bank closed.
func New(cfg Config, mapper addressmapping.Mapper, numBanks int) *Sequencer {
	return &Sequencer{
		cfg:    cfg,
		mapper: mapper,
		snap: Snapshot{
			State: StateInit,
			Banks: org.NewBanks(numBanks),
		},
		pins:     signal.Pins{Cmd: signal.CmdNOP},
		readPipe: datapath.NewReadPipe(cfg.ReadLatency),
	}
}

// State returns the current state.
func (s *Sequencer) State() State {
	return s.snap.State
}

// Snapshot returns a copy of the registered state.
func (s *Sequencer) Snapshot() Snapshot {
	snap := s.snap
	snap.Banks = s.snap.Banks.Clone()

	return snap
}

// Accepting tells if an access offered in the current cycle is consumed.
func (s *Sequencer) Accepting() bool {
	return s.snap.State.Accepting()
}

// Initialized tells if the power-up sequence has finished.
func (s *Sequencer) Initialized() bool {
	return s.timerRunning
}

// RefreshDue tells if a refresh is waiting to be serviced.
func (s *Sequencer) RefreshDue() bool {
	return s.snap.RefreshDue
}

// Pins returns the pins driven during the current cycle.
func (s *Sequencer) Pins() signal.Pins {
	return s.pins
}

// Ack tells if an access completes in the current cycle, together with the
// read word. The word is only meaningful when the completed access is a
// read.
func (s *Sequencer) Ack() (bool, uint32) {
	return s.ack, s.dp.ReadWord()
}

// ReadInFlight tells if read data is still on its way back.
func (s *Sequencer) ReadInFlight() bool {
	return s.readPipe.Busy()
}

// LastDecision returns the decision taken at the most recent tick.
func (s *Sequencer) LastDecision() Decision {
	return s.last
}

// Tick evaluates the cycle with the offered access and the value on the data
// pins, then loads every register.
func (s *Sequencer) Tick(access trans.Access, dq uint16) Decision {
	loc := s.mapper.Map(access.Addr)
	d := Transition(s.snap, Input{Access: access, Loc: loc}, s.cfg)

	if d.Accept {
		s.mustMatchAcceptedAccess(access)
	}

	pins := signal.Pins{
		CKE:  s.pins.CKE,
		Cmd:  d.Command,
		Bank: d.Bank,
		Addr: d.Addr,
	}
	dpUpdate := datapath.Update{DQ: dq, CaptureRead: s.readPipe.Ready()}
	ack := s.snap.State == StateWrite1 || s.readPipe.Ready()
	startRead := false

	fired := s.countDownRefresh()

	for _, e := range d.Effects {
		switch e.Kind {
		case EffectOpenRow:
			s.snap.Banks.Open(e.Bank, e.Row)
		case EffectCloseBank:
			s.snap.Banks.Close(e.Bank)
		case EffectCloseAll:
			s.snap.Banks.CloseAll()
		case EffectRefreshServiced:
			s.snap.RefreshDue = false
		case EffectInitDone:
			s.timerRunning = true
			s.refreshTimer = s.cfg.RefreshInterval
		case EffectRaiseCKE:
			pins.CKE = true
		case EffectDriveLowHalf:
			low, high, lowDQM, highDQM := datapath.SplitWrite(access.Data, access.Mask)
			pins.DQ = low
			pins.DQM = lowDQM
			pins.DQOutputEnable = true
			dpUpdate.CaptureHigh = true
			dpUpdate.High = high
			dpUpdate.HighDQM = highDQM
			s.snap.HighHalf = addressmapping.Location{
				Bank: loc.Bank,
				Row:  loc.Row,
				Col:  loc.Col + 1,
			}
		case EffectDriveHighHalf:
			pins.DQ, pins.DQM = s.dp.Buffered()
			pins.DQOutputEnable = true
		case EffectStartRead:
			startRead = true
		}
	}

	if fired {
		s.snap.RefreshDue = true
	}

	s.snap.State = d.Next
	s.snap.Target = d.Target
	s.snap.DelayTarget = d.DelayTarget
	s.snap.Delay = d.Delay
	s.snap.InitStep = d.InitStep

	s.dp.Clock(dpUpdate)
	s.readPipe.Shift(startRead)
	s.ack = ack
	s.pins = pins
	s.last = d

	return d
}

func (s *Sequencer) countDownRefresh() bool {
	if !s.timerRunning {
		return false
	}

	if s.refreshTimer == 0 {
		s.refreshTimer = s.cfg.RefreshInterval
		return true
	}

	s.refreshTimer--

	return false
}

func (s *Sequencer) mustMatchAcceptedAccess(access trans.Access) {
	if !access.Valid {
		log.Panicf("sequencer in %s without an access to accept", s.snap.State)
	}

	if access.Write != (s.snap.State == StateWrite0) {
		log.Panicf("sequencer in %s offered %s", s.snap.State, access)
	}
}
