package cmdseq

import (
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/addressmapping"
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/org"
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/trans"
	"github.com/sarchlab/sdramaxi/mem/sdram/signal"
)

// Snapshot is the registered sequencer state at the start of a cycle.
type Snapshot struct {
	State       State
	Target      State
	DelayTarget State
	Delay       int
	InitStep    int
	RefreshDue  bool
	Banks       org.Banks

	// HighHalf is where the buffered second half of a write goes.
	HighHalf addressmapping.Location
}

// Input is what the rest of the controller presents during the cycle.
type Input struct {
	Access trans.Access
	Loc    addressmapping.Location
}

// EffectKind names a state change that the sequencer applies on commit.
type EffectKind int

// The effects a transition can request.
const (
	EffectOpenRow EffectKind = iota
	EffectCloseBank
	EffectCloseAll
	EffectRefreshServiced
	EffectInitDone
	EffectRaiseCKE
	EffectDriveLowHalf
	EffectDriveHighHalf
	EffectStartRead
)

// Effect is one requested state change.
type Effect struct {
	Kind EffectKind
	Bank int
	Row  int
}

// RowOutcome classifies how IDLE found the row of an access.
type RowOutcome int

// Outcomes of an IDLE decision.
const (
	RowNone RowOutcome = iota
	RowHit
	RowMiss
	RowConflict
)

// Decision is the complete outcome of one cycle.
type Decision struct {
	Next        State
	Target      State
	DelayTarget State
	Delay       int
	InitStep    int

	Command signal.Command
	Bank    uint8
	Addr    uint16

	Accept  bool
	Outcome RowOutcome
	Effects []Effect
}

// Transition computes the next state, the command to register and the
// effects to apply, from the registered state and the cycle inputs only.
func Transition(s Snapshot, in Input, cfg Config) Decision {
	d := Decision{
		Next:        s.State,
		Target:      s.Target,
		DelayTarget: s.DelayTarget,
		InitStep:    s.InitStep,
		Command:     signal.CmdNOP,
	}

	delay := 0

	switch s.State {
	case StateInit:
		delay = initStep(&d, s, cfg)
	case StateDelay:
		if s.Delay > 1 {
			d.Delay = s.Delay - 1
		} else {
			d.Next = s.DelayTarget
		}

		return d
	case StateIdle:
		idle(&d, s, in)
	case StateActivate:
		d.Command = signal.CmdActive
		d.Bank = uint8(in.Loc.Bank)
		d.Addr = uint16(in.Loc.Row)
		d.Effects = append(d.Effects,
			Effect{Kind: EffectOpenRow, Bank: in.Loc.Bank, Row: in.Loc.Row})
		d.Next = s.Target
		delay = cfg.TRCD
	case StateRead:
		d.Command = signal.CmdRead
		d.Bank = uint8(in.Loc.Bank)
		d.Addr = columnAddr(in.Loc.Col)
		d.Accept = true
		d.Effects = append(d.Effects, Effect{Kind: EffectStartRead})
		d.Next = StateReadWait
	case StateReadWait:
		d.Next = StateIdle
		delay = cfg.ReadLatency

		if !s.RefreshDue && sameDirectionHit(s, in, false) {
			d.Next = StateRead
			delay = 0
		}
	case StateWrite0:
		d.Command = signal.CmdWrite
		d.Bank = uint8(in.Loc.Bank)
		d.Addr = columnAddr(in.Loc.Col)
		d.Accept = true
		d.Effects = append(d.Effects,
			Effect{Kind: EffectDriveLowHalf, Bank: in.Loc.Bank})
		d.Next = StateWrite1
	case StateWrite1:
		d.Command = signal.CmdWrite
		d.Bank = uint8(s.HighHalf.Bank)
		d.Addr = columnAddr(s.HighHalf.Col)
		d.Effects = append(d.Effects, Effect{Kind: EffectDriveHighHalf})
		d.Next = StateIdle

		if !s.RefreshDue && sameDirectionHit(s, in, true) {
			d.Next = StateWrite0
		}
	case StatePrecharge:
		d.Command = signal.CmdPrecharge
		delay = cfg.TRP

		if s.Target == StateRefresh {
			d.Addr = signal.SetAddrBit(0, signal.AddrBitAllBanks, true)
			d.Effects = append(d.Effects, Effect{Kind: EffectCloseAll})
			d.Next = StateRefresh
		} else {
			d.Bank = uint8(in.Loc.Bank)
			d.Effects = append(d.Effects,
				Effect{Kind: EffectCloseBank, Bank: in.Loc.Bank})
			d.Next = StateActivate
		}
	case StateRefresh:
		d.Command = signal.CmdRefresh
		d.Effects = append(d.Effects, Effect{Kind: EffectRefreshServiced})
		d.Next = StateIdle
		delay = cfg.TRFC
	}

	if delay > 0 {
		d.DelayTarget = d.Next
		d.Next = StateDelay
		d.Delay = delay
	}

	return d
}

func initStep(d *Decision, s Snapshot, cfg Config) int {
	d.InitStep = s.InitStep + 1

	switch s.InitStep {
	case initPowerUp:
		d.Effects = append(d.Effects, Effect{Kind: EffectRaiseCKE})
		return cfg.StartDelay
	case initPrechargeAll:
		d.Command = signal.CmdPrecharge
		d.Addr = signal.SetAddrBit(0, signal.AddrBitAllBanks, true)
		d.Effects = append(d.Effects, Effect{Kind: EffectCloseAll})

		return cfg.TRP
	case initRefresh1, initRefresh2:
		d.Command = signal.CmdRefresh
		return cfg.TRFC
	default:
		d.Command = signal.CmdLoadMode
		d.Addr = cfg.Mode
		d.Effects = append(d.Effects, Effect{Kind: EffectInitDone})
		d.Next = StateIdle

		return cfg.TMRD
	}
}

func idle(d *Decision, s Snapshot, in Input) {
	if s.RefreshDue {
		d.Target = StateRefresh
		d.Next = StateRefresh

		if s.Banks.AnyOpen() {
			d.Next = StatePrecharge
		}

		return
	}

	if !in.Access.Valid {
		return
	}

	target := StateRead
	if in.Access.Write {
		target = StateWrite0
	}

	switch {
	case s.Banks.Hit(in.Loc.Bank, in.Loc.Row):
		d.Next = target
		d.Outcome = RowHit
	case s.Banks.Conflict(in.Loc.Bank, in.Loc.Row):
		d.Next = StatePrecharge
		d.Target = target
		d.Outcome = RowConflict
	default:
		d.Next = StateActivate
		d.Target = target
		d.Outcome = RowMiss
	}
}

func sameDirectionHit(s Snapshot, in Input, write bool) bool {
	return in.Access.Valid &&
		in.Access.Write == write &&
		s.Banks.Hit(in.Loc.Bank, in.Loc.Row)
}

// columnAddr places a column on the address pins with auto-precharge off.
func columnAddr(col int) uint16 {
	return signal.SetAddrBit(uint16(col), signal.AddrBitAutoPrecharge, false)
}
