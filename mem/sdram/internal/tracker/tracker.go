// Package tracker turns bus requests into a stream of single-word accesses,
// one per cycle at most, alternating between reads and writes.
package tracker

import (
	"github.com/sarchlab/sdramaxi/mem/axi"
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/trans"
)

// PendingBurst is the rest of a burst whose address handshake has completed.
type PendingBurst struct {
	Active bool
	Addr   uint32

	// Remaining counts the beats after the one at Addr.
	Remaining int

	Burst axi.BurstType
	Len   uint8
	ID    uint8
}

// Decision is the combinational output of the tracker in one cycle.
type Decision struct {
	Access  trans.Access
	AWReady bool
	WReady  bool
	ARReady bool

	fromPending bool
}

// Tracker holds at most one pending read and one pending write.
type Tracker struct {
	rd PendingBurst
	wr PendingBurst

	// writeFirst flips on every address handshake.
	writeFirst bool

	holdRd bool
	holdWr bool
}

// New creates an empty tracker that serves reads first.
func New() *Tracker {
	return &Tracker{}
}

// Read returns the pending read.
func (t *Tracker) Read() PendingBurst {
	return t.rd
}

// Write returns the pending write.
func (t *Tracker) Write() PendingBurst {
	return t.wr
}

// Holds tells which direction must be offered again because its access was
// not consumed.
func (t *Tracker) Holds() (rd, wr bool) {
	return t.holdRd, t.holdWr
}

// Idle tells if no burst is partially served.
func (t *Tracker) Idle() bool {
	return !t.rd.Active && !t.wr.Active
}

// Evaluate decides which access to offer and which channels are ready.
// fifoAccept tells if an in-flight record can be stored and ramAccept tells
// if the sequencer consumes the offered access in this cycle.
func (t *Tracker) Evaluate(
	in axi.MasterSignals,
	fifoAccept, ramAccept bool,
) Decision {
	writePrio := (t.writeFirst && !t.holdRd) || t.holdWr
	readPrio := (!t.writeFirst && !t.holdWr) || t.holdRd

	writeActive := (in.AW.Valid || t.wr.Active) &&
		!t.rd.Active &&
		fifoAccept &&
		(writePrio || t.wr.Active || !in.AR.Valid)
	readActive := (in.AR.Valid || t.rd.Active) &&
		!t.wr.Active &&
		fifoAccept &&
		(readPrio || t.rd.Active || !in.AW.Valid)

	d := Decision{}

	switch {
	case writeActive && t.wr.Active:
		d.Access = t.writeAccess(in, t.wr.Addr, t.wr.Remaining == 0, t.wr.ID)
		d.fromPending = true
	case writeActive:
		d.Access = t.writeAccess(in, in.AW.Addr, in.AW.Len == 0, in.AW.ID)
	case readActive && t.rd.Active:
		d.Access = trans.Access{
			Valid: true,
			Addr:  t.rd.Addr,
			Last:  t.rd.Remaining == 0,
			ID:    t.rd.ID,
		}
		d.fromPending = true
	case readActive:
		d.Access = trans.Access{
			Valid: true,
			Addr:  in.AR.Addr,
			Last:  in.AR.Len == 0,
			ID:    in.AR.ID,
		}
	}

	d.AWReady = writeActive && !t.wr.Active && ramAccept
	d.WReady = writeActive && ramAccept
	d.ARReady = readActive && !t.rd.Active && ramAccept

	return d
}

func (t *Tracker) writeAccess(
	in axi.MasterSignals,
	addr uint32,
	last bool,
	id uint8,
) trans.Access {
	return trans.Access{
		Valid: in.W.Valid,
		Write: true,
		Addr:  addr,
		Data:  in.W.Data,
		Mask:  in.W.Strb,
		Last:  last,
		ID:    id,
	}
}

// Commit updates the tracker at the end of the cycle evaluated by d.
func (t *Tracker) Commit(in axi.MasterSignals, d Decision, ramAccept bool) {
	accepted := d.Access.Valid && ramAccept

	switch {
	case d.Access.Valid && !ramAccept:
		if d.Access.Write {
			t.holdWr = true
		} else {
			t.holdRd = true
		}
	case accepted:
		t.holdRd = false
		t.holdWr = false
	}

	if accepted && d.fromPending {
		if d.Access.Write {
			advance(&t.wr)
		} else {
			advance(&t.rd)
		}
	}

	switch {
	case in.AW.Valid && d.AWReady:
		t.startWrite(in, d)
		t.writeFirst = !t.writeFirst
	case in.AR.Valid && d.ARReady:
		t.rd = PendingBurst{
			Active:    in.AR.Len != 0,
			Addr:      axi.NextAddress(in.AR.Addr, in.AR.Burst, in.AR.Len),
			Remaining: int(in.AR.Len) - 1,
			Burst:     in.AR.Burst,
			Len:       in.AR.Len,
			ID:        in.AR.ID,
		}
		t.writeFirst = !t.writeFirst
	}
}

func (t *Tracker) startWrite(in axi.MasterSignals, d Decision) {
	t.wr = PendingBurst{
		Active:    true,
		Addr:      in.AW.Addr,
		Remaining: int(in.AW.Len),
		Burst:     in.AW.Burst,
		Len:       in.AW.Len,
		ID:        in.AW.ID,
	}

	if in.W.Valid && d.WReady {
		advance(&t.wr)
	}
}

func advance(p *PendingBurst) {
	if p.Remaining == 0 {
		p.Active = false
		return
	}

	p.Addr = axi.NextAddress(p.Addr, p.Burst, p.Len)
	p.Remaining--
}
