// Package axiagent provides a bus master that drives random bursts into a
// memory controller and checks every word it reads back against a shadow
// copy of the memory.
package axiagent

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/sdramaxi/mem/axi"
)

// A Mismatch is a read beat whose data differs from the shadow memory.
type Mismatch struct {
	Cycle uint64
	Addr  uint32
	Want  uint32
	Got   uint32
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("cycle %d: read 0x%08x at 0x%x, want 0x%08x",
		m.Cycle, m.Got, m.Addr, m.Want)
}

type writeBurst struct {
	addr  axi.AddrChannel
	data  []uint32
	strb  []uint8
	next  int
	awHit bool
}

type readBurst struct {
	addr  axi.AddrChannel
	addrs []uint32
	want  []uint32
	next  int
}

// Agent is a bus master that writes random bursts and reads each of them
// back once the write is acknowledged.
type Agent struct {
	rng *rand.Rand

	maxAddress     uint32
	numWrites      int
	maxOutstanding int
	backpressure   bool
	partialStrobes bool

	shadow map[uint32]byte

	writesIssued int
	current      *writeBurst
	awaitingB    []axi.AddrChannel
	readQueue    []axi.AddrChannel
	awaitingR    []*readBurst

	readsDone  int
	mismatches []Mismatch
	protocol   []error

	bReady, rReady bool
}

// Total returns the number of bursts the agent will complete, counting each
// write and its read-back.
func (a *Agent) Total() int {
	return 2 * a.numWrites
}

// Completed returns the number of bursts completed so far.
func (a *Agent) Completed() int {
	return a.writesIssued - len(a.awaitingB) - a.inflightWrite() + a.readsDone
}

func (a *Agent) inflightWrite() int {
	if a.current != nil {
		return 1
	}

	return 0
}

// Mismatches returns the read beats that did not match the shadow memory.
func (a *Agent) Mismatches() []Mismatch {
	return a.mismatches
}

// ProtocolErrors returns the responses that broke the bus ordering rules.
func (a *Agent) ProtocolErrors() []error {
	return a.protocol
}

// Done tells if every write has been issued, acknowledged and read back.
func (a *Agent) Done() bool {
	return a.writesIssued == a.numWrites &&
		a.current == nil &&
		len(a.awaitingB) == 0 &&
		len(a.readQueue) == 0 &&
		len(a.awaitingR) == 0
}

// Drive returns the master signals for the cycle.
func (a *Agent) Drive(_ uint64) axi.MasterSignals {
	if a.current == nil && a.canStartWrite() {
		a.current = a.randomWrite()
		a.writesIssued++
	}

	m := axi.MasterSignals{}

	if w := a.current; w != nil {
		m.AW = w.addr
		m.AW.Valid = !w.awHit
		m.W = axi.WriteDataChannel{
			Valid: true,
			Data:  w.data[w.next],
			Strb:  w.strb[w.next],
			Last:  w.next == len(w.data)-1,
		}
	}

	if len(a.readQueue) > 0 {
		m.AR = a.readQueue[0]
		m.AR.Valid = true
	}

	a.bReady = !a.backpressure || a.rng.Intn(4) != 0
	a.rReady = !a.backpressure || a.rng.Intn(4) != 0
	m.BReady = a.bReady
	m.RReady = a.rReady

	return m
}

func (a *Agent) canStartWrite() bool {
	return a.writesIssued < a.numWrites &&
		len(a.awaitingB) < a.maxOutstanding
}

// Observe updates the shadow memory and checks responses from the handshakes
// completed in the cycle.
func (a *Agent) Observe(cycle uint64, m axi.MasterSignals, s axi.SlaveSignals) {
	fire := axi.Fire(m, s)

	if fire.AW {
		a.current.awHit = true
	}

	if fire.W {
		a.writeBeat(m.W)
	}

	if fire.B {
		a.completeWrite(s.B)
	}

	if fire.AR {
		a.startRead(m.AR)
	}

	if fire.R {
		a.readBeat(cycle, s.R)
	}
}

func (a *Agent) writeBeat(w axi.WriteDataChannel) {
	b := a.current
	if b == nil || !b.awHit {
		a.protocol = append(a.protocol,
			fmt.Errorf("write beat accepted before its address"))
		return
	}

	addr := axi.BurstAddresses(b.addr)[b.next]
	for i := 0; i < axi.BeatBytes; i++ {
		if w.Strb&(1<<i) != 0 {
			a.shadow[addr+uint32(i)] = byte(w.Data >> (8 * i))
		}
	}

	b.next++
	if b.next == len(b.data) {
		a.awaitingB = append(a.awaitingB, b.addr)
		a.current = nil
	}
}

func (a *Agent) completeWrite(b axi.WriteRespChannel) {
	if len(a.awaitingB) == 0 {
		a.protocol = append(a.protocol, fmt.Errorf("unexpected write response"))
		return
	}

	req := a.awaitingB[0]
	a.awaitingB = a.awaitingB[1:]

	if b.ID != req.ID || b.Resp != axi.RespOkay {
		a.protocol = append(a.protocol, fmt.Errorf(
			"write response id=%d resp=%s for request id=%d", b.ID, b.Resp, req.ID))
	}

	a.readQueue = append(a.readQueue, req)
}

func (a *Agent) startRead(ar axi.AddrChannel) {
	a.readQueue = a.readQueue[1:]

	r := &readBurst{addr: ar, addrs: axi.BurstAddresses(ar)}
	for _, addr := range r.addrs {
		r.want = append(r.want, a.shadowWord(addr))
	}

	a.awaitingR = append(a.awaitingR, r)
}

func (a *Agent) readBeat(cycle uint64, beat axi.ReadDataChannel) {
	if len(a.awaitingR) == 0 {
		a.protocol = append(a.protocol, fmt.Errorf("unexpected read data"))
		return
	}

	r := a.awaitingR[0]
	last := r.next == len(r.want)-1

	if beat.ID != r.addr.ID || beat.Last != last {
		a.protocol = append(a.protocol, fmt.Errorf(
			"read beat id=%d last=%t for request id=%d beat %d of %d",
			beat.ID, beat.Last, r.addr.ID, r.next+1, len(r.want)))
	}

	if beat.Data != r.want[r.next] {
		a.mismatches = append(a.mismatches, Mismatch{
			Cycle: cycle,
			Addr:  r.addrs[r.next],
			Want:  r.want[r.next],
			Got:   beat.Data,
		})
	}

	r.next++
	if r.next == len(r.want) {
		a.awaitingR = a.awaitingR[1:]
		a.readsDone++
	}
}

func (a *Agent) shadowWord(addr uint32) uint32 {
	var w uint32
	for i := 0; i < axi.BeatBytes; i++ {
		w |= uint32(a.shadow[addr+uint32(i)]) << (8 * i)
	}

	return w
}

func (a *Agent) randomWrite() *writeBurst {
	c := a.randomAddrChannel()
	beats := c.Beats()

	w := &writeBurst{
		addr: c,
		data: make([]uint32, beats),
		strb: make([]uint8, beats),
	}

	for i := range w.data {
		w.data[i] = a.rng.Uint32()
		w.strb[i] = axi.StrbAll

		if a.partialStrobes && a.rng.Intn(4) == 0 {
			w.strb[i] = uint8(a.rng.Intn(16))
		}
	}

	return w
}

func (a *Agent) randomAddrChannel() axi.AddrChannel {
	c := axi.AddrChannel{
		ID:    uint8(a.rng.Intn(16)),
		Burst: axi.BurstType(a.rng.Intn(3)),
	}

	switch c.Burst {
	case axi.BurstWrap:
		c.Len = uint8(2<<a.rng.Intn(4) - 1)
	default:
		c.Len = uint8(a.rng.Intn(16))
	}

	span := uint32(c.Beats()) * axi.BeatBytes
	if c.Burst == axi.BurstFixed {
		span = axi.BeatBytes
	}

	words := (a.maxAddress - span) / axi.BeatBytes
	c.Addr = uint32(a.rng.Int63n(int64(words)+1)) * axi.BeatBytes

	return c
}
