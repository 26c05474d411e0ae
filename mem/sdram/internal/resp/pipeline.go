// Package resp matches completed accesses with their in-flight records and
// produces the bus responses in request order.
package resp

import (
	"log"

	"github.com/sarchlab/sdramaxi/mem/axi"
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/trans"
	"github.com/sarchlab/sdramaxi/sim"
)

// Output is what the head entries present to the bus in one cycle.
type Output struct {
	B axi.WriteRespChannel
	R axi.ReadDataChannel

	// Drop is set when the head is a non-final write beat, which owes no
	// response and leaves without a handshake.
	Drop bool
}

// Pipeline keeps the in-flight queue and the response queue. The two drain
// together, so the response queue never holds more entries than the
// in-flight queue.
type Pipeline struct {
	requests  *sim.Buffer[trans.InflightRecord]
	responses *sim.Buffer[uint32]
}

// New creates a pipeline whose queues hold depth entries each.
func New(name string, depth int) *Pipeline {
	return &Pipeline{
		requests: sim.NewBuffer[trans.InflightRecord](
			sim.BuildName(name, "InflightFIFO"), depth),
		responses: sim.NewBuffer[uint32](
			sim.BuildName(name, "ResponseFIFO"), depth),
	}
}

// InflightBuffer exposes the in-flight queue for monitoring.
func (p *Pipeline) InflightBuffer() *sim.Buffer[trans.InflightRecord] {
	return p.requests
}

// ResponseBuffer exposes the response queue for monitoring.
func (p *Pipeline) ResponseBuffer() *sim.Buffer[uint32] {
	return p.responses
}

// CanTrack tells if another accepted access can be recorded.
func (p *Pipeline) CanTrack() bool {
	return p.requests.CanPush()
}

// Outstanding returns the number of accesses that still owe a response.
func (p *Pipeline) Outstanding() int {
	return p.requests.Size()
}

// Output derives the response channels from the queue heads.
func (p *Pipeline) Output() Output {
	word, ok := p.responses.Peek()
	if !ok {
		return Output{}
	}

	rec, ok := p.requests.Peek()
	if !ok {
		log.Panic("response without an in-flight record")
	}

	out := Output{}

	switch {
	case !rec.Write:
		out.R = axi.ReadDataChannel{
			Valid: true,
			Data:  word,
			ID:    rec.ID,
			Last:  rec.Last,
			Resp:  axi.RespOkay,
		}
	case rec.Last:
		out.B = axi.WriteRespChannel{Valid: true, ID: rec.ID, Resp: axi.RespOkay}
	default:
		out.Drop = true
	}

	return out
}

// Drain pops the heads if out was consumed by the bus or needs no
// handshake. It returns true if the heads were popped.
func (p *Pipeline) Drain(out Output, bReady, rReady bool) bool {
	consumed := out.Drop ||
		(out.B.Valid && bReady) ||
		(out.R.Valid && rReady)
	if !consumed {
		return false
	}

	p.requests.Pop()
	p.responses.Pop()

	return true
}

// Track records an access accepted by the sequencer.
func (p *Pipeline) Track(rec trans.InflightRecord) {
	p.requests.Push(rec)
}

// Complete stores the result of the oldest access without a result.
func (p *Pipeline) Complete(word uint32) {
	if p.responses.Size() >= p.requests.Size() {
		log.Panic("completion without an outstanding access")
	}

	p.responses.Push(word)
}
