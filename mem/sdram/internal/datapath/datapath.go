// Package datapath converts between 32-bit bus words and the 16-bit device
// data pins.
package datapath

// SplitWrite cuts a word into the half-words written at column c and c+1,
// and turns the byte enables into device masks (1 = skip the lane).
func SplitWrite(data uint32, enables uint8) (low, high uint16, lowDQM, highDQM uint8) {
	low = uint16(data)
	high = uint16(data >> 16)
	lowDQM = ^enables & 0x3
	highDQM = (^enables >> 2) & 0x3

	return low, high, lowDQM, highDQM
}

// An Update describes what the data registers load at a clock edge.
type Update struct {
	// DQ is the value on the data pins during the cycle.
	DQ uint16

	// CaptureHigh loads the second half of a write.
	CaptureHigh bool
	High        uint16
	HighDQM     uint8

	// CaptureRead loads the first read beat from the sampling registers.
	CaptureRead bool
}

// DataPath holds the two-stage input sampling registers and the half-word
// buffer shared by reads and writes.
type DataPath struct {
	sample0   uint16
	sample    uint16
	buffer    uint16
	dqmBuffer uint8
}

// Clock applies u. All registers load from their values before the edge.
func (d *DataPath) Clock(u Update) {
	next := *d
	next.sample0 = u.DQ
	next.sample = d.sample0

	switch {
	case u.CaptureHigh:
		next.buffer = u.High
		next.dqmBuffer = u.HighDQM
	case u.CaptureRead:
		next.buffer = d.sample
	}

	*d = next
}

// Buffered returns the buffered half-word and its mask.
func (d *DataPath) Buffered() (uint16, uint8) {
	return d.buffer, d.dqmBuffer
}

// ReadWord joins the buffered first beat and the sampled second beat.
func (d *DataPath) ReadWord() uint32 {
	return uint32(d.sample)<<16 | uint32(d.buffer)
}

// ReadPipe is the shift register that marks when the data of an issued READ
// has gone through the device latency and both sampling stages.
type ReadPipe struct {
	stages []bool
}

// NewReadPipe creates a pipe for a device whose first beat appears
// readLatency cycles after the controller registers the READ.
func NewReadPipe(readLatency int) ReadPipe {
	return ReadPipe{stages: make([]bool, readLatency+2)}
}

// Ready tells if the second beat of a read sits in the sampling register.
func (p ReadPipe) Ready() bool {
	return p.stages[len(p.stages)-1]
}

// Busy tells if any read is still travelling through the pipe.
func (p ReadPipe) Busy() bool {
	for _, s := range p.stages {
		if s {
			return true
		}
	}

	return false
}

// Shift advances the pipe by one cycle.
func (p *ReadPipe) Shift(issued bool) {
	copy(p.stages[1:], p.stages[:len(p.stages)-1])
	p.stages[0] = issued
}
