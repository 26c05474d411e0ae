package axi

// BeatBytes is the number of bytes moved by one data beat.
const BeatBytes = 4

// StrbAll enables every byte lane of a beat.
const StrbAll uint8 = 0xf

// Resp is the status returned with a read beat or a write response.
type Resp uint8

// The response codes. The controller itself only ever answers RespOkay.
const (
	RespOkay Resp = iota
	RespExOkay
	RespSlvErr
	RespDecErr
)

func (r Resp) String() string {
	switch r {
	case RespOkay:
		return "OKAY"
	case RespExOkay:
		return "EXOKAY"
	case RespSlvErr:
		return "SLVERR"
	case RespDecErr:
		return "DECERR"
	default:
		return "UNKNOWN"
	}
}

// AddrChannel is the payload of the write-address or read-address channel.
// Len uses the bus encoding, i.e. the number of beats minus one.
type AddrChannel struct {
	Valid bool
	Addr  uint32
	Len   uint8
	Burst BurstType
	ID    uint8
}

// Beats returns the number of data beats the request asks for.
func (c AddrChannel) Beats() int {
	return int(c.Len) + 1
}

// WriteDataChannel is the payload of the write-data channel. Strb carries one
// enable bit per byte lane.
type WriteDataChannel struct {
	Valid bool
	Data  uint32
	Strb  uint8
	Last  bool
}

// WriteRespChannel is the payload of the write-response channel.
type WriteRespChannel struct {
	Valid bool
	ID    uint8
	Resp  Resp
}

// ReadDataChannel is the payload of the read-data channel.
type ReadDataChannel struct {
	Valid bool
	Data  uint32
	ID    uint8
	Last  bool
	Resp  Resp
}

// MasterSignals are the signals driven by the bus master in one cycle.
type MasterSignals struct {
	AW     AddrChannel
	W      WriteDataChannel
	AR     AddrChannel
	BReady bool
	RReady bool
}

// SlaveSignals are the signals driven by the controller in one cycle.
type SlaveSignals struct {
	AWReady bool
	WReady  bool
	ARReady bool
	B       WriteRespChannel
	R       ReadDataChannel
}

// Handshakes reports which channels complete a transfer in a cycle where the
// master drives m and the slave drives s.
type Handshakes struct {
	AW, W, AR, B, R bool
}

// Fire evaluates all five valid/ready pairs.
func Fire(m MasterSignals, s SlaveSignals) Handshakes {
	return Handshakes{
		AW: m.AW.Valid && s.AWReady,
		W:  m.W.Valid && s.WReady,
		AR: m.AR.Valid && s.ARReady,
		B:  s.B.Valid && m.BReady,
		R:  s.R.Valid && m.RReady,
	}
}
