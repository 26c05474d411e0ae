package signal

import "fmt"

// ModeRegister is the decoded content of the device mode register.
type ModeRegister struct {
	// BurstLength is the number of read beats per READ, 1, 2, 4 or 8.
	BurstLength int

	// CASLatency is the number of cycles between a READ on the pins and the
	// first data beat on DQ.
	CASLatency int

	// SingleLocationWrite makes every WRITE store exactly one beat
	// regardless of BurstLength.
	SingleLocationWrite bool
}

const (
	modeWriteBurstBit = 9
	modeCASShift      = 4
	modeCASMask       = 0x7
	modeBurstMask     = 0x7
)

// Encode returns the value to drive on the address pins with LOAD_MODE.
// Sequential burst ordering and the standard operating mode are always used.
func (m ModeRegister) Encode() uint16 {
	var v uint16

	switch m.BurstLength {
	case 1:
		v = 0
	case 2:
		v = 1
	case 4:
		v = 2
	case 8:
		v = 3
	default:
		panic(fmt.Sprintf("unsupported burst length %d", m.BurstLength))
	}

	v |= uint16(m.CASLatency&modeCASMask) << modeCASShift
	v = SetAddrBit(v, modeWriteBurstBit, m.SingleLocationWrite)

	return v
}

// DecodeMode parses a LOAD_MODE address value.
func DecodeMode(v uint16) (ModeRegister, error) {
	m := ModeRegister{
		CASLatency:          int(v>>modeCASShift) & modeCASMask,
		SingleLocationWrite: AddrBit(v, modeWriteBurstBit),
	}

	switch v & modeBurstMask {
	case 0:
		m.BurstLength = 1
	case 1:
		m.BurstLength = 2
	case 2:
		m.BurstLength = 4
	case 3:
		m.BurstLength = 8
	default:
		return m, fmt.Errorf("unsupported burst length code %d", v&modeBurstMask)
	}

	if m.CASLatency < 1 || m.CASLatency > 3 {
		return m, fmt.Errorf("unsupported CAS latency %d", m.CASLatency)
	}

	return m, nil
}
