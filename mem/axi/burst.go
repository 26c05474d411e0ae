package axi

import "fmt"

// BurstType selects how the address advances from beat to beat.
type BurstType uint8

// The three burst modes.
const (
	BurstFixed BurstType = iota
	BurstIncr
	BurstWrap
)

func (b BurstType) String() string {
	switch b {
	case BurstFixed:
		return "FIXED"
	case BurstIncr:
		return "INCR"
	case BurstWrap:
		return "WRAP"
	default:
		return fmt.Sprintf("BurstType(%d)", uint8(b))
	}
}

// MaxWrapBeats is the longest wrapping burst.
const MaxWrapBeats = 16

// MaxFixedBeats is the longest fixed burst.
const MaxFixedBeats = 16

// NextAddress returns the address of the beat after addr in a burst of the
// given type and encoded length (beats minus one).
//
// Wrapping bursts stay inside an aligned window of beats*BeatBytes bytes.
// Lengths that are not a power of two fall back to the largest window; such
// bursts are illegal on the bus and CheckAddrChannel reports them.
func NextAddress(addr uint32, burst BurstType, length uint8) uint32 {
	switch burst {
	case BurstFixed:
		return addr
	case BurstWrap:
		mask := WrapMask(length)
		return (addr &^ mask) | ((addr + BeatBytes) & mask)
	default:
		return addr + BeatBytes
	}
}

// WrapMask returns the byte-offset mask of the wrap window for a burst of the
// given encoded length.
func WrapMask(length uint8) uint32 {
	beats := uint32(length) + 1
	if beats > MaxWrapBeats || beats&(beats-1) != 0 {
		return MaxWrapBeats*BeatBytes - 1
	}

	return beats*BeatBytes - 1
}

// BurstAddresses lists the address of every beat of the request.
func BurstAddresses(c AddrChannel) []uint32 {
	addrs := make([]uint32, c.Beats())
	addr := c.Addr

	for i := range addrs {
		addrs[i] = addr
		addr = NextAddress(addr, c.Burst, c.Len)
	}

	return addrs
}
