package axi

import (
	"errors"
	"fmt"
)

// ErrIllegalBurst is wrapped by every error returned from CheckAddrChannel.
var ErrIllegalBurst = errors.New("illegal burst")

// CheckAddrChannel reports requests that a conforming master never issues.
func CheckAddrChannel(c AddrChannel) error {
	beats := c.Beats()

	switch c.Burst {
	case BurstFixed:
		if beats > MaxFixedBeats {
			return fmt.Errorf("%w: fixed burst of %d beats", ErrIllegalBurst, beats)
		}
	case BurstIncr:
	case BurstWrap:
		if beats < 2 || beats > MaxWrapBeats || beats&(beats-1) != 0 {
			return fmt.Errorf("%w: wrapping burst of %d beats", ErrIllegalBurst, beats)
		}

		if c.Addr%BeatBytes != 0 {
			return fmt.Errorf("%w: wrapping burst at unaligned address 0x%x",
				ErrIllegalBurst, c.Addr)
		}
	default:
		return fmt.Errorf("%w: unknown burst type %d", ErrIllegalBurst, c.Burst)
	}

	return nil
}
