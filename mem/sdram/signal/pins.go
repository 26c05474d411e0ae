package signal

import "fmt"

// Pins is the registered state of every controller-driven device pin during
// one clock cycle.
type Pins struct {
	CKE  bool
	Cmd  Command
	Bank uint8
	Addr uint16

	// DQM carries one mask bit per byte lane. A set bit keeps the device
	// from writing that lane.
	DQM uint8

	DQ uint16

	// DQOutputEnable is set when the controller drives DQ.
	DQOutputEnable bool
}

// NOPPins returns pins idling with the clock enabled.
func NOPPins() Pins {
	return Pins{CKE: true, Cmd: CmdNOP}
}

// AllBanks tells if a PRECHARGE targets every bank.
func (p Pins) AllBanks() bool {
	return AddrBit(p.Addr, AddrBitAllBanks)
}

// AutoPrecharge tells if a READ or WRITE closes its row afterwards.
func (p Pins) AutoPrecharge() bool {
	return AddrBit(p.Addr, AddrBitAutoPrecharge)
}

func (p Pins) String() string {
	switch p.Cmd {
	case CmdWrite:
		return fmt.Sprintf("%s bank=%d addr=0x%x dq=0x%04x dqm=%02b",
			p.Cmd, p.Bank, p.Addr, p.DQ, p.DQM)
	case CmdNOP, CmdRefresh:
		return p.Cmd.String()
	default:
		return fmt.Sprintf("%s bank=%d addr=0x%x", p.Cmd, p.Bank, p.Addr)
	}
}
