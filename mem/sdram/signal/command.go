// Package signal describes the pins between the SDRAM controller and the
// SDRAM device.
package signal

import "fmt"

// Command is the 4-bit {CS#, RAS#, CAS#, WE#} encoding driven on the command
// pins.
type Command uint8

// Commands understood by an SDR SDRAM device.
const (
	CmdLoadMode  Command = 0b0000
	CmdRefresh   Command = 0b0001
	CmdPrecharge Command = 0b0010
	CmdActive    Command = 0b0011
	CmdWrite     Command = 0b0100
	CmdRead      Command = 0b0101
	CmdTerminate Command = 0b0110
	CmdNOP       Command = 0b0111
)

func (c Command) String() string {
	switch c {
	case CmdLoadMode:
		return "LOAD_MODE"
	case CmdRefresh:
		return "REFRESH"
	case CmdPrecharge:
		return "PRECHARGE"
	case CmdActive:
		return "ACTIVATE"
	case CmdWrite:
		return "WRITE"
	case CmdRead:
		return "READ"
	case CmdTerminate:
		return "TERMINATE"
	case CmdNOP:
		return "NOP"
	default:
		return fmt.Sprintf("Command(%04b)", uint8(c))
	}
}

// AddrBitAutoPrecharge is the address pin that requests an automatic
// precharge with a READ or WRITE.
const AddrBitAutoPrecharge = 10

// AddrBitAllBanks is the address pin that turns a PRECHARGE into a
// precharge of every bank.
const AddrBitAllBanks = 10

// SetAddrBit returns addr with a single bit forced to on. No other bit is
// touched.
func SetAddrBit(addr uint16, bit uint, on bool) uint16 {
	if on {
		return addr | 1<<bit
	}

	return addr &^ (1 << bit)
}

// AddrBit tells if a single address bit is set.
func AddrBit(addr uint16, bit uint) bool {
	return addr&(1<<bit) != 0
}
