package sdram

import (
	"errors"
	"fmt"
	"math"

	"github.com/sarchlab/sdramaxi/mem/sdram/internal/addressmapping"
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/cmdseq"
	"github.com/sarchlab/sdramaxi/mem/sdram/signal"
	"github.com/sarchlab/sdramaxi/sim"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid sdram config")

// Config describes the device geometry and timing the controller is built
// for. Durations are given in device datasheet units and converted to
// cycles of Freq, rounding up.
type Config struct {
	Freq sim.Freq

	// AddrWidth is the number of byte-address bits decoded by the
	// controller. The device capacity is 2^AddrWidth bytes.
	AddrWidth int

	// ColWidth is the number of column (half-word) address bits.
	ColWidth int

	// BankWidth is the number of bank address bits.
	BankWidth int

	CASLatency int

	TRCDns float64
	TRPns  float64
	TRFCns float64

	// RefreshWindowMs is the time in which every row must be refreshed once.
	RefreshWindowMs float64

	// StartDelayUs is the power-up wait before the first command.
	StartDelayUs float64

	InflightDepth int
}

// DefaultConfig describes a 32MB x16 SDR SDRAM clocked at 50MHz.
func DefaultConfig() Config {
	return Config{
		Freq:            50 * sim.MHz,
		AddrWidth:       25,
		ColWidth:        9,
		BankWidth:       2,
		CASLatency:      2,
		TRCDns:          20,
		TRPns:           20,
		TRFCns:          60,
		RefreshWindowMs: 64,
		StartDelayUs:    100,
		InflightDepth:   4,
	}
}

// tMRD is the LOAD_MODE to next command delay, in cycles.
const tMRD = 2

// RowWidth returns the number of row address bits left once the word,
// column and bank bits are taken from the address.
func (c Config) RowWidth() int {
	return c.AddrWidth - (c.ColWidth + 1) - c.BankWidth
}

// NumBanks returns the number of banks.
func (c Config) NumBanks() int {
	return 1 << c.BankWidth
}

// NumRows returns the number of rows per bank.
func (c Config) NumRows() int {
	return 1 << c.RowWidth()
}

// Validate checks that the configuration describes a device the controller
// can drive.
func (c Config) Validate() error {
	if c.Freq <= 0 {
		return fmt.Errorf("%w: frequency must be positive", ErrInvalidConfig)
	}

	if err := c.validateGeometry(); err != nil {
		return err
	}

	if c.CASLatency < 1 || c.CASLatency > 3 {
		return fmt.Errorf("%w: CAS latency %d not in 1..3",
			ErrInvalidConfig, c.CASLatency)
	}

	if c.TRCDns <= 0 || c.TRPns <= 0 || c.TRFCns <= 0 {
		return fmt.Errorf("%w: tRCD, tRP and tRFC must be positive",
			ErrInvalidConfig)
	}

	if c.InflightDepth < 1 {
		return fmt.Errorf("%w: in-flight depth must be at least 1",
			ErrInvalidConfig)
	}

	t := c.Timing()

	if t.RefreshInterval <= t.TRP+t.TRFC {
		return fmt.Errorf("%w: refresh interval of %d cycles cannot fit a refresh",
			ErrInvalidConfig, t.RefreshInterval)
	}

	if t.StartDelay < 1 {
		return fmt.Errorf("%w: start delay must last at least one cycle",
			ErrInvalidConfig)
	}

	return nil
}

func (c Config) validateGeometry() error {
	if c.AddrWidth < 1 || c.AddrWidth > 32 {
		return fmt.Errorf("%w: address width %d not in 1..32",
			ErrInvalidConfig, c.AddrWidth)
	}

	if c.ColWidth < 2 || c.ColWidth > signal.AddrBitAutoPrecharge {
		return fmt.Errorf("%w: column width %d not in 2..%d",
			ErrInvalidConfig, c.ColWidth, signal.AddrBitAutoPrecharge)
	}

	if c.BankWidth < 1 || c.BankWidth > 2 {
		return fmt.Errorf("%w: bank width %d not in 1..2",
			ErrInvalidConfig, c.BankWidth)
	}

	rowWidth := c.RowWidth()
	if rowWidth <= signal.AddrBitAllBanks || rowWidth > 16 {
		return fmt.Errorf(
			"%w: %d row bits left, need %d..16 so that A%d is a row pin",
			ErrInvalidConfig, rowWidth, signal.AddrBitAllBanks+1,
			signal.AddrBitAllBanks)
	}

	return nil
}

// Timing is the configuration expressed in cycles.
type Timing struct {
	TRCD int
	TRP  int
	TRFC int
	TMRD int

	CASLatency int

	// ReadLatency counts the cycles from the READ state to the first beat
	// on DQ: one for the command register plus the CAS latency.
	ReadLatency int

	// RefreshInterval is the reload value of the refresh countdown.
	RefreshInterval int

	StartDelay int
}

// Timing converts the configuration to cycle counts.
func (c Config) Timing() Timing {
	windowCycles := int(math.Round(c.RefreshWindowMs * 1e-3 * float64(c.Freq)))

	return Timing{
		TRCD:            c.Freq.CyclesCeil(c.TRCDns),
		TRP:             c.Freq.CyclesCeil(c.TRPns),
		TRFC:            c.Freq.CyclesCeil(c.TRFCns),
		TMRD:            tMRD,
		CASLatency:      c.CASLatency,
		ReadLatency:     c.CASLatency + 1,
		RefreshInterval: windowCycles/c.NumRows() - 1,
		StartDelay:      c.Freq.CyclesCeil(c.StartDelayUs * 1e3),
	}
}

// RefreshSlack is the longest a due refresh waits behind the access in
// progress: a conflict precharge, an activate, a read and its turnaround,
// then the precharge-all, counting one cycle per command state and one for
// the pin register.
func (t Timing) RefreshSlack() int {
	return 2*t.TRP + t.TRCD + t.ReadLatency + 8
}

// MaxRefreshGap bounds the cycles between two REFRESH commands on the
// device pins. The first periodic refresh also waits for the last power-up
// refresh and the mode register load.
func (t Timing) MaxRefreshGap() int {
	return t.TRFC + t.TMRD + t.RefreshInterval + 1 + t.RefreshSlack()
}

// Mode returns the mode register the controller loads: two-beat reads and
// single-location writes, so that each half of a bus word is written by its
// own WRITE command.
func (c Config) Mode() signal.ModeRegister {
	return signal.ModeRegister{
		BurstLength:         2,
		CASLatency:          c.CASLatency,
		SingleLocationWrite: true,
	}
}

func (c Config) mapper() addressmapping.Mapper {
	return addressmapping.Mapper{
		ColWidth:  c.ColWidth,
		BankWidth: c.BankWidth,
		RowWidth:  c.RowWidth(),
	}
}

func (c Config) sequencerConfig() cmdseq.Config {
	t := c.Timing()

	return cmdseq.Config{
		TRCD:            t.TRCD,
		TRP:             t.TRP,
		TRFC:            t.TRFC,
		TMRD:            t.TMRD,
		ReadLatency:     t.ReadLatency,
		RefreshInterval: t.RefreshInterval,
		StartDelay:      t.StartDelay,
		Mode:            c.Mode().Encode(),
	}
}
