// Package sdramchip models an SDR SDRAM device at the pin level. It stores
// data, returns read bursts after the CAS latency, and reports every command
// that breaks the device timing or state rules.
package sdramchip

import (
	"fmt"

	"github.com/sarchlab/sdramaxi/mem/mem"
	"github.com/sarchlab/sdramaxi/mem/sdram/signal"
	"github.com/sarchlab/sdramaxi/sim"
)

// HookPosViolation marks a rule violation. The hook item is the Violation.
var HookPosViolation = &sim.HookPos{Name: "SDRAMViolation"}

const never = ^uint64(0)

type bankState struct {
	open        bool
	row         int
	activatedAt uint64
	prechargeAt uint64
}

type beat struct {
	at    uint64
	value uint16
}

type burstWrite struct {
	bank, row, col int
	left           int
	next           int
}

// Chip is a single SDR SDRAM device with a x16 data bus.
type Chip struct {
	sim.HookableBase

	name    string
	timing  Timing
	storage *mem.Storage

	colWidth, bankWidth, rowWidth int

	cycle        uint64
	ckeSince     uint64
	commandsSeen bool

	mode           signal.ModeRegister
	modeLoaded     bool
	modeAt         uint64
	initPrecharged bool
	initRefreshes  int

	banks         []bankState
	refreshAt     uint64
	refreshLate   bool
	pendingReads  []beat
	pendingWrite  burstWrite
	numCommands   uint64
	violations    []Violation
	maxViolations int
}

// Name returns the name of the chip.
func (c *Chip) Name() string {
	return c.name
}

// Storage returns the cells of the chip.
func (c *Chip) Storage() *mem.Storage {
	return c.storage
}

// Mode returns the mode register content and whether it has been loaded.
func (c *Chip) Mode() (signal.ModeRegister, bool) {
	return c.mode, c.modeLoaded
}

// Cycle returns the number of clock edges seen.
func (c *Chip) Cycle() uint64 {
	return c.cycle
}

// NumCommands returns the number of commands other than NOP received.
func (c *Chip) NumCommands() uint64 {
	return c.numCommands
}

// Initialized tells if the power-up sequence has completed.
func (c *Chip) Initialized() bool {
	return c.modeLoaded && c.initRefreshes >= 2
}

// RowOpen returns the open row of a bank.
func (c *Chip) RowOpen(bank int) (int, bool) {
	b := c.banks[bank]
	return b.row, b.open
}

// Violations returns the rule violations recorded so far.
func (c *Chip) Violations() []Violation {
	return c.violations
}

// Clock presents the pins for one cycle and returns the value the chip
// drives on DQ in that cycle. The value is zero when the chip does not
// drive the bus.
func (c *Chip) Clock(pins signal.Pins) uint16 {
	now := c.cycle
	c.cycle++

	dq, driving := c.readBeat(now)
	if driving && pins.DQOutputEnable {
		c.violate(now, pins, RuleDataBus,
			"controller drives DQ while a read beat is due")
	}

	c.trackCKE(now, pins)
	c.continueBurstWrite(now, pins)
	c.checkRefreshGap(now, pins)

	if pins.Cmd == signal.CmdNOP {
		return dq
	}

	c.numCommands++

	if !pins.CKE {
		c.violate(now, pins, RuleCKE, "command while the clock is disabled")
		return dq
	}

	if !c.commandsSeen {
		c.commandsSeen = true

		if now-c.ckeSince < uint64(c.timing.StartDelay) {
			c.violate(now, pins, RuleStartDelay, fmt.Sprintf(
				"first command %d cycles after clock enable, need %d",
				now-c.ckeSince, c.timing.StartDelay))
		}
	}

	c.command(now, pins)

	return dq
}

func (c *Chip) readBeat(now uint64) (uint16, bool) {
	for len(c.pendingReads) > 0 && c.pendingReads[0].at < now {
		c.pendingReads = c.pendingReads[1:]
	}

	if len(c.pendingReads) > 0 && c.pendingReads[0].at == now {
		b := c.pendingReads[0]
		c.pendingReads = c.pendingReads[1:]

		return b.value, true
	}

	return 0, false
}

func (c *Chip) trackCKE(now uint64, pins signal.Pins) {
	if !pins.CKE {
		c.ckeSince = never
		return
	}

	if c.ckeSince == never {
		c.ckeSince = now
	}
}

func (c *Chip) command(now uint64, pins signal.Pins) {
	if c.modeLoaded && now-c.modeAt < uint64(c.timing.TMRD) {
		c.violate(now, pins, RuleTMRD, fmt.Sprintf(
			"%d cycles after LOAD_MODE, need %d", now-c.modeAt, c.timing.TMRD))
	}

	if c.refreshAt != never && now-c.refreshAt < uint64(c.timing.TRFC) {
		c.violate(now, pins, RuleTRFC, fmt.Sprintf(
			"%d cycles after REFRESH, need %d", now-c.refreshAt, c.timing.TRFC))
	}

	switch pins.Cmd {
	case signal.CmdActive:
		c.activate(now, pins)
	case signal.CmdRead:
		c.read(now, pins)
	case signal.CmdWrite:
		c.write(now, pins)
	case signal.CmdPrecharge:
		c.precharge(now, pins)
	case signal.CmdRefresh:
		c.refresh(now, pins)
	case signal.CmdLoadMode:
		c.loadMode(now, pins)
	}
}

func (c *Chip) mustBeInitialized(now uint64, pins signal.Pins) bool {
	if c.Initialized() {
		return true
	}

	c.violate(now, pins, RuleInit, "device is not initialized")

	return false
}

func (c *Chip) activate(now uint64, pins signal.Pins) {
	if !c.mustBeInitialized(now, pins) {
		return
	}

	b := &c.banks[pins.Bank]

	if b.open {
		c.violate(now, pins, RuleRowState, fmt.Sprintf(
			"row %d is still open", b.row))
		return
	}

	if b.prechargeAt != never && now-b.prechargeAt < uint64(c.timing.TRP) {
		c.violate(now, pins, RuleTRP, fmt.Sprintf(
			"%d cycles after PRECHARGE, need %d",
			now-b.prechargeAt, c.timing.TRP))
	}

	b.open = true
	b.row = int(pins.Addr) & (1<<c.rowWidth - 1)
	b.activatedAt = now
}

func (c *Chip) openBank(now uint64, pins signal.Pins) (*bankState, bool) {
	if !c.mustBeInitialized(now, pins) {
		return nil, false
	}

	b := &c.banks[pins.Bank]

	if !b.open {
		c.violate(now, pins, RuleRowState, "no open row")
		return nil, false
	}

	if now-b.activatedAt < uint64(c.timing.TRCD) {
		c.violate(now, pins, RuleTRCD, fmt.Sprintf(
			"%d cycles after ACTIVATE, need %d", now-b.activatedAt, c.timing.TRCD))
	}

	return b, true
}

func (c *Chip) column(pins signal.Pins) int {
	return int(pins.Addr) & (1<<c.colWidth - 1)
}

// burstColumn returns the i-th column of a sequential burst that starts at
// col.
func (c *Chip) burstColumn(col, i int) int {
	bl := c.mode.BurstLength
	base := col &^ (bl - 1)

	return base | ((col + i) & (bl - 1))
}

func (c *Chip) read(now uint64, pins signal.Pins) {
	b, ok := c.openBank(now, pins)
	if !ok {
		return
	}

	col := c.column(pins)

	for i := 0; i < c.mode.BurstLength; i++ {
		v := c.load(int(pins.Bank), b.row, c.burstColumn(col, i))
		c.pendingReads = append(c.pendingReads, beat{
			at:    now + uint64(c.mode.CASLatency+i),
			value: v,
		})
	}

	c.autoPrecharge(now, pins)
}

func (c *Chip) write(now uint64, pins signal.Pins) {
	b, ok := c.openBank(now, pins)
	if !ok {
		return
	}

	if !pins.DQOutputEnable {
		c.violate(now, pins, RuleDataBus, "WRITE without data on DQ")
	}

	col := c.column(pins)
	c.store(int(pins.Bank), b.row, col, pins.DQ, pins.DQM)

	c.pendingWrite = burstWrite{}
	if !c.mode.SingleLocationWrite && c.mode.BurstLength > 1 {
		c.pendingWrite = burstWrite{
			bank: int(pins.Bank),
			row:  b.row,
			col:  col,
			left: c.mode.BurstLength - 1,
			next: 1,
		}
	}

	c.autoPrecharge(now, pins)
}

func (c *Chip) continueBurstWrite(now uint64, pins signal.Pins) {
	w := &c.pendingWrite
	if w.left == 0 {
		return
	}

	if pins.Cmd != signal.CmdNOP {
		w.left = 0
		return
	}

	if !pins.DQOutputEnable {
		c.violate(now, pins, RuleDataBus, "burst write beat without data")
	}

	c.store(w.bank, w.row, c.burstColumn(w.col, w.next), pins.DQ, pins.DQM)
	w.next++
	w.left--
}

func (c *Chip) autoPrecharge(now uint64, pins signal.Pins) {
	if !pins.AutoPrecharge() {
		return
	}

	b := &c.banks[pins.Bank]
	b.open = false
	b.prechargeAt = now
}

func (c *Chip) precharge(now uint64, pins signal.Pins) {
	if pins.AllBanks() {
		for i := range c.banks {
			c.banks[i].open = false
			c.banks[i].prechargeAt = now
		}

		c.initPrecharged = true

		return
	}

	b := &c.banks[pins.Bank]
	b.open = false
	b.prechargeAt = now
}

func (c *Chip) refresh(now uint64, pins signal.Pins) {
	for i, b := range c.banks {
		if b.open {
			c.violate(now, pins, RuleRowState, fmt.Sprintf(
				"bank %d has row %d open", i, b.row))
		}

		if b.prechargeAt != never && now-b.prechargeAt < uint64(c.timing.TRP) {
			c.violate(now, pins, RuleTRP, fmt.Sprintf(
				"bank %d precharged %d cycles ago, need %d",
				i, now-b.prechargeAt, c.timing.TRP))
		}
	}

	if !c.initPrecharged {
		c.violate(now, pins, RuleInit, "REFRESH before the first PRECHARGE")
	}

	if !c.modeLoaded {
		c.initRefreshes++
	}

	c.refreshAt = now
	c.refreshLate = false
}

func (c *Chip) checkRefreshGap(now uint64, pins signal.Pins) {
	if c.timing.MaxRefreshGap == 0 || !c.Initialized() || c.refreshLate {
		return
	}

	if now-c.refreshAt > uint64(c.timing.MaxRefreshGap) {
		c.refreshLate = true
		c.violate(now, pins, RuleRefreshInterval, fmt.Sprintf(
			"no REFRESH for %d cycles", now-c.refreshAt))
	}
}

func (c *Chip) loadMode(now uint64, pins signal.Pins) {
	for i, b := range c.banks {
		if b.open {
			c.violate(now, pins, RuleRowState, fmt.Sprintf(
				"bank %d has row %d open", i, b.row))
		}
	}

	if c.initRefreshes < 2 {
		c.violate(now, pins, RuleInit, fmt.Sprintf(
			"LOAD_MODE after %d refreshes, need 2", c.initRefreshes))
	}

	mode, err := signal.DecodeMode(pins.Addr)
	if err != nil {
		c.violate(now, pins, RuleMode, err.Error())
		return
	}

	c.mode = mode
	c.modeLoaded = true
	c.modeAt = now
}

func (c *Chip) cellAddress(bank, row, col int) uint64 {
	index := (uint64(row)<<c.bankWidth|uint64(bank))<<c.colWidth | uint64(col)
	return index * 2
}

func (c *Chip) load(bank, row, col int) uint16 {
	data, err := c.storage.Read(c.cellAddress(bank, row, col), 2)
	if err != nil {
		panic(err)
	}

	return uint16(data[0]) | uint16(data[1])<<8
}

// store writes the byte lanes that dqm does not mask.
func (c *Chip) store(bank, row, col int, value uint16, dqm uint8) {
	addr := c.cellAddress(bank, row, col)

	if dqm&0b01 == 0 {
		c.mustWrite(addr, byte(value))
	}

	if dqm&0b10 == 0 {
		c.mustWrite(addr+1, byte(value>>8))
	}
}

func (c *Chip) mustWrite(addr uint64, b byte) {
	if err := c.storage.Write(addr, []byte{b}); err != nil {
		panic(err)
	}
}

func (c *Chip) violate(now uint64, pins signal.Pins, rule Rule, detail string) {
	v := Violation{
		Cycle:   now,
		Command: pins.Cmd,
		Bank:    int(pins.Bank),
		Rule:    rule,
		Detail:  detail,
	}

	if c.maxViolations == 0 || len(c.violations) < c.maxViolations {
		c.violations = append(c.violations, v)
	}

	if c.NumHooks() > 0 {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosViolation,
			Item:   v,
		})
	}
}
