package sdram

import (
	"log"

	"github.com/sarchlab/sdramaxi/datarecording"
	"github.com/sarchlab/sdramaxi/mem/sdram/signal"
	"github.com/sarchlab/sdramaxi/sim"
)

// CommandTableName is the table that a CommandRecorder writes to.
const CommandTableName = "device_commands"

// CommandEntry is one row of the command table.
type CommandEntry struct {
	Cycle   uint64
	Time    float64
	Command string
	Bank    uint8
	Addr    uint16
	DQ      uint16
	DQM     uint8
}

// CommandRecorder is a hook that stores every issued device command.
type CommandRecorder struct {
	recorder   datarecording.DataRecorder
	timeTeller sim.TimeTeller
}

// NewCommandRecorder creates the command table and returns a hook that fills
// it.
func NewCommandRecorder(
	recorder datarecording.DataRecorder,
	timeTeller sim.TimeTeller,
) *CommandRecorder {
	recorder.CreateTable(CommandTableName, CommandEntry{})

	return &CommandRecorder{
		recorder:   recorder,
		timeTeller: timeTeller,
	}
}

// Func records the command if ctx marks an issued command.
func (r *CommandRecorder) Func(ctx sim.HookCtx) {
	pins, cycle, ok := issuedCommand(ctx)
	if !ok {
		return
	}

	r.recorder.InsertData(CommandTableName, CommandEntry{
		Cycle:   cycle,
		Time:    float64(r.timeTeller.CurrentTime()),
		Command: pins.Cmd.String(),
		Bank:    pins.Bank,
		Addr:    pins.Addr,
		DQ:      pins.DQ,
		DQM:     pins.DQM,
	})
}

// CommandLogger prints every issued device command.
type CommandLogger struct {
	sim.LogHookBase
}

// NewCommandLogger creates a CommandLogger that writes to logger.
func NewCommandLogger(logger *log.Logger) *CommandLogger {
	return &CommandLogger{LogHookBase: sim.NewLogHookBase(logger)}
}

// Func prints the command if ctx marks an issued command.
func (l *CommandLogger) Func(ctx sim.HookCtx) {
	pins, cycle, ok := issuedCommand(ctx)
	if !ok {
		return
	}

	name := "sdram"
	if n, isNamed := ctx.Domain.(sim.Named); isNamed {
		name = n.Name()
	}

	l.Printf("%s, cycle %d, %s", name, cycle, pins)
}

func issuedCommand(ctx sim.HookCtx) (signal.Pins, uint64, bool) {
	if ctx.Pos != HookPosCommandIssued {
		return signal.Pins{}, 0, false
	}

	pins, ok := ctx.Item.(signal.Pins)
	if !ok {
		return signal.Pins{}, 0, false
	}

	cycle, _ := ctx.Detail.(uint64)

	return pins, cycle, true
}
