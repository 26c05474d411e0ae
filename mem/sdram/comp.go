package sdram

import (
	"github.com/sarchlab/sdramaxi/mem/axi"
	"github.com/sarchlab/sdramaxi/mem/sdram/signal"
	"github.com/sarchlab/sdramaxi/sim"
	"github.com/sarchlab/sdramaxi/tracing"
)

// HookPosCommandIssued marks the cycle in which a command reaches the
// device pins. The hook item is the signal.Pins value and the detail is the
// cycle number.
var HookPosCommandIssued = &sim.HookPos{Name: "SDRAMCommandIssued"}

// Comp connects a controller to a bus master and a device and clocks the
// three together.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	ctrl   *Controller
	bus    BusMaster
	device Device

	stats Stats

	readTasks  []string
	writeTasks []string
}

// Tick runs one clock cycle.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}

// Controller returns the controller that the component clocks.
func (c *Comp) Controller() *Controller {
	return c.ctrl
}

// Stats returns the counters collected so far.
func (c *Comp) Stats() Stats {
	return c.stats
}

// Buffers lists the queues of the controller.
func (c *Comp) Buffers() []sim.BufferState {
	return []sim.BufferState{
		c.ctrl.InflightBuffer(),
		c.ctrl.ResponseBuffer(),
	}
}

type middleware struct {
	*Comp
}

func (m *middleware) Tick() bool {
	cycle := m.ctrl.Cycle()

	pins := m.ctrl.Pins()
	m.issue(cycle, pins)

	dq := m.device.Clock(pins)
	in := m.bus.Drive(cycle)
	out := m.ctrl.Step(in, dq)
	m.bus.Observe(cycle, in, out)

	m.stats.Cycles++
	m.stats.countOutcome(m.ctrl.LastDecision().Outcome)
	m.trace(in, out)

	return !m.bus.Done() || m.ctrl.Busy()
}

func (m *middleware) issue(cycle uint64, pins signal.Pins) {
	if pins.Cmd == signal.CmdNOP {
		return
	}

	m.stats.countCommand(pins.Cmd)

	if m.NumHooks() == 0 {
		return
	}

	m.stepNewest(pins.Cmd)

	m.InvokeHook(sim.HookCtx{
		Domain: m.Comp,
		Pos:    HookPosCommandIssued,
		Item:   pins,
		Detail: cycle,
	})
}

func (m *middleware) trace(in axi.MasterSignals, out axi.SlaveSignals) {
	fire := axi.Fire(in, out)

	if fire.AW {
		m.stats.WriteBursts++
		id := sim.GetIDGenerator().Generate()
		m.writeTasks = append(m.writeTasks, id)
		tracing.StartTask(id, "", m.Comp, "req_in", "write", in.AW)
	}

	if fire.AR {
		m.stats.ReadBursts++
		id := sim.GetIDGenerator().Generate()
		m.readTasks = append(m.readTasks, id)
		tracing.StartTask(id, "", m.Comp, "req_in", "read", in.AR)
	}

	if fire.W {
		m.stats.WriteBeats++
	}

	if fire.B {
		m.writeTasks = m.endOldest(m.writeTasks)
	}

	if fire.R {
		m.stats.ReadBeats++

		if out.R.Last {
			m.readTasks = m.endOldest(m.readTasks)
		}
	}
}

// stepNewest attaches a READ or WRITE command to the burst being served,
// which is always the latest one accepted in its direction.
func (m *middleware) stepNewest(cmd signal.Command) {
	var tasks []string

	switch cmd {
	case signal.CmdRead:
		tasks = m.readTasks
	case signal.CmdWrite:
		tasks = m.writeTasks
	default:
		return
	}

	if len(tasks) == 0 {
		return
	}

	tracing.AddTaskStep(tasks[len(tasks)-1], m.Comp, cmd.String())
}

func (m *middleware) endOldest(tasks []string) []string {
	if len(tasks) == 0 {
		return tasks
	}

	tracing.EndTask(tasks[0], m.Comp)

	return tasks[1:]
}
