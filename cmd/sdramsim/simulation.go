package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/sarchlab/sdramaxi/datarecording"
	"github.com/sarchlab/sdramaxi/mem/acceptancetests/axiagent"
	"github.com/sarchlab/sdramaxi/mem/sdram"
	"github.com/sarchlab/sdramaxi/mem/sdramchip"
	"github.com/sarchlab/sdramaxi/monitoring"
	"github.com/sarchlab/sdramaxi/sim"
	"github.com/sarchlab/sdramaxi/tracing"
)

var (
	errMismatch   = errors.New("read data differs from the shadow memory")
	errViolation  = errors.New("device timing rules violated")
	errProtocol   = errors.New("bus protocol violated")
	errUnfinished = errors.New("traffic did not finish")
)

type runOptions struct {
	seed        int64
	numAccess   int
	maxAddress  uint32
	freqMHz     float64
	casLatency  int
	traceDB     string
	logCommands bool
	monitor     bool
	monitorPort int
	openBrowser bool
}

func defaultRunOptions() runOptions {
	cfg := sdram.DefaultConfig()

	return runOptions{
		seed:       1,
		numAccess:  1000,
		maxAddress: 1 << 20,
		freqMHz:    float64(cfg.Freq / sim.MHz),
		casLatency: cfg.CASLatency,
	}
}

func (o runOptions) config() (sdram.Config, error) {
	cfg := sdram.DefaultConfig()
	cfg.Freq = sim.Freq(o.freqMHz) * sim.MHz
	cfg.CASLatency = o.casLatency

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	capacity := uint64(1) << cfg.AddrWidth
	if o.maxAddress == 0 || uint64(o.maxAddress) > capacity {
		return cfg, fmt.Errorf("max address 0x%x not in 1..0x%x",
			o.maxAddress, capacity)
	}

	if o.numAccess < 1 {
		return cfg, errors.New("number of accesses must be positive")
	}

	return cfg, nil
}

// simulation wires a traffic agent, the controller and the device model
// together on one engine.
type simulation struct {
	*sim.Simulation

	engine   sim.Engine
	comp     *sdram.Comp
	chip     *sdramchip.Chip
	agent    *axiagent.Agent
	latency  *tracing.LatencyTracer
	steps    *tracing.StepCountTracer
	busy     *tracing.BusyTimeTracer
	recorder datarecording.DataRecorder
	dbTracer *tracing.DBTracer
	monitor  *monitoring.Monitor
	progress *monitoring.ProgressBar
}

func newSimulation(o runOptions, logOut io.Writer) (*simulation, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}

	engine := sim.NewSerialEngine()
	s := &simulation{
		Simulation: sim.NewSimulation(engine),
		engine:     engine,
	}

	s.chip = chipFor(cfg)
	s.agent = axiagent.MakeBuilder().
		WithSeed(o.seed).
		WithNumWrites(o.numAccess).
		WithMaxAddress(o.maxAddress).
		WithBackpressure(true).
		Build()

	builder := sdram.MakeBuilder().
		WithEngine(s.engine).
		WithConfig(cfg).
		WithBusMaster(s.agent).
		WithDevice(s.chip)

	if o.logCommands {
		builder = builder.WithAdditionalHook(
			sdram.NewCommandLogger(log.New(logOut, "", 0)))
	}

	if o.traceDB != "" {
		s.recorder = datarecording.New(o.traceDB)
		builder = builder.WithAdditionalHook(
			sdram.NewCommandRecorder(s.recorder, s.engine))
	}

	s.comp = builder.Build("SDRAM")
	s.RegisterComponent(s.comp)

	s.latency = tracing.NewLatencyTracer(s.comp, tracing.AcceptAll)
	tracing.CollectTrace(s.comp, s.latency)

	s.steps = tracing.NewStepCountTracer(tracing.AcceptAll)
	tracing.CollectTrace(s.comp, s.steps)

	s.busy = tracing.NewBusyTimeTracer(s.engine, nil)
	tracing.CollectTrace(s.comp, s.busy)

	if s.recorder != nil {
		s.dbTracer = tracing.NewDBTracer(s.comp, s.recorder)
		tracing.CollectTrace(s.comp, s.dbTracer)
	}

	if o.monitor {
		s.startMonitor(o)
	}

	return s, nil
}

func chipFor(cfg sdram.Config) *sdramchip.Chip {
	t := cfg.Timing()

	return sdramchip.MakeBuilder().
		WithGeometry(cfg.ColWidth, cfg.BankWidth, cfg.RowWidth()).
		WithTiming(sdramchip.Timing{
			TRCD:          t.TRCD,
			TRP:           t.TRP,
			TRFC:          t.TRFC,
			TMRD:          t.TMRD,
			StartDelay:    t.StartDelay,
			MaxRefreshGap: t.MaxRefreshGap(),
		}).
		Build("Chip")
}

func (s *simulation) startMonitor(o runOptions) {
	s.monitor = monitoring.NewMonitor().WithPortNumber(o.monitorPort)
	s.monitor.RegisterEngine(s.Engine())

	for _, c := range s.Components() {
		s.monitor.RegisterComponent(c)
	}

	s.progress = s.monitor.CreateProgressBar("Bursts", uint64(s.agent.Total()))
	s.engine.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
		if ctx.Pos != sim.HookPosAfterEvent {
			return
		}

		done := uint64(s.agent.Completed())
		inflight := uint64(s.comp.Controller().InflightBuffer().Size())
		s.progress.Set(done, inflight)
	}))

	url := s.monitor.StartServer()

	if o.openBrowser {
		if err := monitoring.OpenInBrowser(url); err != nil {
			log.Printf("cannot open browser: %v", err)
		}
	}
}

func (s *simulation) run() error {
	s.comp.TickLater()

	err := s.engine.Run()
	s.engine.Finished()

	if s.progress != nil {
		s.monitor.CompleteProgressBar(s.progress)
	}

	return err
}

// close flushes and closes the recording database, if any.
func (s *simulation) close() error {
	if s.recorder == nil {
		return nil
	}

	s.dbTracer.Terminate()

	return s.recorder.Close()
}

// check returns the first kind of failure found, wrapping its details.
func (s *simulation) check() error {
	if m := s.agent.Mismatches(); len(m) > 0 {
		return fmt.Errorf("%w: %d words, first %v", errMismatch, len(m), m[0])
	}

	if v := s.chip.Violations(); len(v) > 0 {
		return fmt.Errorf("%w: %d times, first %v", errViolation, len(v), v[0])
	}

	if p := s.agent.ProtocolErrors(); len(p) > 0 {
		return fmt.Errorf("%w: %v", errProtocol, p[0])
	}

	if !s.agent.Done() {
		return fmt.Errorf("%w: %d of %d bursts completed",
			errUnfinished, s.agent.Completed(), s.agent.Total())
	}

	return nil
}

func (s *simulation) report(w io.Writer) {
	stats := s.comp.Stats()

	fmt.Fprintf(w, "Cycles:          %d\n", stats.Cycles)
	fmt.Fprintf(w, "Bursts:          %d read, %d write\n",
		stats.ReadBursts, stats.WriteBursts)
	fmt.Fprintf(w, "Beats:           %d read, %d write\n",
		stats.ReadBeats, stats.WriteBeats)
	fmt.Fprintf(w, "Row hits:        %d (%.1f%%)\n",
		stats.RowHits, 100*stats.RowHitRate())
	fmt.Fprintf(w, "Row misses:      %d\n", stats.RowMisses)
	fmt.Fprintf(w, "Row conflicts:   %d\n", stats.RowConflicts)
	fmt.Fprintf(w, "Activates:       %d\n", stats.Activates)
	fmt.Fprintf(w, "Precharges:      %d\n", stats.Precharges)
	fmt.Fprintf(w, "Refreshes:       %d\n", stats.Refreshes)
	fmt.Fprintf(w, "Average latency: %.1f cycles over %d bursts\n",
		s.latency.OverallMeanCycles(), s.latency.TotalCount())
	fmt.Fprintf(w, "Read latency:    %.1f cycles (worst %d)\n",
		s.latency.MeanCycles("read"), s.latency.MaxCycles("read"))
	fmt.Fprintf(w, "Write latency:   %.1f cycles (worst %d)\n",
		s.latency.MeanCycles("write"), s.latency.MaxCycles("write"))
	fmt.Fprintf(w, "Commands/burst:  %.2f read, %.2f write\n",
		s.steps.StepsPerTask("read"), s.steps.StepsPerTask("write"))

	if now := s.engine.CurrentTime(); now > 0 {
		fmt.Fprintf(w, "Busy:            %.1f%% of %.1f us\n",
			100*float64(s.busy.BusyTime()/now), float64(now)*1e6)
	}
}
