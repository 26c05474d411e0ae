package sdram

import (
	"log"

	"github.com/sarchlab/sdramaxi/sim"
)

// Builder can build SDRAM controller components.
type Builder struct {
	engine        sim.Engine
	cfg           Config
	checkProtocol bool
	bus           BusMaster
	device        Device
	hooks         []sim.Hook
}

// MakeBuilder creates a builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		cfg:           DefaultConfig(),
		checkProtocol: true,
	}
}

// WithEngine sets the engine that the component uses.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency of the controller and the device.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.cfg.Freq = freq
	return b
}

// WithConfig replaces the whole configuration.
func (b Builder) WithConfig(cfg Config) Builder {
	b.cfg = cfg
	return b
}

// WithCASLatency sets the CAS latency, in cycles.
func (b Builder) WithCASLatency(cl int) Builder {
	b.cfg.CASLatency = cl
	return b
}

// WithInflightDepth sets the number of accesses that can await a response.
func (b Builder) WithInflightDepth(n int) Builder {
	b.cfg.InflightDepth = n
	return b
}

// WithProtocolCheck sets if the controller panics on bus requests that
// break the burst rules.
func (b Builder) WithProtocolCheck(check bool) Builder {
	b.checkProtocol = check
	return b
}

// WithBusMaster sets the master that drives the bus.
func (b Builder) WithBusMaster(bus BusMaster) Builder {
	b.bus = bus
	return b
}

// WithDevice sets the SDRAM device behind the controller.
func (b Builder) WithDevice(device Device) Builder {
	b.device = device
	return b
}

// WithAdditionalHook adds a hook to the component.
func (b Builder) WithAdditionalHook(hook sim.Hook) Builder {
	b.hooks = append(b.hooks, hook)
	return b
}

// Build creates a new component.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		log.Panic("sdram: engine is required")
	}

	if b.bus == nil || b.device == nil {
		log.Panic("sdram: bus master and device are required")
	}

	ctrl, err := NewController(name, b.cfg)
	if err != nil {
		log.Panic(err)
	}

	ctrl.SetProtocolCheck(b.checkProtocol)

	c := &Comp{
		ctrl:   ctrl,
		bus:    b.bus,
		device: b.device,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.cfg.Freq, c)
	c.AddMiddleware(&middleware{Comp: c})

	for _, hook := range b.hooks {
		c.AcceptHook(hook)
	}

	return c
}
