package sim

import "sync"

// A Named object has a hierarchical name, such as "SDRAM.InflightFIFO".
type Named interface {
	Name() string
}

// A Component is a unit of the simulated hardware. Components here exchange
// pin and channel values cycle by cycle, so a component is only a named,
// hookable event handler.
type Component interface {
	Named
	Handler
	Hookable
}

// ComponentBase gives a component its name and its hooks.
type ComponentBase struct {
	HookableBase
	sync.Mutex

	name string
}

// NewComponentBase creates a ComponentBase. It panics if name is not a valid
// component name.
func NewComponentBase(name string) *ComponentBase {
	NameMustBeValid(name)

	return &ComponentBase{name: name}
}

// Name returns the component name.
func (c *ComponentBase) Name() string {
	return c.name
}

// Middleware is one stage of a component's cycle.
type Middleware interface {
	// Tick runs the stage for one cycle and tells if anything changed.
	Tick() bool
}

// MiddlewareHolder runs a component's stages in the order they were added.
// Later stages see what earlier ones did in the same cycle.
type MiddlewareHolder struct {
	middlewares []Middleware
}

// AddMiddleware appends a stage.
func (h *MiddlewareHolder) AddMiddleware(m Middleware) {
	h.middlewares = append(h.middlewares, m)
}

// Middlewares returns the stages in running order.
func (h *MiddlewareHolder) Middlewares() []Middleware {
	return h.middlewares
}

// Tick runs every stage once. All stages run even after one reports
// progress.
func (h *MiddlewareHolder) Tick() bool {
	progress := false

	for _, m := range h.middlewares {
		progress = m.Tick() || progress
	}

	return progress
}
