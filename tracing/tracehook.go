package tracing

import (
	"log"

	"github.com/sarchlab/sdramaxi/sim"
)

// HookLister is a hookable that can list the hooks registered to it.
type HookLister interface {
	NamedHookable
	Hooks() []sim.Hook
}

// CollectTrace forwards the tasks reported by domain to tracer. Attaching the
// same tracer to a domain twice panics when the domain can list its hooks.
func CollectTrace(domain NamedHookable, tracer Tracer) {
	if lister, ok := domain.(HookLister); ok {
		for _, h := range lister.Hooks() {
			if th, ok := h.(*traceHook); ok && th.tracer == tracer {
				log.Panicf("%s already reports to tracer %T", domain.Name(), tracer)
			}
		}
	}

	domain.AcceptHook(&traceHook{tracer: tracer})
}

type traceHook struct {
	tracer Tracer
}

func (h *traceHook) Func(ctx sim.HookCtx) {
	task, ok := ctx.Item.(Task)
	if !ok {
		return
	}

	switch ctx.Pos {
	case HookPosTaskStart:
		h.tracer.StartTask(task)
	case HookPosTaskStep:
		h.tracer.StepTask(task)
	case HookPosTaskEnd:
		h.tracer.EndTask(task)
	}
}
