package tracing

import (
	"fmt"
	"reflect"

	"github.com/condlab/runcond/gate"
)

// CollectTrace lets the tracer collect evaluation records from a domain.
func CollectTrace(domain NamedHookable, tracer Tracer) {
	hooks := domain.Hooks()
	for _, hook := range hooks {
		hook, ok := hook.(*traceHook)
		if ok && hook.t == tracer {
			panic(fmt.Sprintf(
				"domain %s already has tracer %s",
				domain.Name(), reflect.TypeOf(tracer)))
		}
	}

	h := traceHook{t: tracer}
	domain.AcceptHook(&h)
}

// A traceHook is a hook that forwards evaluation records to a tracer.
type traceHook struct {
	t Tracer
}

// Func calls the tracer interfaces when the hook is triggered.
func (h *traceHook) Func(ctx gate.HookCtx) {
	switch ctx.Pos {
	case gate.HookPosEvalEnd:
		h.t.RecordEval(ctx.Item.(gate.EvalRecord))
	case gate.HookPosUnitDecided:
		h.t.UnitDecided(ctx.Item.(gate.UnitDecision))
	}
}
