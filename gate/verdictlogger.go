package gate

import (
	"log"
)

// A LogHook is a hook that is responsible for recording information from
// the evaluation flow.
type LogHook interface {
	Hook
}

// LogHookBase provides the common logic for all LogHooks.
type LogHookBase struct {
	*log.Logger
}

// VerdictLogger is a hook that prints each evaluation outcome.
type VerdictLogger struct {
	LogHookBase
}

// NewVerdictLogger returns a VerdictLogger which will write into the logger.
func NewVerdictLogger(logger *log.Logger) *VerdictLogger {
	h := new(VerdictLogger)
	h.Logger = logger
	return h
}

// Func writes the evaluation outcome into the logger.
func (h *VerdictLogger) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosEvalEnd:
		rec, ok := ctx.Item.(EvalRecord)
		if !ok {
			return
		}

		suffix := ""
		if rec.Memoized {
			suffix = ", memo"
		}

		if rec.Err != nil {
			h.Logger.Printf("%.10f, tick %d, %s, %s -> error: %v",
				rec.Tick.Now, rec.Tick.Seq,
				rec.Unit, rec.Condition.Name(), rec.Err)
			return
		}

		h.Logger.Printf("%.10f, tick %d, %s, %s -> %s%s",
			rec.Tick.Now, rec.Tick.Seq,
			rec.Unit, rec.Condition.Name(), rec.Verdict, suffix)
	case HookPosUnitDecided:
		decision, ok := ctx.Item.(UnitDecision)
		if !ok {
			return
		}

		h.Logger.Printf("%.10f, tick %d, %s -> run=%t",
			decision.Tick.Now, decision.Tick.Seq,
			decision.Unit, decision.Allowed)
	}
}
