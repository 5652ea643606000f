// Package tracing observes condition evaluations through evaluator hooks
// and forwards them to tracers: database and CSV backends for offline
// analysis, and counters for live permit rates.
package tracing

import "github.com/condlab/runcond/gate"

// NamedHookable represents something that has a name and can be hooked.
type NamedHookable interface {
	gate.Named
	gate.Hookable
	InvokeHook(gate.HookCtx)
}

// A Tracer can collect evaluation records.
type Tracer interface {
	RecordEval(rec gate.EvalRecord)
	UnitDecided(decision gate.UnitDecision)
}

// RecordFilter is a function that can filter interesting evaluation
// records. If this function returns true, the record is considered useful.
type RecordFilter func(rec gate.EvalRecord) bool

// FilterByUnit returns a RecordFilter that keeps records of one unit.
func FilterByUnit(unit string) RecordFilter {
	return func(rec gate.EvalRecord) bool {
		return rec.Unit == unit
	}
}

// FilterByKind returns a RecordFilter that keeps records of conditions of
// one kind, as reported by gate.KindOf.
func FilterByKind(kind string) RecordFilter {
	return func(rec gate.EvalRecord) bool {
		return gate.KindOf(rec.Condition) == kind
	}
}
