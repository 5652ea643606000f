package tracing

import (
	"sync"

	"github.com/condlab/runcond/gate"
)

// EvalCountTracer counts how often each condition is evaluated and how
// often the verdict was replayed from the per-tick memo.
type EvalCountTracer struct {
	filter RecordFilter
	lock   sync.Mutex

	condNames []string
	evalCount map[string]uint64
	memoCount map[string]uint64
}

// NewEvalCountTracer creates a new EvalCountTracer. A nil filter keeps
// every record.
func NewEvalCountTracer(filter RecordFilter) *EvalCountTracer {
	t := &EvalCountTracer{
		filter:    filter,
		evalCount: make(map[string]uint64),
		memoCount: make(map[string]uint64),
	}

	return t
}

// GetConditionNames returns all the condition names collected, in
// first-seen order.
func (t *EvalCountTracer) GetConditionNames() []string {
	return t.condNames
}

// GetEvalCount returns the number of evaluations recorded for a condition,
// memoized replays included.
func (t *EvalCountTracer) GetEvalCount(name string) uint64 {
	return t.evalCount[name]
}

// GetMemoCount returns the number of memoized replays recorded for a
// condition.
func (t *EvalCountTracer) GetMemoCount(name string) uint64 {
	return t.memoCount[name]
}

// RecordEval counts the evaluation.
func (t *EvalCountTracer) RecordEval(rec gate.EvalRecord) {
	if t.filter != nil && !t.filter(rec) {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	name := rec.Condition.Name()

	_, ok := t.evalCount[name]
	if !ok {
		t.condNames = append(t.condNames, name)
	}

	t.evalCount[name]++
	if rec.Memoized {
		t.memoCount[name]++
	}
}

// UnitDecided does nothing.
func (t *EvalCountTracer) UnitDecided(_ gate.UnitDecision) {
	// Do nothing.
}
