package tracing

import (
	"sync"

	"github.com/tebeka/atexit"

	"github.com/condlab/runcond/gate"
	"github.com/condlab/runcond/recording"
)

// An EvalEntry is one evaluation stored in the trace_evals table.
type EvalEntry struct {
	ID        string
	Unit      string
	Condition string
	Kind      string
	TickSeq   uint64
	Now       float64
	Delta     float64
	Verdict   string
	Memoized  bool
	Err       string
}

// A DecisionEntry is one unit decision stored in the trace_decisions table.
type DecisionEntry struct {
	ID            string
	Unit          string
	TickSeq       uint64
	Now           float64
	Allowed       bool
	NumConditions int
	Err           string
}

type sessionEntry struct {
	StartSeq     uint64
	StartNow     float64
	EndSeq       uint64
	EndNow       float64
	NumEvals     uint64
	NumDecisions uint64
}

// DBTracer is a tracer that stores evaluation records into a database.
// DBTracers can connect with different backends so that the records can be
// stored in different types of databases (e.g., SQLite files kept for
// offline analysis).
type DBTracer struct {
	mu         sync.Mutex
	tickTeller gate.TickTeller
	backend    recording.DataRecorder

	startSeq, endSeq uint64

	firstTick    gate.Tick
	numEvals     uint64
	numDecisions uint64
	terminated   bool
}

// NewDBTracer creates a new DBTracer.
func NewDBTracer(
	tickTeller gate.TickTeller,
	dataRecorder recording.DataRecorder,
) *DBTracer {
	dataRecorder.CreateTable("trace_evals", EvalEntry{})
	dataRecorder.CreateTable("trace_decisions", DecisionEntry{})
	dataRecorder.CreateTable("trace_sessions", sessionEntry{})

	t := &DBTracer{
		tickTeller: tickTeller,
		backend:    dataRecorder,
		firstTick:  tickTeller.CurrentTick(),
	}

	atexit.Register(func() {
		t.Terminate()
	})

	return t
}

// SetTickRange limits recording to ticks with startSeq <= Seq <= endSeq.
// An endSeq of 0 leaves the range open.
func (t *DBTracer) SetTickRange(startSeq, endSeq uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startSeq = startSeq
	t.endSeq = endSeq
}

func (t *DBTracer) outOfRange(seq uint64) bool {
	if seq < t.startSeq {
		return true
	}

	if t.endSeq > 0 && seq > t.endSeq {
		return true
	}

	return false
}

// RecordEval stores one evaluation in the trace_evals table.
func (t *DBTracer) RecordEval(rec gate.EvalRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.outOfRange(rec.Tick.Seq) {
		return
	}

	entry := EvalEntry{
		ID:        rec.ID,
		Unit:      rec.Unit,
		Condition: rec.Condition.Name(),
		Kind:      gate.KindOf(rec.Condition),
		TickSeq:   rec.Tick.Seq,
		Now:       float64(rec.Tick.Now),
		Delta:     float64(rec.Tick.Delta),
		Verdict:   rec.Verdict.String(),
		Memoized:  rec.Memoized,
		Err:       errString(rec.Err),
	}
	t.backend.InsertData("trace_evals", entry)

	t.numEvals++
}

// UnitDecided stores one unit decision in the trace_decisions table.
func (t *DBTracer) UnitDecided(decision gate.UnitDecision) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.outOfRange(decision.Tick.Seq) {
		return
	}

	entry := DecisionEntry{
		ID:            decision.ID,
		Unit:          decision.Unit,
		TickSeq:       decision.Tick.Seq,
		Now:           float64(decision.Tick.Now),
		Allowed:       decision.Allowed,
		NumConditions: decision.NumConditions,
		Err:           errString(decision.Err),
	}
	t.backend.InsertData("trace_decisions", entry)

	t.numDecisions++
}

// Terminate writes the session summary and flushes the backend. Later
// calls do nothing, so an explicit Terminate and the atexit handler
// can coexist.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.terminated {
		return
	}
	t.terminated = true

	now := t.tickTeller.CurrentTick()
	t.backend.InsertData("trace_sessions", sessionEntry{
		StartSeq:     t.firstTick.Seq,
		StartNow:     float64(t.firstTick.Now),
		EndSeq:       now.Seq,
		EndNow:       float64(now.Now),
		NumEvals:     t.numEvals,
		NumDecisions: t.numDecisions,
	})

	t.backend.Flush()
}

func errString(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}
