package tracing

import (
	"sort"
	"sync"

	"github.com/condlab/runcond/gate"
)

// A PermitRate is a snapshot of one condition's outcome counters.
type PermitRate struct {
	Condition string  `json:"condition"`
	Kind      string  `json:"kind"`
	Permits   uint64  `json:"permits"`
	Blocks    uint64  `json:"blocks"`
	Errors    uint64  `json:"errors"`
	Rate      float64 `json:"rate"`
}

// PermitRateTracer counts permits, blocks and errors per condition.
// Memoized replays are not counted, so a condition shared by many units
// counts once per tick.
type PermitRateTracer struct {
	filter RecordFilter
	lock   sync.Mutex

	permits map[string]uint64
	blocks  map[string]uint64
	errors  map[string]uint64
	kinds   map[string]string

	decisions        uint64
	allowedDecisions uint64
}

// NewPermitRateTracer creates a new PermitRateTracer. A nil filter keeps
// every record.
func NewPermitRateTracer(filter RecordFilter) *PermitRateTracer {
	t := &PermitRateTracer{
		filter:  filter,
		permits: make(map[string]uint64),
		blocks:  make(map[string]uint64),
		errors:  make(map[string]uint64),
		kinds:   make(map[string]string),
	}

	return t
}

// RecordEval counts the record's outcome.
func (t *PermitRateTracer) RecordEval(rec gate.EvalRecord) {
	if rec.Memoized {
		return
	}

	if t.filter != nil && !t.filter(rec) {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	name := rec.Condition.Name()
	t.kinds[name] = gate.KindOf(rec.Condition)

	switch {
	case rec.Err != nil:
		t.errors[name]++
	case rec.Verdict.Allows():
		t.permits[name]++
	default:
		t.blocks[name]++
	}
}

// UnitDecided counts the combined decision.
func (t *PermitRateTracer) UnitDecided(decision gate.UnitDecision) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.decisions++
	if decision.Allowed {
		t.allowedDecisions++
	}
}

// PermitCount returns the number of permitting evaluations of a condition.
func (t *PermitRateTracer) PermitCount(name string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.permits[name]
}

// BlockCount returns the number of blocking evaluations of a condition.
func (t *PermitRateTracer) BlockCount(name string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.blocks[name]
}

// ErrorCount returns the number of failed evaluations of a condition.
func (t *PermitRateTracer) ErrorCount(name string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.errors[name]
}

// Rate returns the fraction of a condition's evaluations that permitted.
func (t *PermitRateTracer) Rate(name string) float64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	p := t.permits[name]
	total := p + t.blocks[name] + t.errors[name]
	if total == 0 {
		return 0
	}

	return float64(p) / float64(total)
}

// TotalDecisions returns the number of unit decisions seen.
func (t *PermitRateTracer) TotalDecisions() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.decisions
}

// AllowedDecisions returns the number of unit decisions that allowed the
// unit to run.
func (t *PermitRateTracer) AllowedDecisions() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.allowedDecisions
}

// Snapshot returns the per-condition counters, sorted by condition name.
func (t *PermitRateTracer) Snapshot() []PermitRate {
	t.lock.Lock()
	defer t.lock.Unlock()

	names := make(map[string]struct{})
	for n := range t.permits {
		names[n] = struct{}{}
	}
	for n := range t.blocks {
		names[n] = struct{}{}
	}
	for n := range t.errors {
		names[n] = struct{}{}
	}

	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	rates := make([]PermitRate, 0, len(sorted))
	for _, n := range sorted {
		p, b, e := t.permits[n], t.blocks[n], t.errors[n]

		r := PermitRate{
			Condition: n,
			Kind:      t.kinds[n],
			Permits:   p,
			Blocks:    b,
			Errors:    e,
		}
		if total := p + b + e; total > 0 {
			r.Rate = float64(p) / float64(total)
		}

		rates = append(rates, r)
	}

	return rates
}
