package gate

import (
	"sort"
	"sync"
)

// Releasable is implemented by conditions and feeds that own external
// resources such as event subscriptions. A Registry calls Release when the
// last unit referencing the condition detaches.
type Releasable interface {
	Release()
}

// A Registry tracks which conditions gate which schedulable units.
// Conditions are shared: attaching one condition to several units creates a
// single entry whose state and per-tick verdict are common to all of them.
// The registry owns condition lifetime through reference counts; units
// never do.
//
// Attach and detach may be called concurrently with evaluation. Evaluation
// itself runs on a single goroutine per tick.
type Registry struct {
	lock    sync.Mutex
	entries map[Condition]*registryEntry
	byUnit  map[string][]Condition
}

type registryEntry struct {
	condition Condition
	units     map[string]struct{}
	memo      verdictMemo
}

// verdictMemo caches one tick's evaluation outcome on the registry entry.
// A memoized error stays the tick's outcome; there is no retry within the
// tick.
type verdictMemo struct {
	set     bool
	tickSeq uint64
	verdict Verdict
	err     error
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Condition]*registryEntry),
		byUnit:  make(map[string][]Condition),
	}
}

// Attach gates the unit with the condition. The first attachment of a
// condition creates its entry; attachments from further units share the
// entry and its state. Attaching an already-attached pair is a no-op.
func (r *Registry) Attach(unit string, c Condition) {
	NameMustBeValid(unit)
	conditionMustNotBeNil(c)

	r.lock.Lock()
	defer r.lock.Unlock()

	entry := r.entries[c]
	if entry == nil {
		entry = &registryEntry{
			condition: c,
			units:     make(map[string]struct{}),
		}
		r.entries[c] = entry
	}

	if _, attached := entry.units[unit]; attached {
		return
	}

	entry.units[unit] = struct{}{}
	r.byUnit[unit] = append(r.byUnit[unit], c)
}

// Detach removes the condition from the unit. When no unit references the
// condition anymore, its entry is destroyed and, if the condition is
// Releasable, released. Detaching a pair that is not attached is a no-op.
func (r *Registry) Detach(unit string, c Condition) {
	r.lock.Lock()
	released := r.detachLocked(unit, c)
	r.lock.Unlock()

	if released != nil {
		release(released)
	}
}

// DetachAllForUnit removes every condition gating the unit, in attach
// order, releasing the ones the unit was the last holder of.
func (r *Registry) DetachAllForUnit(unit string) {
	r.lock.Lock()

	conds := append([]Condition(nil), r.byUnit[unit]...)

	var released []Condition
	for _, c := range conds {
		if rel := r.detachLocked(unit, c); rel != nil {
			released = append(released, rel)
		}
	}

	r.lock.Unlock()

	for _, c := range released {
		release(c)
	}
}

// detachLocked removes the pair and returns the condition if this was the
// last reference, so the caller can release it outside the lock.
func (r *Registry) detachLocked(unit string, c Condition) Condition {
	entry := r.entries[c]
	if entry == nil {
		return nil
	}

	if _, attached := entry.units[unit]; !attached {
		return nil
	}

	delete(entry.units, unit)

	conds := r.byUnit[unit]
	for i, attached := range conds {
		if attached == c {
			r.byUnit[unit] = append(conds[:i], conds[i+1:]...)
			break
		}
	}

	if len(r.byUnit[unit]) == 0 {
		delete(r.byUnit, unit)
	}

	if len(entry.units) > 0 {
		return nil
	}

	delete(r.entries, c)

	return c
}

// ConditionsOf returns the conditions gating the unit, in attach order.
func (r *Registry) ConditionsOf(unit string) []Condition {
	r.lock.Lock()
	defer r.lock.Unlock()

	return append([]Condition(nil), r.byUnit[unit]...)
}

// RefCount returns the number of units the condition is attached to.
func (r *Registry) RefCount(c Condition) int {
	r.lock.Lock()
	defer r.lock.Unlock()

	entry := r.entries[c]
	if entry == nil {
		return 0
	}

	return len(entry.units)
}

// Units returns the names of all units with at least one condition
// attached, sorted.
func (r *Registry) Units() []string {
	r.lock.Lock()
	defer r.lock.Unlock()

	units := make([]string, 0, len(r.byUnit))
	for unit := range r.byUnit {
		units = append(units, unit)
	}

	sort.Strings(units)

	return units
}

// UnitConditionCount returns the number of conditions gating the unit.
func (r *Registry) UnitConditionCount(unit string) int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return len(r.byUnit[unit])
}

// NumConditions returns the number of distinct conditions registered.
func (r *Registry) NumConditions() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return len(r.entries)
}

// Conditions returns all registered conditions, sorted by name.
func (r *Registry) Conditions() []Condition {
	r.lock.Lock()
	defer r.lock.Unlock()

	conds := make([]Condition, 0, len(r.entries))
	for c := range r.entries {
		conds = append(conds, c)
	}

	sort.Slice(conds, func(i, j int) bool {
		return conds[i].Name() < conds[j].Name()
	})

	return conds
}

// LastVerdict returns the most recently memoized verdict of the condition
// and the tick sequence it belongs to.
func (r *Registry) LastVerdict(c Condition) (Verdict, uint64, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	entry := r.entries[c]
	if entry == nil || !entry.memo.set {
		return Block, 0, false
	}

	return entry.memo.verdict, entry.memo.tickSeq, true
}

// memoOf returns the entry's memo if it belongs to the given tick.
func (r *Registry) memoOf(c Condition, t Tick) (verdictMemo, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	entry := r.entries[c]
	if entry == nil || !entry.memo.set || entry.memo.tickSeq != t.Seq {
		return verdictMemo{}, false
	}

	return entry.memo, true
}

// storeMemo records the tick's outcome on the entry. A condition detached
// while it was being evaluated has no entry anymore; its outcome is
// dropped.
func (r *Registry) storeMemo(c Condition, t Tick, v Verdict, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	entry := r.entries[c]
	if entry == nil {
		return
	}

	entry.memo = verdictMemo{set: true, tickSeq: t.Seq, verdict: v, err: err}
}

func release(c Condition) {
	if rel, ok := c.(Releasable); ok {
		rel.Release()
	}
}

func conditionMustNotBeNil(c Condition) {
	if c == nil {
		panic(&ConfigError{Reason: "condition must not be nil"})
	}
}
