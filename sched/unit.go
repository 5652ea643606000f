// Package sched provides the scheduler-facing surface of the run-condition
// subsystem: schedulable units, the fluent attachment API, and the tick
// driver glue that an external frame loop calls into once per frame.
package sched

import (
	"github.com/condlab/runcond/gate"
)

// UnitKind tells what kind of schedulable work a unit stands for.
type UnitKind int

// The kinds of schedulable units an external scheduler can gate.
const (
	KindSystem UnitKind = iota
	KindPhase
	KindPipeline
)

// String returns the kind as a lower-case word.
func (k UnitKind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindPhase:
		return "phase"
	case KindPipeline:
		return "pipeline"
	}

	return "unknown"
}

// A Unit is a schedulable piece of work whose execution is gated by run
// conditions. The unit carries identity only; the work itself belongs to
// the external scheduler.
type Unit interface {
	gate.Named

	Kind() UnitKind
}

type unit struct {
	name string
	kind UnitKind
}

// NewUnit creates a unit with the given name and kind.
func NewUnit(name string, kind UnitKind) Unit {
	gate.NameMustBeValid(name)

	return &unit{name: name, kind: kind}
}

// NewSystem creates a system unit.
func NewSystem(name string) Unit {
	return NewUnit(name, KindSystem)
}

// NewPhase creates a phase unit.
func NewPhase(name string) Unit {
	return NewUnit(name, KindPhase)
}

// NewPipeline creates a pipeline unit.
func NewPipeline(name string) Unit {
	return NewUnit(name, KindPipeline)
}

// Name returns the name of the unit.
func (u *unit) Name() string {
	return u.name
}

// Kind returns the kind of the unit.
func (u *unit) Kind() UnitKind {
	return u.kind
}
