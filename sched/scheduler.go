package sched

import (
	"github.com/rs/xid"

	"github.com/condlab/runcond/gate"
	"github.com/condlab/runcond/monitoring"
	"github.com/condlab/runcond/recording"
	"github.com/condlab/runcond/tracing"
)

// A Scheduler owns the run-condition services for one scheduling domain:
// the tick counter the frame driver advances, the registry of attached
// conditions, and the evaluator that combines them into can-run decisions.
type Scheduler struct {
	id   string
	name string

	counter   *gate.TickCounter
	registry  *gate.Registry
	evaluator *gate.Evaluator

	units         []Unit
	unitNameIndex map[string]int

	recorder      recording.DataRecorder
	verdictTracer *tracing.DBTracer
	permitTracer  *tracing.PermitRateTracer
	monitor       *monitoring.Monitor
}

// NewScheduler creates a bare scheduler with no recording or monitoring
// attached. Use the Builder to wire the optional services.
func NewScheduler(name string) *Scheduler {
	gate.NameMustBeValid(name)

	registry := gate.NewRegistry()

	s := &Scheduler{
		id:            xid.New().String(),
		name:          name,
		counter:       gate.NewTickCounter(),
		registry:      registry,
		evaluator:     gate.NewEvaluator(gate.BuildName(name, "Evaluator"), registry),
		unitNameIndex: make(map[string]int),
	}

	return s
}

// Name returns the name of the scheduler.
func (s *Scheduler) Name() string {
	return s.name
}

// ID returns the unique ID of the scheduler instance.
func (s *Scheduler) ID() string {
	return s.id
}

// RegisterUnit registers a unit with the scheduler.
func (s *Scheduler) RegisterUnit(u Unit) {
	unitName := u.Name()
	if _, registered := s.unitNameIndex[unitName]; registered {
		panic("unit " + unitName + " already registered")
	}

	s.units = append(s.units, u)
	s.unitNameIndex[unitName] = len(s.units) - 1
}

// GetUnitByName returns the registered unit with the given name, or nil.
func (s *Scheduler) GetUnitByName(name string) Unit {
	i, registered := s.unitNameIndex[name]
	if !registered {
		return nil
	}

	return s.units[i]
}

// AddRunCondition gates the unit with the condition and returns the
// scheduler for chaining. A unit not yet registered is registered on
// first use.
func (s *Scheduler) AddRunCondition(u Unit, c gate.Condition) *Scheduler {
	if s.GetUnitByName(u.Name()) == nil {
		s.RegisterUnit(u)
	}

	s.registry.Attach(u.Name(), c)

	return s
}

// RemoveSystem removes a unit from the scheduler and detaches all its
// conditions. Conditions no other unit references are torn down, event
// subscriptions included. The name follows the scheduler-facing verb;
// phases and pipelines are removed the same way.
func (s *Scheduler) RemoveSystem(u Unit) {
	s.registry.DetachAllForUnit(u.Name())

	i, registered := s.unitNameIndex[u.Name()]
	if !registered {
		return
	}

	s.units = append(s.units[:i], s.units[i+1:]...)
	delete(s.unitNameIndex, u.Name())

	for j := i; j < len(s.units); j++ {
		s.unitNameIndex[s.units[j].Name()] = j
	}
}

// Advance moves the scheduler to the next tick. The external frame driver
// calls it exactly once per frame with the elapsed time.
func (s *Scheduler) Advance(delta gate.VTimeInSec) gate.Tick {
	return s.counter.Advance(delta)
}

// CurrentTick returns the tick of the current frame.
func (s *Scheduler) CurrentTick() gate.Tick {
	return s.counter.CurrentTick()
}

// CanRun reports whether the unit may run in the current tick.
func (s *Scheduler) CanRun(u Unit, w gate.World) (bool, error) {
	return s.evaluator.CanRun(u.Name(), w, s.counter.CurrentTick())
}

// Units returns the registered units in registration order.
func (s *Scheduler) Units() []Unit {
	return append([]Unit(nil), s.units...)
}

// UnitNames returns the names of the registered units in registration
// order.
func (s *Scheduler) UnitNames() []string {
	names := make([]string, len(s.units))
	for i, u := range s.units {
		names[i] = u.Name()
	}

	return names
}

// UnitKind returns the kind of the named unit as a word, or "unknown" for
// an unregistered name.
func (s *Scheduler) UnitKind(name string) string {
	u := s.GetUnitByName(name)
	if u == nil {
		return "unknown"
	}

	return u.Kind().String()
}

// Registry returns the condition registry of the scheduler.
func (s *Scheduler) Registry() *gate.Registry {
	return s.registry
}

// Evaluator returns the evaluator of the scheduler.
func (s *Scheduler) Evaluator() *gate.Evaluator {
	return s.evaluator
}

// GetDataRecorder returns the data recorder wired by the builder, or nil.
func (s *Scheduler) GetDataRecorder() recording.DataRecorder {
	return s.recorder
}

// GetVerdictTracer returns the database tracer wired by the builder, or
// nil.
func (s *Scheduler) GetVerdictTracer() *tracing.DBTracer {
	return s.verdictTracer
}

// GetPermitRateTracer returns the permit-rate tracer wired by the builder,
// or nil.
func (s *Scheduler) GetPermitRateTracer() *tracing.PermitRateTracer {
	return s.permitTracer
}

// GetMonitor returns the monitor wired by the builder, or nil.
func (s *Scheduler) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// Terminate flushes and closes the recording services of the scheduler.
func (s *Scheduler) Terminate() {
	if s.verdictTracer != nil {
		s.verdictTracer.Terminate()
	}

	if s.recorder != nil {
		s.recorder.Close()
	}
}
