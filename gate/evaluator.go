package gate

// An EvalRecord describes one evaluation of one condition for one unit. It
// is the hook payload at HookPosEvalStart and HookPosEvalEnd; the start
// record carries no outcome yet.
type EvalRecord struct {
	ID        string
	Unit      string
	Condition Condition
	Tick      Tick
	Verdict   Verdict
	Memoized  bool
	Err       error
}

// A UnitDecision is the combined outcome for one unit in one tick. It is
// the hook payload at HookPosUnitDecided.
type UnitDecision struct {
	ID            string
	Unit          string
	Tick          Tick
	Allowed       bool
	NumConditions int
	Err           error
}

// KindOf reports the kind of a condition as a short lower-case word, for
// traces and monitors.
func KindOf(c Condition) string {
	switch c.(type) {
	case *timePassed:
		return "timepassed"
	case *onceCondition:
		return "once"
	case *notCondition:
		return "not"
	case *hasNewCondition:
		return "onevent"
	case *conditionFunc:
		return "func"
	default:
		return "custom"
	}
}

// An Evaluator combines the conditions attached to a unit into one can-run
// decision per tick.
//
// The evaluator memoizes each condition's verdict on its registry entry.
// Within one tick a shared condition is invoked once; every further unit
// referencing it reuses the memoized verdict, including a memoized error.
// Identical ticks therefore yield identical verdicts no matter in which
// order units are asked.
type Evaluator struct {
	HookableBase

	name     string
	registry *Registry
}

// NewEvaluator creates an Evaluator reading conditions from the registry.
func NewEvaluator(name string, registry *Registry) *Evaluator {
	NameMustBeValid(name)

	if registry == nil {
		panic(&ConfigError{Reason: "registry must not be nil"})
	}

	return &Evaluator{name: name, registry: registry}
}

// Name returns the name of the evaluator.
func (e *Evaluator) Name() string {
	return e.name
}

// Registry returns the registry the evaluator reads from.
func (e *Evaluator) Registry() *Registry {
	return e.registry
}

// CanRun reports whether the unit may run in the tick. A unit with no
// conditions attached may always run. Otherwise every attached condition
// is evaluated in attach order and the verdicts are combined by AND. A
// blocking verdict does not short-circuit the rest, so each attached
// condition advances its state in the tick regardless of the combination
// outcome. The first evaluation error aborts and is returned wrapped in a
// *EvaluationError. The world context is passed through untouched.
func (e *Evaluator) CanRun(unit string, w World, t Tick) (bool, error) {
	conds := e.registry.ConditionsOf(unit)

	allowed := true
	var failure *EvaluationError

	for _, c := range conds {
		rec := EvalRecord{
			ID:        GetIDGenerator().Generate(),
			Unit:      unit,
			Condition: c,
			Tick:      t,
		}
		e.InvokeHook(HookCtx{Domain: e, Pos: HookPosEvalStart, Item: rec})

		v, memoized, err := e.evaluateOnce(c, w, t)

		rec.Verdict = v
		rec.Memoized = memoized
		rec.Err = err
		e.InvokeHook(HookCtx{Domain: e, Pos: HookPosEvalEnd, Item: rec})

		if err != nil {
			failure = &EvaluationError{
				Unit:      unit,
				Condition: c.Name(),
				Tick:      t,
				Err:       err,
			}

			break
		}

		if !v.Allows() {
			allowed = false
		}
	}

	decision := UnitDecision{
		ID:            GetIDGenerator().Generate(),
		Unit:          unit,
		Tick:          t,
		Allowed:       allowed && failure == nil,
		NumConditions: len(conds),
	}
	if failure != nil {
		decision.Err = failure
	}

	e.InvokeHook(HookCtx{Domain: e, Pos: HookPosUnitDecided, Item: decision})

	if failure != nil {
		return false, failure
	}

	return allowed, nil
}

// evaluateOnce returns the condition's verdict for the tick, either from
// the registry memo or by invoking Evaluate once and memoizing the
// outcome.
func (e *Evaluator) evaluateOnce(
	c Condition,
	w World,
	t Tick,
) (Verdict, bool, error) {
	if memo, ok := e.registry.memoOf(c, t); ok {
		return memo.verdict, true, memo.err
	}

	v, err := c.Evaluate(w, t)
	e.registry.storeMemo(c, t, v, err)

	return v, false, err
}
