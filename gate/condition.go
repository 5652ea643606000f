// Package gate provides run conditions: named predicates that decide, once
// per tick, whether a schedulable unit may execute. Conditions are attached
// to units through a Registry, shared across units by reference count, and
// evaluated with per-tick memoization by an Evaluator.
package gate

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// World is the opaque context that the external scheduler supplies to every
// evaluation. Conditions must not assume any structure beyond what they
// explicitly query from it, and must never mutate it.
type World any

// A Condition gates whether schedulable units can run in a tick.
//
// Evaluate must complete synchronously within the tick that triggered it.
// A non-nil error is an evaluation failure and is propagated to the
// scheduler; it is never silently interpreted as a verdict.
type Condition interface {
	Named

	Evaluate(w World, t Tick) (Verdict, error)
}

type conditionFunc struct {
	name string
	fn   func(w World, t Tick) (Verdict, error)
}

// NewCondition wraps fn as a named stateless Condition.
func NewCondition(
	name string,
	fn func(w World, t Tick) (Verdict, error),
) Condition {
	NameMustBeValid(name)

	if fn == nil {
		panic(&ConfigError{Reason: "condition function must not be nil"})
	}

	return &conditionFunc{name: name, fn: fn}
}

// Name returns the name of the condition.
func (c *conditionFunc) Name() string {
	return c.name
}

// Evaluate invokes the wrapped function.
func (c *conditionFunc) Evaluate(w World, t Tick) (Verdict, error) {
	return c.fn(w, t)
}

// FromBool adapts a boolean predicate as a Condition. A true result
// permits, a false result blocks.
func FromBool(name string, fn func(w World) bool) Condition {
	if fn == nil {
		panic(&ConfigError{Reason: "condition function must not be nil"})
	}

	return NewCondition(name, func(w World, _ Tick) (Verdict, error) {
		if fn(w) {
			return Permit, nil
		}
		return Block, nil
	})
}

// FromPredicate adapts a legacy-style predicate that may return any value.
// Only an explicit false blocks; nil and every other value permit. The
// truthiness rule is applied here, once, so the evaluator only ever deals
// with explicit verdicts.
func FromPredicate(name string, fn func(w World) (any, error)) Condition {
	if fn == nil {
		panic(&ConfigError{Reason: "condition function must not be nil"})
	}

	return NewCondition(name, func(w World, _ Tick) (Verdict, error) {
		result, err := fn(w)
		if err != nil {
			return Block, err
		}

		if b, ok := result.(bool); ok && !b {
			return Block, nil
		}

		return Permit, nil
	})
}
