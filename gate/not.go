package gate

type notCondition struct {
	name    string
	wrapped Condition
}

// Not returns a condition with the opposite verdict of the wrapped
// condition. The inversion applies to the permit/block verdict, never to
// raw predicate payloads, which are reduced to a verdict before Not sees
// them. An evaluation error from the wrapped condition passes through
// unchanged and is not inverted into a verdict.
func Not(c Condition) Condition {
	wrappedMustNotBeNil(c)

	return &notCondition{
		name:    BuildName(c.Name(), "Not"),
		wrapped: c,
	}
}

func wrappedMustNotBeNil(c Condition) {
	if c == nil {
		panic(&ConfigError{Reason: "wrapped condition must not be nil"})
	}
}

// Name returns the name of the condition.
func (c *notCondition) Name() string {
	return c.name
}

// Evaluate inverts the verdict of the wrapped condition.
func (c *notCondition) Evaluate(w World, t Tick) (Verdict, error) {
	v, err := c.wrapped.Evaluate(w, t)
	if err != nil {
		return Block, err
	}

	return v.Invert(), nil
}

// Wrapped returns the condition being inverted.
func (c *notCondition) Wrapped() Condition {
	return c.wrapped
}
