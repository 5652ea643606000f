package gate

type onceCondition struct {
	name  string
	fired bool
	guard tickGuard
}

// Once returns a condition that permits on the first tick it is evaluated
// in and blocks on every tick after that. The permit covers the whole first
// tick, so every unit sharing the condition runs once. There is no reset.
func Once() Condition {
	name := BuildNameWithIndex("", "Once", GetIDGenerator().Generate())

	return &onceCondition{name: name}
}

// Name returns the name of the condition.
func (c *onceCondition) Name() string {
	return c.name
}

// Evaluate permits on the first evaluated tick only.
func (c *onceCondition) Evaluate(_ World, t Tick) (Verdict, error) {
	if v, ok := c.guard.hit(t); ok {
		return v, nil
	}

	v := Block
	if !c.fired {
		c.fired = true
		v = Permit
	}

	return c.guard.store(t, v), nil
}

// HasFired returns true after the condition has permitted its one tick.
func (c *onceCondition) HasFired() bool {
	return c.fired
}
