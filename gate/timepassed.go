package gate

import "math"

type timePassed struct {
	name        string
	threshold   VTimeInSec
	accumulated VTimeInSec
	guard       tickGuard
}

// TimePassed returns a condition that permits whenever at least threshold
// seconds of tick time have accumulated. On a permitting tick the threshold
// is subtracted and the remainder carries over, so a threshold of 10
// evaluated with deltas of 4, 4, 4 permits on the third tick and leaves 2
// seconds accumulated.
func TimePassed(threshold VTimeInSec) Condition {
	thresholdMustBeValid(threshold)

	name := BuildNameWithIndex("", "TimePassed", GetIDGenerator().Generate())

	return &timePassed{name: name, threshold: threshold}
}

// Every returns a condition that permits once per period of the given
// frequency.
func Every(f Freq) Condition {
	return TimePassed(f.Period())
}

func thresholdMustBeValid(threshold VTimeInSec) {
	if math.IsNaN(float64(threshold)) {
		panic(&ConfigError{Reason: "threshold must not be NaN"})
	}

	if threshold <= 0 {
		panic(&ConfigError{Reason: "threshold must be positive"})
	}
}

// Name returns the name of the condition.
func (c *timePassed) Name() string {
	return c.name
}

// Evaluate accumulates the tick's delta, at most once per tick, and permits
// when the accumulated time reaches the threshold.
func (c *timePassed) Evaluate(_ World, t Tick) (Verdict, error) {
	if v, ok := c.guard.hit(t); ok {
		return v, nil
	}

	c.accumulated += t.Delta

	v := Block
	if c.accumulated >= c.threshold {
		c.accumulated -= c.threshold
		v = Permit
	}

	return c.guard.store(t, v), nil
}

// Threshold returns the time that must accumulate before the condition
// permits.
func (c *timePassed) Threshold() VTimeInSec {
	return c.threshold
}

// Accumulated returns the time accumulated toward the next permit.
func (c *timePassed) Accumulated() VTimeInSec {
	return c.accumulated
}
