package gate

import "fmt"

// ConfigError reports a construction-time misuse, such as a nil wrapped
// condition or a non-positive threshold. Constructors panic with a
// *ConfigError rather than returning it, since such a mistake cannot be
// handled at runtime.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// SubscriptionError reports that an event source could not be subscribed to.
type SubscriptionError struct {
	Source string
	Reason string
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("cannot subscribe to %s: %s", e.Source, e.Reason)
}

// EvaluationError reports that a condition failed while being evaluated for
// a unit. It identifies the condition and the tick so that a failure in a
// shared condition can be traced back to its site.
type EvaluationError struct {
	Unit      string
	Condition string
	Tick      Tick
	Err       error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("condition %s failed for unit %s at tick %d: %v",
		e.Condition, e.Unit, e.Tick.Seq, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
