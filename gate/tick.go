package gate

import (
	"math"
	"sync"
)

// VTimeInSec defines the elapsed time in the scheduled space in the unit of
// second.
type VTimeInSec float64

// A Tick identifies one scheduling cycle. Seq increases by one per cycle
// and is the identity that per-tick memoization keys on. Delta is the time
// elapsed since the previous tick and is what time-based conditions
// accumulate.
type Tick struct {
	Seq   uint64
	Now   VTimeInSec
	Delta VTimeInSec
}

// TickTeller can be used to get the current tick.
type TickTeller interface {
	CurrentTick() Tick
}

// A TickCounter produces the tick sequence for a scheduler. The external
// frame driver calls Advance exactly once per frame; everything else reads
// the current tick through the TickTeller interface.
type TickCounter struct {
	lock sync.RWMutex
	tick Tick
}

// NewTickCounter creates a TickCounter. The first call to Advance produces
// the tick with sequence number 1; sequence 0 means no tick has started.
func NewTickCounter() *TickCounter {
	return &TickCounter{}
}

// Advance moves the counter to the next tick, recording the elapsed delta.
func (c *TickCounter) Advance(delta VTimeInSec) Tick {
	deltaMustBeValid(delta)

	c.lock.Lock()
	c.tick.Seq++
	c.tick.Now += delta
	c.tick.Delta = delta
	t := c.tick
	c.lock.Unlock()

	return t
}

// CurrentTick returns the tick most recently produced by Advance.
func (c *TickCounter) CurrentTick() Tick {
	c.lock.RLock()
	t := c.tick
	c.lock.RUnlock()

	return t
}

func deltaMustBeValid(delta VTimeInSec) {
	if math.IsNaN(float64(delta)) {
		panic(&ConfigError{Reason: "tick delta must not be NaN"})
	}

	if delta < 0 {
		panic(&ConfigError{Reason: "tick delta must not be negative"})
	}
}
