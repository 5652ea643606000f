package gate

// Verdict is the outcome of evaluating a run condition. It carries only the
// permit/block decision; arbitrary payloads returned by legacy-style
// predicates are reduced to a Verdict at the adapter boundary.
type Verdict int

const (
	// Block prevents the units gated by the condition from running in the
	// current tick.
	Block Verdict = iota

	// Permit allows the gated units to run in the current tick.
	Permit
)

// Allows returns true if the verdict is Permit.
func (v Verdict) Allows() bool {
	return v == Permit
}

// Invert swaps Permit and Block.
func (v Verdict) Invert() Verdict {
	if v == Permit {
		return Block
	}

	return Permit
}

// String returns the verdict as a lower-case word.
func (v Verdict) String() string {
	if v == Permit {
		return "permit"
	}

	return "block"
}
