package gate

// tickGuard deduplicates evaluations of a stateful condition within one
// tick. A condition can be reached twice in the same tick, once through the
// registry and once through a wrapping condition such as Not, and its state
// must still advance at most once.
type tickGuard struct {
	seen    bool
	lastSeq uint64
	verdict Verdict
}

// hit returns the verdict recorded for the tick, if there is one.
func (g *tickGuard) hit(t Tick) (Verdict, bool) {
	if g.seen && g.lastSeq == t.Seq {
		return g.verdict, true
	}

	return Block, false
}

// store records the verdict for the tick and returns it.
func (g *tickGuard) store(t Tick, v Verdict) Verdict {
	g.seen = true
	g.lastSeq = t.Seq
	g.verdict = v

	return v
}
