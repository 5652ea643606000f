package tracing

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/condlab/runcond/gate"
)

func record(
	c gate.Condition,
	unit string,
	seq uint64,
	v gate.Verdict,
) gate.EvalRecord {
	return gate.EvalRecord{
		ID:        "1",
		Unit:      unit,
		Condition: c,
		Tick:      gate.Tick{Seq: seq},
		Verdict:   v,
	}
}

var _ = Describe("PermitRateTracer", func() {
	var (
		t     *PermitRateTracer
		ready gate.Condition
		armed gate.Condition
	)

	BeforeEach(func() {
		t = NewPermitRateTracer(nil)
		ready = gate.FromBool("Ready", func(gate.World) bool { return true })
		armed = gate.FromBool("Armed", func(gate.World) bool { return true })
	})

	It("should count permits, blocks and errors per condition", func() {
		t.RecordEval(record(ready, "Physics", 1, gate.Permit))
		t.RecordEval(record(ready, "Physics", 2, gate.Block))
		t.RecordEval(record(ready, "Physics", 3, gate.Permit))

		failed := record(ready, "Physics", 4, gate.Block)
		failed.Err = errors.New("sensor offline")
		t.RecordEval(failed)

		Expect(t.PermitCount("Ready")).To(Equal(uint64(2)))
		Expect(t.BlockCount("Ready")).To(Equal(uint64(1)))
		Expect(t.ErrorCount("Ready")).To(Equal(uint64(1)))
		Expect(t.Rate("Ready")).To(BeNumerically("~", 0.5))
	})

	It("should skip memoized replays", func() {
		rec := record(ready, "Physics", 1, gate.Permit)
		t.RecordEval(rec)

		rec.Unit = "Spawner"
		rec.Memoized = true
		t.RecordEval(rec)

		Expect(t.PermitCount("Ready")).To(Equal(uint64(1)))
	})

	It("should honor the filter", func() {
		t = NewPermitRateTracer(FilterByUnit("Physics"))

		t.RecordEval(record(ready, "Physics", 1, gate.Permit))
		t.RecordEval(record(armed, "Spawner", 1, gate.Permit))

		Expect(t.PermitCount("Ready")).To(Equal(uint64(1)))
		Expect(t.PermitCount("Armed")).To(Equal(uint64(0)))
	})

	It("should count unit decisions", func() {
		t.UnitDecided(gate.UnitDecision{Unit: "Physics", Allowed: true})
		t.UnitDecided(gate.UnitDecision{Unit: "Physics", Allowed: false})
		t.UnitDecided(gate.UnitDecision{Unit: "Spawner", Allowed: true})

		Expect(t.TotalDecisions()).To(Equal(uint64(3)))
		Expect(t.AllowedDecisions()).To(Equal(uint64(2)))
	})

	It("should snapshot counters sorted by condition name", func() {
		t.RecordEval(record(ready, "Physics", 1, gate.Permit))
		t.RecordEval(record(armed, "Physics", 1, gate.Block))

		rates := t.Snapshot()
		Expect(rates).To(HaveLen(2))
		Expect(rates[0].Condition).To(Equal("Armed"))
		Expect(rates[0].Kind).To(Equal("func"))
		Expect(rates[0].Blocks).To(Equal(uint64(1)))
		Expect(rates[0].Rate).To(BeZero())
		Expect(rates[1].Condition).To(Equal("Ready"))
		Expect(rates[1].Rate).To(BeNumerically("~", 1.0))
	})
})
