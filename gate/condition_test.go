package gate

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = Describe("NewCondition", func() {
	It("should pass world and tick through", func() {
		type worldState struct{ paused bool }
		w := &worldState{paused: true}

		c := NewCondition("PauseGate",
			func(w World, t Tick) (Verdict, error) {
				if w.(*worldState).paused {
					return Block, nil
				}
				return Permit, nil
			})

		v, err := c.Evaluate(w, Tick{Seq: 1})

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(v).To(gomega.Equal(Block))
		gomega.Expect(c.Name()).To(gomega.Equal("PauseGate"))
	})

	It("should panic on a nil function", func() {
		gomega.Expect(func() { NewCondition("Broken", nil) }).To(gomega.Panic())
	})

	It("should panic on an invalid name", func() {
		gomega.Expect(func() {
			NewCondition("bad name", func(World, Tick) (Verdict, error) {
				return Permit, nil
			})
		}).To(gomega.Panic())
	})
})

var _ = Describe("FromBool", func() {
	It("should permit on true and block on false", func() {
		on := false
		c := FromBool("Toggle", func(World) bool { return on })

		v1, _ := c.Evaluate(nil, Tick{Seq: 1})
		on = true
		v2, _ := c.Evaluate(nil, Tick{Seq: 2})

		gomega.Expect(v1).To(gomega.Equal(Block))
		gomega.Expect(v2).To(gomega.Equal(Permit))
	})
})

var _ = Describe("FromPredicate", func() {
	It("should block only on an explicit false", func() {
		c := FromPredicate("Legacy", func(World) (any, error) {
			return false, nil
		})

		v, _ := c.Evaluate(nil, Tick{Seq: 1})

		gomega.Expect(v).To(gomega.Equal(Block))
	})

	It("should permit on nil", func() {
		c := FromPredicate("Legacy", func(World) (any, error) {
			return nil, nil
		})

		v, _ := c.Evaluate(nil, Tick{Seq: 1})

		gomega.Expect(v).To(gomega.Equal(Permit))
	})

	It("should permit on a non-boolean value", func() {
		c := FromPredicate("Legacy", func(World) (any, error) {
			return 42, nil
		})

		v, _ := c.Evaluate(nil, Tick{Seq: 1})

		gomega.Expect(v).To(gomega.Equal(Permit))
	})

	It("should permit on true", func() {
		c := FromPredicate("Legacy", func(World) (any, error) {
			return true, nil
		})

		v, _ := c.Evaluate(nil, Tick{Seq: 1})

		gomega.Expect(v).To(gomega.Equal(Permit))
	})

	It("should surface the predicate error", func() {
		predErr := errors.New("query failed")
		c := FromPredicate("Legacy", func(World) (any, error) {
			return nil, predErr
		})

		_, err := c.Evaluate(nil, Tick{Seq: 1})

		gomega.Expect(err).To(gomega.MatchError(predErr))
	})
})

var _ = Describe("KindOf", func() {
	It("should classify the built-in kinds", func() {
		sig := NewSignal("Clicked")
		feed := MustOnEvent(sig)

		gomega.Expect(KindOf(TimePassed(1))).To(gomega.Equal("timepassed"))
		gomega.Expect(KindOf(Once())).To(gomega.Equal("once"))
		gomega.Expect(KindOf(Not(Once()))).To(gomega.Equal("not"))
		gomega.Expect(KindOf(feed.HasNew())).To(gomega.Equal("onevent"))
		gomega.Expect(KindOf(FromBool("Flag", func(World) bool { return true }))).
			To(gomega.Equal("func"))
	})

	It("should classify everything else as custom", func() {
		gomega.Expect(KindOf(&releasableCondition{name: "Custom"})).
			To(gomega.Equal("custom"))
	})
})

var _ = Describe("Verdict", func() {
	It("should report allowance", func() {
		gomega.Expect(Permit.Allows()).To(gomega.BeTrue())
		gomega.Expect(Block.Allows()).To(gomega.BeFalse())
	})

	It("should invert", func() {
		gomega.Expect(Permit.Invert()).To(gomega.Equal(Block))
		gomega.Expect(Block.Invert()).To(gomega.Equal(Permit))
	})

	It("should print as a word", func() {
		gomega.Expect(Permit.String()).To(gomega.Equal("permit"))
		gomega.Expect(Block.String()).To(gomega.Equal("block"))
	})
})
