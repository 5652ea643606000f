package gate

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("Not", func() {
	var (
		mockCtrl *gomock.Controller
		wrapped  *MockCondition
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		wrapped = NewMockCondition(mockCtrl)
		wrapped.EXPECT().Name().Return("Wrapped").AnyTimes()
	})

	It("should invert a permit into a block", func() {
		wrapped.EXPECT().Evaluate(gomock.Any(), gomock.Any()).
			Return(Permit, nil)

		c := Not(wrapped)
		v, err := c.Evaluate(nil, Tick{Seq: 1})

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(v).To(gomega.Equal(Block))
	})

	It("should invert a block into a permit", func() {
		wrapped.EXPECT().Evaluate(gomock.Any(), gomock.Any()).
			Return(Block, nil)

		c := Not(wrapped)
		v, err := c.Evaluate(nil, Tick{Seq: 1})

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(v).To(gomega.Equal(Permit))
	})

	It("should pass the wrapped error through unchanged", func() {
		evalErr := errors.New("boom")
		wrapped.EXPECT().Evaluate(gomock.Any(), gomock.Any()).
			Return(Block, evalErr)

		c := Not(wrapped)
		_, err := c.Evaluate(nil, Tick{Seq: 1})

		gomega.Expect(err).To(gomega.MatchError(evalErr))
	})

	It("should derive its name from the wrapped condition", func() {
		c := Not(wrapped)

		gomega.Expect(c.Name()).To(gomega.Equal("Wrapped.Not"))
	})

	It("should always disagree with the wrapped condition", func() {
		counter := NewTickCounter()
		inner := TimePassed(2)
		c := Not(inner)

		for i := 0; i < 6; i++ {
			t := counter.Advance(1)
			innerV, _ := inner.Evaluate(nil, t)
			notV, _ := c.Evaluate(nil, t)

			gomega.Expect(notV).To(gomega.Equal(innerV.Invert()))
		}
	})

	It("should not double-advance the wrapped state", func() {
		counter := NewTickCounter()
		inner := TimePassed(2).(*timePassed)
		c := Not(inner)

		t := counter.Advance(1)
		c.Evaluate(nil, t)
		inner.Evaluate(nil, t)

		gomega.Expect(inner.Accumulated()).To(gomega.BeNumerically("~", 1, 1e-12))
	})

	It("should panic on a nil wrapped condition", func() {
		gomega.Expect(func() { Not(nil) }).To(gomega.Panic())
	})
})
