package sched

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/condlab/runcond/gate"
)

var _ = Describe("Scheduler", func() {
	var (
		mockCtrl  *gomock.Controller
		scheduler *Scheduler
		physics   *MockUnit
		spawner   *MockUnit
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		scheduler = MakeBuilder().WithoutMonitoring().Build()

		physics = NewMockUnit(mockCtrl)
		physics.EXPECT().Name().Return("Physics").AnyTimes()
		physics.EXPECT().Kind().Return(KindSystem).AnyTimes()

		spawner = NewMockUnit(mockCtrl)
		spawner.EXPECT().Name().Return("Spawner").AnyTimes()
		spawner.EXPECT().Kind().Return(KindPhase).AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()

		scheduler.Terminate()
	})

	It("should register a unit", func() {
		scheduler.RegisterUnit(physics)

		Expect(scheduler.GetUnitByName("Physics")).To(BeIdenticalTo(physics))
		Expect(scheduler.Units()).To(HaveLen(1))
		Expect(scheduler.UnitNames()).To(Equal([]string{"Physics"}))
	})

	It("should panic when registering the same name twice", func() {
		scheduler.RegisterUnit(physics)

		Expect(func() {
			scheduler.RegisterUnit(physics)
		}).To(Panic())
	})

	It("should report unit kinds", func() {
		scheduler.RegisterUnit(physics)
		scheduler.RegisterUnit(spawner)

		Expect(scheduler.UnitKind("Physics")).To(Equal("system"))
		Expect(scheduler.UnitKind("Spawner")).To(Equal("phase"))
		Expect(scheduler.UnitKind("Ghost")).To(Equal("unknown"))
	})

	It("should register a unit on first condition attach", func() {
		cond := gate.TimePassed(0.5)

		ret := scheduler.AddRunCondition(physics, cond)

		Expect(ret).To(BeIdenticalTo(scheduler))
		Expect(scheduler.GetUnitByName("Physics")).To(BeIdenticalTo(physics))
		Expect(scheduler.Registry().ConditionsOf("Physics")).
			To(Equal([]gate.Condition{cond}))
		Expect(scheduler.Registry().RefCount(cond)).To(Equal(1))
	})

	It("should share a condition between units", func() {
		cond := gate.TimePassed(0.5)

		scheduler.
			AddRunCondition(physics, cond).
			AddRunCondition(spawner, cond)

		Expect(scheduler.Registry().RefCount(cond)).To(Equal(2))
	})

	It("should permit a unit with no conditions", func() {
		scheduler.RegisterUnit(physics)
		scheduler.Advance(0.25)

		canRun, err := scheduler.CanRun(physics, nil)

		Expect(err).To(BeNil())
		Expect(canRun).To(BeTrue())
	})

	It("should evaluate conditions against the current tick", func() {
		scheduler.AddRunCondition(physics, gate.TimePassed(0.5))

		scheduler.Advance(0.25)
		canRun, err := scheduler.CanRun(physics, nil)
		Expect(err).To(BeNil())
		Expect(canRun).To(BeFalse())

		scheduler.Advance(0.25)
		canRun, err = scheduler.CanRun(physics, nil)
		Expect(err).To(BeNil())
		Expect(canRun).To(BeTrue())

		Expect(scheduler.CurrentTick().Seq).To(Equal(uint64(2)))
	})

	It("should remove a unit and release its conditions", func() {
		hits := gate.NewSignal("HitDetected")
		feed := gate.MustOnEvent(hits)

		scheduler.AddRunCondition(spawner, feed.HasNew())
		Expect(hits.NumHandlers()).To(Equal(1))

		scheduler.RemoveSystem(spawner)

		Expect(scheduler.GetUnitByName("Spawner")).To(BeNil())
		Expect(scheduler.UnitNames()).To(BeEmpty())
		Expect(scheduler.Registry().ConditionsOf("Spawner")).To(BeEmpty())
		Expect(hits.NumHandlers()).To(Equal(0))
	})

	It("should keep a shared condition when one unit is removed", func() {
		cond := gate.TimePassed(0.5)

		scheduler.
			AddRunCondition(physics, cond).
			AddRunCondition(spawner, cond)

		scheduler.RemoveSystem(spawner)

		Expect(scheduler.Registry().RefCount(cond)).To(Equal(1))
		Expect(scheduler.UnitNames()).To(Equal([]string{"Physics"}))
	})

	It("should do nothing when removing an unregistered unit", func() {
		Expect(func() {
			scheduler.RemoveSystem(physics)
		}).ToNot(Panic())
	})

	Context("Builder with verdict recording", func() {
		var recordingSched *Scheduler

		AfterEach(func() {
			if recordingSched != nil {
				recordingSched.Terminate()
				os.Remove("test_sched_output.sqlite3")
				recordingSched = nil
			}
		})

		It("should wire a recorder and a verdict tracer", func() {
			recordingSched = MakeBuilder().
				WithoutMonitoring().
				WithVerdictRecording().
				WithOutputFileName("test_sched_output").
				Build()

			Expect(recordingSched.GetDataRecorder()).ToNot(BeNil())
			Expect(recordingSched.GetVerdictTracer()).ToNot(BeNil())
		})
	})

	Context("Builder parameter validation", func() {
		It("should reject a monitor port without monitoring", func() {
			Expect(func() {
				MakeBuilder().WithoutMonitoring().WithMonitorPort(8080).Build()
			}).To(Panic())
		})

		It("should reject browser opening without monitoring", func() {
			Expect(func() {
				MakeBuilder().WithoutMonitoring().WithBrowserOnStart().Build()
			}).To(Panic())
		})

		It("should reject an output file without verdict recording", func() {
			Expect(func() {
				MakeBuilder().
					WithoutMonitoring().
					WithOutputFileName("test_orphan_output").
					Build()
			}).To(Panic())
		})
	})

	It("should name the scheduler", func() {
		named := MakeBuilder().
			WithoutMonitoring().
			WithName("Game").
			Build()
		defer named.Terminate()

		Expect(named.Name()).To(Equal("Game"))
		Expect(named.ID()).ToNot(BeEmpty())
	})
})
