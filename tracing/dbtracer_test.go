package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("DBTracer", func() {
	var (
		mockCtrl *gomock.Controller
		clock    *testCycleTeller
		recorder *MockDataRecorder
		tracer   *DBTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		clock = &testCycleTeller{}
		recorder = NewMockDataRecorder(mockCtrl)
		recorder.EXPECT().CreateTable(TaskTableName, TaskEntry{})
		tracer = NewDBTracer(clock, recorder)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	read := Task{
		ID:       "t1",
		Kind:     "req_in",
		What:     "read",
		Location: "SDRAM",
	}

	It("should panic if the task has no location", func() {
		t := read
		t.Location = ""

		Expect(func() { tracer.StartTask(t) }).To(Panic())
	})

	It("should write a burst with its latency and command count", func() {
		clock.cycle = 100
		tracer.StartTask(read)
		tracer.StepTask(Task{ID: "t1", Steps: []TaskStep{{What: "ACTIVATE"}}})
		tracer.StepTask(Task{ID: "t1", Steps: []TaskStep{{What: "READ"}}})
		tracer.StepTask(Task{ID: "other", Steps: []TaskStep{{What: "READ"}}})
		Expect(tracer.NumInflight()).To(Equal(1))

		recorder.EXPECT().InsertData(TaskTableName, TaskEntry{
			ID:         "t1",
			Kind:       "req_in",
			What:       "read",
			Location:   "SDRAM",
			StartCycle: 100,
			EndCycle:   108,
			Latency:    8,
			Steps:      2,
		})

		clock.cycle = 108
		tracer.EndTask(Task{ID: "t1"})

		Expect(tracer.NumInflight()).To(Equal(0))
	})

	It("should drop tasks that end before the cycle range", func() {
		tracer.SetCycleRange(10, 20)

		clock.cycle = 1
		tracer.StartTask(read)
		clock.cycle = 5
		tracer.EndTask(Task{ID: "t1"})

		Expect(tracer.NumInflight()).To(Equal(0))
	})

	It("should drop tasks that start after the cycle range", func() {
		tracer.SetCycleRange(10, 20)

		clock.cycle = 25
		tracer.StartTask(read)

		Expect(tracer.NumInflight()).To(Equal(0))
	})

	It("should write open tasks on terminate", func() {
		clock.cycle = 2
		tracer.StartTask(read)

		clock.cycle = 7
		recorder.EXPECT().InsertData(TaskTableName, gomock.Any()).
			Do(func(_ string, entry any) {
				Expect(entry.(TaskEntry).EndCycle).To(Equal(uint64(7)))
				Expect(entry.(TaskEntry).Latency).To(Equal(uint64(5)))
			})
		recorder.EXPECT().Flush()

		tracer.Terminate()

		Expect(tracer.NumInflight()).To(Equal(0))
	})
})
