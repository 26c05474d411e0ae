package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/sdramaxi/sim"
)

type hookedDomain struct {
	*sim.HookableBase
}

func (d hookedDomain) Name() string {
	return "Domain"
}

var _ = Describe("Trace hook", func() {
	var (
		mockCtrl *gomock.Controller
		tracer   *MockTracer
		domain   hookedDomain
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		tracer = NewMockTracer(mockCtrl)
		domain = hookedDomain{HookableBase: &sim.HookableBase{}}
		CollectTrace(domain, tracer)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should not attach the same tracer twice", func() {
		Expect(func() { CollectTrace(domain, tracer) }).To(Panic())
	})

	It("should forward the task life cycle", func() {
		gomock.InOrder(
			tracer.EXPECT().StartTask(gomock.Any()).Do(func(t Task) {
				Expect(t.ID).To(Equal("1"))
				Expect(t.Location).To(Equal("Domain"))
			}),
			tracer.EXPECT().StepTask(gomock.Any()).Do(func(t Task) {
				Expect(t.Steps[0].What).To(Equal("activate"))
			}),
			tracer.EXPECT().EndTask(Task{ID: "1"}),
		)

		StartTask("1", "", domain, "req_in", "read", nil)
		AddTaskStep("1", domain, "activate")
		EndTask("1", domain)
	})
})
