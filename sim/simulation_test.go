package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

type namedHandler struct {
	*ComponentBase
}

func (h *namedHandler) Handle(_ Event) error {
	return nil
}

var _ = Describe("Simulation", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		s        *Simulation
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)
		s = NewSimulation(engine)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should register components", func() {
		a := &namedHandler{NewComponentBase("A")}
		b := &namedHandler{NewComponentBase("B")}

		s.RegisterComponent(a)
		s.RegisterComponent(b)

		Expect(s.Engine()).To(BeIdenticalTo(engine))
		Expect(s.Components()).To(Equal([]Component{a, b}))
		Expect(s.GetComponentByName("A")).To(BeIdenticalTo(a))
		Expect(s.GetComponentByName("B")).To(BeIdenticalTo(b))
		Expect(s.GetComponentByName("C")).To(BeNil())
	})

	It("should panic on duplicate names", func() {
		s.RegisterComponent(&namedHandler{NewComponentBase("A")})

		Expect(func() {
			s.RegisterComponent(&namedHandler{NewComponentBase("A")})
		}).To(Panic())
	})
})
