package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type countingStage struct {
	ticks    *[]string
	name     string
	progress bool
}

func (s countingStage) Tick() bool {
	*s.ticks = append(*s.ticks, s.name)
	return s.progress
}

var _ = Describe("ComponentBase", func() {
	It("should keep its name", func() {
		Expect(NewComponentBase("SDRAM").Name()).To(Equal("SDRAM"))
	})

	It("should reject an invalid name", func() {
		Expect(func() { NewComponentBase("sdram_0") }).To(Panic())
	})
})

var _ = Describe("MiddlewareHolder", func() {
	var (
		ticks  []string
		holder MiddlewareHolder
	)

	BeforeEach(func() {
		ticks = nil
		holder = MiddlewareHolder{}
	})

	It("should run every stage in order", func() {
		holder.AddMiddleware(countingStage{ticks: &ticks, name: "device", progress: true})
		holder.AddMiddleware(countingStage{ticks: &ticks, name: "bus"})

		Expect(holder.Tick()).To(BeTrue())
		Expect(ticks).To(Equal([]string{"device", "bus"}))
		Expect(holder.Middlewares()).To(HaveLen(2))
	})

	It("should report no progress when every stage is idle", func() {
		holder.AddMiddleware(countingStage{ticks: &ticks, name: "device"})

		Expect(holder.Tick()).To(BeFalse())
	})
})
