package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type testCycleTeller struct {
	cycle uint64
}

func (c *testCycleTeller) CurrentCycle() uint64 {
	return c.cycle
}

var _ = Describe("LatencyTracer", func() {
	var (
		clock  *testCycleTeller
		tracer *LatencyTracer
	)

	BeforeEach(func() {
		clock = &testCycleTeller{}
		tracer = NewLatencyTracer(clock, nil)
	})

	It("should keep read and write latencies apart", func() {
		tracer.StartTask(Task{ID: "r1", Kind: "req_in", What: "read"})
		tracer.StartTask(Task{ID: "w1", Kind: "req_in", What: "write"})

		clock.cycle = 4
		tracer.StartTask(Task{ID: "r2", Kind: "req_in", What: "read"})
		tracer.StepTask(Task{ID: "r2", Steps: []TaskStep{{What: "READ"}}})

		clock.cycle = 6
		tracer.EndTask(Task{ID: "w1"})

		clock.cycle = 10
		tracer.EndTask(Task{ID: "r1"})

		clock.cycle = 12
		tracer.EndTask(Task{ID: "r2"})

		Expect(tracer.Whats()).To(Equal([]string{"read", "write"}))
		Expect(tracer.Count("read")).To(Equal(uint64(2)))
		Expect(tracer.Count("write")).To(Equal(uint64(1)))
		Expect(tracer.TotalCount()).To(Equal(uint64(3)))
		Expect(tracer.MeanCycles("read")).To(Equal(9.0))
		Expect(tracer.MeanCycles("write")).To(Equal(6.0))
		Expect(tracer.MaxCycles("read")).To(Equal(uint64(10)))
		Expect(tracer.OverallMeanCycles()).To(Equal(8.0))
		Expect(tracer.InFlight()).To(BeZero())
	})

	It("should skip tasks the filter rejects", func() {
		tracer = NewLatencyTracer(clock, WhatIs("write"))

		tracer.StartTask(Task{ID: "r1", What: "read"})
		clock.cycle = 3
		tracer.EndTask(Task{ID: "r1"})

		Expect(tracer.TotalCount()).To(BeZero())
		Expect(tracer.MeanCycles("read")).To(BeZero())
		Expect(tracer.OverallMeanCycles()).To(BeZero())
	})

	It("should leave unfinished tasks out of the averages", func() {
		tracer.StartTask(Task{ID: "r1", What: "read"})
		clock.cycle = 7
		tracer.EndTask(Task{ID: "unknown"})

		Expect(tracer.TotalCount()).To(BeZero())
		Expect(tracer.InFlight()).To(Equal(1))
	})
})
