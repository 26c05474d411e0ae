package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Naming", func() {
	DescribeTable("valid names",
		func(name string) {
			Expect(func() { NameMustBeValid(name) }).NotTo(Panic())
		},
		Entry("single element", "SDRAM"),
		Entry("hierarchy", "SDRAM.InflightFIFO"),
		Entry("indexed", "Chip.Bank[3]"),
	)

	DescribeTable("invalid names",
		func(name string) {
			Expect(func() { NameMustBeValid(name) }).To(Panic())
		},
		Entry("empty", ""),
		Entry("underscore", "SDRAM_0"),
		Entry("dash", "SDRAM-0"),
		Entry("lower case", "sdram"),
		Entry("unclosed bracket", "Bank[0"),
		Entry("unopened bracket", "Bank0]"),
		Entry("empty element", "SDRAM..Chip"),
	)

	It("should build names", func() {
		Expect(BuildName("", "SDRAM")).To(Equal("SDRAM"))
		Expect(BuildName("SDRAM", "Chip")).To(Equal("SDRAM.Chip"))
		Expect(BuildNameWithIndex("Chip", "Bank", 2)).To(Equal("Chip.Bank[2]"))
	})
})
