package sdram

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sdramaxi/sim"
)

var _ = Describe("Config", func() {
	It("should derive the default cycle counts", func() {
		cfg := DefaultConfig()

		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.RowWidth()).To(Equal(13))
		Expect(cfg.NumBanks()).To(Equal(4))
		Expect(cfg.Timing()).To(Equal(Timing{
			TRCD:            1,
			TRP:             1,
			TRFC:            3,
			TMRD:            2,
			CASLatency:      2,
			ReadLatency:     3,
			RefreshInterval: 389,
			StartDelay:      5000,
		}))
		Expect(cfg.Mode().Encode()).To(Equal(uint16(0x221)))
	})

	It("should round durations up to whole cycles", func() {
		cfg := DefaultConfig()
		cfg.Freq = 133 * sim.MHz

		t := cfg.Timing()

		Expect(t.TRCD).To(Equal(3))
		Expect(t.TRP).To(Equal(3))
		Expect(t.TRFC).To(Equal(8))
	})

	It("should bound the gap between refreshes", func() {
		t := DefaultConfig().Timing()

		Expect(t.RefreshSlack()).To(Equal(14))
		Expect(t.MaxRefreshGap()).To(Equal(409))
	})

	DescribeTable("should reject",
		func(mutate func(*Config)) {
			cfg := DefaultConfig()
			mutate(&cfg)

			Expect(cfg.Validate()).To(MatchError(ErrInvalidConfig))
		},
		Entry("a zero frequency", func(c *Config) { c.Freq = 0 }),
		Entry("a CAS latency of 4", func(c *Config) { c.CASLatency = 4 }),
		Entry("too few row bits", func(c *Config) { c.AddrWidth = 20 }),
		Entry("a column width reaching A10", func(c *Config) { c.ColWidth = 11 }),
		Entry("no in-flight slot", func(c *Config) { c.InflightDepth = 0 }),
		Entry("a zero tRP", func(c *Config) { c.TRPns = 0 }),
		Entry("a refresh window shorter than a refresh",
			func(c *Config) { c.RefreshWindowMs = 0.01 }),
		Entry("no start delay", func(c *Config) { c.StartDelayUs = 0 }),
	)

	It("should refuse to build a controller from an invalid config", func() {
		cfg := DefaultConfig()
		cfg.CASLatency = 0

		_, err := NewController("SDRAM", cfg)

		Expect(err).To(MatchError(ErrInvalidConfig))
	})
})
