package sdramchip

import (
	"log"

	"github.com/sarchlab/sdramaxi/mem/mem"
)

// Builder can build SDRAM chips.
type Builder struct {
	colWidth, bankWidth, rowWidth int

	timing        Timing
	storage       *mem.Storage
	maxViolations int
}

// MakeBuilder creates a builder for a 32MB x16 device clocked at 50MHz.
func MakeBuilder() Builder {
	return Builder{
		colWidth:  9,
		bankWidth: 2,
		rowWidth:  13,
		timing: Timing{
			TRCD:          1,
			TRP:           1,
			TRFC:          3,
			TMRD:          2,
			StartDelay:    5000,
			MaxRefreshGap: 780,
		},
		maxViolations: 1000,
	}
}

// WithGeometry sets the number of column, bank and row address bits.
func (b Builder) WithGeometry(colWidth, bankWidth, rowWidth int) Builder {
	b.colWidth = colWidth
	b.bankWidth = bankWidth
	b.rowWidth = rowWidth

	return b
}

// WithTiming sets the command spacing that the chip enforces.
func (b Builder) WithTiming(t Timing) Builder {
	b.timing = t
	return b
}

// WithStorage sets the storage that holds the cells. The storage must be
// large enough for the geometry.
func (b Builder) WithStorage(s *mem.Storage) Builder {
	b.storage = s
	return b
}

// WithMaxViolations limits how many violations are kept. Zero keeps all.
func (b Builder) WithMaxViolations(n int) Builder {
	b.maxViolations = n
	return b
}

// Capacity returns the number of bytes the geometry addresses.
func (b Builder) Capacity() uint64 {
	return 2 << (b.colWidth + b.bankWidth + b.rowWidth)
}

// Build creates a new chip with the clock disabled and every bank closed.
func (b Builder) Build(name string) *Chip {
	if b.colWidth < 1 || b.bankWidth < 0 || b.rowWidth < 1 {
		log.Panicf("sdramchip: invalid geometry col=%d bank=%d row=%d",
			b.colWidth, b.bankWidth, b.rowWidth)
	}

	storage := b.storage
	if storage == nil {
		storage = mem.NewStorage(b.Capacity())
	}

	if storage.Capacity() < b.Capacity() {
		log.Panicf("sdramchip: storage of %d bytes cannot hold %d bytes",
			storage.Capacity(), b.Capacity())
	}

	c := &Chip{
		name:          name,
		timing:        b.timing,
		storage:       storage,
		colWidth:      b.colWidth,
		bankWidth:     b.bankWidth,
		rowWidth:      b.rowWidth,
		ckeSince:      never,
		refreshAt:     never,
		banks:         make([]bankState, 1<<b.bankWidth),
		maxViolations: b.maxViolations,
	}

	for i := range c.banks {
		c.banks[i].prechargeAt = never
	}

	return c
}
