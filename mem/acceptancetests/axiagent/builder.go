package axiagent

import (
	"log"
	"math/rand"

	"github.com/sarchlab/sdramaxi/mem/axi"
)

// Builder can build agents.
type Builder struct {
	seed           int64
	maxAddress     uint32
	numWrites      int
	maxOutstanding int
	backpressure   bool
	partialStrobes bool
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() *Builder {
	return &Builder{
		seed:           1,
		maxAddress:     1 << 20,
		numWrites:      1000,
		maxOutstanding: 4,
		partialStrobes: true,
	}
}

// WithSeed sets the seed of the random generator.
func (b *Builder) WithSeed(seed int64) *Builder {
	b.seed = seed
	return b
}

// WithMaxAddress sets the size of the address range that the bursts cover.
func (b *Builder) WithMaxAddress(addr uint32) *Builder {
	b.maxAddress = addr
	return b
}

// WithNumWrites sets the number of write bursts. Each is read back once.
func (b *Builder) WithNumWrites(n int) *Builder {
	b.numWrites = n
	return b
}

// WithMaxOutstanding sets the number of writes that may await a response.
func (b *Builder) WithMaxOutstanding(n int) *Builder {
	b.maxOutstanding = n
	return b
}

// WithBackpressure makes the agent randomly refuse responses.
func (b *Builder) WithBackpressure(on bool) *Builder {
	b.backpressure = on
	return b
}

// WithPartialStrobes makes some write beats update only some bytes.
func (b *Builder) WithPartialStrobes(on bool) *Builder {
	b.partialStrobes = on
	return b
}

// Build creates a new agent.
func (b *Builder) Build() *Agent {
	if b.maxAddress < axi.MaxWrapBeats*axi.BeatBytes {
		log.Panicf("axiagent: address range of %d bytes is too small",
			b.maxAddress)
	}

	if b.maxOutstanding < 1 {
		log.Panic("axiagent: at least one outstanding write is required")
	}

	return &Agent{
		rng:            rand.New(rand.NewSource(b.seed)),
		maxAddress:     b.maxAddress &^ (axi.BeatBytes - 1),
		numWrites:      b.numWrites,
		maxOutstanding: b.maxOutstanding,
		backpressure:   b.backpressure,
		partialStrobes: b.partialStrobes,
		shadow:         make(map[uint32]byte),
	}
}
