// Package generator draws secret numbers for game rounds.
package generator

import (
	"math/rand/v2"
	"time"
)

// Generator picks integers uniformly from inclusive ranges.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	now := uint64(time.Now().UnixNano())
	return NewSeeded(now, now>>32|now<<32)
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed1, seed2 uint64) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed1, seed2))}
}

// Pick returns an integer from [low, high]. It requires low <= high.
func (g *Generator) Pick(low, high int) int {
	span := uint64(high) - uint64(low)
	if span == ^uint64(0) {
		return int(g.rnd.Uint64())
	}
	return int(uint64(low) + g.rnd.Uint64N(span+1))
}
