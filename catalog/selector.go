package catalog

import (
	"math/rand/v2"
)

// Selector picks clips uniformly at random.
// It is not safe for concurrent use; the playback loop owns it.
type Selector struct {
	rng *rand.Rand
}

// NewSelector returns a selector seeded with seed, or with a random seed when seed is 0.
func NewSelector(seed uint64) *Selector {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Selector{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Pick returns one clip of c, each with equal probability.
func (s *Selector) Pick(c Catalog) (string, error) {
	if c.IsEmpty() {
		return "", ErrEmptyCatalog
	}
	return c.At(s.rng.IntN(c.Len())), nil
}
