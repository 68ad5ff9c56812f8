package crafting

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// randomRoller is the default Roller backed by a seeded PCG source.
// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
type randomRoller struct {
	rng *rand.Rand
}

// NewRoller creates a Roller seeded from the given value. The same seed
// reproduces the same sequence of outcome rolls.
func NewRoller(seed int64) Roller {
	// #nosec G404
	return &randomRoller{
		rng: rand.New(rand.NewPCG(seedWord(seed, "hi"), seedWord(seed, "lo"))),
	}
}

func (r *randomRoller) Roll() float64 {
	return r.rng.Float64() * 100
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// FixedRoller always returns the same roll. Test fixture: a roll of 0 always
// succeeds against any positive success rate, a roll just under 100 always
// fails.
type FixedRoller struct {
	Value float64
}

func (f *FixedRoller) Roll() float64 {
	return f.Value
}
