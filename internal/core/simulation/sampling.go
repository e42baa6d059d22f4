package simulation

import (
	"math"
	"math/rand/v2"

	"github.com/zeusync/formations/internal/core/systems/physics"
)

// TwoDistinctIndices draws two different indices in [0, count), both different from
// exclude, by rejection sampling. count must be at least 3.
func TwoDistinctIndices(rng *rand.Rand, count, exclude int) (int, int) {
	if count < MinEntities {
		panic("simulation: TwoDistinctIndices needs at least 3 candidates")
	}

	first := rng.IntN(count)
	for first == exclude {
		first = rng.IntN(count)
	}
	second := rng.IntN(count)
	for second == first || second == exclude {
		second = rng.IntN(count)
	}
	return first, second
}

// pointInDisk is uniform over the disk of the given radius around the origin.
func pointInDisk(rng *rand.Rand, radius float64) physics.Vec2 {
	r := radius * math.Sqrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()
	return physics.Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
