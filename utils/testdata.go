package utils

import (
	"math/rand"

	"github.com/notargets/VecKernel/device"
)

// TestSizes returns the size ladder used by the randomized algorithm
// tests: empty, single-element, sub-block, exact-block and multi-block
// lengths.
func TestSizes() []int {
	return []int{0, 1, 2, 12, 63, 64, 211, 256, 344, 512, 1024, 2048, 5096}
}

// SeedOffsets returns the offsets added to a test's base seed so each
// randomized scenario runs against several independent draws.
func SeedOffsets() []int64 {
	return []int64{0, 17, 251}
}

// RandomSlice returns n elements uniformly distributed in [lo, hi],
// deterministic in seed. Integer types draw whole values; float types
// draw continuously.
func RandomSlice[T device.Element](n, lo, hi int, seed int64) []T {
	rng := rand.New(rand.NewSource(seed))
	out := make([]T, n)

	var zero T
	switch any(zero).(type) {
	case float32, float64:
		span := float64(hi - lo)
		for i := range out {
			out[i] = T(lo) + T(span*rng.Float64())
		}
	default:
		span := hi - lo + 1
		for i := range out {
			out[i] = T(lo + rng.Intn(span))
		}
	}
	return out
}
