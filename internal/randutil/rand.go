// Package randutil derives reproducible math/rand/v2 generators from a single
// int64 run seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand whose whole sequence is fixed by seed.
func New(seed int64) *rand.Rand {
	return rand.New(NewSource(seed))
}

// NewSource returns the PCG source behind New, for libraries that take a
// rand.Source directly (gonum distributions).
func NewSource(seed int64) rand.Source {
	u := uint64(seed)
	return rand.NewPCG(mix(u), mix(u+goldenRatio64))
}

// Derive returns the seed of an independent stream of the run seed. Streams
// with different ids do not overlap in practice.
func Derive(seed int64, stream int) int64 {
	return int64(mix(uint64(seed) ^ mix(uint64(stream)+goldenRatio64)))
}

// SeedOrNow keeps a non-zero seed and replaces zero with a time-derived one.
func SeedOrNow(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// splitmix64 finalizer
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
