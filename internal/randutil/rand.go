// Package randutil centralises how simulation RNGs are seeded so that all
// call sites get reproducible sequences.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided
// int64, deriving the two 64-bit seeds required by rand/v2 with a
// SplitMix64-style finalizer.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ForWorker returns an independent stream for one simulation worker. Two
// workers of the same run never share a sequence, and the same (seed,
// worker) pair always yields the same stream.
func ForWorker(seed int64, worker int) *rand.Rand {
	u := uint64(seed) + uint64(worker)*goldenRatio64
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
