// Package testutil provides testing utilities for peakgo.
//
// This package is intended for use in tests and benchmarks only. It provides
// helpers for generating noise-like complex series, planting peaks, and
// computing ground-truth window maxima with a straight scan.
package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed)) //nolint:gosec // deterministic test data
}

// FillNoise fills dst with complex samples whose real and imaginary parts
// are uniform in [-scale, scale).
func (r *RNG) FillNoise(dst []complex64, scale float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		re := (r.rand.Float32()*2 - 1) * scale
		im := (r.rand.Float32()*2 - 1) * scale
		dst[i] = complex(re, im)
	}
}

// ConstantSeries returns a series of the given length with every sample set
// to (magnitude, 0).
func ConstantSeries(length int, magnitude float32) []complex64 {
	s := make([]complex64, length)
	for i := range s {
		s[i] = complex(magnitude, 0)
	}
	return s
}

// PlantPeak sets series[index] to a sample of the given magnitude on the
// real axis and returns the series for chaining.
func PlantPeak(series []complex64, index int, magnitude float32) []complex64 {
	series[index] = complex(magnitude, 0)
	return series
}

// WindowMaxima computes ground-truth per-window maxima with a plain scan:
// for each window it returns the index of the largest squared magnitude, or
// -1 when no sample in the window strictly exceeds thresholdSq.
func WindowMaxima(series []complex64, window int, thresholdSq float32) []int {
	blocks := (len(series) + window - 1) / window
	out := make([]int, blocks)

	for w := 0; w < blocks; w++ {
		s := w * window
		e := s + window
		if e > len(series) {
			e = len(series)
		}

		best := -1
		var bestVal float32
		for i := s; i < e; i++ {
			re := real(series[i])
			im := imag(series[i])
			if v := re*re + im*im; v > bestVal {
				bestVal = v
				best = i
			}
		}

		if bestVal > thresholdSq {
			out[w] = best
		} else {
			out[w] = -1
		}
	}

	return out
}
