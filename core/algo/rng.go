// Package algo has pure scoring and sampling primitives shared by the
// face and body pillars.
package algo

import (
	"fmt"
	"strconv"

	"github.com/auralab/aura/schema"
)

// CreateRNG returns a Mulberry32 generator seeded from a 32-bit value.
// The returned function yields floats in [0,1). It is a pure state machine:
// two generators built from the same seed produce identical sequences, with
// no global state and no external entropy.
func CreateRNG(seed uint32) func() float64 {
	state := seed
	return func() float64 {
		state += 0x6D2B79F5
		z := state
		z = (z ^ (z >> 15)) * (z | 1)
		z ^= z + (z^(z>>7))*(z|61)
		z ^= z >> 14
		return float64(z) / 4294967296.0
	}
}

// HashToSeed derives a 32-bit seed from the first 4 bytes of a hex digest.
func HashToSeed(hashHex string) (uint32, error) {
	if len(hashHex) < 8 {
		return 0, fmt.Errorf("hash %q too short for seeding: need at least 8 hex chars", hashHex)
	}
	v, err := strconv.ParseUint(hashHex[:8], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("hash %q is not hex: %w", hashHex, err)
	}
	return uint32(v), nil
}

// GenerateJitterParams produces n small perturbation vectors for stability
// sampling. Ranges are deliberately tight: rotation within ±2 degrees,
// scale within ±2%, crop offsets within ±1.5%, brightness within ±4%.
func GenerateJitterParams(seed uint32, n int) []schema.JitterParams {
	rng := CreateRNG(seed)
	params := make([]schema.JitterParams, 0, n)
	for range n {
		params = append(params, schema.JitterParams{
			RotationDeg: (rng() - 0.5) * 4.0,
			Scale:       1.0 + (rng()-0.5)*0.04,
			CropX:       (rng() - 0.5) * 0.03,
			CropY:       (rng() - 0.5) * 0.03,
			Brightness:  1.0 + (rng()-0.5)*0.08,
		})
	}
	return params
}

// SeededShuffle returns a Fisher-Yates shuffled copy of items driven by the
// given seed. The input slice is not modified.
func SeededShuffle[T any](items []T, seed uint32) []T {
	out := make([]T, len(items))
	copy(out, items)
	rng := CreateRNG(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := int(rng() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// GenerateNoise fills a slice of length n with values in [0,1) from the
// seeded generator.
func GenerateNoise(seed uint32, n int) []float64 {
	rng := CreateRNG(seed)
	noise := make([]float64, n)
	for i := range noise {
		noise[i] = rng()
	}
	return noise
}
