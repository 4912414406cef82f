package seed

import (
	"fmt"
	"math/big"
	"math/rand/v2"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Seed is the 32-bit value that controls every random choice of a design.
type Seed uint32

// Source records how a seed was derived from the user's text.
type Source int

const (
	// SourceRandom means the text was empty and the seed was drawn at random.
	SourceRandom Source = iota
	// SourceInteger means the text was a base-10 integer.
	SourceInteger
	// SourceHash means the text was hashed.
	SourceHash
)

// String returns a short label for the source.
func (s Source) String() string {
	switch s {
	case SourceInteger:
		return "integer"
	case SourceHash:
		return "hash"
	default:
		return "random"
	}
}

var modulus = new(big.Int).Lsh(big.NewInt(1), 32)

// Resolve derives a seed from free-form text. It never fails.
func Resolve(text string) (Seed, Source) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Random(), SourceRandom
	}
	if n, ok := new(big.Int).SetString(trimmed, 10); ok {
		// big.Int.Mod is Euclidean, so negative input lands in [0, 2^32).
		return Seed(n.Mod(n, modulus).Uint64()), SourceInteger
	}
	return Seed(xxhash.Sum64String(text) % (1 << 32)), SourceHash
}

// Random draws a uniform seed in [0, 2^32) from the process-wide source.
func Random() Seed {
	return Seed(rand.Uint32())
}

// String returns the decimal form of the seed.
func (s Seed) String() string {
	return fmt.Sprintf("%d", uint32(s))
}

// Filename returns the download name for a design generated with s.
func (s Seed) Filename() string {
	return fmt.Sprintf("tshirt_style_%d.png", uint32(s))
}

// Streams holds the two random streams of one pipeline invocation.
type Streams struct {
	// General drives scalar choices: colors, shape kinds, sizes, positions.
	General *rand.Rand
	// Array drives per-pixel noise fields.
	Array *rand.Rand
}

// Streams builds fresh streams for s. Each call returns streams positioned
// at the start of the sequence.
func (s Seed) Streams() *Streams {
	v := uint64(s)
	return &Streams{
		General: rand.New(rand.NewPCG(v, v^0xdeadbeef)),
		Array:   rand.New(rand.NewPCG(v, v^0x9e3779b97f4a7c15)),
	}
}

// IntRange returns a uniform integer in the closed interval [lo, hi].
// If hi < lo it returns lo.
func IntRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// Uniform returns a uniform float in [lo, hi).
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// Choice returns a uniformly chosen element of items. items must be non-empty.
func Choice[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
