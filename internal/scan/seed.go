package scan

import (
	"encoding/binary"
	"math/rand"
)

// DeriveSeed maps uploaded image bytes to the seed driving every
// pseudo-random choice for the submission. Identical bytes always yield the
// identical seed: the first 8 bytes are read as an unsigned little-endian
// integer, zero-padded when fewer are available.
//
// An empty input returns an arbitrary seed, the only non-deterministic path
// in the pipeline, taken when no image was supplied.
func DeriveSeed(b []byte) uint64 {
	if len(b) == 0 {
		return uint64(rand.Int63n(1_000_000_000))
	}
	var buf [8]byte
	copy(buf[:], b)
	return binary.LittleEndian.Uint64(buf[:])
}

// SampleSeed picks a seed for the "use a sample swatch" path.
func SampleSeed() uint64 {
	return uint64(10_000 + rand.Intn(90_000))
}

// NewStream returns the seeded stream for one submission. math/rand's source
// is stable across Go releases, which is what makes every downstream draw
// reproducible for a given seed.
func NewStream(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(seed)))
}
