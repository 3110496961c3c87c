package terrain

import "math/rand/v2"

// ChunkSeed derives a stable per-chunk seed from the planet seed and the
// chunk coordinate.
func ChunkSeed(planetSeed int64, c Coord) uint64 {
	h := uint64(planetSeed)
	h ^= uint64(int64(c.X)) * 0x9e3779b97f4a7c15
	h ^= uint64(int64(c.Y)) * 0xc2b2ae3d27d4eb4f
	return mix64(h)
}

// newChunkRand returns the decoration stream for a chunk.
func newChunkRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xda942042e4dd58b5))
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
