package terrain

import "math/rand/v2"

// OccupiedThreshold is the lowest noise value that yields solid ground.
const OccupiedThreshold = -0.4

// TileStateFromNoise maps a noise sample to tile occupancy.
func TileStateFromNoise(val float64) bool {
	return val >= OccupiedThreshold
}

// NoiseSource samples seeded 2D noise. Eval must be safe for concurrent use.
type NoiseSource interface {
	Eval(x, y float64) float64
}

// 2D simplex gradients.
var grad2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Noise is seeded 2D simplex noise with output roughly in [-1, 1].
// Safe for concurrent reads once constructed.
type Noise struct {
	perm [512]uint8
}

// NewNoise builds the permutation table for seed.
func NewNoise(seed int64) *Noise {
	n := &Noise{}
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x5851f42d4c957f2d))
	rng.Shuffle(len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })
	for i := range n.perm {
		n.perm[i] = p[i&255]
	}
	return n
}

// Eval samples the noise at (x, y).
func (n *Noise) Eval(x, y float64) float64 {
	const (
		skew   = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		unskew = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	s := (x + y) * skew
	i := floor(x + s)
	j := floor(y + s)
	t := float64(i+j) * unskew
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + unskew
	y1 := y0 - float64(j1) + unskew
	x2 := x0 - 1 + 2*unskew
	y2 := y0 - 1 + 2*unskew

	ii := i & 255
	jj := j & 255
	g0 := n.perm[ii+int(n.perm[jj])] & 7
	g1 := n.perm[ii+i1+int(n.perm[jj+j1])] & 7
	g2 := n.perm[ii+1+int(n.perm[jj+1])] & 7

	return 70 * (corner(g0, x0, y0) + corner(g1, x1, y1) + corner(g2, x2, y2))
}

func corner(g uint8, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	t *= t
	return t * t * (grad2[g][0]*x + grad2[g][1]*y)
}

func floor(v float64) int {
	i := int(v)
	if v < float64(i) {
		return i - 1
	}
	return i
}
