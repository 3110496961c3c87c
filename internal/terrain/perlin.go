package terrain

import (
	"errors"
	"fmt"

	perlin "github.com/aquilax/go-perlin"
)

// Noise generator names accepted by NewNoiseSource.
const (
	NoiseSimplex = "simplex"
	NoisePerlin  = "perlin"
)

// ErrUnknownNoise is returned for an unrecognized generator name.
var ErrUnknownNoise = errors.New("unknown noise generator")

// Perlin is three-octave Perlin noise. Its range is narrower than simplex,
// so the same threshold yields more land.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin seeds a Perlin generator.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(2, 2, 3, seed)}
}

// Eval samples the noise at (x, y).
func (n *Perlin) Eval(x, y float64) float64 {
	return n.p.Noise2D(x, y)
}

// NewNoiseSource returns the generator called name. Empty means simplex.
func NewNoiseSource(name string, seed int64) (NoiseSource, error) {
	switch name {
	case "", NoiseSimplex:
		return NewNoise(seed), nil
	case NoisePerlin:
		return NewPerlin(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNoise, name)
	}
}
