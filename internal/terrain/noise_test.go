package terrain

import (
	"errors"
	"testing"
)

func TestTileStateFromNoise(t *testing.T) {
	tests := []struct {
		val  float64
		want bool
	}{
		{-1, false},
		{-0.41, false},
		{-0.4, true},
		{0, true},
		{1, true},
	}
	for _, tt := range tests {
		if got := TileStateFromNoise(tt.val); got != tt.want {
			t.Errorf("TileStateFromNoise(%v) = %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a, b, other := NewNoise(1337), NewNoise(1337), NewNoise(7)
	differs := false
	for i := 0; i < 200; i++ {
		x, y := float64(i)*0.37-30, float64(i)*0.11+5
		va := a.Eval(x, y)
		if va != b.Eval(x, y) {
			t.Fatalf("Eval(%v, %v) differs for the same seed", x, y)
		}
		if va < -1.5 || va > 1.5 {
			t.Errorf("Eval(%v, %v) = %v out of range", x, y, va)
		}
		if va != other.Eval(x, y) {
			differs = true
		}
	}
	if !differs {
		t.Error("different seeds produced identical noise")
	}
}

func TestChunkSeed(t *testing.T) {
	if ChunkSeed(1, Coord{2, 3}) != ChunkSeed(1, Coord{2, 3}) {
		t.Error("ChunkSeed is not stable")
	}
	pairs := [][2]Coord{
		{{1, 23}, {12, 3}},
		{{0, 1}, {1, 0}},
		{{-1, 0}, {1, 0}},
	}
	for _, p := range pairs {
		if ChunkSeed(9, p[0]) == ChunkSeed(9, p[1]) {
			t.Errorf("ChunkSeed collides for %s and %s", p[0], p[1])
		}
	}
	if ChunkSeed(1, Coord{}) == ChunkSeed(2, Coord{}) {
		t.Error("planet seed ignored")
	}
}

func TestNewNoiseSource(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{NoiseSimplex, false},
		{NoisePerlin, false},
		{"value", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewNoiseSource(tt.name, 42)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownNoise) {
					t.Fatalf("err = %v, want ErrUnknownNoise", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if src == nil {
				t.Fatal("nil source")
			}
		})
	}
}

func TestPerlinDeterministic(t *testing.T) {
	a, b := NewPerlin(7), NewPerlin(7)
	for i := 0; i < 50; i++ {
		x, y := float64(i)*0.37, float64(i)*-0.21
		va, vb := a.Eval(x, y), b.Eval(x, y)
		if va != vb {
			t.Fatalf("Eval(%v, %v): %v != %v", x, y, va, vb)
		}
		if va < -2 || va > 2 {
			t.Fatalf("Eval(%v, %v) = %v out of range", x, y, va)
		}
	}
}
