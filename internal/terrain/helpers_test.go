package terrain

import (
	"testing"

	"github.com/Faultbox/solis/pkg/math"
)

// fakeLookup places every sprite in one row of a 16px-tall atlas.
type fakeLookup struct {
	missing string
}

func (f fakeLookup) Position(name string) (float32, float32, bool) {
	if name == f.missing {
		return 0, 0, false
	}
	for _, c := range Classifications() {
		if c.String() == name {
			return float32(c) * 16, 0, true
		}
	}
	return 0, 0, false
}

func (fakeLookup) TileWidth() int   { return 16 }
func (fakeLookup) TileHeight() int  { return 16 }
func (fakeLookup) AtlasWidth() int  { return 16 * int(numClassifications) }
func (fakeLookup) AtlasHeight() int { return 16 }

var testGreen = math.Color{R: 0.2, G: 0.8, B: 0.2, A: 1}

func testDecorations() DecorationSettings {
	return DecorationSettings{
		TreeHeight:    3,
		TreeBaseColor: math.Color{R: 0.4, G: 0.2, B: 0.1, A: 1},
		TreeLeafColor: math.Color{R: 0.1, G: 0.6, B: 0.1, A: 1},
		BushHeight:    1,
		BushColor:     math.Color{R: 0.2, G: 0.5, B: 0.2, A: 1},
	}
}

// newTestChunk builds a chunk whose tiles are occupied where occupied
// returns true.
func newTestChunk(t *testing.T, l Layout, seed uint64, occupied func(Coord) bool) *Chunk {
	t.Helper()
	c, err := NewChunk(ChunkParams{
		Coord:       Coord{},
		Layout:      l,
		FeatureSize: 24,
		Buffers:     l.NewBuffers(),
		Lookup:      fakeLookup{},
		Decorations: testDecorations(),
		MainColor:   testGreen,
		Seed:        seed,
	})
	if err != nil {
		t.Fatalf("NewChunk() error = %v", err)
	}
	for _, tile := range c.Tiles().Tiles() {
		tile.SetState(occupied(tile.Pos))
	}
	return c
}

func all(Coord) bool { return true }

func inside(l Layout) func(Coord) bool {
	return l.Contains
}
