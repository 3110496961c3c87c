package terrain

import (
	"math/rand/v2"

	"github.com/Faultbox/solis/pkg/math"
)

// DecorationChance is the 1-in-N odds of a decoration draw succeeding.
const DecorationChance = 200

// DecorationKind identifies a decoration prototype.
type DecorationKind uint8

// Decoration kinds.
const (
	DecorationTree DecorationKind = iota + 1
	DecorationBush
)

// String returns the kind name.
func (k DecorationKind) String() string {
	switch k {
	case DecorationTree:
		return "tree"
	case DecorationBush:
		return "bush"
	default:
		return "unknown"
	}
}

// DecorationSettings carries the prototype data decorations are built from.
type DecorationSettings struct {
	TreeHeight    float32
	TreeBaseColor math.Color
	TreeLeafColor math.Color
	BushHeight    float32
	BushColor     math.Color
}

// Decoration is a placed tree or bush. Position is in world units and sits
// half a sprite above the tile so the sprite rests on it.
type Decoration struct {
	Kind      DecorationKind
	Tile      Coord
	Position  math.Vec2
	BaseColor math.Color
	LeafColor math.Color
}

// rollDecoration consumes one draw for the tree and, only if that fails,
// a second draw for the bush.
func rollDecoration(rng *rand.Rand, settings DecorationSettings, origin math.Vec2, tile Coord) (Decoration, bool) {
	base := math.Vec2{X: origin.X + float32(tile.X), Y: origin.Y + float32(tile.Y)}
	if rng.IntN(DecorationChance) == 0 {
		return Decoration{
			Kind:      DecorationTree,
			Tile:      tile,
			Position:  math.Vec2{X: base.X, Y: base.Y + settings.TreeHeight/2},
			BaseColor: settings.TreeBaseColor,
			LeafColor: settings.TreeLeafColor,
		}, true
	}
	if rng.IntN(DecorationChance) == 0 {
		return Decoration{
			Kind:      DecorationBush,
			Tile:      tile,
			Position:  math.Vec2{X: base.X, Y: base.Y + settings.BushHeight/2},
			BaseColor: settings.BushColor,
		}, true
	}
	return Decoration{}, false
}
