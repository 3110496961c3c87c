package terrain

import (
	"fmt"

	"github.com/Faultbox/solis/pkg/math"
)

// TilesetLookup maps a classification name to the pixel position of its
// sprite inside the atlas.
type TilesetLookup interface {
	Position(name string) (x, y float32, ok bool)
	TileWidth() int
	TileHeight() int
	AtlasWidth() int
	AtlasHeight() int
}

// UVRect is the normalized atlas rectangle of one sprite.
type UVRect struct {
	Min  math.Vec2
	Size math.Vec2
}

// Corners returns the 4 corner UVs in quad vertex order.
func (r UVRect) Corners() [4]math.Vec2 {
	return [4]math.Vec2{
		r.Min,
		{X: r.Min.X + r.Size.X, Y: r.Min.Y},
		{X: r.Min.X, Y: r.Min.Y + r.Size.Y},
		{X: r.Min.X + r.Size.X, Y: r.Min.Y + r.Size.Y},
	}
}

// SpriteRect resolves the UV rectangle for a classification.
func SpriteRect(lookup TilesetLookup, c Classification) (UVRect, error) {
	aw, ah := lookup.AtlasWidth(), lookup.AtlasHeight()
	if aw <= 0 || ah <= 0 {
		return UVRect{}, fmt.Errorf("%w: %dx%d", ErrInvalidAtlas, aw, ah)
	}
	px, py, ok := lookup.Position(c.String())
	if !ok {
		return UVRect{}, fmt.Errorf("%w: %s", ErrUnknownClassification, c)
	}
	return UVRect{
		Min: math.Vec2{X: px / float32(aw), Y: py / float32(ah)},
		Size: math.Vec2{
			X: float32(lookup.TileWidth()) / float32(aw),
			Y: float32(lookup.TileHeight()) / float32(ah),
		},
	}, nil
}
