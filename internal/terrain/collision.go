package terrain

import "github.com/Faultbox/solis/pkg/math"

// Collider is an axis-aligned box relative to the chunk origin.
type Collider struct {
	Tile   Coord
	Center math.Vec2
	Size   math.Vec2
}

// IsBoundaryTile reports whether any known neighbour of pos is empty.
func IsBoundaryTile(g *TileGrid, pos Coord) bool {
	for _, dir := range Directions() {
		if t, ok := g.Neighbor(pos, dir); ok && !t.State() {
			return true
		}
	}
	return false
}

// BuildColliders emits one unit box per occupied boundary tile that owns
// a quad. Boxes are centered on the quad.
func BuildColliders(g *TileGrid, vertices []math.Vec3) []Collider {
	var colliders []Collider
	for _, t := range g.Tiles() {
		if !t.State() || !t.HasQuad() {
			continue
		}
		vi := t.VertexIndex()
		if vi < 0 || vi >= len(vertices) {
			continue
		}
		if !IsBoundaryTile(g, t.Pos) {
			continue
		}
		colliders = append(colliders, Collider{
			Tile:   t.Pos,
			Center: math.Vec2{X: vertices[vi].X + 0.5, Y: vertices[vi].Y + 0.5},
			Size:   math.Vec2{X: 1, Y: 1},
		})
	}
	return colliders
}
