package terrain

// Tile is a single terrain cell. Neighbours are not stored; ask the
// owning TileGrid.
type Tile struct {
	Pos         Coord
	vertexIndex int
	occupied    bool
}

// NewTile creates a tile. Pass NoVertex for tiles without a quad.
func NewTile(pos Coord, vertexIndex int, occupied bool) *Tile {
	return &Tile{Pos: pos, vertexIndex: vertexIndex, occupied: occupied}
}

// State reports whether the tile is occupied.
func (t *Tile) State() bool {
	return t.occupied
}

// SetState sets the tile occupancy.
func (t *Tile) SetState(occupied bool) {
	t.occupied = occupied
}

// BinaryState returns 1 for an occupied tile and 0 otherwise.
// Derived from the current state on every call.
func (t *Tile) BinaryState() int {
	if t.occupied {
		return 1
	}
	return 0
}

// VertexIndex returns the first vertex of the tile's quad, or NoVertex.
func (t *Tile) VertexIndex() int {
	return t.vertexIndex
}

// HasQuad reports whether the tile owns a quad.
func (t *Tile) HasQuad() bool {
	return t.vertexIndex != NoVertex
}
