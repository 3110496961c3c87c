package terrain

import "fmt"

// TileGrid is an arena of tiles keyed by coordinate. Iteration order is
// insertion order, and bulk state updates rely on it.
type TileGrid struct {
	index map[Coord]int
	tiles []*Tile
}

// NewTileGrid creates an empty grid with room for capacity tiles.
func NewTileGrid(capacity int) *TileGrid {
	return &TileGrid{
		index: make(map[Coord]int, capacity),
		tiles: make([]*Tile, 0, capacity),
	}
}

// Add inserts a new tile. Positions must be unique.
func (g *TileGrid) Add(pos Coord, vertexIndex int, occupied bool) (*Tile, error) {
	if _, exists := g.index[pos]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTile, pos)
	}
	t := NewTile(pos, vertexIndex, occupied)
	g.index[pos] = len(g.tiles)
	g.tiles = append(g.tiles, t)
	return t, nil
}

// Tile returns the tile at pos.
func (g *TileGrid) Tile(pos Coord) (*Tile, bool) {
	i, ok := g.index[pos]
	if !ok {
		return nil, false
	}
	return g.tiles[i], true
}

// Tiles returns the tiles in iteration order. The slice is shared.
func (g *TileGrid) Tiles() []*Tile {
	return g.tiles
}

// Len returns the number of tiles.
func (g *TileGrid) Len() int {
	return len(g.tiles)
}

// Neighbor returns the tile adjacent to pos in dir.
func (g *TileGrid) Neighbor(pos Coord, dir Direction) (*Tile, bool) {
	return g.Tile(pos.Add(dir.Offset()))
}

// Neighborhood returns the state of all 8 neighbours of pos.
func (g *TileGrid) Neighborhood(pos Coord) Neighborhood {
	var n Neighborhood
	for _, dir := range Directions() {
		t, ok := g.Neighbor(pos, dir)
		switch {
		case !ok:
			n[dir] = NeighborUnknown
		case t.State():
			n[dir] = NeighborOccupied
		default:
			n[dir] = NeighborEmpty
		}
	}
	return n
}

// States returns tile occupancy in iteration order.
func (g *TileGrid) States() []bool {
	states := make([]bool, len(g.tiles))
	for i, t := range g.tiles {
		states[i] = t.State()
	}
	return states
}

// SetStates applies states in iteration order.
func (g *TileGrid) SetStates(states []bool) error {
	if len(states) != len(g.tiles) {
		return fmt.Errorf("%w: got %d states for %d tiles", ErrStateCountMismatch, len(states), len(g.tiles))
	}
	for i, t := range g.tiles {
		t.SetState(states[i])
	}
	return nil
}

// Clear removes every tile.
func (g *TileGrid) Clear() {
	clear(g.index)
	// Slices returned by Tiles keep the old tiles.
	g.tiles = make([]*Tile, 0, cap(g.tiles))
}
