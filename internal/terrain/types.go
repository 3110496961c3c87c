// Package terrain builds 2D planet terrain chunks: tile occupancy, quad
// meshes, neighbour-based autotiling, decorations and boundary colliders.
package terrain

import (
	"errors"
	"fmt"

	"github.com/Faultbox/solis/pkg/math"
)

// NoVertex marks a tile that owns no quad in the chunk's vertex buffer.
const NoVertex = -1

// Terrain errors.
var (
	ErrStateCountMismatch    = errors.New("tile state count does not match tile count")
	ErrUnknownClassification = errors.New("classification missing from tileset")
	ErrBufferMismatch        = errors.New("mesh buffers have mismatched lengths")
	ErrVertexOutOfRange      = errors.New("tile vertex index outside vertex buffer")
	ErrDuplicateTile         = errors.New("duplicate tile position")
	ErrInvalidAtlas          = errors.New("tileset atlas has invalid dimensions")
	ErrChunkNotLoaded        = errors.New("chunk is not loaded")
)

// Coord is an integer grid coordinate. Tiles use chunk-local coordinates,
// chunks use chunk indices.
type Coord struct {
	X, Y int
}

// Add returns c + other.
func (c Coord) Add(other Coord) Coord {
	return Coord{c.X + other.X, c.Y + other.Y}
}

// String returns "(x, y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Direction is one of the 8 neighbour directions. +Y points up.
type Direction int

// Directions in clockwise order starting at north.
const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest

	numDirections = 8
)

var directionOffsets = [numDirections]Coord{
	North:     {0, 1},
	NorthEast: {1, 1},
	East:      {1, 0},
	SouthEast: {1, -1},
	South:     {0, -1},
	SouthWest: {-1, -1},
	West:      {-1, 0},
	NorthWest: {-1, 1},
}

var directionNames = [numDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Offset returns the grid step for the direction.
func (d Direction) Offset() Coord {
	return directionOffsets[d]
}

// String returns the compass abbreviation.
func (d Direction) String() string {
	if d < 0 || d >= numDirections {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Directions returns all 8 directions in clockwise order from north.
func Directions() [numDirections]Direction {
	return [numDirections]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
}

// NeighborState describes what is known about a neighbouring tile.
type NeighborState uint8

// Neighbor states. Unknown covers tiles outside the grid; it never counts as an edge.
const (
	NeighborUnknown NeighborState = iota
	NeighborEmpty
	NeighborOccupied
)

// String returns a human-readable state name.
func (s NeighborState) String() string {
	switch s {
	case NeighborEmpty:
		return "Empty"
	case NeighborOccupied:
		return "Occupied"
	default:
		return "Unknown"
	}
}

// Neighborhood holds the state of all 8 neighbours indexed by Direction.
type Neighborhood [numDirections]NeighborState

// Empty reports whether the neighbour in dir is known and unoccupied.
func (n Neighborhood) Empty(dir Direction) bool {
	return n[dir] == NeighborEmpty
}

// UniformNeighborhood returns a neighbourhood with every direction set to s.
func UniformNeighborhood(s NeighborState) Neighborhood {
	var n Neighborhood
	for i := range n {
		n[i] = s
	}
	return n
}

// Bounds holds the axis-aligned bounding box of a chunk mesh.
type Bounds struct {
	Min math.Vec2
	Max math.Vec2
}

// Empty reports whether no vertex was added to the bounds.
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

func emptyBounds() Bounds {
	return Bounds{
		Min: math.Vec2{X: 1e10, Y: 1e10},
		Max: math.Vec2{X: -1e10, Y: -1e10},
	}
}

func updateBounds(b *Bounds, p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
}
