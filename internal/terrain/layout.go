package terrain

import (
	"fmt"

	"github.com/Faultbox/solis/pkg/math"
)

// Layout describes the tile arrangement of a chunk. Margin tiles surround
// the chunk without owning quads so edge tiles can see across the seam.
type Layout struct {
	Width  int
	Height int
	Margin int
}

// QuadCount returns the number of quads (tiles inside the chunk).
func (l Layout) QuadCount() int {
	return l.Width * l.Height
}

// TileCount returns the number of tiles including the margin ring.
func (l Layout) TileCount() int {
	return (l.Width + 2*l.Margin) * (l.Height + 2*l.Margin)
}

// Validate checks the layout dimensions.
func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("invalid chunk size %dx%d", l.Width, l.Height)
	}
	if l.Margin < 0 {
		return fmt.Errorf("invalid chunk margin %d", l.Margin)
	}
	return nil
}

// Contains reports whether pos lies inside the chunk proper.
func (l Layout) Contains(pos Coord) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < l.Width && pos.Y < l.Height
}

// MeshBuffers holds the per-vertex channels of a chunk mesh. Each quad
// uses 4 consecutive vertices: bottom-left, bottom-right, top-left, top-right.
type MeshBuffers struct {
	Vertices []math.Vec3
	UV       []math.Vec2
	Colors   []math.Color
}

// Validate checks that every channel has the same length and whole quads.
func (b MeshBuffers) Validate() error {
	n := len(b.Vertices)
	if len(b.UV) != n || len(b.Colors) != n {
		return fmt.Errorf("%w: vertices=%d uv=%d colors=%d", ErrBufferMismatch, n, len(b.UV), len(b.Colors))
	}
	if n%4 != 0 {
		return fmt.Errorf("%w: %d vertices is not a whole number of quads", ErrBufferMismatch, n)
	}
	return nil
}

// NewBuffers allocates the vertex, UV and color channels for the layout and
// fills in quad positions in local tile units.
func (l Layout) NewBuffers() MeshBuffers {
	n := l.QuadCount() * 4
	b := MeshBuffers{
		Vertices: make([]math.Vec3, n),
		UV:       make([]math.Vec2, n),
		Colors:   make([]math.Color, n),
	}
	vi := 0
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			fx, fy := float32(x), float32(y)
			b.Vertices[vi] = math.Vec3{X: fx, Y: fy}
			b.Vertices[vi+1] = math.Vec3{X: fx + 1, Y: fy}
			b.Vertices[vi+2] = math.Vec3{X: fx, Y: fy + 1}
			b.Vertices[vi+3] = math.Vec3{X: fx + 1, Y: fy + 1}
			vi += 4
		}
	}
	return b
}

// FillGrid adds the layout's tiles to grid, bottom row first. Tiles inside
// the chunk get the quad matching NewBuffers; margin tiles get NoVertex.
func (l Layout) FillGrid(g *TileGrid) error {
	for y := -l.Margin; y < l.Height+l.Margin; y++ {
		for x := -l.Margin; x < l.Width+l.Margin; x++ {
			pos := Coord{x, y}
			vi := NoVertex
			if l.Contains(pos) {
				vi = (y*l.Width + x) * 4
			}
			if _, err := g.Add(pos, vi, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// NewGrid returns a grid filled by FillGrid with every tile empty.
func (l Layout) NewGrid() *TileGrid {
	g := NewTileGrid(l.TileCount())
	// Positions generated by FillGrid are unique, so Add cannot fail here.
	_ = l.FillGrid(g)
	return g
}
