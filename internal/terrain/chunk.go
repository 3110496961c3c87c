package terrain

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/solis/internal/logger"
	"github.com/Faultbox/solis/pkg/math"
)

// ChunkState is the lifecycle state of a chunk.
type ChunkState uint8

// Chunk states.
const (
	ChunkUnloaded ChunkState = iota
	ChunkLoaded
	ChunkPendingRemoval
)

// String returns the state name.
func (s ChunkState) String() string {
	switch s {
	case ChunkLoaded:
		return "loaded"
	case ChunkPendingRemoval:
		return "pending-removal"
	default:
		return "unloaded"
	}
}

// ChunkParams holds everything a chunk is built from. Buffers and Tiles
// are taken by reference; the chunk mutates them in place.
type ChunkParams struct {
	Coord        Coord
	Position     math.Vec2 // world position of tile (0, 0)
	ViewPosition math.Vec2 // where the renderer places the chunk mesh
	Layout       Layout
	FeatureSize  float32
	Buffers      MeshBuffers
	Tiles        *TileGrid // nil builds an empty grid from Layout
	Lookup       TilesetLookup
	Decorations  DecorationSettings
	MainColor    math.Color
	Seed         uint64
}

// Mesh is a read-only view of a generated chunk mesh. Slices are shared
// with the chunk.
type Mesh struct {
	Vertices  []math.Vec3
	UV        []math.Vec2
	Colors    []math.Color
	Triangles []uint32
	Bounds    Bounds
}

// Chunk is one square region of planet terrain. Not safe for concurrent
// mutation.
type Chunk struct {
	coord        Coord
	position     math.Vec2
	viewPosition math.Vec2
	layout       Layout
	featureSize  float32

	buffers   MeshBuffers
	triangles []uint32
	bounds    Bounds
	classes   []Classification // indexed by quad (vertex index / 4)

	tiles       *TileGrid
	lookup      TilesetLookup
	decorSet    DecorationSettings
	mainColor   math.Color
	seed        uint64
	rng         *rand.Rand
	decorations []Decoration
	colliders   []Collider

	state   ChunkState
	visible bool
}

// NewChunk validates params and returns an unloaded chunk.
func NewChunk(p ChunkParams) (*Chunk, error) {
	if err := p.Layout.Validate(); err != nil {
		return nil, err
	}
	if p.Lookup == nil {
		return nil, errors.New("chunk requires a tileset lookup")
	}
	if err := p.Buffers.Validate(); err != nil {
		return nil, err
	}
	tiles := p.Tiles
	if tiles == nil {
		tiles = p.Layout.NewGrid()
	}
	for _, t := range tiles.Tiles() {
		if vi := t.VertexIndex(); vi != NoVertex && (vi < 0 || vi+3 >= len(p.Buffers.Vertices)) {
			return nil, fmt.Errorf("%w: tile %s has index %d for %d vertices",
				ErrVertexOutOfRange, t.Pos, vi, len(p.Buffers.Vertices))
		}
	}

	return &Chunk{
		coord:        p.Coord,
		position:     p.Position,
		viewPosition: p.ViewPosition,
		layout:       p.Layout,
		featureSize:  p.FeatureSize,
		buffers:      p.Buffers,
		bounds:       emptyBounds(),
		classes:      make([]Classification, len(p.Buffers.Vertices)/4),
		tiles:        tiles,
		lookup:       p.Lookup,
		decorSet:     p.Decorations,
		mainColor:    p.MainColor,
		seed:         p.Seed,
		rng:          newChunkRand(p.Seed),
	}, nil
}

// Generate builds triangles, colors, decorations, UVs and colliders, then
// marks the chunk loaded. The random stream restarts from the chunk seed,
// so generating unchanged tiles twice gives the same result.
func (c *Chunk) Generate() error {
	c.rng = newChunkRand(c.seed)
	c.triangles = c.triangles[:0]
	c.decorations = nil
	c.colliders = nil
	c.bounds = emptyBounds()

	for _, t := range c.tiles.Tiles() {
		if !t.State() {
			continue
		}
		if t.HasQuad() {
			vi := t.VertexIndex()
			v := uint32(vi)
			c.triangles = append(c.triangles,
				v, v+2, v+1,
				v+1, v+2, v+3,
			)
			for k := vi; k < vi+4; k++ {
				c.buffers.Colors[k] = c.mainColor
				updateBounds(&c.bounds, c.buffers.Vertices[k])
			}
		}

		// Every occupied tile rolls, margin included.
		if d, ok := rollDecoration(c.rng, c.decorSet, c.position, t.Pos); ok {
			c.decorations = append(c.decorations, d)
		}
	}

	if err := c.UpdateTileUV(); err != nil {
		c.state = ChunkUnloaded
		c.visible = false
		c.triangles = c.triangles[:0]
		c.decorations = nil
		c.bounds = emptyBounds()
		return fmt.Errorf("chunk %s: %w", c.coord, err)
	}
	c.colliders = BuildColliders(c.tiles, c.buffers.Vertices)

	c.state = ChunkLoaded
	c.visible = true

	logger.Debug("chunk generated",
		zap.Stringer("coord", c.coord),
		zap.Int("triangles", len(c.triangles)/3),
		zap.Int("decorations", len(c.decorations)),
		zap.Int("colliders", len(c.colliders)),
	)
	return nil
}

// UpdateTileUV classifies every tile that owns a quad and writes the UVs
// of the matching atlas sprite.
func (c *Chunk) UpdateTileUV() error {
	rects := make(map[Classification]UVRect, numClassifications)
	for _, t := range c.tiles.Tiles() {
		if !t.HasQuad() {
			continue
		}
		class := Classify(c.tiles.Neighborhood(t.Pos))
		rect, ok := rects[class]
		if !ok {
			var err error
			rect, err = SpriteRect(c.lookup, class)
			if err != nil {
				return fmt.Errorf("tile %s: %w", t.Pos, err)
			}
			rects[class] = rect
		}

		vi := t.VertexIndex()
		corners := rect.Corners()
		copy(c.buffers.UV[vi:vi+4], corners[:])
		c.classes[vi/4] = class
	}
	return nil
}

// SetTileStates applies occupancy in tile iteration order. The slice must
// hold exactly one state per tile.
func (c *Chunk) SetTileStates(states []bool) error {
	return c.tiles.SetStates(states)
}

// Rebuild refills an emptied tile grid from the chunk layout and applies
// states (nil leaves every tile empty). Call Generate afterwards.
func (c *Chunk) Rebuild(states []bool) error {
	c.tiles.Clear()
	if err := c.layout.FillGrid(c.tiles); err != nil {
		return err
	}
	clear(c.buffers.UV)
	clear(c.buffers.Colors)
	clear(c.classes)
	if states == nil {
		return nil
	}
	return c.tiles.SetStates(states)
}

// Remove unloads the chunk: clears the tile grid, drops decorations and
// colliders and hides the mesh. Removing an unloaded chunk is a no-op.
func (c *Chunk) Remove() {
	if c.state == ChunkUnloaded {
		return
	}
	c.state = ChunkUnloaded
	c.visible = false
	c.tiles.Clear()
	c.triangles = c.triangles[:0]
	c.decorations = nil
	c.colliders = nil
	c.bounds = emptyBounds()

	logger.Debug("chunk removed", zap.Stringer("coord", c.coord))
}

// MarkForRemoval flags a loaded chunk for removal, or clears the flag.
func (c *Chunk) MarkForRemoval(remove bool) error {
	if c.state == ChunkUnloaded {
		return fmt.Errorf("%w: %s", ErrChunkNotLoaded, c.coord)
	}
	if remove {
		c.state = ChunkPendingRemoval
	} else {
		c.state = ChunkLoaded
	}
	return nil
}

// ShouldRemove reports whether the chunk is flagged for removal.
func (c *Chunk) ShouldRemove() bool {
	return c.state == ChunkPendingRemoval
}

// IsLoaded reports whether the chunk has a generated mesh.
func (c *Chunk) IsLoaded() bool {
	return c.state != ChunkUnloaded
}

// State returns the lifecycle state.
func (c *Chunk) State() ChunkState { return c.state }

// Visible reports whether the mesh should be drawn.
func (c *Chunk) Visible() bool { return c.visible }

// Coord returns the chunk index.
func (c *Chunk) Coord() Coord { return c.coord }

// Position returns the world position of tile (0, 0).
func (c *Chunk) Position() math.Vec2 { return c.position }

// ViewPosition returns where the renderer places the mesh.
func (c *Chunk) ViewPosition() math.Vec2 { return c.viewPosition }

// Layout returns the chunk layout.
func (c *Chunk) Layout() Layout { return c.layout }

// FeatureSize returns the noise feature size the chunk was sampled with.
func (c *Chunk) FeatureSize() float32 { return c.featureSize }

// Seed returns the seed of the decoration stream.
func (c *Chunk) Seed() uint64 { return c.seed }

// Tiles returns the chunk's tile grid.
func (c *Chunk) Tiles() *TileGrid { return c.tiles }

// Tile returns the tile at a chunk-local position.
func (c *Chunk) Tile(pos Coord) (*Tile, bool) {
	return c.tiles.Tile(pos)
}

// Classification returns the sprite class chosen for the tile at pos by the
// last UpdateTileUV.
func (c *Chunk) Classification(pos Coord) (Classification, bool) {
	t, ok := c.tiles.Tile(pos)
	if !ok || !t.HasQuad() {
		return Interior, false
	}
	return c.classes[t.VertexIndex()/4], true
}

// Mesh returns the current mesh buffers.
func (c *Chunk) Mesh() Mesh {
	return Mesh{
		Vertices:  c.buffers.Vertices,
		UV:        c.buffers.UV,
		Colors:    c.buffers.Colors,
		Triangles: c.triangles,
		Bounds:    c.bounds,
	}
}

// Decorations returns the placed decorations.
func (c *Chunk) Decorations() []Decoration { return c.decorations }

// Colliders returns the boundary colliders.
func (c *Chunk) Colliders() []Collider { return c.colliders }
