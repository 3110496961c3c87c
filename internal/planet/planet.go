// Package planet manages the chunks of one planet: it builds them from
// noise, streams them around a view position and snapshots the ones it
// drops.
package planet

import (
	"context"
	"errors"
	"fmt"
	gomath "math"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/solis/internal/config"
	"github.com/Faultbox/solis/internal/logger"
	"github.com/Faultbox/solis/internal/store"
	"github.com/Faultbox/solis/internal/terrain"
	"github.com/Faultbox/solis/pkg/math"
)

// SnapshotStore persists chunk snapshots. *store.Store implements it.
type SnapshotStore interface {
	Save(ctx context.Context, snap store.Snapshot) error
	Load(ctx context.Context, seed int64, c terrain.Coord) (store.Snapshot, error)
}

// Option configures a Planet.
type Option func(*Planet)

// WithStore snapshots removed chunks into s and restores them on load.
func WithStore(s SnapshotStore) Option {
	return func(p *Planet) { p.store = s }
}

// WithWorkers overrides the number of noise workers.
func WithWorkers(n int) Option {
	return func(p *Planet) { p.workers = n }
}

// Changes lists the chunks an Update loaded and removed.
type Changes struct {
	Loaded  []terrain.Coord
	Removed []terrain.Coord
}

// Planet owns the settings, tileset and live chunks of one planet.
type Planet struct {
	settings config.PlanetSettings
	layout   terrain.Layout
	radius   int
	workers  int
	lookup   terrain.TilesetLookup
	noise    terrain.NoiseSource
	store    SnapshotStore

	mu     sync.Mutex
	chunks map[terrain.Coord]*terrain.Chunk
}

// New creates a planet with no chunks loaded.
func New(settings config.PlanetSettings, world config.WorldConfig, lookup terrain.TilesetLookup, opts ...Option) (*Planet, error) {
	if lookup == nil {
		return nil, errors.New("planet requires a tileset lookup")
	}
	if settings.FeatureSize <= 0 {
		return nil, fmt.Errorf("invalid feature size %v", settings.FeatureSize)
	}
	layout := terrain.Layout{Width: world.ChunkWidth, Height: world.ChunkHeight, Margin: world.Margin}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	noise, err := terrain.NewNoiseSource(settings.Noise, settings.Seed)
	if err != nil {
		return nil, err
	}

	p := &Planet{
		settings: settings,
		layout:   layout,
		radius:   world.ViewRadius,
		workers:  world.Workers,
		lookup:   lookup,
		noise:    noise,
		chunks:   make(map[terrain.Coord]*terrain.Chunk),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers <= 0 {
		p.workers = runtime.GOMAXPROCS(0)
	}
	return p, nil
}

// Settings returns the planet settings.
func (p *Planet) Settings() config.PlanetSettings { return p.settings }

// Layout returns the chunk layout.
func (p *Planet) Layout() terrain.Layout { return p.layout }

// WaterColor is the color drawn where there is no terrain.
func (p *Planet) WaterColor() math.Color { return p.settings.WaterColor }

// ChunkOrigin returns the world position of tile (0, 0) of chunk c.
func (p *Planet) ChunkOrigin(c terrain.Coord) math.Vec2 {
	return math.Vec2{
		X: float32(c.X * p.layout.Width),
		Y: float32(c.Y * p.layout.Height),
	}
}

// ChunkCoordAt returns the chunk containing world position pos.
func (p *Planet) ChunkCoordAt(pos math.Vec2) terrain.Coord {
	return terrain.Coord{
		X: int(gomath.Floor(float64(pos.X) / float64(p.layout.Width))),
		Y: int(gomath.Floor(float64(pos.Y) / float64(p.layout.Height))),
	}
}

func (p *Planet) decorationSettings() terrain.DecorationSettings {
	s := p.settings
	return terrain.DecorationSettings{
		TreeHeight:    s.Tree.Height,
		TreeBaseColor: s.TreeBaseColor,
		TreeLeafColor: s.TreeLeafColor,
		BushHeight:    s.Bush.Height,
		BushColor:     s.BushColor,
	}
}

// LoadChunk returns chunk c, building and generating it if needed. A
// stored snapshot takes precedence over noise.
func (p *Planet) LoadChunk(ctx context.Context, c terrain.Coord) (*terrain.Chunk, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadChunk(ctx, c)
}

func (p *Planet) loadChunk(ctx context.Context, c terrain.Coord) (*terrain.Chunk, error) {
	if ch, ok := p.chunks[c]; ok {
		if ch.ShouldRemove() {
			if err := ch.MarkForRemoval(false); err != nil {
				return nil, err
			}
		}
		return ch, nil
	}

	origin := p.ChunkOrigin(c)
	ch, err := terrain.NewChunk(terrain.ChunkParams{
		Coord:        c,
		Position:     origin,
		ViewPosition: origin,
		Layout:       p.layout,
		FeatureSize:  p.settings.FeatureSize,
		Buffers:      p.layout.NewBuffers(),
		Lookup:       p.lookup,
		Decorations:  p.decorationSettings(),
		MainColor:    p.settings.TerrainColor,
		Seed:         terrain.ChunkSeed(p.settings.Seed, c),
	})
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", c, err)
	}

	states, restored, err := p.restoreStates(ctx, c)
	if err != nil {
		return nil, err
	}
	if !restored {
		states, err = p.EvaluateStates(ctx, c, ch.Tiles())
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", c, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := ch.SetTileStates(states); err != nil {
		return nil, fmt.Errorf("chunk %s: %w", c, err)
	}
	if err := ch.Generate(); err != nil {
		return nil, err
	}
	p.chunks[c] = ch

	logger.Debug("chunk loaded",
		zap.Stringer("coord", c),
		zap.Bool("restored", restored),
	)
	return ch, nil
}

// restoreStates returns the stored states of chunk c. Snapshots taken with a
// different layout are ignored.
func (p *Planet) restoreStates(ctx context.Context, c terrain.Coord) ([]bool, bool, error) {
	if p.store == nil {
		return nil, false, nil
	}
	snap, err := p.store.Load(ctx, p.settings.Seed, c)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("restoring chunk %s: %w", c, err)
	}
	if snap.Layout != p.layout {
		logger.Warn("ignoring snapshot with different layout",
			zap.Stringer("coord", c),
			zap.Int("width", snap.Layout.Width),
			zap.Int("height", snap.Layout.Height),
			zap.Int("margin", snap.Layout.Margin),
		)
		return nil, false, nil
	}
	return snap.States, true, nil
}

type rowSpan struct {
	start, end int
}

// rows splits tiles into runs that share a Y coordinate.
func rows(tiles []*terrain.Tile) []rowSpan {
	var spans []rowSpan
	start := 0
	for i := 1; i <= len(tiles); i++ {
		if i == len(tiles) || tiles[i].Pos.Y != tiles[start].Pos.Y {
			spans = append(spans, rowSpan{start, i})
			start = i
		}
	}
	return spans
}

// Chunk returns a loaded chunk.
func (p *Planet) Chunk(c terrain.Coord) (*terrain.Chunk, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, ok := p.chunks[c]
	return ch, ok
}

// Chunks returns the live chunks ordered bottom row first, then by X.
func (p *Planet) Chunks() []*terrain.Chunk {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*terrain.Chunk, 0, len(p.chunks))
	for _, ch := range p.chunks {
		out = append(out, ch)
	}
	sortChunks(out)
	return out
}

func sortChunks(chunks []*terrain.Chunk) {
	sort.Slice(chunks, func(i, j int) bool {
		a, b := chunks[i].Coord(), chunks[j].Coord()
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}

// Snapshot captures the persisted state of a live chunk.
func (p *Planet) Snapshot(c terrain.Coord) (store.Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, ok := p.chunks[c]
	if !ok {
		return store.Snapshot{}, false
	}
	return p.snapshot(ch), true
}

func (p *Planet) snapshot(ch *terrain.Chunk) store.Snapshot {
	return store.Snapshot{
		Seed:        p.settings.Seed,
		Coord:       ch.Coord(),
		Layout:      ch.Layout(),
		States:      ch.Tiles().States(),
		Decorations: append([]terrain.Decoration(nil), ch.Decorations()...),
	}
}

// SaveAll snapshots every live chunk into the store and returns how many
// were written. Without a store it does nothing.
func (p *Planet) SaveAll(ctx context.Context) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.store == nil {
		return 0, nil
	}
	n := 0
	for _, ch := range p.chunks {
		if err := p.store.Save(ctx, p.snapshot(ch)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Close snapshots and removes every chunk.
func (p *Planet) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for c, ch := range p.chunks {
		if err := p.evict(ctx, ch); err != nil {
			errs = append(errs, err)
		}
		delete(p.chunks, c)
	}
	return errors.Join(errs...)
}

// evict snapshots ch when a store is configured, then removes it.
func (p *Planet) evict(ctx context.Context, ch *terrain.Chunk) error {
	var err error
	if p.store != nil && ch.IsLoaded() {
		if err = p.store.Save(ctx, p.snapshot(ch)); err != nil {
			err = fmt.Errorf("snapshot chunk %s: %w", ch.Coord(), err)
		}
	}
	ch.Remove()
	return err
}
