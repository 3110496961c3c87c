package planet

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/solis/internal/logger"
	"github.com/Faultbox/solis/internal/terrain"
	"github.com/Faultbox/solis/pkg/math"
)

// Update streams chunks around viewPos. Chunks within the view radius are
// loaded; the rest are marked, snapshotted and removed.
func (p *Planet) Update(ctx context.Context, viewPos math.Vec2) (Changes, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var changes Changes
	center := p.ChunkCoordAt(viewPos)

	for c, ch := range p.chunks {
		if !p.inView(center, c) && ch.IsLoaded() && !ch.ShouldRemove() {
			if err := ch.MarkForRemoval(true); err != nil {
				return changes, err
			}
		}
	}

	for _, c := range p.viewCoords(center) {
		if err := ctx.Err(); err != nil {
			return changes, err
		}
		if _, ok := p.chunks[c]; !ok {
			changes.Loaded = append(changes.Loaded, c)
		}
		if _, err := p.loadChunk(ctx, c); err != nil {
			return changes, err
		}
	}

	var errs []error
	for c, ch := range p.chunks {
		if !ch.ShouldRemove() {
			continue
		}
		if err := p.evict(ctx, ch); err != nil {
			errs = append(errs, err)
		}
		delete(p.chunks, c)
		changes.Removed = append(changes.Removed, c)
	}

	sortCoords(changes.Removed)
	if len(changes.Loaded) > 0 || len(changes.Removed) > 0 {
		logger.Debug("chunks streamed",
			zap.Stringer("center", center),
			zap.Int("loaded", len(changes.Loaded)),
			zap.Int("removed", len(changes.Removed)),
			zap.Int("live", len(p.chunks)),
		)
	}
	return changes, errors.Join(errs...)
}

func (p *Planet) inView(center, c terrain.Coord) bool {
	return abs(c.X-center.X) <= p.radius && abs(c.Y-center.Y) <= p.radius
}

// viewCoords returns the chunks in view, nearest ring first.
func (p *Planet) viewCoords(center terrain.Coord) []terrain.Coord {
	out := []terrain.Coord{center}
	for r := 1; r <= p.radius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if abs(dx) != r && abs(dy) != r {
					continue
				}
				out = append(out, terrain.Coord{X: center.X + dx, Y: center.Y + dy})
			}
		}
	}
	return out
}

func sortCoords(coords []terrain.Coord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
