package planet

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/solis/internal/terrain"
)

// EvaluateStates samples occupancy for every tile of grid in parallel. The
// result is index-aligned with grid.Tiles(). Workers take one row at a
// time and stop when ctx is cancelled.
func (p *Planet) EvaluateStates(ctx context.Context, c terrain.Coord, grid *terrain.TileGrid) ([]bool, error) {
	tiles := grid.Tiles()
	states := make([]bool, len(tiles))
	origin := p.ChunkOrigin(c)
	feature := float64(p.settings.FeatureSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, span := range rows(tiles) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := span.start; i < span.end; i++ {
				pos := tiles[i].Pos
				x := (float64(origin.X) + float64(pos.X)) / feature
				y := (float64(origin.Y) + float64(pos.Y)) / feature
				states[i] = terrain.TileStateFromNoise(p.noise.Eval(x, y))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return states, nil
}
