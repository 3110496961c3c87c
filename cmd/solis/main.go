// solis is a CLI for generating, inspecting and storing planet terrain.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	get "github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/Faultbox/solis/internal/config"
	"github.com/Faultbox/solis/internal/logger"
	"github.com/Faultbox/solis/internal/planet"
	"github.com/Faultbox/solis/internal/store"
	"github.com/Faultbox/solis/internal/terrain"
	"github.com/Faultbox/solis/internal/tileset"
	"github.com/Faultbox/solis/pkg/math"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command, rest := args[0], args[1:]
	switch command {
	case "generate", "gen":
		err = cmdGenerate(ctx, cfg, rest)
	case "show":
		err = cmdShow(ctx, cfg, rest)
	case "inspect":
		err = cmdInspect(ctx, cfg, rest)
	case "fetch":
		err = cmdFetch(rest)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error(command+" failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`solis - procedural 2D planet terrain

Usage:
  solis [global options] <command> [options]

Global options:
  -config <file>    Config file (default ./solis.yaml or the user config dir)
  -seed <n>         Planet seed
  -tileset <file>   Tileset lookup file
  -debug            Debug logging

Commands:
  generate [-radius N] [-db path] [-x X -y Y]   Generate chunks around a chunk and print stats
  show -x X -y Y [-decor]                       Print a chunk's autotile map
  inspect [-db path] [-list]                    Show snapshot database contents
  fetch <url> <dir>                             Download a tileset or asset pack

Examples:
  solis generate -radius 3 -db chunks.db
  solis -seed 42 show -x 0 -y -1 -decor
  solis fetch https://example.com/tiles.zip ./assets`)
}

func newPlanet(cfg *config.Config, opts ...planet.Option) (*planet.Planet, error) {
	lookup, err := tileset.LoadOrDefault(cfg.Tileset.Lookup)
	if err != nil {
		return nil, err
	}
	return planet.New(cfg.Planet, cfg.World, lookup, opts...)
}

// chunkCenter returns the world position at the middle of chunk (x, y).
func chunkCenter(cfg *config.Config, x, y int) math.Vec2 {
	return math.Vec2{
		X: (float32(x) + 0.5) * float32(cfg.World.ChunkWidth),
		Y: (float32(y) + 0.5) * float32(cfg.World.ChunkHeight),
	}
}

func cmdGenerate(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	radius := fs.Int("radius", cfg.World.ViewRadius, "Radius in chunks")
	db := fs.String("db", cfg.Storage.Path, "Snapshot database (empty disables)")
	cx := fs.Int("x", 0, "Center chunk X")
	cy := fs.Int("y", 0, "Center chunk Y")
	fs.Parse(args)

	cfg.World.ViewRadius = *radius
	var opts []planet.Option
	var st *store.Store
	if *db != "" {
		var err error
		st, err = store.Open(*db)
		if err != nil {
			return err
		}
		defer st.Close()
		opts = append(opts, planet.WithStore(st))
	}

	p, err := newPlanet(cfg, opts...)
	if err != nil {
		return err
	}
	changes, err := p.Update(ctx, chunkCenter(cfg, *cx, *cy))
	if err != nil {
		return err
	}
	stats := planet.Summarize(p.Chunks())

	logger.Info("generated",
		zap.Int64("seed", cfg.Planet.Seed),
		zap.Int("chunks", len(changes.Loaded)),
		zap.Int("occupied", stats.Occupied),
		zap.Int("trees", stats.Trees),
		zap.Int("bushes", stats.Bushes),
	)

	fmt.Printf("Seed:        %d\n", cfg.Planet.Seed)
	fmt.Printf("Chunks:      %d (%dx%d tiles)\n", stats.Chunks, cfg.World.ChunkWidth, cfg.World.ChunkHeight)
	fmt.Printf("Land:        %d / %d tiles (%.1f%%)\n", stats.Occupied, stats.Quads, percent(stats.Occupied, stats.Quads))
	fmt.Printf("Triangles:   %d\n", stats.Triangles)
	fmt.Printf("Colliders:   %d\n", stats.Colliders)
	fmt.Printf("Decorations: %d trees, %d bushes\n", stats.Trees, stats.Bushes)
	fmt.Println("Tiles by class:")
	classes := make([]terrain.Classification, 0, len(stats.Classes))
	for c := range stats.Classes {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	for _, c := range classes {
		fmt.Printf("  %-12s %6d\n", c, stats.Classes[c])
	}

	if st != nil {
		n, err := p.SaveAll(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %d snapshots to %s\n", n, st.Path())
	}
	return nil
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

func cmdShow(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	x := fs.Int("x", 0, "Chunk X")
	y := fs.Int("y", 0, "Chunk Y")
	decor := fs.Bool("decor", false, "Mark trees (T) and bushes (b)")
	fs.Parse(args)

	p, err := newPlanet(cfg)
	if err != nil {
		return err
	}
	ch, err := p.LoadChunk(ctx, terrain.Coord{X: *x, Y: *y})
	if err != nil {
		return err
	}
	fmt.Printf("Chunk %s, seed %d\n", ch.Coord(), cfg.Planet.Seed)
	fmt.Print(renderASCII(ch, *decor))
	fmt.Println(legend())
	return nil
}

func cmdInspect(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	db := fs.String("db", cfg.Storage.Path, "Snapshot database")
	list := fs.Bool("list", false, "List every snapshot")
	fs.Parse(args)

	if *db == "" {
		return fmt.Errorf("no database: pass -db or set storage.path")
	}
	if _, err := os.Stat(*db); err != nil {
		return err
	}
	st, err := store.Open(*db)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Database:  %s\n", *db)
	fmt.Printf("Snapshots: %d\n", n)
	if !*list {
		return nil
	}

	infos, err := st.List(ctx)
	if err != nil {
		return err
	}
	for _, info := range infos {
		fmt.Printf("  seed %-8d chunk %-10s %6d bytes  %s\n",
			info.Seed, info.Coord, info.Bytes, info.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func cmdFetch(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: solis fetch <url> <dir>")
	}
	src, dst := args[0], args[1]
	abs, err := filepath.Abs(dst)
	if err != nil {
		return err
	}

	logger.Info("downloading", zap.String("src", src), zap.String("dst", abs))
	if err := get.Get(abs, src); err != nil {
		return fmt.Errorf("fetching %s: %w", src, err)
	}
	logger.Info("download complete", zap.String("dst", abs))
	return nil
}
