// Package main is the entry point for the Solis chunk viewer.
package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/solis/internal/config"
	"github.com/Faultbox/solis/internal/engine/renderer"
	"github.com/Faultbox/solis/internal/engine/texture"
	"github.com/Faultbox/solis/internal/logger"
	"github.com/Faultbox/solis/internal/planet"
	"github.com/Faultbox/solis/internal/store"
	"github.com/Faultbox/solis/internal/tileset"
	"github.com/Faultbox/solis/internal/viewer"
)

func main() {
	config.ParseFlags()

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

	logger.Info("=== Solis Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lookup, err := tileset.LoadOrDefault(cfg.Tileset.Lookup)
	if err != nil {
		return err
	}
	atlas, err := loadAtlas(lookup)
	if err != nil {
		return err
	}

	var opts []planet.Option
	if cfg.Storage.Path != "" {
		st, err := store.Open(cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer st.Close()
		opts = append(opts, planet.WithStore(st))
	}

	p, err := planet.New(cfg.Planet, cfg.World, lookup, opts...)
	if err != nil {
		return err
	}
	// Snapshot whatever is still live on the way out.
	defer func() {
		if err := p.Close(context.Background()); err != nil {
			logger.Warn("failed to snapshot chunks", zap.Error(err))
		}
	}()

	v, err := viewer.New(cfg.Viewer, p, atlas)
	if err != nil {
		return err
	}
	defer v.Close()

	return v.Run(ctx)
}

func loadAtlas(lookup *tileset.Lookup) (*image.RGBA, error) {
	if lookup.AtlasPath() == "" {
		logger.Info("no atlas image, using placeholder sprites")
		return renderer.PlaceholderAtlas(lookup), nil
	}
	img, err := texture.Load(lookup.AtlasPath())
	if err != nil {
		return nil, fmt.Errorf("loading atlas: %w", err)
	}
	return img, nil
}
