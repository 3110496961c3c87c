// Package viewer runs the interactive chunk viewer loop.
package viewer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/solis/internal/config"
	"github.com/Faultbox/solis/internal/engine/camera"
	"github.com/Faultbox/solis/internal/engine/debug"
	"github.com/Faultbox/solis/internal/engine/hud"
	"github.com/Faultbox/solis/internal/engine/input"
	"github.com/Faultbox/solis/internal/engine/renderer"
	"github.com/Faultbox/solis/internal/engine/window"
	"github.com/Faultbox/solis/internal/logger"
	"github.com/Faultbox/solis/internal/planet"
	"github.com/Faultbox/solis/internal/terrain"
)

const title = "Solis"

// Viewer owns the window, renderer and camera for one planet.
type Viewer struct {
	planet   *planet.Planet
	window   *window.Window
	renderer *renderer.Renderer
	hud      *hud.Renderer
	input    *input.Input
	camera   *camera.Camera
	shots    *debug.ScreenshotCapture
	running  bool

	showColliders bool
	showBorders   bool
	showHUD       bool
	stats         planet.Stats
	fps           int
	hover         string
}

// New opens the window and uploads the atlas. The planet is borrowed.
func New(cfg config.ViewerConfig, p *planet.Planet, atlas *image.RGBA) (*Viewer, error) {
	v := &Viewer{
		planet: p,
		input:  input.New(),
		camera: camera.New(cfg.Zoom),
		shots:  debug.NewScreenshotCapture(cfg.Screenshot, "solis"),

		showHUD: true,
	}

	var err error
	v.window, err = window.New(window.FromViewer(title, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	w, h := v.window.DrawableSize()
	settings := p.Settings()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		ClearColor: p.WaterColor(),
		Decorations: renderer.DecorationSizes{
			TreeHeight: settings.Tree.Height,
			BushHeight: settings.Bush.Height,
		},
	}, atlas)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.hud, err = hud.New(w, h)
	if err != nil {
		v.renderer.Close()
		v.window.Close()
		return nil, fmt.Errorf("failed to create hud: %w", err)
	}

	logger.Info("viewer initialized", zap.Int("width", w), zap.Int("height", h))
	return v, nil
}

// Run loops until the window closes or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	v.running = true
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	if err := v.stream(ctx); err != nil {
		return err
	}

	logger.Info("starting viewer loop")
	for v.running {
		if err := ctx.Err(); err != nil {
			return nil
		}

		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		dx, dy := input.PanAxis()
		if dx != 0 || dy != 0 {
			v.camera.Pan(dx, dy, dt)
		}
		if wheel := v.input.Wheel(); wheel != 0 {
			v.camera.ZoomBy(wheel)
		}

		if err := v.stream(ctx); err != nil {
			return err
		}

		v.renderer.Draw(v.camera)
		if v.showHUD {
			v.hud.Block(8, 8, v.hudLines(), 1, hud.DefaultStyle)
			v.hud.Flush()
		}
		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			c := v.planet.ChunkCoordAt(v.camera.Center)
			v.window.SetTitle(fmt.Sprintf("%s - chunk %s - %d fps", title, c, frameCount))
			v.fps = frameCount
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (v *Viewer) handleEvents() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			w, h := v.window.DrawableSize()
			v.renderer.Resize(w, h)
			v.hud.Resize(w, h)
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
				v.camera.ZoomBy(1)
			case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
				v.camera.ZoomBy(-1)
			case sdl.SCANCODE_HOME:
				v.camera.Center.X, v.camera.Center.Y = 0, 0
			case sdl.SCANCODE_C:
				v.showColliders = !v.showColliders
				v.updateOverlay()
			case sdl.SCANCODE_F1:
				v.showHUD = !v.showHUD
			case sdl.SCANCODE_B:
				v.showBorders = !v.showBorders
				v.updateOverlay()
			}
		case input.EventMouseDown:
			v.inspect(e.MouseX, e.MouseY)
		}
	}
}

// stream loads and drops chunks around the camera and syncs the GPU copies.
func (v *Viewer) stream(ctx context.Context) error {
	changes, err := v.planet.Update(ctx, v.camera.Center)
	if err != nil {
		return fmt.Errorf("streaming chunks: %w", err)
	}
	if len(changes.Loaded) > 0 || len(changes.Removed) > 0 {
		chunks := v.planet.Chunks()
		v.renderer.Sync(chunks)
		v.stats = planet.Summarize(chunks)
		v.updateOverlay()
	}
	return nil
}

func (v *Viewer) updateOverlay() {
	var lines []debug.Line
	chunks := v.planet.Chunks()
	if v.showColliders {
		lines = append(lines, debug.ColliderLines(chunks)...)
	}
	if v.showBorders {
		lines = append(lines, debug.ChunkBorders(chunks)...)
	}
	v.renderer.SetOverlay(lines)
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// inspect logs the tile under a mouse click.
func (v *Viewer) inspect(mx, my int) {
	sw, sh := v.window.Size()
	dw, dh := v.window.DrawableSize()
	if sw == 0 || sh == 0 {
		return
	}
	x, y := mx*dw/sw, my*dh/sh
	pos := v.camera.ScreenToWorld(x, y, dw, dh)

	cc := v.planet.ChunkCoordAt(pos)
	ch, ok := v.planet.Chunk(cc)
	if !ok {
		return
	}
	origin := v.planet.ChunkOrigin(cc)
	local := terrain.Coord{X: int(pos.X - origin.X), Y: int(pos.Y - origin.Y)}
	tile, ok := ch.Tile(local)
	if !ok {
		return
	}
	class, _ := ch.Classification(local)
	v.hover = fmt.Sprintf("tile %s/%s %s", cc, local, class)
	logger.Info("tile",
		zap.Stringer("chunk", cc),
		zap.Stringer("tile", local),
		zap.Bool("occupied", tile.State()),
		zap.Stringer("class", class),
		zap.Bool("boundary", terrain.IsBoundaryTile(ch.Tiles(), local)),
	)
}

func (v *Viewer) hudLines() []string {
	c := v.planet.ChunkCoordAt(v.camera.Center)
	lines := []string{
		fmt.Sprintf("chunk %s  zoom %.1f  %d fps", c, v.camera.Zoom, v.fps),
		fmt.Sprintf("chunks %d  quads %d  land %d", v.stats.Chunks, v.stats.Quads, v.stats.Occupied),
		fmt.Sprintf("trees %d  bushes %d  colliders %d", v.stats.Trees, v.stats.Bushes, v.stats.Colliders),
	}
	if v.hover != "" {
		lines = append(lines, v.hover)
	}
	return append(lines, "F1 hud  C colliders  B borders  F12 screenshot")
}

// Close releases the renderers and window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")
	if v.hud != nil {
		v.hud.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
