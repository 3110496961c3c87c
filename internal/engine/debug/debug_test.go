package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/solis/internal/terrain"
	"github.com/Faultbox/solis/internal/tileset"
	"github.com/Faultbox/solis/pkg/math"
)

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "solis")
	sc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels() error = %v", err)
	}
	if want := filepath.Join(dir, "solis_2026-01-02_03-04-05.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); b == 0 || r != 0 {
		t.Error("top row should be blue after flip")
	}

	if _, err := sc.CaptureFromPixels(pixels[:4], 1, 2); err == nil {
		t.Error("CaptureFromPixels() accepted short data")
	}
}

func TestColliderLines(t *testing.T) {
	l := terrain.Layout{Width: 1, Height: 1, Margin: 1}
	ch, err := terrain.NewChunk(terrain.ChunkParams{
		Layout:       l,
		ViewPosition: math.Vec2{X: 16, Y: 32},
		Buffers:      l.NewBuffers(),
		Lookup:       tileset.Default(),
	})
	if err != nil {
		t.Fatal(err)
	}
	tile, _ := ch.Tile(terrain.Coord{})
	tile.SetState(true)
	if err := ch.Generate(); err != nil {
		t.Fatal(err)
	}

	lines := ColliderLines([]*terrain.Chunk{ch})
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[0].A != (math.Vec2{X: 16, Y: 32}) || lines[1].B != (math.Vec2{X: 17, Y: 33}) {
		t.Errorf("box = %+v", lines)
	}

	borders := ChunkBorders([]*terrain.Chunk{ch})
	if len(borders) != 4 || borders[1].B != (math.Vec2{X: 17, Y: 33}) {
		t.Errorf("borders = %+v", borders)
	}
}
