package renderer

import (
	"image/color"
	"testing"

	"github.com/Faultbox/solis/internal/engine/debug"
	"github.com/Faultbox/solis/internal/terrain"
	"github.com/Faultbox/solis/internal/tileset"
	"github.com/Faultbox/solis/pkg/math"
)

func TestInterleave(t *testing.T) {
	l := terrain.Layout{Width: 1, Height: 1}
	b := l.NewBuffers()
	b.UV[3] = math.Vec2{X: 0.25, Y: 0.5}
	b.Colors[3] = math.Color{R: 1, G: 0.5, B: 0, A: 1}

	out := interleave(terrain.Mesh{Vertices: b.Vertices, UV: b.UV, Colors: b.Colors})
	if len(out) != 4*floatsPerVertex {
		t.Fatalf("len = %d", len(out))
	}
	top := out[3*floatsPerVertex:]
	want := []float32{1, 1, 0, 0.25, 0.5, 1, 0.5, 0, 1}
	for i, w := range want {
		if top[i] != w {
			t.Errorf("vertex 3 component %d = %v, want %v", i, top[i], w)
		}
	}
}

func TestQuadBatch(t *testing.T) {
	var b quadBatch
	c := math.Color{R: 1, A: 1}
	b.add(math.Vec2{X: 0, Y: 0}, math.Vec2{X: 1, Y: 2}, c)
	b.add(math.Vec2{X: 5, Y: 5}, math.Vec2{X: 6, Y: 6}, c)

	if len(b.vertices) != 8*floatsPerVertex || len(b.indices) != 12 {
		t.Fatalf("batch has %d floats, %d indices", len(b.vertices), len(b.indices))
	}
	if b.indices[6] != 4 || b.indices[11] != 7 {
		t.Errorf("second quad indices = %v", b.indices[6:])
	}
	// Top-right corner of the first quad.
	if b.vertices[3*floatsPerVertex] != 1 || b.vertices[3*floatsPerVertex+1] != 2 {
		t.Errorf("top-right = %v", b.vertices[3*floatsPerVertex:3*floatsPerVertex+2])
	}

	b.reset()
	if len(b.vertices) != 0 || len(b.indices) != 0 {
		t.Error("reset kept data")
	}
}

func TestAddDecoration(t *testing.T) {
	sizes := DecorationSizes{TreeHeight: 3, BushHeight: 1}
	tests := []struct {
		kind  terrain.DecorationKind
		quads int
	}{
		{terrain.DecorationTree, 2},
		{terrain.DecorationBush, 1},
		{terrain.DecorationKind(0), 0},
	}
	for _, tt := range tests {
		var b quadBatch
		b.addDecoration(terrain.Decoration{Kind: tt.kind, Position: math.Vec2{X: 2, Y: 4.5}}, sizes)
		if got := len(b.indices) / 6; got != tt.quads {
			t.Errorf("%s: %d quads, want %d", tt.kind, got, tt.quads)
		}
	}

	var b quadBatch
	b.addDecoration(terrain.Decoration{Kind: terrain.DecorationTree, Position: math.Vec2{X: 2, Y: 4.5}}, sizes)
	// The trunk starts at the tile the tree stands on.
	if b.vertices[1] != 3 {
		t.Errorf("trunk base y = %v, want 3", b.vertices[1])
	}
}

func TestPlaceholderAtlas(t *testing.T) {
	lookup := tileset.Default()
	img := PlaceholderAtlas(lookup)
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("atlas size = %v", img.Bounds())
	}

	white := color.RGBA{255, 255, 255, 255}
	dark := color.RGBA{110, 110, 110, 255}
	at := func(name string, x, y int) color.RGBA {
		px, py, _ := lookup.Position(name)
		return img.RGBAAt(int(px)+x, 63-(int(py)+y))
	}
	if got := at("Grass", 8, 15); got != white {
		t.Errorf("Grass top = %v", got)
	}
	if got := at("TopEdge", 8, 15); got != dark {
		t.Errorf("TopEdge top = %v", got)
	}
	if got := at("TopEdge", 8, 0); got != white {
		t.Errorf("TopEdge bottom = %v", got)
	}
	if got := at("CurveTL", 15, 0); got != dark {
		t.Errorf("CurveTL bottom-right = %v", got)
	}
	if got := at("CurveTL", 0, 15); got != white {
		t.Errorf("CurveTL top-left = %v", got)
	}
}

func TestFlipRows(t *testing.T) {
	lookup := tileset.Default()
	img := PlaceholderAtlas(lookup)
	pix := flipRows(img)
	stride := 64 * 4
	// Row 0 of the flipped data is the bottom image row.
	for i := 0; i < stride; i++ {
		if pix[i] != img.Pix[63*img.Stride+i] {
			t.Fatalf("byte %d differs", i)
		}
	}
}

func TestOverlaps(t *testing.T) {
	b := terrain.Bounds{Max: math.Vec2{X: 16, Y: 16}}
	lo, hi := math.Vec2{X: 0, Y: 0}, math.Vec2{X: 10, Y: 10}
	tests := []struct {
		off  math.Vec2
		want bool
	}{
		{math.Vec2{}, true},
		{math.Vec2{X: -16}, true},
		{math.Vec2{X: -17}, false},
		{math.Vec2{Y: 11}, false},
	}
	for _, tt := range tests {
		if got := overlaps(b, tt.off, lo, hi); got != tt.want {
			t.Errorf("overlaps(off %+v) = %v, want %v", tt.off, got, tt.want)
		}
	}
	if overlaps(terrain.Bounds{Min: math.Vec2{X: 1}, Max: math.Vec2{}}, math.Vec2{}, lo, hi) {
		t.Error("empty bounds overlap")
	}
}

func TestLineVertices(t *testing.T) {
	lines := []debug.Line{
		{A: math.Vec2{X: 0, Y: 0}, B: math.Vec2{X: 1, Y: 0}, Color: math.Color{G: 1, A: 1}},
		{A: math.Vec2{X: 1, Y: 0}, B: math.Vec2{X: 1, Y: 1}, Color: math.Color{G: 1, A: 1}},
	}
	out := lineVertices(nil, lines)
	if len(out) != 4*floatsPerVertex {
		t.Fatalf("len = %d", len(out))
	}
	last := out[3*floatsPerVertex:]
	if last[0] != 1 || last[1] != 1 || last[6] != 1 {
		t.Errorf("last vertex = %v", last)
	}
	if got := lineVertices(out[:0], nil); len(got) != 0 {
		t.Error("empty overlay produced vertices")
	}
}
