package terrain

import (
	"errors"
	"testing"

	"github.com/Faultbox/solis/pkg/math"
)

func TestLayoutCounts(t *testing.T) {
	l := Layout{Width: 4, Height: 3, Margin: 1}
	if l.QuadCount() != 12 {
		t.Errorf("QuadCount() = %d", l.QuadCount())
	}
	if l.TileCount() != 30 {
		t.Errorf("TileCount() = %d", l.TileCount())
	}
	if g := l.NewGrid(); g.Len() != l.TileCount() {
		t.Errorf("NewGrid().Len() = %d", g.Len())
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		l       Layout
		wantErr bool
	}{
		{Layout{Width: 16, Height: 16, Margin: 1}, false},
		{Layout{Width: 1, Height: 1}, false},
		{Layout{Width: 0, Height: 4}, true},
		{Layout{Width: 4, Height: -1}, true},
		{Layout{Width: 4, Height: 4, Margin: -1}, true},
	}
	for _, tt := range tests {
		if err := tt.l.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%+v.Validate() error = %v, wantErr %v", tt.l, err, tt.wantErr)
		}
	}
}

func TestLayoutFillGrid(t *testing.T) {
	l := Layout{Width: 3, Height: 2, Margin: 1}
	g := l.NewGrid()
	b := l.NewBuffers()

	for _, tile := range g.Tiles() {
		if !l.Contains(tile.Pos) {
			if tile.HasQuad() {
				t.Errorf("margin tile %s has quad %d", tile.Pos, tile.VertexIndex())
			}
			continue
		}
		vi := tile.VertexIndex()
		want := math.Vec3{X: float32(tile.Pos.X), Y: float32(tile.Pos.Y)}
		if b.Vertices[vi] != want {
			t.Errorf("tile %s: bottom-left vertex = %+v, want %+v", tile.Pos, b.Vertices[vi], want)
		}
		if top := b.Vertices[vi+3]; top.X != want.X+1 || top.Y != want.Y+1 {
			t.Errorf("tile %s: top-right vertex = %+v", tile.Pos, top)
		}
	}

	first := g.Tiles()[0]
	if first.Pos != (Coord{-1, -1}) {
		t.Errorf("first tile = %s, want bottom-left margin corner", first.Pos)
	}
	if _, err := g.Add(Coord{0, 0}, 0, false); !errors.Is(err, ErrDuplicateTile) {
		t.Errorf("Add() error = %v", err)
	}
}

func TestMeshBuffersValidate(t *testing.T) {
	b := Layout{Width: 2, Height: 2}.NewBuffers()
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	b.UV = b.UV[:4]
	if err := b.Validate(); !errors.Is(err, ErrBufferMismatch) {
		t.Errorf("Validate() error = %v, want ErrBufferMismatch", err)
	}
}
