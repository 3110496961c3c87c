package planet

import (
	"context"
	"testing"

	"github.com/Faultbox/solis/pkg/math"
)

func TestSummarize(t *testing.T) {
	p := newTestPlanet(t)
	if _, err := p.Update(context.Background(), math.Vec2{}); err != nil {
		t.Fatal(err)
	}
	chunks := p.Chunks()
	s := Summarize(chunks)

	if s.Chunks != 9 || s.Quads != 9*64 {
		t.Errorf("Chunks = %d, Quads = %d", s.Chunks, s.Quads)
	}
	if s.Triangles != 2*s.Occupied {
		t.Errorf("Triangles = %d for %d occupied tiles", s.Triangles, s.Occupied)
	}
	classified := 0
	for _, n := range s.Classes {
		classified += n
	}
	if classified != s.Occupied {
		t.Errorf("classified %d of %d occupied tiles", classified, s.Occupied)
	}
	decorations := 0
	for _, ch := range chunks {
		decorations += len(ch.Decorations())
	}
	if s.Trees+s.Bushes != decorations {
		t.Errorf("Trees+Bushes = %d, want %d", s.Trees+s.Bushes, decorations)
	}
}
