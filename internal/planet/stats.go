package planet

import "github.com/Faultbox/solis/internal/terrain"

// Stats summarizes a set of generated chunks.
type Stats struct {
	Chunks    int
	Quads     int
	Occupied  int
	Triangles int
	Trees     int
	Bushes    int
	Colliders int
	Classes   map[terrain.Classification]int
}

// Summarize counts tiles, geometry and decorations across chunks. Only
// tiles that own a quad are counted.
func Summarize(chunks []*terrain.Chunk) Stats {
	s := Stats{Classes: make(map[terrain.Classification]int)}
	for _, ch := range chunks {
		s.Chunks++
		s.Triangles += len(ch.Mesh().Triangles) / 3
		s.Colliders += len(ch.Colliders())
		for _, d := range ch.Decorations() {
			switch d.Kind {
			case terrain.DecorationTree:
				s.Trees++
			case terrain.DecorationBush:
				s.Bushes++
			}
		}
		for _, t := range ch.Tiles().Tiles() {
			if !t.HasQuad() {
				continue
			}
			s.Quads++
			if !t.State() {
				continue
			}
			s.Occupied++
			if class, ok := ch.Classification(t.Pos); ok {
				s.Classes[class]++
			}
		}
	}
	return s
}
