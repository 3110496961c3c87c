package renderer

import (
	"github.com/Faultbox/solis/internal/engine/debug"
	"github.com/Faultbox/solis/internal/terrain"
	"github.com/Faultbox/solis/pkg/math"
)

// floatsPerVertex is position (3) + uv (2) + color (4).
const floatsPerVertex = 9

// interleave packs a chunk mesh into the vertex layout the shader expects.
func interleave(m terrain.Mesh) []float32 {
	out := make([]float32, 0, len(m.Vertices)*floatsPerVertex)
	for i, v := range m.Vertices {
		uv, c := m.UV[i], m.Colors[i]
		out = append(out, v.X, v.Y, v.Z, uv.X, uv.Y, c.R, c.G, c.B, c.A)
	}
	return out
}

// quadBatch accumulates untextured quads.
type quadBatch struct {
	vertices []float32
	indices  []uint32
}

func (b *quadBatch) reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

// add appends the rectangle [lo, hi] in quad vertex order.
func (b *quadBatch) add(lo, hi math.Vec2, c math.Color) {
	base := uint32(len(b.vertices) / floatsPerVertex)
	for _, p := range [4]math.Vec2{lo, {X: hi.X, Y: lo.Y}, {X: lo.X, Y: hi.Y}, hi} {
		b.vertices = append(b.vertices, p.X, p.Y, 0, 0, 0, c.R, c.G, c.B, c.A)
	}
	b.indices = append(b.indices,
		base, base+2, base+1,
		base+1, base+2, base+3,
	)
}

// DecorationSizes gives decoration sprite heights in tiles.
type DecorationSizes struct {
	TreeHeight float32
	BushHeight float32
}

// addDecoration draws a tree as a trunk with a canopy, and a bush as a
// single block. Decoration positions are sprite centers.
func (b *quadBatch) addDecoration(d terrain.Decoration, sizes DecorationSizes) {
	cx := d.Position.X + 0.5
	switch d.Kind {
	case terrain.DecorationTree:
		h := sizes.TreeHeight
		base := d.Position.Y - h/2
		b.add(math.Vec2{X: cx - 0.12, Y: base}, math.Vec2{X: cx + 0.12, Y: base + h*0.45}, d.BaseColor)
		b.add(math.Vec2{X: cx - 0.5, Y: base + h*0.35}, math.Vec2{X: cx + 0.5, Y: base + h}, d.LeafColor)
	case terrain.DecorationBush:
		h := sizes.BushHeight
		base := d.Position.Y - h/2
		b.add(math.Vec2{X: cx - 0.4, Y: base}, math.Vec2{X: cx + 0.4, Y: base + h*0.8}, d.BaseColor)
	}
}

// lineVertices appends two vertices per line for GL_LINES.
func lineVertices(dst []float32, lines []debug.Line) []float32 {
	for _, l := range lines {
		c := l.Color
		dst = append(dst,
			l.A.X, l.A.Y, 0, 0, 0, c.R, c.G, c.B, c.A,
			l.B.X, l.B.Y, 0, 0, 0, c.R, c.G, c.B, c.A,
		)
	}
	return dst
}
