// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/solis/internal/terrain"
	"github.com/Faultbox/solis/pkg/math"
)

// Line is a colored segment in world space.
type Line struct {
	A, B  math.Vec2
	Color math.Color
}

var (
	colliderColor = math.Color{R: 1, G: 0.2, B: 0.2, A: 0.9}
	borderColor   = math.Color{R: 1, G: 1, B: 1, A: 0.35}
)

// ColliderLines outlines every collider box of the given chunks.
func ColliderLines(chunks []*terrain.Chunk) []Line {
	var lines []Line
	for _, ch := range chunks {
		off := ch.ViewPosition()
		for _, c := range ch.Colliders() {
			center := c.Center.Add(off)
			half := c.Size.Scale(0.5)
			lines = appendRect(lines, center.Sub(half), center.Add(half), colliderColor)
		}
	}
	return lines
}

// ChunkBorders outlines each chunk's tile area.
func ChunkBorders(chunks []*terrain.Chunk) []Line {
	var lines []Line
	for _, ch := range chunks {
		l := ch.Layout()
		lo := ch.ViewPosition()
		hi := lo.Add(math.Vec2{X: float32(l.Width), Y: float32(l.Height)})
		lines = appendRect(lines, lo, hi, borderColor)
	}
	return lines
}

func appendRect(lines []Line, lo, hi math.Vec2, c math.Color) []Line {
	tl := math.Vec2{X: lo.X, Y: hi.Y}
	br := math.Vec2{X: hi.X, Y: lo.Y}
	return append(lines,
		Line{lo, br, c},
		Line{br, hi, c},
		Line{hi, tl, c},
		Line{tl, lo, c},
	)
}
