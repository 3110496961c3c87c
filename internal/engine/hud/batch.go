package hud

import (
	"strings"

	"github.com/Faultbox/solis/pkg/math"
)

// Same layout as the chunk renderer: pos 3, uv 2, color 4.
const floatsPerVertex = 9

// Batch collects one frame of screen-space quads. Coordinates are in
// drawable pixels with the origin at the top left.
type Batch struct {
	font  *Font
	solid []float32
	text  []float32
}

// NewBatch creates an empty batch drawing glyphs from font.
func NewBatch(font *Font) *Batch {
	return &Batch{
		font:  font,
		solid: make([]float32, 0, 1024),
		text:  make([]float32, 0, 4096),
	}
}

// Reset drops everything queued so far.
func (b *Batch) Reset() {
	b.solid = b.solid[:0]
	b.text = b.text[:0]
}

func quad(dst []float32, x, y, w, h, u0, v0, u1, v1 float32, c math.Color) []float32 {
	return append(dst,
		x, y, 0, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y, 0, u1, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,
		x, y, 0, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,
		x, y+h, 0, u0, v1, c.R, c.G, c.B, c.A,
	)
}

// Rect queues a filled rectangle.
func (b *Batch) Rect(x, y, w, h float32, c math.Color) {
	b.solid = quad(b.solid, x, y, w, h, 0, 0, 0, 0, c)
}

// Panel queues a filled rectangle with a one pixel border.
func (b *Batch) Panel(x, y, w, h float32, bg, border math.Color) {
	b.Rect(x, y, w, h, bg)
	b.Rect(x, y, w, 1, border)
	b.Rect(x, y+h-1, w, 1, border)
	b.Rect(x, y, 1, h, border)
	b.Rect(x+w-1, y, 1, h, border)
}

// Text queues text with its top left corner at (x, y).
func (b *Batch) Text(x, y float32, text string, scale float32, c math.Color) {
	gw, gh := b.font.GlyphSize()
	cw, ch := float32(gw)*scale, float32(gh)*scale
	cx := x
	for _, r := range text {
		if r == '\n' {
			cx = x
			y += ch
			continue
		}
		if r != ' ' {
			u0, v0, u1, v1 := b.font.GlyphUV(r)
			b.text = quad(b.text, cx, y, cw, ch, u0, v0, u1, v1, c)
		}
		cx += cw
	}
}

// Block queues lines of text on a panel sized to fit them.
func (b *Batch) Block(x, y float32, lines []string, scale float32, s Style) {
	text := strings.Join(lines, "\n")
	w, h := b.font.MeasureText(text, scale)
	b.Panel(x, y, w+2*s.Padding, h+2*s.Padding, s.Background, s.Border)
	b.Text(x+s.Padding, y+s.Padding, text, scale, s.Text)
}

// Style holds colors for Block.
type Style struct {
	Background math.Color
	Border     math.Color
	Text       math.Color
	Padding    float32
}

// DefaultStyle is a translucent dark panel with light text.
var DefaultStyle = Style{
	Background: math.Color{R: 0.05, G: 0.05, B: 0.08, A: 0.75},
	Border:     math.Color{R: 0.4, G: 0.4, B: 0.45, A: 1},
	Text:       math.Color{R: 0.95, G: 0.95, B: 0.9, A: 1},
	Padding:    6,
}

func vertexCount(v []float32) int32 { return int32(len(v) / floatsPerVertex) }
