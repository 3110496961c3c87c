package hud

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph = ' '
	lastGlyph  = '~'
	atlasCols  = 16
)

// Font is a fixed-width glyph atlas for printable ASCII.
type Font struct {
	img    *image.RGBA
	glyphW int
	glyphH int
	cols   int
	rows   int
}

// NewFont rasterizes basicfont.Face7x13 into an atlas. Glyphs are white with
// coverage in alpha so text takes the vertex color.
func NewFont() *Font {
	face := basicfont.Face7x13
	n := int(lastGlyph-firstGlyph) + 1
	f := &Font{
		glyphW: face.Advance,
		glyphH: face.Height,
		cols:   atlasCols,
		rows:   (n + atlasCols - 1) / atlasCols,
	}
	f.img = image.NewRGBA(image.Rect(0, 0, f.cols*f.glyphW, f.rows*f.glyphH))

	d := font.Drawer{Dst: f.img, Src: image.White, Face: face}
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		x, y := f.cell(r)
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(r))
	}
	return f
}

func (f *Font) cell(r rune) (x, y int) {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	i := int(r - firstGlyph)
	return (i % f.cols) * f.glyphW, (i / f.cols) * f.glyphH
}

// Image returns the atlas, top row first.
func (f *Font) Image() *image.RGBA { return f.img }

// GlyphSize returns the cell size in pixels.
func (f *Font) GlyphSize() (int, int) { return f.glyphW, f.glyphH }

// GlyphUV returns the atlas rectangle of r. Runes outside the atlas map to '?'.
func (f *Font) GlyphUV(r rune) (u0, v0, u1, v1 float32) {
	x, y := f.cell(r)
	w := float32(f.img.Bounds().Dx())
	h := float32(f.img.Bounds().Dy())
	return float32(x) / w, float32(y) / h,
		float32(x+f.glyphW) / w, float32(y+f.glyphH) / h
}

// MeasureText returns the size of text drawn at scale.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	lines, longest, cur := 1, 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		if cur > longest {
			longest = cur
		}
	}
	return float32(longest*f.glyphW) * scale, float32(lines*f.glyphH) * scale
}
