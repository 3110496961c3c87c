package renderer

import (
	"image"
	"image/color"

	"github.com/Faultbox/solis/internal/terrain"
)

// edges lists which sides of a sprite are drawn darker: top, right,
// bottom, left. Curves darken a single corner.
type edges struct {
	top, right, bottom, left bool
	corner                   int // 0 none, 1 TL, 2 TR, 3 BR, 4 BL
}

var classEdges = map[terrain.Classification]edges{
	terrain.TopEdge:    {top: true},
	terrain.CornerTR:   {top: true, right: true},
	terrain.CornerTL:   {top: true, left: true},
	terrain.BottomEdge: {bottom: true},
	terrain.CornerBR:   {bottom: true, right: true},
	terrain.CornerBL:   {bottom: true, left: true},
	terrain.RightEdge:  {right: true},
	terrain.LeftEdge:   {left: true},
	terrain.CurveTL:    {corner: 3},
	terrain.CurveBL:    {corner: 2},
	terrain.CurveTR:    {corner: 4},
	terrain.CurveBR:    {corner: 1},
}

// PlaceholderAtlas paints a grayscale atlas for lookups without an image.
// Sprites are white with a dark band along their open sides, so tinting by
// the vertex color shows the autotiling. Lookup positions count from the
// bottom-left like UVs; the image is stored top row first.
func PlaceholderAtlas(lookup terrain.TilesetLookup) *image.RGBA {
	aw, ah := lookup.AtlasWidth(), lookup.AtlasHeight()
	tw, th := lookup.TileWidth(), lookup.TileHeight()
	img := image.NewRGBA(image.Rect(0, 0, aw, ah))

	band := max(tw/6, 1)
	light := color.RGBA{255, 255, 255, 255}
	dark := color.RGBA{110, 110, 110, 255}

	for _, class := range terrain.Classifications() {
		px, py, ok := lookup.Position(class.String())
		if !ok {
			continue
		}
		e := classEdges[class]
		for y := 0; y < th; y++ {
			for x := 0; x < tw; x++ {
				c := light
				if e.shaded(x, y, tw, th, band) {
					c = dark
				}
				img.SetRGBA(int(px)+x, ah-1-(int(py)+y), c)
			}
		}
	}
	return img
}

// shaded reports whether sprite pixel (x, y), counted from the bottom-left,
// falls in a dark band.
func (e edges) shaded(x, y, w, h, band int) bool {
	top, bottom := y >= h-band, y < band
	left, right := x < band, x >= w-band
	switch {
	case e.top && top, e.bottom && bottom, e.left && left, e.right && right:
		return true
	}
	switch e.corner {
	case 1:
		return top && left
	case 2:
		return top && right
	case 3:
		return bottom && right
	case 4:
		return bottom && left
	}
	return false
}

// flipRows returns img with its rows reversed so row 0 is the bottom, the
// order glTexImage2D expects.
func flipRows(img *image.RGBA) []uint8 {
	b := img.Bounds()
	stride := b.Dx() * 4
	out := make([]uint8, stride*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+stride]
		copy(out[(b.Dy()-1-y)*stride:], src)
	}
	return out
}
