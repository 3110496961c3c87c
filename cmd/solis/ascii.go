package main

import (
	"strings"

	"github.com/Faultbox/solis/internal/terrain"
)

var classGlyphs = map[terrain.Classification]byte{
	terrain.Interior:   '#',
	terrain.TopEdge:    '^',
	terrain.BottomEdge: 'v',
	terrain.RightEdge:  '>',
	terrain.LeftEdge:   '<',
	terrain.CornerTL:   '/',
	terrain.CornerBR:   '/',
	terrain.CornerTR:   '\\',
	terrain.CornerBL:   '\\',
	terrain.CurveTL:    'r',
	terrain.CurveTR:    '7',
	terrain.CurveBL:    'L',
	terrain.CurveBR:    'J',
}

// renderASCII draws the chunk top row first, one glyph per tile. Water is '.'.
func renderASCII(ch *terrain.Chunk, decorations bool) string {
	l := ch.Layout()
	rows := make([][]byte, l.Height)
	for y := range rows {
		row := make([]byte, l.Width)
		for x := range row {
			row[x] = '.'
			pos := terrain.Coord{X: x, Y: y}
			t, ok := ch.Tile(pos)
			if !ok || !t.State() {
				continue
			}
			if class, ok := ch.Classification(pos); ok {
				row[x] = classGlyphs[class]
			}
		}
		rows[y] = row
	}

	if decorations {
		for _, d := range ch.Decorations() {
			if !l.Contains(d.Tile) {
				continue
			}
			switch d.Kind {
			case terrain.DecorationTree:
				rows[d.Tile.Y][d.Tile.X] = 'T'
			case terrain.DecorationBush:
				rows[d.Tile.Y][d.Tile.X] = 'b'
			}
		}
	}

	var sb strings.Builder
	for y := l.Height - 1; y >= 0; y-- {
		sb.Write(rows[y])
		sb.WriteByte('\n')
	}
	return sb.String()
}

func legend() string {
	return `Legend: # grass  ^ v < > edges  / \ corners  r 7 L J curves  . water`
}
