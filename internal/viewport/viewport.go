// Package viewport crops a player-centred window out of the dungeon map and
// encodes it as a terminal frame.
package viewport

import (
	"unicode/utf8"

	"github.com/samdwyer/rawcrawl/internal/world"
)

// PlayerGlyph is drawn on the player's cell instead of the tile beneath.
const PlayerGlyph = '@'

// ClearScreen clears the display and homes the cursor.
const ClearScreen = "\x1b[2J\x1b[1;1H"

// TileMap is the read side of a dungeon.
type TileMap interface {
	TileAt(x, y int) world.Tile
}

// Window is a fixed-size buffer of glyphs, overwritten on every Render.
type Window struct {
	Width  int
	Height int
	cells  []rune
}

// New creates a window filled with floor glyphs.
func New(width, height int) *Window {
	cells := make([]rune, width*height)
	for i := range cells {
		cells[i] = world.TileFloor.Rune()
	}
	return &Window{Width: width, Height: height, cells: cells}
}

// Origin returns the map coordinate of the window's top-left cell when it is
// centred on (px, py).
func (w *Window) Origin(px, py int) (int, int) {
	return px - w.Width/2, py - w.Height/2
}

// Render copies the map region centred on the player into the window. It does
// no bounds checking: the dungeon's edge margin keeps the crop on the map.
func (w *Window) Render(m TileMap, px, py int) {
	ox, oy := w.Origin(px, py)
	for y := 0; y < w.Height; y++ {
		row := w.cells[y*w.Width : (y+1)*w.Width]
		for x := range row {
			mx, my := ox+x, oy+y
			if mx == px && my == py {
				row[x] = PlayerGlyph
				continue
			}
			row[x] = m.TileAt(mx, my).Rune()
		}
	}
}

// At returns the glyph at window coordinate (x, y).
func (w *Window) At(x, y int) rune {
	return w.cells[y*w.Width+x]
}

// Frame appends the clear sequence and the window rows, each ending in a
// newline, to dst.
func (w *Window) Frame(dst []byte) []byte {
	dst = append(dst, ClearScreen...)
	for y := 0; y < w.Height; y++ {
		for _, r := range w.cells[y*w.Width : (y+1)*w.Width] {
			dst = utf8.AppendRune(dst, r)
		}
		dst = append(dst, '\n')
	}
	return dst
}
