package ui

import (
	"unicode/utf8"

	"github.com/samdwyer/rawcrawl/internal/gamedata"
)

// Renderer replays the game's ANSI frame stream onto a Screen, colouring each
// glyph from the palette. It understands the subset the game emits: erase
// display (CSI J), cursor position (CSI H) and newlines.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
	x, y    int
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette *gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Draw interprets p and shows the result.
func (r *Renderer) Draw(p []byte) {
	for i := 0; i < len(p); {
		if p[i] == 0x1b {
			i = r.escape(p, i)
			continue
		}

		ch, size := utf8.DecodeRune(p[i:])
		i += size
		switch ch {
		case '\n':
			r.x = 0
			r.y++
		case '\r':
			r.x = 0
		default:
			r.screen.SetContent(r.x, r.y, ch, r.palette.Style(ch))
			r.x++
		}
	}
	r.screen.Show()
}

// escape handles a CSI sequence starting at p[i] and returns the index after it.
// Unknown or truncated sequences are skipped.
func (r *Renderer) escape(p []byte, i int) int {
	if i+1 >= len(p) || p[i+1] != '[' {
		return i + 1
	}

	var params []int
	n, haveDigit := 0, false
	for j := i + 2; j < len(p); j++ {
		c := p[j]
		switch {
		case c >= '0' && c <= '9':
			n = n*10 + int(c-'0')
			haveDigit = true
		case c == ';':
			params = append(params, n)
			n, haveDigit = 0, false
		case c >= 0x40 && c <= 0x7e:
			if haveDigit {
				params = append(params, n)
			}
			r.control(c, params)
			return j + 1
		case c >= 0x20 && c <= 0x3f:
			// private markers and intermediates
		default:
			return j + 1
		}
	}
	return len(p)
}

func (r *Renderer) control(final byte, params []int) {
	switch final {
	case 'J':
		r.screen.Clear()
	case 'H':
		row, col := 1, 1
		if len(params) > 0 && params[0] > 0 {
			row = params[0]
		}
		if len(params) > 1 && params[1] > 0 {
			col = params[1]
		}
		r.x, r.y = col-1, row-1
	}
}
