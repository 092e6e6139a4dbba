package gamedata

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// GlyphDef assigns a colour to one display glyph.
type GlyphDef struct {
	Glyph string `json:"glyph"` // Single character (e.g. "#")
	Name  string `json:"name"`  // What the glyph depicts (e.g. "wall")
	Color string `json:"color"` // Hex color code (e.g. "#6C6C6C")
	Bold  bool   `json:"bold"`
}

// PaletteFile represents the structure of palette.json.
type PaletteFile struct {
	Background string     `json:"background"`
	Glyphs     []GlyphDef `json:"glyphs"`
	Message    GlyphDef   `json:"message"` // Style for text that is not a known glyph
}

// Palette maps glyphs to terminal styles.
type Palette struct {
	styles   map[rune]tcell.Style
	fallback tcell.Style
}

// NewPalette builds a palette from decoded palette data.
func NewPalette(file PaletteFile) (*Palette, error) {
	bg, err := ParseHexColor(file.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	base := tcell.StyleDefault.Background(bg)

	fallback, err := glyphStyle(base, file.Message)
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}

	p := &Palette{
		styles:   make(map[rune]tcell.Style, len(file.Glyphs)),
		fallback: fallback,
	}
	for _, g := range file.Glyphs {
		if utf8.RuneCountInString(g.Glyph) != 1 {
			return nil, fmt.Errorf("glyph %q for %s must be a single character", g.Glyph, g.Name)
		}
		style, err := glyphStyle(base, g)
		if err != nil {
			return nil, fmt.Errorf("glyph %s: %w", g.Name, err)
		}
		r, _ := utf8.DecodeRuneInString(g.Glyph)
		p.styles[r] = style
	}
	return p, nil
}

// LoadPalette loads the embedded palette.json.
func LoadPalette() (*Palette, error) {
	file, err := load[PaletteFile]("palette.json")
	if err != nil {
		return nil, err
	}
	if len(file.Glyphs) == 0 {
		return nil, errors.New("no glyphs loaded from palette.json")
	}
	return NewPalette(file)
}

// Style returns the style for glyph r, or the message style for any other rune.
func (p *Palette) Style(r rune) tcell.Style {
	if s, ok := p.styles[r]; ok {
		return s
	}
	return p.fallback
}

// Default returns the style used for text that is not a known glyph.
func (p *Palette) Default() tcell.Style {
	return p.fallback
}

func glyphStyle(base tcell.Style, g GlyphDef) (tcell.Style, error) {
	fg, err := ParseHexColor(g.Color)
	if err != nil {
		return base, err
	}
	return base.Foreground(fg).Bold(g.Bold), nil
}

// ParseHexColor converts a hex color string ("#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}

// load reads and unmarshals a JSON file from the embedded filesystem.
func load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}
	return result, nil
}
