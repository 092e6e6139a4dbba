// Package ui provides a tcell-backed terminal for the game loop.
package ui

import (
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/rawcrawl/internal/gamedata"
)

// Arrow keys are reported with the final byte of their ANSI escape sequence,
// the same bytes a raw tty delivers last.
const (
	arrowUp    byte = 'A'
	arrowDown  byte = 'B'
	arrowRight byte = 'C'
	arrowLeft  byte = 'D'
)

// inputBuffer bounds queued key bytes; presses beyond it are dropped.
const inputBuffer = 64

// Screen wraps tcell.Screen as a byte-oriented, non-blocking terminal.
type Screen struct {
	screen   tcell.Screen
	renderer *Renderer

	keys chan byte
	done chan struct{}
}

// NewScreen creates and initializes a new terminal screen. tcell takes care of
// raw mode and input; an Init failure means the terminal could not be set up.
func NewScreen(palette *gamedata.Palette) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newScreen(s, palette)
}

func newScreen(s tcell.Screen, palette *gamedata.Palette) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(palette.Default())
	s.HideCursor()
	s.Clear()

	scr := &Screen{
		screen: s,
		keys:   make(chan byte, inputBuffer),
		done:   make(chan struct{}),
	}
	scr.renderer = NewRenderer(scr, palette)
	go scr.pollEvents()
	return scr, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
	<-s.done
}

// ReadByte returns the next queued key byte, or 0 if none is waiting.
func (s *Screen) ReadByte() byte {
	select {
	case b := <-s.keys:
		return b
	default:
		return 0
	}
}

// Write draws a frame stream onto the screen and shows it.
func (s *Screen) Write(p []byte) error {
	s.renderer.Draw(p)
	return nil
}

// Now returns the current time.
func (s *Screen) Now() time.Time {
	return time.Now()
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// pollEvents forwards key presses as bytes until the screen is finalized.
func (s *Screen) pollEvents() {
	defer close(s.done)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if b, ok := keyByte(ev); ok {
				select {
				case s.keys <- b:
				default:
				}
			}
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

// keyByte maps a key event to the byte a raw tty would end it with.
func keyByte(ev *tcell.EventKey) (byte, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return arrowUp, true
	case tcell.KeyDown:
		return arrowDown, true
	case tcell.KeyRight:
		return arrowRight, true
	case tcell.KeyLeft:
		return arrowLeft, true
	case tcell.KeyRune:
		if r := ev.Rune(); r < utf8.RuneSelf {
			return byte(r), true
		}
		return 0, false
	default:
		// Control keys share their ASCII codes.
		if k := ev.Key(); k < utf8.RuneSelf {
			return byte(k), true
		}
		return 0, false
	}
}
