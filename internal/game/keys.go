package game

// Key bindings. Arrow keys arrive as ESC '[' <final byte>; only the final byte
// is inspected, so the two prefix bytes are read and ignored.
const (
	KeyUp       byte = 65
	KeyDown     byte = 66
	KeyRight    byte = 67
	KeyLeft     byte = 68
	KeyQuit     byte = 'q'
	KeyContinue byte = ' '
)

// direction returns the step for a movement key.
func direction(key byte) (dx, dy int, ok bool) {
	switch key {
	case KeyUp:
		return 0, -1, true
	case KeyDown:
		return 0, 1, true
	case KeyRight:
		return 1, 0, true
	case KeyLeft:
		return -1, 0, true
	default:
		return 0, 0, false
	}
}
