package world

import (
	"errors"
	"fmt"
)

const (
	// Default viewport dimensions
	DefaultViewportWidth  = 40
	DefaultViewportHeight = 20

	// Default map dimensions leave a viewport-wide band around a 100x100 core.
	DefaultWidth  = 100 + 2*DefaultViewportWidth
	DefaultHeight = 100 + 2*DefaultViewportHeight

	// DefaultSeed is the generation seed used when none is configured.
	DefaultSeed uint64 = 1232123123234

	defaultMinRooms   = 10
	defaultMaxRooms   = 50
	defaultMinRoomDim = 5
	defaultMaxRoomDim = 20

	// minSpecialRooms is the number of rooms needed to hold spawn, stairs and key.
	minSpecialRooms = 3
)

var (
	// ErrZeroSeed is returned for a zero seed, which xorshift cannot leave.
	ErrZeroSeed = errors.New("seed must be non-zero")
	// ErrInvalidConfig wraps every other configuration problem.
	ErrInvalidConfig = errors.New("invalid dungeon config")
)

// Config holds the generation parameters. Dimensions are fixed for the
// lifetime of a Dungeon.
type Config struct {
	Seed uint64

	MapWidth  int
	MapHeight int

	// Viewport dimensions reserve a margin on every map edge so a window
	// centred on any floor tile stays inside the map.
	ViewportWidth  int
	ViewportHeight int

	MinRooms   int
	MaxRooms   int
	MinRoomDim int
	MaxRoomDim int
}

// DefaultConfig returns the build's fixed dungeon configuration.
func DefaultConfig() Config {
	return Config{
		Seed:           DefaultSeed,
		MapWidth:       DefaultWidth,
		MapHeight:      DefaultHeight,
		ViewportWidth:  DefaultViewportWidth,
		ViewportHeight: DefaultViewportHeight,
		MinRooms:       defaultMinRooms,
		MaxRooms:       defaultMaxRooms,
		MinRoomDim:     defaultMinRoomDim,
		MaxRoomDim:     defaultMaxRoomDim,
	}
}

// Validate checks that every draw generation makes has a non-empty range.
func (c Config) Validate() error {
	if c.Seed == 0 {
		return ErrZeroSeed
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("%w: viewport %dx%d must be positive", ErrInvalidConfig, c.ViewportWidth, c.ViewportHeight)
	}
	if c.MinRooms < 0 || c.MinRooms >= c.MaxRooms {
		return fmt.Errorf("%w: room count range [%d, %d) is empty", ErrInvalidConfig, c.MinRooms, c.MaxRooms)
	}
	if c.MaxRooms <= minSpecialRooms {
		return fmt.Errorf("%w: max rooms %d must exceed %d", ErrInvalidConfig, c.MaxRooms, minSpecialRooms)
	}
	// Half-dimensions of at least 1 keep room centres inside their rooms and
	// leave room 1 and room 2 enough cells for stairs and key.
	if c.MinRoomDim < 2 || c.MinRoomDim >= c.MaxRoomDim {
		return fmt.Errorf("%w: room dimension range [%d, %d) needs min >= 2", ErrInvalidConfig, c.MinRoomDim, c.MaxRoomDim)
	}

	maxHalf := (c.MaxRoomDim - 1) / 2
	if need := 2*(c.ViewportWidth/2) + 2*maxHalf + 1; c.MapWidth <= need {
		return fmt.Errorf("%w: map width %d must exceed %d", ErrInvalidConfig, c.MapWidth, need)
	}
	if need := 2*(c.ViewportHeight/2) + 2*maxHalf + 1; c.MapHeight <= need {
		return fmt.Errorf("%w: map height %d must exceed %d", ErrInvalidConfig, c.MapHeight, need)
	}
	return nil
}
