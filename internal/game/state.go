// Package game provides the main game loop and state management.
package game

import (
	"time"

	"github.com/samdwyer/rawcrawl/internal/entity"
)

// State represents the current game state.
type State int

const (
	// StateGenerating rebuilds the level on the next loop pass.
	StateGenerating State = iota
	// StateAwaitingTick is normal play: input is polled and moves resolve on ticks.
	StateAwaitingTick
	// StatePaused shows a message and waits for the continue key.
	StatePaused
	// StateQuit ends the loop.
	StateQuit
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateGenerating:
		return "generating"
	case StateAwaitingTick:
		return "awaiting_tick"
	case StatePaused:
		return "paused"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// GameState is everything the loop mutates between iterations.
type GameState struct {
	State  State
	Player *entity.Player

	// PendingKey is the last movement key seen since the previous tick, or 0.
	PendingKey byte
	LastTick   time.Time

	// Level counts generated levels, starting at 1.
	Level int
}
