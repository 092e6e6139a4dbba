// Package entity provides the player character.
package entity

import "github.com/samdwyer/rawcrawl/internal/world"

// Player is the single adventurer walking the dungeon.
type Player struct {
	X, Y   int  // Current position in the dungeon
	HasKey bool // Whether the stairs key has been picked up
}

// NewPlayer creates a player at the given position without the key.
func NewPlayer(p world.Point) *Player {
	return &Player{X: p.X, Y: p.Y}
}

// Respawn moves the player to p and drops the key, as on a new level.
func (p *Player) Respawn(at world.Point) {
	p.X, p.Y = at.X, at.Y
	p.HasKey = false
}

// MoveTo places the player at the given position.
func (p *Player) MoveTo(at world.Point) {
	p.X, p.Y = at.X, at.Y
}

// Position returns the current coordinates.
func (p *Player) Position() world.Point {
	return world.Point{X: p.X, Y: p.Y}
}

// Target returns the cell one step away in direction (dx, dy).
func (p *Player) Target(dx, dy int) world.Point {
	return world.Point{X: p.X + dx, Y: p.Y + dy}
}
