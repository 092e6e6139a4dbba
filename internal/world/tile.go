// Package world provides dungeon generation and map management.
package world

// Tile represents a single map tile. Its value is the glyph it renders as.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents a walkable floor tile.
	TileFloor Tile = '.'
	// TileStairs leads to the next level once the key is held.
	TileStairs Tile = 'S'
	// TileKey is picked up when stepped on and becomes floor.
	TileKey Tile = 'K'
)

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileStairs:
		return "stairs"
	case TileKey:
		return "key"
	default:
		return "unknown"
	}
}

// Point is a grid coordinate.
type Point struct {
	X, Y int
}
