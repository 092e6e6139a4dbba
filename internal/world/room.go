package world

// Room is a rectangle carved during generation. It covers
// [X-HalfWidth, X+HalfWidth) by [Y-HalfHeight, Y+HalfHeight).
type Room struct {
	X, Y                  int // Centre position
	HalfWidth, HalfHeight int
}

// Center returns the room's centre cell.
func (r Room) Center() Point {
	return Point{X: r.X, Y: r.Y}
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X-r.HalfWidth && x < r.X+r.HalfWidth &&
		y >= r.Y-r.HalfHeight && y < r.Y+r.HalfHeight
}
