package world

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/rawcrawl/internal/random"
	"github.com/samdwyer/rawcrawl/internal/telemetry"
)

// Dungeon represents the game map. It owns its tile grid exclusively; the grid
// changes only through Generate and ReplaceWithFloor.
type Dungeon struct {
	Width  int
	Height int

	cfg   Config
	tiles []Tile // row-major, Width*Height
	rng   *random.Xorshift

	spawn  Point
	stairs Point
	key    Point
}

// NewDungeon creates a new dungeon filled with walls.
func NewDungeon(cfg Config) (*Dungeon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tiles := make([]Tile, cfg.MapWidth*cfg.MapHeight)
	for i := range tiles {
		tiles[i] = TileWall
	}

	return &Dungeon{
		Width:  cfg.MapWidth,
		Height: cfg.MapHeight,
		cfg:    cfg,
		tiles:  tiles,
		rng:    random.New(cfg.Seed),
	}, nil
}

// Generate rebuilds the whole map from the dungeon's number stream and returns
// the rooms it carved, in generation order. Each room is joined to the one
// before it, so the rooms form a single chain starting at the spawn room.
func (d *Dungeon) Generate(ctx context.Context) []Room {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	for i := range d.tiles {
		d.tiles[i] = TileWall
	}

	numRooms := int(d.rng.RangeWithMin(uint64(d.cfg.MinRooms), uint64(d.cfg.MaxRooms)))
	if numRooms < minSpecialRooms {
		numRooms = minSpecialRooms
	}

	rooms := make([]Room, 0, numRooms)
	for i := 0; i < numRooms; i++ {
		room := d.placeRoom()
		d.carveRoom(room)

		if i > 0 {
			d.carveCorridor(rooms[i-1], room)
		}

		switch i {
		case 0:
			d.spawn = room.Center()
		case 1:
			d.stairs = d.pointInRoom(room, d.spawn)
		case 2:
			d.key = d.pointInRoom(room, d.spawn, d.stairs)
		}

		rooms = append(rooms, room)
	}

	d.set(d.stairs.X, d.stairs.Y, TileStairs)
	d.set(d.key.X, d.key.Y, TileKey)

	span.SetAttributes(
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.room_count", len(rooms)),
		attribute.String("dungeon.spawn", pointString(d.spawn)),
		attribute.String("dungeon.stairs", pointString(d.stairs)),
		attribute.String("dungeon.key", pointString(d.key)),
		attribute.Int64("dungeon.generation_us", time.Since(startTime).Microseconds()),
	)

	return rooms
}

// TileAt returns the tile at the given position. Coordinates must be inside
// the map; the margin kept by Generate makes that hold for every cell the
// player or the viewport can reach.
func (d *Dungeon) TileAt(x, y int) Tile {
	return d.tiles[y*d.Width+x]
}

// ReplaceWithFloor turns a single cell into floor. It is how the key is
// consumed.
func (d *Dungeon) ReplaceWithFloor(x, y int) {
	d.set(x, y, TileFloor)
}

// Spawn returns the player start position of the last generation.
func (d *Dungeon) Spawn() Point { return d.spawn }

// Stairs returns the stairs position of the last generation.
func (d *Dungeon) Stairs() Point { return d.stairs }

// Key returns the key position of the last generation.
func (d *Dungeon) Key() Point { return d.key }

func (d *Dungeon) set(x, y int, t Tile) {
	d.tiles[y*d.Width+x] = t
}

// placeRoom draws a room's size and then its centre. The centre bounds keep
// half a viewport plus the room's own half-size clear of every edge.
func (d *Dungeon) placeRoom() Room {
	halfWidth := int(d.rng.RangeWithMin(uint64(d.cfg.MinRoomDim), uint64(d.cfg.MaxRoomDim)) / 2)
	halfHeight := int(d.rng.RangeWithMin(uint64(d.cfg.MinRoomDim), uint64(d.cfg.MaxRoomDim)) / 2)

	marginX := d.cfg.ViewportWidth / 2
	marginY := d.cfg.ViewportHeight / 2

	x := d.rng.RangeWithMin(
		uint64(marginX+halfWidth+1),
		uint64(d.Width-halfWidth-marginX),
	)
	y := d.rng.RangeWithMin(
		uint64(marginY+halfHeight+1),
		uint64(d.Height-halfHeight-marginY),
	)

	return Room{
		X:          int(x),
		Y:          int(y),
		HalfWidth:  halfWidth,
		HalfHeight: halfHeight,
	}
}

// carveRoom sets all tiles within the room to floor.
func (d *Dungeon) carveRoom(room Room) {
	for y := room.Y - room.HalfHeight; y < room.Y+room.HalfHeight; y++ {
		for x := room.X - room.HalfWidth; x < room.X+room.HalfWidth; x++ {
			d.set(x, y, TileFloor)
		}
	}
}

// carveCorridor joins two room centres with a right-angle hallway: a
// horizontal run along the row of the room further left, then a vertical run
// down the column of the room further right.
func (d *Dungeon) carveCorridor(prev, cur Room) {
	a, b := prev.Center(), cur.Center()
	left, right := a, b
	if b.X <= a.X {
		left, right = b, a
	}
	d.carveHorizontalTunnel(left.X, right.X, left.Y)
	d.carveVerticalTunnel(a.Y, b.Y, right.X)
}

// carveHorizontalTunnel carves a horizontal tunnel, both ends included.
func (d *Dungeon) carveHorizontalTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		d.set(x, y, TileFloor)
	}
}

// carveVerticalTunnel carves a vertical tunnel, both ends included.
func (d *Dungeon) carveVerticalTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		d.set(x, y, TileFloor)
	}
}

// pointInRoom draws cells inside room until one differs from every point in
// taken. Rows are drawn before columns.
func (d *Dungeon) pointInRoom(room Room, taken ...Point) Point {
	for {
		y := d.rng.RangeWithMin(uint64(room.Y-room.HalfHeight), uint64(room.Y+room.HalfHeight))
		x := d.rng.RangeWithMin(uint64(room.X-room.HalfWidth), uint64(room.X+room.HalfWidth))
		p := Point{X: int(x), Y: int(y)}

		free := true
		for _, t := range taken {
			if p == t {
				free = false
				break
			}
		}
		if free {
			return p
		}
	}
}

func pointString(p Point) string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}
