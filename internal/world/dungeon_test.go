package world

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDungeon(t *testing.T, seed uint64) *Dungeon {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	d, err := NewDungeon(cfg)
	require.NoError(t, err)
	return d
}

func TestNewDungeonIsAllWall(t *testing.T) {
	d := newTestDungeon(t, DefaultSeed)
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			require.Equal(t, TileWall, d.TileAt(x, y))
		}
	}
}

func TestDungeonReferenceLayout(t *testing.T) {
	d := newTestDungeon(t, DefaultSeed)
	ctx := context.Background()

	rooms := d.Generate(ctx)
	assert.Len(t, rooms, 19)
	assert.Equal(t, Point{X: 29, Y: 21}, d.Spawn())
	assert.Equal(t, Point{X: 65, Y: 69}, d.Stairs())
	assert.Equal(t, Point{X: 55, Y: 62}, d.Key())

	// The stream carries on, so the next level differs.
	rooms = d.Generate(ctx)
	assert.Len(t, rooms, 16)
	assert.Equal(t, Point{X: 75, Y: 97}, d.Spawn())
	assert.Equal(t, Point{X: 144, Y: 93}, d.Stairs())
	assert.Equal(t, Point{X: 71, Y: 27}, d.Key())
}

func TestDungeonReproducibility(t *testing.T) {
	ctx := context.Background()
	d1 := newTestDungeon(t, 12345)
	d2 := newTestDungeon(t, 12345)

	rooms1 := d1.Generate(ctx)
	rooms2 := d2.Generate(ctx)
	require.Equal(t, rooms1, rooms2)

	for y := 0; y < d1.Height; y++ {
		for x := 0; x < d1.Width; x++ {
			if d1.TileAt(x, y) != d2.TileAt(x, y) {
				t.Fatalf("Tile mismatch at (%d,%d): %v != %v", x, y, d1.TileAt(x, y), d2.TileAt(x, y))
			}
		}
	}
}

func TestDungeonDifferentSeeds(t *testing.T) {
	ctx := context.Background()
	rooms1 := newTestDungeon(t, 12345).Generate(ctx)
	rooms2 := newTestDungeon(t, 54321).Generate(ctx)
	assert.NotEqual(t, rooms1, rooms2, "Dungeons with different seeds should not be identical")
}

func TestGenerateLayoutProperties(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()

	for seed := uint64(1); seed <= 60; seed++ {
		d := newTestDungeon(t, seed)
		// Two passes: regeneration must reset the grid.
		for pass := 0; pass < 2; pass++ {
			rooms := d.Generate(ctx)

			assert.GreaterOrEqual(t, len(rooms), max(minSpecialRooms, cfg.MinRooms), "seed %d", seed)
			assert.LessOrEqual(t, len(rooms), cfg.MaxRooms, "seed %d", seed)

			spawn, stairs, key := d.Spawn(), d.Stairs(), d.Key()
			assert.Equal(t, rooms[0].Center(), spawn, "seed %d", seed)
			assert.NotEqual(t, spawn, stairs, "seed %d", seed)
			assert.NotEqual(t, spawn, key, "seed %d", seed)
			assert.NotEqual(t, stairs, key, "seed %d", seed)
			assert.True(t, rooms[1].Contains(stairs.X, stairs.Y), "seed %d: stairs outside room 1", seed)
			assert.True(t, rooms[2].Contains(key.X, key.Y), "seed %d: key outside room 2", seed)
			assert.Equal(t, TileFloor, d.TileAt(spawn.X, spawn.Y), "seed %d", seed)

			counts := map[Tile]int{}
			for y := 0; y < d.Height; y++ {
				for x := 0; x < d.Width; x++ {
					counts[d.TileAt(x, y)]++
				}
			}
			assert.Equal(t, 1, counts[TileStairs], "seed %d", seed)
			assert.Equal(t, 1, counts[TileKey], "seed %d", seed)

			reached := reachable(d, spawn)
			for i, r := range rooms {
				assert.True(t, reached[Point{X: r.X, Y: r.Y}], "seed %d: room %d unreachable", seed, i)
			}
			assert.True(t, reached[stairs], "seed %d: stairs unreachable", seed)
			assert.True(t, reached[key], "seed %d: key unreachable", seed)

			assertMargin(t, d, cfg, seed)
		}
	}
}

// reachable floods from start across every non-wall tile.
func reachable(d *Dungeon, start Point) map[Point]bool {
	seen := map[Point]bool{start: true}
	queue := []Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, dir := range []Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
			n := Point{X: p.X + dir.X, Y: p.Y + dir.Y}
			if n.X < 0 || n.Y < 0 || n.X >= d.Width || n.Y >= d.Height {
				continue
			}
			if seen[n] || d.TileAt(n.X, n.Y) == TileWall {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return seen
}

// assertMargin checks that a viewport centred on any walkable cell stays on the map.
func assertMargin(t *testing.T, d *Dungeon, cfg Config, seed uint64) {
	t.Helper()
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			if d.TileAt(x, y) == TileWall {
				continue
			}
			ox, oy := x-cfg.ViewportWidth/2, y-cfg.ViewportHeight/2
			if ox < 0 || oy < 0 || ox+cfg.ViewportWidth > d.Width || oy+cfg.ViewportHeight > d.Height {
				t.Fatalf("seed %d: viewport at (%d,%d) leaves the map", seed, x, y)
			}
		}
	}
}

func TestCarveCorridorBendsAtRightRoom(t *testing.T) {
	west := Room{X: 30, Y: 30, HalfWidth: 2, HalfHeight: 2}
	east := Room{X: 50, Y: 60, HalfWidth: 2, HalfHeight: 2}

	for _, order := range [][2]Room{{west, east}, {east, west}} {
		d := newTestDungeon(t, DefaultSeed)
		d.carveCorridor(order[0], order[1])

		for x := 30; x <= 50; x++ {
			assert.Equal(t, TileFloor, d.TileAt(x, 30), "horizontal run at x=%d", x)
		}
		for y := 30; y <= 60; y++ {
			assert.Equal(t, TileFloor, d.TileAt(50, y), "vertical run at y=%d", y)
		}
		assert.Equal(t, TileWall, d.TileAt(30, 45))
		assert.Equal(t, TileWall, d.TileAt(40, 60))
	}
}

func TestReplaceWithFloor(t *testing.T) {
	d := newTestDungeon(t, DefaultSeed)
	d.Generate(context.Background())

	key := d.Key()
	require.Equal(t, TileKey, d.TileAt(key.X, key.Y))
	d.ReplaceWithFloor(key.X, key.Y)
	assert.Equal(t, TileFloor, d.TileAt(key.X, key.Y))
	assert.Equal(t, TileStairs, d.TileAt(d.Stairs().X, d.Stairs().Y))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"default", func(*Config) {}, nil},
		{"zero seed", func(c *Config) { c.Seed = 0 }, ErrZeroSeed},
		{"zero viewport", func(c *Config) { c.ViewportWidth = 0 }, ErrInvalidConfig},
		{"empty room count range", func(c *Config) { c.MinRooms = 50 }, ErrInvalidConfig},
		{"too few rooms", func(c *Config) { c.MinRooms, c.MaxRooms = 0, 3 }, ErrInvalidConfig},
		{"room dim too small", func(c *Config) { c.MinRoomDim = 1 }, ErrInvalidConfig},
		{"empty room dim range", func(c *Config) { c.MinRoomDim, c.MaxRoomDim = 8, 8 }, ErrInvalidConfig},
		{"map too narrow", func(c *Config) { c.MapWidth = 59 }, ErrInvalidConfig},
		{"map just wide enough", func(c *Config) { c.MapWidth = 60 }, nil},
		{"map too short", func(c *Config) { c.MapHeight = 39 }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSmallestValidMapGenerates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MapWidth, cfg.MapHeight = 60, 40
	d, err := NewDungeon(cfg)
	require.NoError(t, err)

	rooms := d.Generate(context.Background())
	assert.NotEmpty(t, rooms)
	assertMargin(t, d, cfg, cfg.Seed)
}

func TestTileString(t *testing.T) {
	assert.Equal(t, "wall", TileWall.String())
	assert.Equal(t, "floor", TileFloor.String())
	assert.Equal(t, "stairs", TileStairs.String())
	assert.Equal(t, "key", TileKey.String())
	assert.Equal(t, "unknown", Tile('?').String())
	assert.Equal(t, 'S', TileStairs.Rune())
}
