package game

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/rawcrawl/internal/entity"
	"github.com/samdwyer/rawcrawl/internal/telemetry"
	"github.com/samdwyer/rawcrawl/internal/viewport"
	"github.com/samdwyer/rawcrawl/internal/world"
)

// TickInterval is the minimum time between two move resolutions. Input is
// polled on every loop pass regardless.
const TickInterval = 30 * time.Millisecond

// Messages shown when the game pauses.
const (
	MsgNeedKey  = "You must find the key!"
	MsgFoundKey = "You found the key!"
)

// Terminal is the I/O surface the loop needs. ReadByte must not block and
// returns 0 when no input is waiting.
type Terminal interface {
	ReadByte() byte
	Write(p []byte) error
	Now() time.Time
}

// Game holds the entire game state.
type Game struct {
	term    Terminal
	dungeon *world.Dungeon
	window  *viewport.Window
	state   GameState
	frame   []byte
}

// New creates a new game instance. The first level is generated when Run starts.
func New(cfg world.Config, term Terminal) (*Game, error) {
	dungeon, err := world.NewDungeon(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dungeon: %w", err)
	}

	window := viewport.New(cfg.ViewportWidth, cfg.ViewportHeight)
	return &Game{
		term:    term,
		dungeon: dungeon,
		window:  window,
		state: GameState{
			State:  StateGenerating,
			Player: entity.NewPlayer(world.Point{}),
		},
		frame: make([]byte, 0, len(viewport.ClearScreen)+(cfg.ViewportWidth+1)*cfg.ViewportHeight),
	}, nil
}

// State returns a snapshot of the loop state. The player is copied, so
// changes to the snapshot do not reach the running game.
func (g *Game) State() GameState {
	st := g.state
	if st.Player != nil {
		p := *st.Player
		st.Player = &p
	}
	return st
}

// Run executes the main game loop until the quit key is read or ctx is
// cancelled. Both are only checked between passes, never while paused.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.run",
		trace.WithAttributes(attribute.String("session.id", telemetry.SessionID())),
	)
	defer span.End()

	if err := g.term.Write([]byte(viewport.ClearScreen)); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	g.state.LastTick = g.term.Now()

	for g.state.State != StateQuit {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.step(ctx); err != nil {
			span.RecordError(err)
			return err
		}
	}

	span.SetAttributes(attribute.Int("game.levels", g.state.Level))
	return nil
}

// step runs one loop pass: regenerate if due, sample input, and on a tick
// resolve the pending move and redraw.
func (g *Game) step(ctx context.Context) error {
	now := g.term.Now()

	if g.state.State == StateGenerating {
		g.generate(ctx)
	}

	key := g.term.ReadByte()
	if key == KeyQuit {
		g.state.State = StateQuit
		return nil
	}
	if _, _, ok := direction(key); ok {
		g.state.PendingKey = key
	}

	if now.Sub(g.state.LastTick) < TickInterval {
		return nil
	}
	g.state.LastTick = now

	if msg := g.resolve(ctx); msg != "" {
		if err := g.term.Write([]byte(msg)); err != nil {
			return fmt.Errorf("write message: %w", err)
		}
	}

	g.window.Render(g.dungeon, g.state.Player.X, g.state.Player.Y)

	if g.state.State == StatePaused {
		g.waitForContinue()
	}

	g.frame = g.window.Frame(g.frame[:0])
	if err := g.term.Write(g.frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// generate builds a new level and puts the player at its spawn without the key.
func (g *Game) generate(ctx context.Context) {
	rooms := g.dungeon.Generate(ctx)
	g.state.Player.Respawn(g.dungeon.Spawn())
	g.state.Level++
	g.state.State = StateAwaitingTick

	trace.SpanFromContext(ctx).AddEvent("level.generated", trace.WithAttributes(
		attribute.Int("level", g.state.Level),
		attribute.Int("level.rooms", len(rooms)),
	))
}

// resolve applies the pending key against the target tile and clears it. It
// returns the message to show, if any.
func (g *Game) resolve(ctx context.Context) string {
	key := g.state.PendingKey
	g.state.PendingKey = 0

	dx, dy, ok := direction(key)
	if !ok {
		return ""
	}

	player := g.state.Player
	target := player.Target(dx, dy)
	span := trace.SpanFromContext(ctx)

	switch g.dungeon.TileAt(target.X, target.Y) {
	case world.TileFloor:
		player.MoveTo(target)

	case world.TileStairs:
		if !player.HasKey {
			span.AddEvent("stairs.locked", trace.WithAttributes(attribute.Int("level", g.state.Level)))
			g.state.State = StatePaused
			return MsgNeedKey
		}
		player.MoveTo(target)
		g.state.State = StateGenerating
		span.AddEvent("level.descend", trace.WithAttributes(attribute.Int("level", g.state.Level)))

	case world.TileKey:
		player.MoveTo(target)
		player.HasKey = true
		g.dungeon.ReplaceWithFloor(target.X, target.Y)
		span.AddEvent("key.found", trace.WithAttributes(attribute.Int("level", g.state.Level)))
		g.state.State = StatePaused
		return MsgFoundKey
	}

	return ""
}

// waitForContinue spins on non-blocking reads until the continue key arrives.
// The quit key is not honoured here.
func (g *Game) waitForContinue() {
	for g.term.ReadByte() != KeyContinue {
	}
	g.state.State = StateAwaitingTick
}
