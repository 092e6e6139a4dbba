// Package main is the entry point for rawcrawl.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/rawcrawl/internal/game"
	"github.com/samdwyer/rawcrawl/internal/gamedata"
	"github.com/samdwyer/rawcrawl/internal/telemetry"
	"github.com/samdwyer/rawcrawl/internal/terminal"
	"github.com/samdwyer/rawcrawl/internal/ui"
)

// rawTerminal is a tty the game can switch into raw, non-blocking mode.
type rawTerminal interface {
	game.Terminal
	EnableRawMode() error
	DisableRawMode() error
	EnableNonBlocking() error
	DisableNonBlocking() error
}

// status prints the terminal restore and exit lines as bare stdout text.
var status = log.New(os.Stdout, "", 0)

func main() {
	os.Exit(run())
}

// run returns the process exit status so deferred cleanup runs before exit.
func run() int {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Printf("Invalid configuration: %v", err)
		return 1
	}

	// Interrupt keys are disabled in raw mode; these arrive from outside.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx, telemetry.HoneycombFromEnv())
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	if cfg.Backend == game.BackendScreen {
		return runScreen(ctx, cfg)
	}
	term := terminal.Open(os.Stdin, os.Stdout)
	if w, h, err := term.Size(); err == nil && (w < cfg.Dungeon.ViewportWidth || h <= cfg.Dungeon.ViewportHeight) {
		log.Printf("Warning: terminal is %dx%d, the view needs %dx%d", w, h, cfg.Dungeon.ViewportWidth, cfg.Dungeon.ViewportHeight+1)
	}
	return runRaw(ctx, cfg, term)
}

// runRaw plays on the tty directly. Failing to enter raw or non-blocking mode
// is fatal; of the restore steps only the raw-mode restore affects the status.
func runRaw(ctx context.Context, cfg game.Config, term rawTerminal) int {
	g, err := game.New(cfg.Dungeon, term)
	if err != nil {
		status.Printf("Failed to initialize game: %v", err)
		return 1
	}

	if err := term.EnableRawMode(); err != nil {
		status.Printf("Failed to set terminal to raw mode: %v", err)
		return 1
	}
	if err := term.EnableNonBlocking(); err != nil {
		status.Printf("Failed to set input to non-blocking: %v", err)
		if err := term.DisableRawMode(); err != nil {
			status.Printf("Failed to restore terminal to normal mode: %v", err)
		}
		return 1
	}

	runErr := g.Run(ctx)

	code := 0
	if err := term.DisableRawMode(); err != nil {
		status.Printf("Failed to restore terminal to normal mode: %v", err)
		code = 1
	} else {
		status.Printf("Terminal returned to normal mode")
	}
	if err := term.DisableNonBlocking(); err != nil {
		status.Printf("Failed to restore input to blocking: %v", err)
	}

	if runErr != nil && ctx.Err() == nil {
		status.Printf("Game error: %v", runErr)
		code = 1
	}
	return code
}

// runScreen plays through tcell, which owns terminal setup and restore.
func runScreen(ctx context.Context, cfg game.Config) int {
	palette, err := gamedata.LoadPalette()
	if err != nil {
		log.Printf("Failed to load palette: %v", err)
		return 1
	}

	screen, err := ui.NewScreen(palette)
	if err != nil {
		status.Printf("Failed to set terminal to raw mode: %v", err)
		return 1
	}

	g, err := game.New(cfg.Dungeon, screen)
	if err != nil {
		screen.Close()
		status.Printf("Failed to initialize game: %v", err)
		return 1
	}

	runErr := g.Run(ctx)
	screen.Close()
	status.Printf("Terminal returned to normal mode")

	if runErr != nil && ctx.Err() == nil {
		status.Printf("Game error: %v", runErr)
		return 1
	}
	return 0
}
