package game

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samdwyer/rawcrawl/internal/world"
)

// Backend selects how the game talks to the terminal.
type Backend string

const (
	// BackendRaw drives the tty directly: termios, non-blocking reads, ANSI output.
	BackendRaw Backend = "raw"
	// BackendScreen renders through tcell with a coloured palette.
	BackendScreen Backend = "screen"
)

// Environment variables read by LoadConfig.
const (
	EnvSeed      = "RAWCRAWL_SEED"
	EnvBackend   = "RAWCRAWL_BACKEND"
	EnvTelemetry = "RAWCRAWL_TELEMETRY"
)

// Config holds game configuration options.
type Config struct {
	// Dungeon holds generation parameters. Only the seed can be overridden;
	// dimensions are fixed per build.
	Dungeon world.Config

	Backend Backend

	// Telemetry enables OTLP trace export.
	Telemetry bool
}

// DefaultConfig returns the configuration used when no environment overrides are set.
func DefaultConfig() Config {
	return Config{
		Dungeon: world.DefaultConfig(),
		Backend: BackendRaw,
	}
}

// LoadConfig builds a Config from the defaults and the RAWCRAWL_* environment.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", EnvSeed, err)
		}
		cfg.Dungeon.Seed = seed
	}

	if v, ok := os.LookupEnv(EnvBackend); ok && v != "" {
		switch b := Backend(strings.ToLower(v)); b {
		case BackendRaw, BackendScreen:
			cfg.Backend = b
		default:
			return cfg, fmt.Errorf("%s: unknown backend %q", EnvBackend, v)
		}
	}

	if v, ok := os.LookupEnv(EnvTelemetry); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", EnvTelemetry, err)
		}
		cfg.Telemetry = enabled
	}

	if err := cfg.Dungeon.Validate(); err != nil {
		return cfg, fmt.Errorf("dungeon config: %w", err)
	}
	return cfg, nil
}
