package main

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/samdwyer/rawcrawl/internal/game"
)

// fakeRaw records mode switches and fails the ones it is told to.
type fakeRaw struct {
	enableRaw, disableRaw           error
	enableNonBlock, disableNonBlock error
	writeErr                        error

	calls  []string
	writes int
}

func (f *fakeRaw) EnableRawMode() error {
	f.calls = append(f.calls, "enable raw")
	return f.enableRaw
}

func (f *fakeRaw) DisableRawMode() error {
	f.calls = append(f.calls, "disable raw")
	return f.disableRaw
}

func (f *fakeRaw) EnableNonBlocking() error {
	f.calls = append(f.calls, "enable nonblock")
	return f.enableNonBlock
}

func (f *fakeRaw) DisableNonBlocking() error {
	f.calls = append(f.calls, "disable nonblock")
	return f.disableNonBlock
}

func (f *fakeRaw) ReadByte() byte { return game.KeyQuit }

func (f *fakeRaw) Write([]byte) error {
	f.writes++
	return f.writeErr
}

func (f *fakeRaw) Now() time.Time { return time.Now() }

func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := status
	status = log.New(&buf, "", 0)
	t.Cleanup(func() { status = prev })
	return &buf
}

func TestRunRawExitStatus(t *testing.T) {
	errBoom := errors.New("boom")
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		ctx      context.Context
		term     *fakeRaw
		want     int
		calls    []string
		messages []string
		ran      bool
	}{
		{
			name:     "clean quit",
			term:     &fakeRaw{},
			want:     0,
			calls:    []string{"enable raw", "enable nonblock", "disable raw", "disable nonblock"},
			messages: []string{"Terminal returned to normal mode"},
			ran:      true,
		},
		{
			name:     "raw mode enable fails",
			term:     &fakeRaw{enableRaw: errBoom},
			want:     1,
			calls:    []string{"enable raw"},
			messages: []string{"Failed to set terminal to raw mode: boom"},
		},
		{
			name:     "non-blocking enable fails restores raw mode",
			term:     &fakeRaw{enableNonBlock: errBoom},
			want:     1,
			calls:    []string{"enable raw", "enable nonblock", "disable raw"},
			messages: []string{"Failed to set input to non-blocking: boom"},
		},
		{
			name:     "raw mode restore fails",
			term:     &fakeRaw{disableRaw: errBoom},
			want:     1,
			calls:    []string{"enable raw", "enable nonblock", "disable raw", "disable nonblock"},
			messages: []string{"Failed to restore terminal to normal mode: boom"},
			ran:      true,
		},
		{
			name:  "non-blocking restore fails is only printed",
			term:  &fakeRaw{disableNonBlock: errBoom},
			want:  0,
			calls: []string{"enable raw", "enable nonblock", "disable raw", "disable nonblock"},
			messages: []string{
				"Terminal returned to normal mode",
				"Failed to restore input to blocking: boom",
			},
			ran: true,
		},
		{
			name:     "game error",
			term:     &fakeRaw{writeErr: errBoom},
			want:     1,
			calls:    []string{"enable raw", "enable nonblock", "disable raw", "disable nonblock"},
			messages: []string{"Terminal returned to normal mode", "Game error:"},
			ran:      true,
		},
		{
			name:     "cancelled context",
			ctx:      cancelled,
			term:     &fakeRaw{},
			want:     0,
			calls:    []string{"enable raw", "enable nonblock", "disable raw", "disable nonblock"},
			messages: []string{"Terminal returned to normal mode"},
			ran:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStatus(t)
			ctx := tt.ctx
			if ctx == nil {
				ctx = context.Background()
			}

			got := runRaw(ctx, game.DefaultConfig(), tt.term)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.calls, tt.term.calls)
			for _, msg := range tt.messages {
				assert.Contains(t, out.String(), msg)
			}
			assert.Equal(t, tt.ran, tt.term.writes > 0, "game ran")
		})
	}
}

func TestRunRawInvalidConfig(t *testing.T) {
	out := captureStatus(t)
	cfg := game.DefaultConfig()
	cfg.Dungeon.Seed = 0
	term := &fakeRaw{}

	assert.Equal(t, 1, runRaw(context.Background(), cfg, term))
	assert.Empty(t, term.calls)
	assert.Contains(t, out.String(), "Failed to initialize game")
}
