package uci_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/onyxchess/zugzwang/pkg/engine"
	"github.com/onyxchess/zugzwang/pkg/engine/uci"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drive(t *testing.T, commands ...string) []string {
	t.Helper()
	ctx := context.Background()

	e := engine.New(ctx, "zugzwang", "test", engine.WithOptions(engine.Options{Depth: 2}))

	in := make(chan string, len(commands))
	for _, c := range commands {
		in <- c
	}
	close(in)

	_, out := uci.NewDriver(ctx, e, in)

	var lines []string
	for {
		select {
		case line, ok := <-out:
			if !ok {
				return lines
			}
			lines = append(lines, line)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for driver output")
		}
	}
}

func TestUCIHandshake(t *testing.T) {
	lines := drive(t, "uci", "quit")

	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "id name"))
	assert.True(t, strings.HasPrefix(lines[1], "id author"))
	assert.Equal(t, "uciok", lines[2])
}

func TestUCIIsReady(t *testing.T) {
	lines := drive(t, "uci", "isready", "quit")
	assert.Contains(t, lines, "readyok")
}

func TestUCIGoReturnsBestMove(t *testing.T) {
	lines := drive(t, "uci", "position startpos", "go depth 2", "quit")

	var found bool
	for _, l := range lines {
		if strings.HasPrefix(l, "bestmove ") {
			found = true
		}
	}
	assert.True(t, found, "expected a bestmove line, got: %v", lines)
}

func TestUCIPositionWithMoves(t *testing.T) {
	lines := drive(t, "uci", "position startpos moves e2e4 e7e5", "go depth 1", "quit")

	var found bool
	for _, l := range lines {
		if strings.HasPrefix(l, "bestmove ") {
			found = true
		}
	}
	assert.True(t, found)
}
