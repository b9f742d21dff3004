package book_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/onyxchess/zugzwang/pkg/board"
	"github.com/onyxchess/zugzwang/pkg/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLine(t *testing.T, str string) []board.Move {
	t.Helper()
	var line []board.Move
	for _, tok := range strings.Fields(str) {
		m, err := board.ParseMove(tok)
		require.NoError(t, err)
		line = append(line, m)
	}
	return line
}

func TestSelectReturnsFalseWhenEmpty(t *testing.T) {
	b := book.New()
	_, ok := b.Select(rand.New(rand.NewSource(1)), nil)
	assert.False(t, ok)
}

func TestSelectFollowsAddedLine(t *testing.T) {
	b := book.New()
	b.Add(parseLine(t, "e2e4 e7e5 g1f3"))

	rng := rand.New(rand.NewSource(1))
	m, ok := b.Select(rng, nil)
	require.True(t, ok)
	assert.Equal(t, "e2e4", m.String())

	m, ok = b.Select(rng, parseLine(t, "e2e4"))
	require.True(t, ok)
	assert.Equal(t, "e7e5", m.String())

	_, ok = b.Select(rng, parseLine(t, "d2d4"))
	assert.False(t, ok)
}

func TestSelectWeightsByVisitCount(t *testing.T) {
	b := book.New()
	for i := 0; i < 9; i++ {
		b.Add(parseLine(t, "e2e4"))
	}
	b.Add(parseLine(t, "d2d4"))

	counts := map[string]int{}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		m, ok := b.Select(rng, nil)
		require.True(t, ok)
		counts[m.String()]++
	}
	assert.Greater(t, counts["e2e4"], counts["d2d4"])
}

func TestAddIgnoresMovesBeyondMaxPly(t *testing.T) {
	b := book.New()
	long := make([]board.Move, 0, book.MaxPly+4)
	for i := 0; i < book.MaxPly+4; i++ {
		long = append(long, parseLine(t, "e2e4")[0])
	}
	b.Add(long)

	_, ok := b.Select(rand.New(rand.NewSource(1)), long[:book.MaxPly])
	assert.False(t, ok)
}
