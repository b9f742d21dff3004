package search_test

import (
	"context"
	"testing"

	"github.com/onyxchess/zugzwang/pkg/board"
	"github.com/onyxchess/zugzwang/pkg/board/fen"
	"github.com/onyxchess/zugzwang/pkg/eval"
	"github.com/onyxchess/zugzwang/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFindsMateInOne(t *testing.T) {
	// Back-rank mate: Black's king is boxed in by its own pawns, so Ra1-a8 delivers
	// checkmate along the 8th rank.
	b, err := fen.Decode("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)

	s := search.NewSearcher(eval.Material{})
	pv := s.Search(context.Background(), b, search.Options{DepthLimit: 2})

	require.NotEmpty(t, pv.Moves)
	assert.Equal(t, search.WhiteMateScore, pv.Score)
	// A one-move mate reports MateIn == 2: the checkmated node returns mate distance 1
	// (search.go), and the root, one ply up, adds 1 more.
	assert.Equal(t, 2, pv.MateIn)

	m := pv.Moves[0]
	assert.Equal(t, "a1a8", m.String())
}

func TestSearchPrefersMaterialGain(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	s := search.NewSearcher(eval.Material{})
	pv := s.Search(context.Background(), b, search.Options{DepthLimit: 2})

	require.NotEmpty(t, pv.Moves)
	assert.Equal(t, "e4d5", pv.Moves[0].String())
}

func TestSearchReportsProgressAtRoot(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	var updates int
	s := search.NewSearcher(eval.Material{})
	pv := s.Search(context.Background(), b, search.Options{
		DepthLimit: 2,
		Progress:   func(search.PV) { updates++ },
	})

	assert.NotZero(t, updates)
	assert.NotEmpty(t, pv.Moves)
}

func TestQuiescenceAvoidsHangingCapture(t *testing.T) {
	// White to move at depth limit 1 would otherwise misjudge Nxd5 as a free pawn,
	// missing that Black recaptures with the pawn on c6.
	b, err := fen.Decode("4k3/8/2p5/3p4/8/2N5/8/4K3 w - - 0 1")
	require.NoError(t, err)

	s := search.NewSearcher(eval.Material{})
	s.Explore = func(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
		return search.MVVLVA, search.IsAnyMove
	}

	pv := s.Search(context.Background(), b, search.Options{
		DepthLimit:         1,
		Quiescence:         true,
		MaxQuiescenceDepth: 4,
	})
	require.NotEmpty(t, pv.Moves)
	assert.NotEqual(t, "c3d5", pv.Moves[0].String())
}
