package board_test

import (
	"testing"

	"github.com/onyxchess/zugzwang/pkg/board"
	"github.com/onyxchess/zugzwang/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sq(t *testing.T, str string) board.Square {
	t.Helper()
	s, err := board.ParseSquareStr(str)
	require.NoError(t, err)
	return s
}

func TestInitialPositionMoveCount(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	moves := b.LegalMoves()
	assert.Len(t, moves, 20)
}

// perft counts the number of leaf nodes at the given depth, the standard move-generator
// correctness check.
func perft(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var nodes uint64
	for _, m := range b.LegalMoves() {
		nodes += perft(b.MakeMove(m), depth-1)
	}
	return nodes
}

func TestPerftFromInitialPosition(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, perft(b, tt.depth), "perft(%v)", tt.depth)
	}
}

func TestMateInOne(t *testing.T) {
	// Back-rank mate: Black's king is boxed in by its own pawns, so Ra1-a8 delivers
	// checkmate along the 8th rank.
	b, err := fen.Decode("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)

	moves := b.LegalMoves()

	var mates []board.Move
	for _, m := range moves {
		if next := b.MakeMove(m); next.IsCheckmate() {
			mates = append(mates, m)
		}
	}

	require.Len(t, mates, 1)
	assert.Equal(t, "a1a8", mates[0].String())
}

func TestEnPassantTargetSquare(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)

	from, to := sq(t, "e2"), sq(t, "e4")
	m, ok := b.Resolve(from, to, board.NoPiece)
	require.True(t, ok)
	assert.Equal(t, board.Jump, m.Type)

	next := b.MakeMove(m)
	ep, hasEP := next.EnPassant()
	require.True(t, hasEP)
	assert.Equal(t, sq(t, "e3"), ep)
	assert.Equal(t, board.Square(44), ep)
}

func TestEnPassantCapture(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)

	push, ok := b.Resolve(sq(t, "e2"), sq(t, "e4"), board.NoPiece)
	require.True(t, ok)
	after := b.MakeMove(push)

	// Place a black pawn that could capture en passant and hand the move.
	b2, err := fen.Decode("4k3/8/8/8/4pP2/8/8/4K3 b - f3 0 1")
	require.NoError(t, err)
	_ = after

	cap, ok := b2.Resolve(sq(t, "e4"), sq(t, "f3"), board.NoPiece)
	require.True(t, ok)
	assert.Equal(t, board.EnPassant, cap.Type)

	next := b2.MakeMove(cap)
	_, _, onF3 := next.Square(sq(t, "f3"))
	assert.True(t, onF3)
	_, _, onF4 := next.Square(sq(t, "f4"))
	assert.False(t, onF4, "captured pawn should be removed")
}

func TestCastlingRights(t *testing.T) {
	b, err := fen.Decode("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	var types []board.MoveType
	for _, m := range b.LegalMoves() {
		if m.IsCastle() {
			types = append(types, m.Type)
		}
	}
	assert.Contains(t, types, board.KingSideCastle)
	assert.Contains(t, types, board.QueenSideCastle)

	m, ok := b.Resolve(sq(t, "e1"), sq(t, "g1"), board.NoPiece)
	require.True(t, ok)

	next := b.MakeMove(m)
	_, _, rookOnF1 := next.Square(sq(t, "f1"))
	assert.True(t, rookOnF1)
	assert.False(t, next.Castling().IsAllowed(board.WhiteKingSideCastle))
	assert.False(t, next.Castling().IsAllowed(board.WhiteQueenSideCastle))
	assert.True(t, next.Castling().IsAllowed(board.BlackKingSideCastle))
}

func TestPromotionGeneratesAllFourPieces(t *testing.T) {
	b, err := fen.Decode("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	var got []string
	for _, m := range b.LegalMoves() {
		if m.IsPromotion() {
			got = append(got, m.String())
		}
	}
	assert.ElementsMatch(t, []string{"a7a8q", "a7a8r", "a7a8b", "a7a8n"}, got)
}

func TestStalemate(t *testing.T) {
	// Classic stalemate position: black king cornered, no legal moves, not in check.
	b, err := fen.Decode("7k/5K2/6Q1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	assert.Empty(t, b.LegalMoves())
	assert.True(t, b.IsStalemate())
	assert.False(t, b.IsCheckmate())
}
