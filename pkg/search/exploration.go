package search

import (
	"context"

	"github.com/onyxchess/zugzwang/pkg/board"
	"github.com/onyxchess/zugzwang/pkg/eval"
)

// Exploration defines move selection and priority in a given position. Limited exploration is required
// by quiescence search and can be used for forward pruning in full search. Default: explore all
// moves in MVVLVA order.
type Exploration func(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn)

func FullExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	return MVVLVA, IsAnyMove
}

// MVVLVA implements the MVV-LVA move priority: ten times the centipawn value gained, less
// the moving piece's value in whole pawns, computed in int so it fits MovePriority.
func MVVLVA(m board.Move) board.MovePriority {
	if gain := 10 * int(eval.NominalValueGain(m)); gain > 0 {
		return board.MovePriority(gain - int(eval.NominalValue(m.Piece))/100)
	}
	return 0
}

// IsAnyMove selects all moves.
func IsAnyMove(m board.Move) bool {
	return true
}
