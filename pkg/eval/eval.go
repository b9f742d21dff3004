// Package eval contains position evaluation logic and utilities: material balance plus
// piece-square tables, phase-switched between middlegame and endgame tables.
package eval

import (
	"context"

	"github.com/onyxchess/zugzwang/pkg/board"
)

// Evaluator is a static position evaluator, returning a centipawn score positive for White.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board) board.Score
}

// Material evaluates material balance plus piece-square tables, switching to the endgame
// tables once few enough pieces remain on the board.
type Material struct{}

func (Material) Evaluate(ctx context.Context, b *board.Board) board.Score {
	endgame := b.Occupied().PopCount() <= endgamePieceThreshold
	return scoreSide(b, board.White, endgame) - scoreSide(b, board.Black, endgame)
}

// Nominal centipawn piece values, indexed by board.Piece.
const (
	PawnValue   board.Score = 100
	KnightValue board.Score = 320
	BishopValue board.Score = 330
	RookValue   board.Score = 500
	QueenValue  board.Score = 900
	KingValue   board.Score = 20000
)

// endgamePieceThreshold is the total piece count at or below which the endgame
// piece-square tables (notably for pawns and kings) replace the middlegame ones.
const endgamePieceThreshold = 18

var nominalValue = [board.NumPieces]board.Score{
	board.NoPiece: 0,
	board.Pawn:    PawnValue,
	board.Knight:  KnightValue,
	board.Bishop:  BishopValue,
	board.Rook:    RookValue,
	board.Queen:   QueenValue,
	board.King:    KingValue,
}

// NominalValue returns the nominal centipawn value of a piece, ignoring position.
func NominalValue(p board.Piece) board.Score {
	return nominalValue[p]
}

// NominalValueGain returns the nominal value gained by making the move: the value of
// the captured piece, plus any gain from promotion.
func NominalValueGain(m board.Move) board.Score {
	gain := nominalValue[m.Capture]
	if m.IsPromotion() {
		gain += nominalValue[m.Promotion] - nominalValue[board.Pawn]
	}
	return gain
}

func scoreSide(b *board.Board, c board.Color, endgame bool) board.Score {
	var score board.Score
	for p := board.Pawn; p < board.NumPieces; p++ {
		table := middlegameTable(p)
		if endgame {
			table = endgameTable(p)
		}

		bb := b.Bitboard(c, p)
		for bb != 0 {
			sq := bb.FirstSquare()
			bb = bb.Without(sq)

			idx := sq
			if c == board.Black {
				idx = sq.Mirror()
			}
			score += nominalValue[p] + table[idx]
		}
	}
	return score
}

func middlegameTable(p board.Piece) *[64]board.Score {
	switch p {
	case board.Pawn:
		return &pawnTable
	case board.Knight:
		return &knightTable
	case board.Bishop:
		return &bishopTable
	case board.Rook:
		return &rookTable
	case board.Queen:
		return &queenTable
	case board.King:
		return &kingTable
	default:
		panic("invalid piece")
	}
}

func endgameTable(p board.Piece) *[64]board.Score {
	switch p {
	case board.Pawn:
		return &pawnEndgameTable
	case board.King:
		return &kingEndgameTable
	default:
		return middlegameTable(p)
	}
}
