// Package fen contains utilities for reading and writing positions in Forsyth-Edwards
// Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/onyxchess/zugzwang/pkg/board"
)

const (
	Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Decode returns a new board from a FEN description.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(str string) (*board.Board, error) {
	// A FEN record contains six fields, separated by a space.

	parts := strings.Split(strings.TrimSpace(str), " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid number of sections in FEN: '%v'", str)
	}

	// (1) Piece placement (from white's perspective). Each rank is described,
	// starting with rank 8 and ending with rank 1; within each rank, the
	// contents of each square are described from file a through file h. This
	// is exactly the iteration order of board.Square, so the running square
	// index simply counts up from board.ZeroSquare.

	var pieces []board.Placement

	sq := board.ZeroSquare
	for _, r := range []rune(parts[0]) {
		switch {
		case r == '/':
			// "/" separates ranks. Cosmetic.

		case unicode.IsDigit(r):
			// Blank squares are noted using digits 1 through 8 (the number of blank squares).

			sq += board.Square(r - '0')

		case unicode.IsLetter(r):
			color, piece, ok := parsePiece(r)
			if !ok {
				return nil, fmt.Errorf("invalid piece '%v' in FEN: '%v'", r, str)
			}
			pieces = append(pieces, board.Placement{Square: sq, Color: color, Piece: piece})
			sq++

		default:
			return nil, fmt.Errorf("invalid character in FEN: '%v'", str)
		}
	}
	if sq != board.NumSquares {
		return nil, fmt.Errorf("invalid number of squares in FEN: '%v'", str)
	}

	// (2) Active color. "w" means white moves next, "b" means black.

	active, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid active color in FEN: '%v'", str)
	}

	// (3) Castling availability. If neither side can castle, this is
	// "-". Otherwise, this has one or more letters: "K" (White can castle
	// kingside), "Q" (White can castle queenside), "k" (Black can castle
	// kingside), and/or "q" (Black can castle queenside).

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling in FEN: '%v'", str)
	}

	// (4) En passant target square in algebraic notation. If there's no en
	// passant target square, this is "-". If a pawn has just made a
	// 2-square move, this is the square "behind" the pawn.

	var ep board.Square
	var hasEP bool
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant in FEN: '%v'", str)
		}
		ep, hasEP = sq, true
	}

	// (5) Halfmove clock: the number of halfmoves since the last pawn advance
	// or capture. Used to determine a draw under the fifty-move rule.

	hm, err := strconv.Atoi(parts[4])
	if err != nil || hm < 0 {
		return nil, fmt.Errorf("invalid halfmove clock in FEN: '%v'", str)
	}

	// (6) Fullmove number: the number of the full move. It starts at 1 and is
	// incremented after Black's move.

	fm, err := strconv.Atoi(parts[5])
	if err != nil || fm < 1 {
		return nil, fmt.Errorf("invalid fullmove number in FEN: '%v'", str)
	}

	return board.NewBoard(pieces, active, castling, ep, hasEP, hm, fm)
}

// Encode encodes the board in FEN notation.
func Encode(b *board.Board) string {
	var sb strings.Builder
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		if sq != 0 && sq%8 == 0 {
			sb.WriteString("/")
		}

		if color, piece, ok := b.Square(sq); ok {
			sb.WriteRune(printPiece(color, piece))
			continue
		}

		// Count consecutive blank squares within the rest of this rank.
		blanks := 1
		for sq%8 != 7 {
			if _, _, ok := b.Square(sq + 1); ok {
				break
			}
			sq++
			blanks++
		}
		sb.WriteString(strconv.Itoa(blanks))
	}

	turn := printColor(b.Turn())
	castling := printCastling(b.Castling())

	ep := "-"
	if sq, ok := b.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), turn, castling, ep, b.HalfmoveClock(), b.FullMoves())
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling

	if str == "-" {
		return ret, true
	}
	for _, r := range []rune(str) {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	if c == 0 {
		return "-"
	}

	ret := ""
	if c.IsAllowed(board.WhiteKingSideCastle) {
		ret += "K"
	}
	if c.IsAllowed(board.WhiteQueenSideCastle) {
		ret += "Q"
	}
	if c.IsAllowed(board.BlackKingSideCastle) {
		ret += "k"
	}
	if c.IsAllowed(board.BlackQueenSideCastle) {
		ret += "q"
	}
	return ret
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	switch r {
	case 'P':
		return board.White, board.Pawn, true
	case 'B':
		return board.White, board.Bishop, true
	case 'N':
		return board.White, board.Knight, true
	case 'R':
		return board.White, board.Rook, true
	case 'Q':
		return board.White, board.Queen, true
	case 'K':
		return board.White, board.King, true

	case 'p':
		return board.Black, board.Pawn, true
	case 'b':
		return board.Black, board.Bishop, true
	case 'n':
		return board.Black, board.Knight, true
	case 'r':
		return board.Black, board.Rook, true
	case 'q':
		return board.Black, board.Queen, true
	case 'k':
		return board.Black, board.King, true

	default:
		return 0, 0, false
	}
}

func printPiece(c board.Color, p board.Piece) rune {
	if c == board.White {
		switch p {
		case board.Pawn:
			return 'P'
		case board.Bishop:
			return 'B'
		case board.Knight:
			return 'N'
		case board.Rook:
			return 'R'
		case board.Queen:
			return 'Q'
		case board.King:
			return 'K'
		default:
			return '?'
		}
	}

	switch p {
	case board.Pawn:
		return 'p'
	case board.Bishop:
		return 'b'
	case board.Knight:
		return 'n'
	case board.Rook:
		return 'r'
	case board.Queen:
		return 'q'
	case board.King:
		return 'k'
	default:
		return '?'
	}
}
