package board

import "fmt"

// Square represents a square on the board, ordered A8=0, B8=1, .., H8=7, A7=8, .., H1=63:
// row-major from rank 8 down to rank 1, file a to file h within each rank. 6 bits.
//
//	A8= 0  B8= 1  C8= 2  D8= 3  E8= 4  F8= 5  G8= 6  H8= 7
//	A7= 8  B7= 9  C7=10  D7=11  E7=12  F7=13  G7=14  H7=15
//	A6=16  B6=17  C6=18  D6=19  E6=20  F6=21  G6=22  H6=23
//	A5=24  B5=25  C5=26  D5=27  E5=28  F5=29  G5=30  H5=31
//	A4=32  B4=33  C4=34  D4=35  E4=36  F4=37  G4=38  H4=39
//	A3=40  B3=41  C3=42  D3=43  E3=44  F3=45  G3=46  H3=47
//	A2=48  B2=49  C2=50  D2=51  E2=52  F2=53  G2=54  H2=55
//	A1=56  B1=57  C1=58  D1=59  E1=60  F1=61  G1=62  H1=63
type Square uint8

// Iteration helpers to enable "for i := ZeroSquare; i<NumSquares; i++".
const (
	ZeroSquare Square = 0
	NumSquares Square = 64
)

func NewSquare(f File, r Rank) Square {
	return Square((7-r)&0x7)<<3 | Square(f&0x7)
}

func ParseSquare(f, r rune) (Square, error) {
	file, ok := ParseFile(f)
	if !ok {
		return 0, fmt.Errorf("invalid file: %v", f)
	}
	rank, ok := ParseRank(r)
	if !ok {
		return 0, fmt.Errorf("invalid rank: %v", r)
	}
	return NewSquare(file, rank), nil
}

func ParseSquareStr(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return 0, fmt.Errorf("invalid square: %v", str)
	}
	return ParseSquare(runes[0], runes[1])
}

func (s Square) IsValid() bool {
	return s < NumSquares
}

// Row returns the 0-indexed board row: 0 is rank 8's row, 7 is rank 1's row.
func (s Square) Row() int {
	return int(s) / 8
}

// Col returns the 0-indexed board column: 0 is file a, 7 is file h.
func (s Square) Col() int {
	return int(s) % 8
}

func (s Square) Rank() Rank {
	return Rank(7 - s.Row())
}

func (s Square) File() File {
	return File(s.Col())
}

// Mirror returns the vertically-flipped square, used to index piece-square tables from
// Black's perspective: mirror(i) = 56 - (i - i%8) + i%8.
func (s Square) Mirror() Square {
	col := Square(s.Col())
	return 56 - (s - col) + col
}

func (s Square) String() string {
	return fmt.Sprintf("%v%v", s.File(), s.Rank())
}

// Rank represents a chess board rank from Rank1=0, ..Rank8=7. 3 bits.
type Rank uint8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	ZeroRank Rank = 0
	NumRanks Rank = 8
)

func ParseRank(r rune) (Rank, bool) {
	switch r {
	case '1':
		return Rank1, true
	case '2':
		return Rank2, true
	case '3':
		return Rank3, true
	case '4':
		return Rank4, true
	case '5':
		return Rank5, true
	case '6':
		return Rank6, true
	case '7':
		return Rank7, true
	case '8':
		return Rank8, true
	default:
		return 0, false
	}
}

func (r Rank) IsValid() bool {
	return r < NumRanks
}

func (r Rank) V() int {
	return int(r)
}

func (r Rank) String() string {
	return fmt.Sprintf("%d", r+1)
}

// File represents a chess board file from FileA=0, ..FileH=7. 3 bits.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	ZeroFile File = 0
	NumFiles File = 8
)

func ParseFile(r rune) (File, bool) {
	switch r {
	case 'a', 'A':
		return FileA, true
	case 'b', 'B':
		return FileB, true
	case 'c', 'C':
		return FileC, true
	case 'd', 'D':
		return FileD, true
	case 'e', 'E':
		return FileE, true
	case 'f', 'F':
		return FileF, true
	case 'g', 'G':
		return FileG, true
	case 'h', 'H':
		return FileH, true
	default:
		return 0, false
	}
}

func (f File) IsValid() bool {
	return f < NumFiles
}

func (f File) V() int {
	return int(f)
}

func (f File) String() string {
	switch f {
	case FileA:
		return "a"
	case FileB:
		return "b"
	case FileC:
		return "c"
	case FileD:
		return "d"
	case FileE:
		return "e"
	case FileF:
		return "f"
	case FileG:
		return "g"
	case FileH:
		return "h"
	default:
		return "?"
	}
}
