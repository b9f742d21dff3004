// Package book implements an opening book as a prefix tree of long-algebraic move
// sequences with per-node visit counts, selected by weighted random descent.
package book

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/onyxchess/zugzwang/pkg/board"
)

// MaxPly bounds how deep into a game the book is consulted. Lines are tracked up to
// this many plies; beyond it the book always returns no moves.
const MaxPly = 12

// Book is a prefix tree of opening lines. The root represents the starting position;
// each node's children are the moves observed to follow it, with a visit count used to
// weight random selection.
//
// Children are keyed by long-algebraic notation (board.Move.String()) rather than the
// Move value itself, so a lookup works whether the Move came from board.ParseMove (Type
// and Capture left zero) or from full legal move generation (Type and Capture resolved).
type Book struct {
	root *node
}

type node struct {
	move     board.Move
	count    int
	children map[string]*node
}

func newNode(m board.Move) *node {
	return &node{move: m, count: 1, children: map[string]*node{}}
}

// New returns an empty book.
func New() *Book {
	return &Book{root: &node{children: map[string]*node{}}}
}

// Add records one played game as a sequence of moves from the starting position,
// incrementing visit counts along the path. Moves beyond MaxPly are ignored.
func (b *Book) Add(line []board.Move) {
	n := b.root
	for i, m := range line {
		if i >= MaxPly {
			return
		}
		key := m.String()
		child, ok := n.children[key]
		if !ok {
			child = newNode(m)
			n.children[key] = child
		} else {
			child.count++
		}
		n = child
	}
}

// Select returns a move to play after the given history of moves played so far, chosen
// at random weighted by visit count, or false if the book has no data for this line or
// the history has reached MaxPly.
func (b *Book) Select(rng *rand.Rand, history []board.Move) (board.Move, bool) {
	if len(history) >= MaxPly {
		return board.Move{}, false
	}

	n := b.root
	for _, m := range history {
		child, ok := n.children[m.String()]
		if !ok {
			return board.Move{}, false
		}
		n = child
	}
	if len(n.children) == 0 {
		return board.Move{}, false
	}

	total := 0
	for _, child := range n.children {
		total += child.count
	}

	pick := rng.Intn(total)
	for _, child := range n.children {
		if pick < child.count {
			return child.move, true
		}
		pick -= child.count
	}
	panic("unreachable: weighted selection exhausted without a pick")
}

// Load reads whitespace-separated long-algebraic move lines (one game per line, blank
// lines and lines starting with "#" ignored) and adds each as an opening line.
func Load(r io.Reader) (*Book, error) {
	b := New()

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var line []board.Move
		for _, tok := range strings.Fields(text) {
			m, err := board.ParseMove(tok)
			if err != nil {
				return nil, fmt.Errorf("book line %d: %w", lineNo, err)
			}
			line = append(line, m)
		}
		b.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b, nil
}
