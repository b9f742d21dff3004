// Package console implements a synchronous line-based driver for local debugging: enter
// moves directly, print the board, and run one-off searches, without any protocol
// framing overhead.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/onyxchess/zugzwang/pkg/board"
	"github.com/onyxchess/zugzwang/pkg/board/fen"
	"github.com/onyxchess/zugzwang/pkg/engine"
	"github.com/onyxchess/zugzwang/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

const ProtocolName = "console"

// Driver implements a console driver for debugging.
type Driver struct {
	e   *engine.Engine
	out chan<- string
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{e: e, out: out}
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard()

	for line := range in {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "reset", "r":
			// reset [<fenstring>] moves ...

			position := fen.Initial
			rest := args
			if len(args) >= 6 {
				position = strings.Join(args[0:6], " ")
				rest = args[6:]
			}
			if err := d.e.Reset(ctx, position); err != nil {
				d.out <- fmt.Sprintf("invalid position: %v", err)
				continue
			}
			move := false
			for _, arg := range rest {
				if arg == "moves" {
					move = true
					continue
				}
				if !move {
					continue
				}
				if err := d.e.Move(ctx, arg); err != nil {
					d.out <- fmt.Sprintf("invalid move %q: %v", arg, err)
					break
				}
			}
			d.printBoard()

		case "print", "p":
			d.printBoard()

		case "go", "analyze", "a":
			var opt engine.GoOptions
			if len(args) > 0 {
				depth, _ := strconv.Atoi(args[0])
				opt.DepthLimit = lang.Some(depth)
			}
			pv, err := d.e.Go(ctx, opt, func(pv search.PV) { d.out <- pv.String() })
			if err != nil {
				d.out <- fmt.Sprintf("search failed: %v", err)
				continue
			}
			if len(pv.Moves) > 0 {
				d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
			}

		case "depth", "d":
			if len(args) > 0 {
				depth, _ := strconv.Atoi(args[0])
				d.e.SetDepth(depth)
			}

		case "quit", "exit", "q":
			return

		default:
			// Assume move if not a recognized command.

			if err := d.e.Move(ctx, cmd); err != nil {
				d.out <- fmt.Sprintf("invalid move: %q", cmd)
			} else {
				d.printBoard()
			}
		}
	}
}

const (
	files      = "    a   b   c   d   e   f   g   h"
	horizontal = "  ---------------------------------"
	vertical   = " | "
)

func (d *Driver) printBoard() {
	b := d.e.Board()

	d.out <- ""
	d.out <- files
	d.out <- horizontal

	var sb strings.Builder
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		if sq%8 == 0 {
			sb.WriteString(sq.Rank().String())
			sb.WriteString(vertical)
		}

		if color, piece, ok := b.Square(sq); ok {
			sb.WriteString(printPiece(color, piece))
		} else {
			sb.WriteString(" ")
		}
		sb.WriteString(vertical)

		if sq%8 == 7 {
			d.out <- sb.String()
			d.out <- horizontal
			sb.Reset()
		}
	}
	d.out <- files
	d.out <- ""
	d.out <- fmt.Sprintf("fen: %v", d.e.Position())
	d.out <- ""
}

func printPiece(c board.Color, p board.Piece) string {
	if c == board.White {
		return strings.ToUpper(p.String())
	}
	return strings.ToLower(p.String())
}
