// Package uci contains a driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
// See: https://en.wikipedia.org/wiki/Universal_Chess_Interface
package uci

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

const ProtocolName = "uci"

// Driver implements a synchronous UCI driver for an engine. It is activated if sent
// "uci". Each input line is fully processed -- including running a "go" search to
// completion -- before the next line is read, since the engine has no background search
// or iterative deepening to interrupt; "stop" on an idle engine is a no-op.
type Driver struct {
	e   *engine.Engine
	out chan<- string
}

// NewDriver creates a driver reading UCI commands from in and writing responses to a
// channel, which the caller drains (see engine.WriteStdoutLines).
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{e: e, out: out}
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer close(d.out)

	// * uci
	//
	//	tell engine to use the uci (universal chess interface),
	//	this will be send once as a first command after program boot
	//	to tell the engine to switch to uci mode.
	//	After receiving the uci command the engine must identify itself with the "id" command
	//	and sent the "option" commands to tell the GUI which engine settings the engine supports if any.
	//	After that the engine should sent "uciok" to acknowledge the uci mode.

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())
	d.out <- "uciok"

	for line := range in {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "isready":
			// * isready
			//
			//	this is used to synchronize the engine with the GUI. This command must always be
			//	answered with "readyok", even while the engine is calculating (which, for this
			//	engine, it never is between lines since search runs synchronously).

			d.out <- "readyok"

		case "debug", "register", "ponderhit":
			// Accepted but not meaningful for a synchronous engine with no persistent
			// registration or pondering support.

		case "setoption":
			// * setoption name <id> [value <x>]
			//
			//	changes internal engine parameters. Only "Depth" is currently supported.

			name, value := parseSetOption(args)
			if name == "Depth" {
				if n, err := strconv.Atoi(value); err == nil {
					d.e.SetDepth(n)
				}
			}

		case "ucinewgame":
			// * ucinewgame
			//
			//	the next "position"/"go" pair is from a different game; nothing to tear down
			//	since there is no persistent hash table or learning state.

		case "position":
			// * position [fen <fenstring> | startpos ] moves <move1> .... <movei>
			//
			//	set up the position described in fenstring (or the initial position) and play
			//	the given moves on top of it.

			if err := d.handlePosition(ctx, line, args); err != nil {
				logw.Errorf(ctx, "position failed: %v: %v", line, err)
			}

		case "go":
			// * go ... depth <x> | movetime <x> | infinite | ...
			//
			//	start calculating on the current position. This driver searches synchronously
			//	and always sends a "bestmove" once done, as required by the protocol; "infinite"
			//	is accepted but still runs the configured depth limit, since there is no timer
			//	or "stop" interrupt to bound it otherwise.

			d.handleGo(ctx, args)

		case "stop":
			// * stop
			//
			//	stop calculating as soon as possible. No-op here: by the time this driver reads
			//	another line, the prior "go" has already completed and sent "bestmove".

		case "quit", "end":
			// * quit
			//
			//	quit the program as soon as possible.

			return

		default:
			logw.Warningf(ctx, "Unknown command '%v': %v", cmd, args)
		}
	}
}

func (d *Driver) handlePosition(ctx context.Context, line string, args []string) error {
	position := "startpos"
	rest := args

	if len(args) >= 1 && args[0] == "fen" {
		if len(args) < 7 {
			return fmt.Errorf("incomplete fen: %q", line)
		}
		position = strings.Join(args[1:7], " ")
		rest = args[7:]
	} else if len(args) >= 1 && args[0] == "startpos" {
		rest = args[1:]
	}

	if position == "startpos" {
		position = fen.Initial
	}

	if err := d.e.Reset(ctx, position); err != nil {
		return fmt.Errorf("invalid position %q: %w", position, err)
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
			return fmt.Errorf("invalid move %q: %w", arg, err)
		}
	}
	return nil
}

func (d *Driver) handleGo(ctx context.Context, args []string) {
	var opt engine.GoOptions
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			if i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					opt.DepthLimit = lang.Some(n)
				}
			}
		case "wtime", "btime", "winc", "binc", "movestogo", "movetime", "mate", "nodes":
			i++ // consume and ignore: no time-control-driven depth heuristic wired up yet.
		case "searchmoves", "ponder", "infinite":
			// accepted, no effect: this driver has no move restriction or pondering support.
		}
	}

	progress := func(pv search.PV) {
		d.out <- printInfo(pv)
	}

	pv, err := d.e.Go(ctx, opt, progress)
	if err != nil {
		logw.Errorf(ctx, "go failed: %v", err)
		d.out <- "bestmove 0000"
		return
	}

	if len(pv.Moves) == 0 {
		d.out <- "bestmove 0000"
		return
	}

	d.out <- printInfo(pv)
	d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
}

func parseSetOption(args []string) (name, value string) {
	var nameParts, valueParts []string
	mode := ""
	for _, a := range args {
		switch a {
		case "name":
			mode = "name"
			continue
		case "value":
			mode = "value"
			continue
		}
		switch mode {
		case "name":
			nameParts = append(nameParts, a)
		case "value":
			valueParts = append(valueParts, a)
		}
	}
	return strings.Join(nameParts, " "), strings.Join(valueParts, " ")
}

// printInfo renders search progress/results as a UCI "info" line, e.g.
// "info depth 2 score cp 35 nodes 20481 time 128 pv e2e4 e7e5". The depth is the length
// of the principal variation.
func printInfo(pv search.PV) string {
	parts := []string{"info", fmt.Sprintf("depth %v", len(pv.Moves))}

	if pv.MateIn > 0 {
		parts = append(parts, fmt.Sprintf("score mate %v", mateMoves(pv)))
	} else {
		// board.Score.String() renders pawns as a decimal (e.g. "1.00"); UCI wants an
		// integer centipawn count, so format the underlying value directly.
		parts = append(parts, fmt.Sprintf("score cp %v", int(pv.Score)))
	}
	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
	}
	if len(pv.Moves) > 0 {
		parts = append(parts, "pv", board.PrintMoves(pv.Moves))
	}
	return strings.Join(parts, " ")
}

// mateMoves converts a mate distance in plies to full moves, signed from White's
// perspective like the search score: positive if White delivers mate, negative if Black does.
func mateMoves(pv search.PV) int {
	n := (pv.MateIn + 1) / 2
	if pv.Score < 0 {
		return -n
	}
	return n
}
