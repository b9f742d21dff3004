// Package search implements a fixed-depth, signed (non-negamax) alpha-beta search over
// board.Board, with an optional quiescence extension and MVV-LVA move ordering.
package search

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/onyxchess/zugzwang/pkg/board"
	"github.com/onyxchess/zugzwang/pkg/eval"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// noMate is the sentinel mate distance (in plies) meaning "no forced mate found along
// this line".
const noMate = math.MaxInt32

// WhiteMateScore and BlackMateScore are returned for positions where the side not to move
// has delivered checkmate. They sit comfortably inside board.Score's range but well above
// any material/positional evaluation, so a mate always outranks a non-mate score.
const (
	WhiteMateScore board.Score = 29000
	BlackMateScore board.Score = -29000
)

// PV is the principal variation found by a search, plus search statistics.
type PV struct {
	Moves  []board.Move
	Score  board.Score
	MateIn int // mate distance: plies to mate along Moves plus 1 (a mated node counts 1), or 0 if this is not a forced mate
	Nodes  uint64
	Time   time.Duration
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v mate=%v nodes=%v time=%v pv=%v",
		len(p.Moves), p.Score, p.MateIn, p.Nodes, p.Time, board.PrintMoves(p.Moves))
}

// Options controls a single search.
type Options struct {
	DepthLimit int // plies; must be > 0

	// Quiescence extends leaf nodes with a capture-only search to reduce horizon effects.
	Quiescence         bool
	MaxQuiescenceDepth int // plies, only used if Quiescence is set

	// Progress, if set, is invoked at the root after each move that improves on the best
	// line found so far, letting a caller (e.g. the UCI loop) emit "info" updates.
	Progress func(pv PV)
}

// Searcher runs a fixed-depth alpha-beta search using a given static evaluator.
type Searcher struct {
	Eval    eval.Evaluator
	Explore Exploration
}

// NewSearcher returns a Searcher using the given evaluator and full MVV-LVA exploration.
func NewSearcher(e eval.Evaluator) *Searcher {
	return &Searcher{Eval: e, Explore: FullExploration}
}

// Search runs a fixed-depth search from b and returns the best line found. b is never
// mutated: board.Board.MakeMove always returns a fresh value.
func (s *Searcher) Search(ctx context.Context, b *board.Board, opt Options) PV {
	start := time.Now()
	var nodes uint64

	moves, score, mateIn := s.search(ctx, b, board.MinScore, board.MaxScore, 0, opt, &nodes, opt.Progress)
	if contextx.IsCancelled(ctx) {
		logw.Warningf(ctx, "Search cancelled after %v nodes", nodes)
	}

	return PV{
		Moves:  moves,
		Score:  score,
		MateIn: normalizeMateIn(mateIn),
		Nodes:  nodes,
		Time:   time.Since(start),
	}
}

func normalizeMateIn(mateIn int) int {
	if mateIn >= noMate {
		return 0
	}
	return mateIn
}

// search implements the signed recursive alpha-beta algorithm: White maximizes, Black
// minimizes, with no negamax sign flip. The best-score accumulator is seeded from (alpha,
// beta) rather than from +/-infinity -- see DESIGN.md for why this resolves the known
// initialization bug in the reference implementation this was grounded on.
func (s *Searcher) search(ctx context.Context, b *board.Board, alpha, beta board.Score, depth int, opt Options, nodes *uint64, progress func(PV)) ([]board.Move, board.Score, int) {
	if contextx.IsCancelled(ctx) {
		return nil, 0, noMate
	}
	*nodes++

	if b.IsCheckmate() {
		if b.Turn() == board.White {
			return nil, BlackMateScore, 1
		}
		return nil, WhiteMateScore, 1
	}
	if b.IsStalemate() {
		return nil, 0, noMate
	}
	if depth >= opt.DepthLimit {
		if opt.Quiescence {
			score, mateIn := s.quiesce(ctx, b, alpha, beta, 0, opt, nodes)
			return nil, score, mateIn
		}
		return nil, s.Eval.Evaluate(ctx, b), noMate
	}

	priority, pick := s.Explore(ctx, b)
	moves := b.LegalMoves()
	list := board.NewMoveList(moves, priority)

	white := b.Turn() == board.White

	var bestPath []board.Move
	bestScore := alpha
	if !white {
		bestScore = beta
	}
	bestMateIn := noMate

	var top *board.Move
	for {
		m, ok := list.Next()
		if !ok {
			break
		}
		if top == nil {
			top = &m
		}
		if !pick(m) {
			continue
		}

		next := b.MakeMove(m)
		path, score, mateIn := s.search(ctx, next, alpha, beta, depth+1, opt, nodes, nil)

		improved := false
		if white {
			if score > bestScore || (score == bestScore && mateIn+1 < bestMateIn) {
				improved = true
			}
		} else {
			if score < bestScore || (score == bestScore && mateIn+1 < bestMateIn) {
				improved = true
			}
		}

		if improved {
			bestScore = score
			bestMateIn = mateIn + 1
			bestPath = append([]board.Move{m}, path...)

			if white {
				alpha = score
			} else {
				beta = score
			}
			if depth == 0 && progress != nil {
				progress(PV{Moves: bestPath, Score: bestScore, MateIn: normalizeMateIn(bestMateIn), Nodes: *nodes})
			}
		}
		if alpha >= beta {
			break
		}
	}
	if bestPath == nil && top != nil {
		// No move improved on the (alpha, beta) seed: fall back to the highest-priority
		// move so the search always returns a legal line when one exists.
		m := *top
		next := b.MakeMove(m)
		path, score, mateIn := s.search(ctx, next, board.MinScore, board.MaxScore, depth+1, opt, nodes, nil)
		bestPath = append([]board.Move{m}, path...)
		bestScore = score
		bestMateIn = mateIn + 1
	}
	return bestPath, bestScore, bestMateIn
}

// quiesce extends search with captures only, to avoid misjudging positions mid-exchange.
func (s *Searcher) quiesce(ctx context.Context, b *board.Board, alpha, beta board.Score, depth int, opt Options, nodes *uint64) (board.Score, int) {
	if contextx.IsCancelled(ctx) {
		return 0, noMate
	}
	*nodes++

	if b.IsCheckmate() {
		if b.Turn() == board.White {
			return BlackMateScore, 1
		}
		return WhiteMateScore, 1
	}

	standPat := s.Eval.Evaluate(ctx, b)
	white := b.Turn() == board.White

	if depth >= opt.MaxQuiescenceDepth {
		return standPat, noMate
	}

	if white {
		if standPat >= beta {
			return beta, noMate
		}
		if standPat > alpha {
			alpha = standPat
		}
	} else {
		if standPat <= alpha {
			return alpha, noMate
		}
		if standPat < beta {
			beta = standPat
		}
	}

	bestScore := alpha
	if !white {
		bestScore = beta
	}
	bestMateIn := noMate

	list := board.NewMoveList(b.LegalMoves(), MVVLVA)

	for {
		m, ok := list.Next()
		if !ok {
			break
		}
		if !m.IsCapture() || eval.NominalValueGain(m) < 0 {
			continue
		}

		next := b.MakeMove(m)
		score, mateIn := s.quiesce(ctx, next, alpha, beta, depth+1, opt, nodes)

		if white {
			if score >= beta {
				return beta, noMate
			}
			if score > bestScore {
				bestScore = score
				bestMateIn = mateIn + 1
				alpha = score
			}
		} else {
			if score <= alpha {
				return alpha, noMate
			}
			if score < bestScore {
				bestScore = score
				bestMateIn = mateIn + 1
				beta = score
			}
		}
	}
	return bestScore, bestMateIn
}
