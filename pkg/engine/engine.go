// Package engine ties together position state, evaluation, search and the opening book
// into a synchronous game-playing facade usable by a UCI driver or a console harness.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/onyxchess/zugzwang/pkg/board"
	"github.com/onyxchess/zugzwang/pkg/board/fen"
	"github.com/onyxchess/zugzwang/pkg/book"
	"github.com/onyxchess/zugzwang/pkg/eval"
	"github.com/onyxchess/zugzwang/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are default search options, overridden per-search if the caller supplies its own.
type Options struct {
	Depth              int // plies. If zero, callers must supply a DepthLimit per search.
	Quiescence         bool
	MaxQuiescenceDepth int
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, quiescence=%v/%v}", o.Depth, o.Quiescence, o.MaxQuiescenceDepth)
}

// GoOptions controls a single "go": fields left absent fall back to the engine's default
// Options. DepthLimit is lang.Optional rather than a plain int so that "use the configured
// default depth" and "search exactly zero plies" are distinguishable, the same convention
// searchctl.Options.DepthLimit uses in the teacher this was adapted from.
type GoOptions struct {
	DepthLimit lang.Optional[int]
}

// Engine encapsulates game-playing logic: position, evaluation, search and opening book.
// All methods are synchronous and safe for concurrent use.
type Engine struct {
	name, author string

	eval     eval.Evaluator
	searcher *search.Searcher
	book     *book.Book
	rng      *rand.Rand
	opts     Options

	b       *board.Board
	history []board.Move // moves played since the last Reset, used for book lookups

	mu sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithBook configures the engine to consult the given opening book before searching.
func WithBook(b *book.Book) Option {
	return func(e *Engine) {
		e.book = b
	}
}

// WithSeed sets the random seed used for weighted random book move selection.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithEvaluator overrides the default material-plus-PST evaluator.
func WithEvaluator(ev eval.Evaluator) Option {
	return func(e *Engine) {
		e.eval = ev
	}
}

// WithOptions sets default search options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// New creates an engine with the given identity and options, reset to the initial position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:   name,
		author: author,
		eval:   eval.Material{},
		rng:    rand.New(rand.NewSource(0)),
	}
	for _, fn := range opts {
		fn(e)
	}
	e.searcher = search.NewSearcher(e.eval)

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

// Board returns the current position. Board is an immutable value: safe to retain.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b
}

// Position returns the current position in FEN format.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b)
}

// Reset resets the engine to the position described by the given FEN string, clearing
// move history (and therefore book lookups start over from this new position).
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := fen.Decode(position)
	if err != nil {
		return err
	}

	logw.Infof(ctx, "Reset %v, options=%v", position, e.opts)

	e.b = b
	e.history = nil
	return nil
}

// Move plays the given move, in long algebraic notation, usually an opponent's move
// received over UCI. It must be legal in the current position.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	m, ok := e.b.Resolve(candidate.From, candidate.To, candidate.Promotion)
	if !ok {
		return fmt.Errorf("illegal move: %v", candidate)
	}

	e.b = e.b.MakeMove(m)
	e.history = append(e.history, m)

	logw.Infof(ctx, "Move %v: %v", m, e.b)
	return nil
}

// Go searches the current position and returns the best line found. If an opening book
// is configured and has data for the current move history, the book move is returned
// directly without running a search.
func (e *Engine) Go(ctx context.Context, opt GoOptions, progress func(search.PV)) (search.PV, error) {
	e.mu.Lock()
	b, history := e.b, e.history
	searcher, bk, rng := e.searcher, e.book, e.rng
	sopt := search.Options{
		DepthLimit:         e.opts.Depth,
		Quiescence:         e.opts.Quiescence,
		MaxQuiescenceDepth: e.opts.MaxQuiescenceDepth,
	}
	e.mu.Unlock()

	if depth, ok := opt.DepthLimit.V(); ok {
		sopt.DepthLimit = depth
	}

	if len(b.LegalMoves()) == 0 {
		return search.PV{}, fmt.Errorf("no legal moves in current position")
	}

	if bk != nil {
		e.mu.Lock() // rng is shared and not safe for concurrent use
		m, ok := bk.Select(rng, history)
		e.mu.Unlock()
		if ok {
			logw.Infof(ctx, "Book move: %v", m)
			return search.PV{Moves: []board.Move{m}}, nil
		}
	}

	sopt.Progress = progress
	logw.Infof(ctx, "Searching %v, opt=%+v", b, sopt)

	pv := searcher.Search(ctx, b, sopt)
	logw.Infof(ctx, "Search done: %v", pv)
	return pv, nil
}
