// zugzwang is a UCI chess engine with fixed-depth alpha-beta search and an optional
// opening book.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/onyxchess/zugzwang/pkg/book"
	"github.com/onyxchess/zugzwang/pkg/engine"
	"github.com/onyxchess/zugzwang/pkg/engine/console"
	"github.com/onyxchess/zugzwang/pkg/engine/uci"
	"github.com/seekerror/logw"
)

var (
	depth              = flag.Int("depth", 4, "Search depth limit in plies")
	quiescence         = flag.Bool("quiescence", true, "Extend leaf nodes with a capture-only search")
	maxQuiescenceDepth = flag.Int("quiescence-depth", 6, "Max additional plies for quiescence search")
	bookPath           = flag.String("book", "", "Path to an opening book file (long-algebraic move lines); disabled if empty")
	seed               = flag.Int64("seed", 0, "Random seed for opening book move selection")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: zugzwang [options]

zugzwang is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	opts := []engine.Option{
		engine.WithOptions(engine.Options{
			Depth:              *depth,
			Quiescence:         *quiescence,
			MaxQuiescenceDepth: *maxQuiescenceDepth,
		}),
		engine.WithSeed(*seed),
	}

	if *bookPath != "" {
		f, err := os.Open(*bookPath)
		if err != nil {
			logw.Exitf(ctx, "Failed to open book %v: %v", *bookPath, err)
		}
		defer f.Close()

		b, err := book.Load(f)
		if err != nil {
			logw.Exitf(ctx, "Failed to load book %v: %v", *bookPath, err)
		}
		opts = append(opts, engine.WithBook(b))
	}

	e := engine.New(ctx, "zugzwang", "onyxchess", opts...)

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		_, out := uci.NewDriver(ctx, e, in)
		engine.WriteStdoutLines(ctx, out)

	case console.ProtocolName:
		_, out := console.NewDriver(ctx, e, in)
		engine.WriteStdoutLines(ctx, out)

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
