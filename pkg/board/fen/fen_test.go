package fen_test

import (
	"testing"

	"github.com/onyxchess/zugzwang/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"4k3/8/8/8/4pP2/8/8/4K3 b - f3 0 1",
		"5k2/8/8/R7/2R3K1/8/8/8 w - - 0 1",
	}

	for _, tt := range tests {
		b, err := fen.Decode(tt)
		require.NoError(t, err)
		assert.Equal(t, tt, fen.Encode(b))
	}
}

func TestDecodeRejectsMalformedFEN(t *testing.T) {
	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0", // missing field
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQXBNR w KQkq - 0 1", // invalid piece
		"8/8/8/8/8/8/8/8 w KQkq - 0 1",                             // no kings
		"4k3/8/8/8/8/8/8/4K2K w - - 0 1",                           // two white kings
	}
	for _, tt := range tests {
		_, err := fen.Decode(tt)
		assert.Error(t, err, "expected error for %q", tt)
	}
}
