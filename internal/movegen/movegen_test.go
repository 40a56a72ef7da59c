package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkobel/corvid/internal/chesstype"
	"github.com/dkobel/corvid/internal/move"
	"github.com/dkobel/corvid/internal/position"
)

func TestStartPositionGeneratesTwentyMoves(t *testing.T) {
	p, err := position.FromFEN(position.StartFEN)
	require.NoError(t, err)

	moves := Generate(p, All, nil)
	assert.Len(t, moves, 20)
	for _, m := range moves {
		assert.False(t, m.IsCapture())
	}
}

func TestCapturesOnlyModeExcludesQuietMoves(t *testing.T) {
	fen := "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1"
	p, err := position.FromFEN(fen)
	require.NoError(t, err)

	moves := Generate(p, CapturesOnly, nil)
	require.Len(t, moves, 1)
	assert.True(t, moves[0].IsCapture())
}

func TestDoublePushOnlyFromStartingRank(t *testing.T) {
	p, err := position.FromFEN(position.StartFEN)
	require.NoError(t, err)

	moves := Generate(p, All, nil)
	doublePushes := 0
	for _, m := range moves {
		if m.Kind() == move.DoublePush {
			doublePushes++
		}
	}
	assert.Equal(t, 8, doublePushes)
}

func TestPromotionGeneratesFourPieceChoices(t *testing.T) {
	fen := "8/4P3/8/8/8/8/4k3/4K3 w - - 0 1"
	p, err := position.FromFEN(fen)
	require.NoError(t, err)

	moves := Generate(p, All, nil)
	promoCount := 0
	for _, m := range moves {
		if m.IsPromotion() {
			promoCount++
		}
	}
	assert.Equal(t, 4, promoCount)
}

func TestEnPassantGeneratedWhenTargetSet(t *testing.T) {
	fen := "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1"
	p, err := position.FromFEN(fen)
	require.NoError(t, err)

	moves := Generate(p, All, nil)
	found := false
	for _, m := range moves {
		if m.Kind() == move.EnPassant {
			found = true
			assert.Equal(t, chesstype.SqD6, m.To())
		}
	}
	assert.True(t, found)
}

func TestCastlingRequiresEmptySquaresAndRights(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	p, err := position.FromFEN(fen)
	require.NoError(t, err)

	moves := Generate(p, All, nil)
	castles := 0
	for _, m := range moves {
		if m.Kind() == move.Castle {
			castles++
		}
	}
	assert.Equal(t, 2, castles)
}

func TestCastlingBlockedByAttackedPassingSquareIsExcluded(t *testing.T) {
	fen := "4k3/8/8/8/8/5r2/8/4K2R w K - 0 1"
	p, err := position.FromFEN(fen)
	require.NoError(t, err)

	moves := Generate(p, All, nil)
	for _, m := range moves {
		assert.NotEqual(t, move.Castle, m.Kind(), "king would pass through an attacked square")
	}
}

func TestCastlingBlockedByOccupiedIntermediateSquareIsExcluded(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/4KB1R w K - 0 1"
	p, err := position.FromFEN(fen)
	require.NoError(t, err)

	moves := Generate(p, All, nil)
	for _, m := range moves {
		assert.NotEqual(t, move.Castle, m.Kind())
	}
}
