package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkobel/corvid/internal/move"
	"github.com/dkobel/corvid/internal/movegen"
	"github.com/dkobel/corvid/internal/position"
)

func findMove(t *testing.T, p *position.Position, lan string) move.Move {
	t.Helper()
	m, ok := movegen.LegalFromLAN(p, lan)
	require.True(t, ok, "move %s not found", lan)
	return m
}

func TestMoveScorePawnCaptureUsesAttackerEnumOrdinal(t *testing.T) {
	p, err := position.FromFEN("4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	m := findMove(t, p, "e4d5")
	assert.Equal(t, int32(9900), moveScore(p, m, move.None, [2]move.Move{}))
}

func TestMoveScoreKnightCaptureUsesAttackerEnumOrdinal(t *testing.T) {
	p, err := position.FromFEN("4k3/8/8/3q4/8/2N5/8/4K3 w - - 0 1")
	require.NoError(t, err)

	m := findMove(t, p, "c3d5")
	assert.Equal(t, int32(9899), moveScore(p, m, move.None, [2]move.Move{}))
}

func TestMoveScoreEnPassantMatchesSpecLiteralFormula(t *testing.T) {
	p, err := position.FromFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)

	m := findMove(t, p, "e5d6")
	require.Equal(t, move.EnPassant, m.Kind())
	assert.Equal(t, int32(9110), moveScore(p, m, move.None, [2]move.Move{}))
}
