package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkobel/corvid/internal/chesstype"
	"github.com/dkobel/corvid/internal/position"
)

func TestStartPositionIsMaterialBalanced(t *testing.T) {
	p, err := position.FromFEN(position.StartFEN)
	require.NoError(t, err)
	assert.Zero(t, Evaluate(p))
}

func TestExtraQueenIsEvaluatedAsMaterialGain(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/3QK3 w - - 0 1"
	p, err := position.FromFEN(fen)
	require.NoError(t, err)
	assert.Greater(t, Evaluate(p), int32(800))
}

func TestEvaluationNegatesAfterFlip(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/3QK3 w - - 0 1"
	p, err := position.FromFEN(fen)
	require.NoError(t, err)

	before := Evaluate(p)
	flipped := p.Clone()
	flipped.FlipPosition()
	after := Evaluate(flipped)

	assert.Equal(t, before, -after)
}

func TestPassedPawnOutweighsBlockedPawn(t *testing.T) {
	passed := "4k3/8/8/4P3/8/8/8/4K3 w - - 0 1"
	blocked := "4k3/4p3/4P3/8/8/8/8/4K3 w - - 0 1"

	pp, err := position.FromFEN(passed)
	require.NoError(t, err)
	pb, err := position.FromFEN(blocked)
	require.NoError(t, err)

	assert.Greater(t, Evaluate(pp), Evaluate(pb))
}

func TestPieceValueTableMatchesSpecWeights(t *testing.T) {
	assert.Equal(t, int32(100), PieceValue(chesstype.Pawn))
	assert.Equal(t, int32(300), PieceValue(chesstype.Knight))
	assert.Equal(t, int32(300), PieceValue(chesstype.Bishop))
	assert.Equal(t, int32(500), PieceValue(chesstype.Rook))
	assert.Equal(t, int32(900), PieceValue(chesstype.Queen))
	assert.Equal(t, int32(0), PieceValue(chesstype.King))
}
