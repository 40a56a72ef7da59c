package tt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkobel/corvid/internal/chesstype"
	"github.com/dkobel/corvid/internal/move"
)

func TestStoreThenProbeRoundTrips(t *testing.T) {
	table := New(1)
	m := move.Encode(chesstype.SqE2, chesstype.SqE4, move.DoublePush, chesstype.NoPiece)
	table.Store(0xABCDEF, 6, 123, BoundExact, m)

	e, ok := table.Probe(0xABCDEF)
	assert.True(t, ok)
	assert.Equal(t, 6, e.Depth)
	assert.Equal(t, int32(123), e.Eval)
	assert.Equal(t, BoundExact, e.Bound)
	assert.Equal(t, m, e.Move)
}

func TestProbeMissOnDifferentKeySameIndex(t *testing.T) {
	table := New(1)
	table.Store(1, 4, 10, BoundExact, move.None)

	_, ok := table.Probe(1 + uint64(len(table.payload)))
	assert.False(t, ok)
}

func TestStoreAlwaysReplaces(t *testing.T) {
	table := New(1)
	table.Store(7, 2, 50, BoundLower, move.None)
	table.Store(7, 9, -50, BoundUpper, move.None)

	e, ok := table.Probe(7)
	assert.True(t, ok)
	assert.Equal(t, 9, e.Depth)
	assert.Equal(t, int32(-50), e.Eval)
	assert.Equal(t, BoundUpper, e.Bound)
}

func TestClearRemovesEntries(t *testing.T) {
	table := New(1)
	table.Store(42, 3, 1, BoundExact, move.None)
	table.Clear()

	_, ok := table.Probe(42)
	assert.False(t, ok)
}

func TestMateScoreNormalisationRoundTrips(t *testing.T) {
	const posInf = int32(32000)
	mateScore := posInf - 3 // mate in a few plies, found at ply 5
	stored := ToTT(mateScore, 5, posInf)
	assert.NotEqual(t, mateScore, stored)

	recovered := FromTT(stored, 5, posInf)
	assert.Equal(t, mateScore, recovered)
}

func TestNonMateScoreUnaffectedByNormalisation(t *testing.T) {
	const posInf = int32(32000)
	score := int32(37)
	stored := ToTT(score, 12, posInf)
	assert.Equal(t, score, stored)
	assert.Equal(t, score, FromTT(stored, 12, posInf))
}
