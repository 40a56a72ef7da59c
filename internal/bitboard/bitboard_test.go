package bitboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkobel/corvid/internal/chesstype"
)

func TestPopCountAndLsb(t *testing.T) {
	tests := []struct {
		value    Bitboard
		expected int
	}{
		{Empty, 0},
		{All, 64},
		{SquareBb(chesstype.SqA1), 1},
		{Bitboard(7), 3},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, tc.value.PopCount())
	}

	b := SquareBb(chesstype.SqD4) | SquareBb(chesstype.SqA1)
	assert.Equal(t, chesstype.SqA1, b.Lsb())
	sq := b.PopLsb()
	assert.Equal(t, chesstype.SqA1, sq)
	assert.Equal(t, chesstype.SqD4, b.Lsb())
}

func TestByteSwapInvolution(t *testing.T) {
	for _, sq := range []chesstype.Square{chesstype.SqA1, chesstype.SqH8, chesstype.SqD4, chesstype.SqE2} {
		b := SquareBb(sq)
		assert.Equal(t, b, b.ByteSwap().ByteSwap())
	}
	// A1 mirrors to A8 and vice versa.
	assert.Equal(t, SquareBb(chesstype.SqA8), SquareBb(chesstype.SqA1).ByteSwap())
}

func TestLeaperMaskPopulationBounds(t *testing.T) {
	for sq := chesstype.SqA1; sq <= chesstype.SqH8; sq++ {
		assert.LessOrEqual(t, KnightAttackMask[sq].PopCount(), 8)
		assert.LessOrEqual(t, KingAttackMask[sq].PopCount(), 8)
		assert.LessOrEqual(t, PawnAttackMask[chesstype.Us][sq].PopCount(), 2)
		assert.LessOrEqual(t, PawnAttackMask[chesstype.Them][sq].PopCount(), 2)
	}
}

func TestFileRankMasksDisjoint(t *testing.T) {
	for f := chesstype.FileA; f <= chesstype.FileH; f++ {
		assert.Equal(t, 8, FileMask[f].PopCount())
	}
	for r := chesstype.Rank1; r <= chesstype.Rank8; r++ {
		assert.Equal(t, 8, RankMask[r].PopCount())
	}
	assert.Equal(t, Empty, FileMask[chesstype.FileA]&FileMask[chesstype.FileB])
	assert.Equal(t, Empty, RankMask[chesstype.Rank1]&RankMask[chesstype.Rank2])
}

func TestPawnAttacksToSymmetry(t *testing.T) {
	// A Them pawn on e5 attacks d4 and f4 (moving toward rank 1).
	attackers := PawnAttacksTo(chesstype.SqD4, chesstype.Them)
	assert.True(t, attackers.Has(chesstype.SqE5))
}

func TestRookAndBishopAttacksOnEmptyBoard(t *testing.T) {
	rookA1 := RookAttacks(chesstype.SqA1, Empty)
	assert.True(t, rookA1.Has(chesstype.SqA8))
	assert.True(t, rookA1.Has(chesstype.SqH1))
	assert.False(t, rookA1.Has(chesstype.SqB2))

	bishopA1 := BishopAttacks(chesstype.SqA1, Empty)
	assert.True(t, bishopA1.Has(chesstype.SqH8))
	assert.False(t, bishopA1.Has(chesstype.SqA2))
}

func TestSlidingAttacksBlockedByOccupancy(t *testing.T) {
	occ := SquareBb(chesstype.SqA4)
	rookA1 := RookAttacks(chesstype.SqA1, occ)
	assert.True(t, rookA1.Has(chesstype.SqA4))
	assert.False(t, rookA1.Has(chesstype.SqA5))
}
