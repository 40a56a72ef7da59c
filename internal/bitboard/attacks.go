package bitboard

import "github.com/dkobel/corvid/internal/chesstype"

// PawnAttackMask[side][sq] holds the diagonal-forward attack targets of a
// pawn of the given side standing on sq. "Forward" means increasing rank for
// Us and decreasing rank for Them, matching the engine's side-relative
// orientation (see internal/position).
var PawnAttackMask [2][64]Bitboard

// KnightAttackMask[sq] and KingAttackMask[sq] hold the full leaper attack
// set from sq, independent of side.
var (
	KnightAttackMask [64]Bitboard
	KingAttackMask   [64]Bitboard
)

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func init() {
	for sq := chesstype.SqA1; sq <= chesstype.SqH8; sq++ {
		f, r := int(sq.FileOf()), int(sq.RankOf())

		// pawns: Us attacks forward-diagonally (rank+1), Them attacks
		// backward-diagonally (rank-1).
		PawnAttackMask[chesstype.Us][sq] = leaperTargets(f, r, [][2]int{{-1, 1}, {1, 1}})
		PawnAttackMask[chesstype.Them][sq] = leaperTargets(f, r, [][2]int{{-1, -1}, {1, -1}})

		KnightAttackMask[sq] = leaperTargets(f, r, [][2]int{
			{1, 2}, {2, 1}, {2, -1}, {1, -2},
			{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
		})

		KingAttackMask[sq] = leaperTargets(f, r, [][2]int{
			{-1, -1}, {0, -1}, {1, -1},
			{-1, 0}, {1, 0},
			{-1, 1}, {0, 1}, {1, 1},
		})
	}
}

// leaperTargets builds the attack bitboard for a leaper on (f,r) given a set
// of (dFile,dRank) offsets, discarding any that leave the board.
func leaperTargets(f, r int, deltas [][2]int) Bitboard {
	var b Bitboard
	for _, d := range deltas {
		nf, nr := f+d[0], r+d[1]
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		b = b.Set(chesstype.MakeSquare(chesstype.File(nf), chesstype.Rank(nr)))
	}
	return b
}

// PawnAttacksTo returns the squares from which a pawn of side `by` would
// attack sq. Pawn attacks are symmetric under reversal, so this is just the
// attack mask of the opposite side anchored at sq.
func PawnAttacksTo(sq chesstype.Square, by chesstype.Side) Bitboard {
	return PawnAttackMask[by.Other()][sq]
}

// Attacks returns the attack bitboard of piece type pt standing on sq, given
// the full board occupancy (only relevant for sliding pieces). Knights and
// kings ignore occupancy; pawns are not valid here (see PawnAttackMask).
func Attacks(pt chesstype.Piece, sq chesstype.Square, occupied Bitboard) Bitboard {
	switch pt {
	case chesstype.Knight:
		return KnightAttackMask[sq]
	case chesstype.King:
		return KingAttackMask[sq]
	case chesstype.Bishop:
		return BishopAttacks(sq, occupied)
	case chesstype.Rook:
		return RookAttacks(sq, occupied)
	case chesstype.Queen:
		return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
	}
	return Empty
}
