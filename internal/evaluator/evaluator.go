// Package evaluator implements the tapered static evaluation function:
// material, piece-square tables, mobility, king ring and passed pawns,
// accumulated as separate opening/endgame scores and blended by game phase.
//
// Grounded on the teacher's internal/evaluator/evaluator.go for the overall
// shape (an Evaluate entry point that resets per-call state and accumulates
// into mid/end accumulators before blending), but restricted to the feature
// list the specification calls for — no pawn cache, no bishop-pair or
// king-danger heuristics, no lazy-eval early exit. The two-pass "evaluate Us,
// flip, evaluate the new Us, subtract" structure replaces the teacher's
// White-minus-Black accumulation: because this engine's Position is always
// side-relative, there is no absolute White/Black frame to subtract within,
// so the position is evaluated once per side by re-orienting it instead.
package evaluator

import (
	"github.com/dkobel/corvid/internal/bitboard"
	"github.com/dkobel/corvid/internal/chesstype"
	"github.com/dkobel/corvid/internal/position"
)

// pieceValues are the material weights in centipawns, per spec §4.6.
var pieceValues = [chesstype.NumPieceTypes]int32{
	chesstype.Pawn:   100,
	chesstype.Knight: 300,
	chesstype.Bishop: 300,
	chesstype.Rook:   500,
	chesstype.Queen:  900,
	chesstype.King:   0,
}

// PieceValue exposes the material table for move ordering's MVV/LVA scores.
func PieceValue(pc chesstype.Piece) int32 { return pieceValues[pc] }

// phaseWeight contributes to the 0..24 game-phase figure that blends the
// opening and endgame accumulators.
var phaseWeight = [chesstype.NumPieceTypes]int{
	chesstype.Pawn:   0,
	chesstype.Knight: 1,
	chesstype.Bishop: 1,
	chesstype.Rook:   2,
	chesstype.Queen:  4,
	chesstype.King:   0,
}

const maxPhase = 24

// mobilityWeight scales each piece type's attacked-square count. The
// specification names the feature without fixing weights; these favour
// minor-piece mobility over major-piece mobility, the usual rule of thumb
// for engines without a dedicated mobility tuning pass.
var mobilityWeight = [chesstype.NumPieceTypes]int32{
	chesstype.Knight: 4,
	chesstype.Bishop: 4,
	chesstype.Rook:   2,
	chesstype.Queen:  1,
}

// passedPawnBonus is indexed by the pawn's rank in the side-relative frame
// (0 = Us's first rank, 7 = promotion rank).
var passedPawnBonus = [8]int32{0, 0, 10, 20, 40, 80, 160, 0}

const kingRingBonus = 5

// score is the pair of opening/endgame accumulators for one evaluation pass.
type score struct {
	mid int32
	end int32
}

func (s *score) add(mid, end int32) {
	s.mid += mid
	s.end += end
}

// Evaluate returns the position's value in centipawns from Us's perspective,
// positive meaning good for the side to move.
func Evaluate(p *position.Position) int32 {
	us := evaluateSide(p)

	flipped := p.Clone()
	flipped.FlipPosition()
	them := evaluateSide(flipped)

	mid := us.mid - them.mid
	end := us.end - them.end

	phase := gamePhase(p)
	return (int32(phase)*mid + int32(maxPhase-phase)*end) / maxPhase
}

// gamePhase sums phaseWeight over every piece on the board (both sides),
// clamped to [0, 24] per spec §4.6.
func gamePhase(p *position.Position) int {
	phase := 0
	for pc := chesstype.Pawn; pc <= chesstype.King; pc++ {
		phase += p.PieceBb(pc).PopCount() * phaseWeight[pc]
	}
	if phase > maxPhase {
		phase = maxPhase
	}
	return phase
}

// evaluateSide computes one pass's mid/end accumulators for the position's
// current Us, covering material, PST, mobility, king ring and passed pawns.
func evaluateSide(p *position.Position) score {
	var s score

	occ := p.Occupied()
	us := p.ColourBb(chesstype.Us)

	for pc := chesstype.Pawn; pc <= chesstype.King; pc++ {
		bb := p.PieceBbSide(pc, chesstype.Us)
		for b := bb; b != 0; {
			sq := b.PopLsb()
			s.add(pieceValues[pc], pieceValues[pc])
			s.add(pstMid[pc][sq], pstEnd[pc][sq])

			if pc >= chesstype.Knight && pc <= chesstype.Queen {
				mobility := int32(bitboard.Attacks(pc, sq, occ).PopCount()) * mobilityWeight[pc]
				s.add(mobility, mobility)
			}
		}
	}

	kingSq := p.KingSquare(chesstype.Us)
	if kingSq.IsValid() {
		ring := bitboard.Attacks(chesstype.King, kingSq, occ) & us
		s.mid += int32(kingRingBonus * ring.PopCount())
	}

	themPawns := p.PieceBbSide(chesstype.Pawn, chesstype.Them)
	for b := p.PieceBbSide(chesstype.Pawn, chesstype.Us); b != 0; {
		sq := b.PopLsb()
		if isPassed(sq, themPawns) {
			s.add(passedPawnBonus[sq.RankOf()], passedPawnBonus[sq.RankOf()])
		}
	}

	return s
}

// isPassed reports whether the Us pawn on sq has no Them pawn on its own
// file or either adjacent file on any rank ahead of its own (spec §4.6's
// "blocker mask" check). Ahead means toward increasing rank, since Us
// always pushes up; pawns on the same rank do not count.
func isPassed(sq chesstype.Square, themPawns bitboard.Bitboard) bool {
	mask := blockerMask(sq)
	return mask&themPawns == 0
}

func blockerMask(sq chesstype.Square) bitboard.Bitboard {
	file := sq.FileOf()
	files := bitboard.FileMask[file]
	if file > chesstype.FileA {
		files |= bitboard.FileMask[file-1]
	}
	if file < chesstype.FileH {
		files |= bitboard.FileMask[file+1]
	}

	var ahead bitboard.Bitboard
	for r := sq.RankOf() + 1; r <= chesstype.Rank8; r++ {
		ahead |= bitboard.RankMask[r]
	}
	return files & ahead
}
