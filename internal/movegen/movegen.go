// Package movegen generates pseudo-legal moves on a side-relative Position:
// moves that may leave the mover's own king in check. Legality filtering
// happens one level up, in search, via a post-move is_checked(child, THEM)
// test (the mover becomes THEM once the board is flipped by MakeMove).
//
// Grounded on the teacher's internal/movegen/movegen.go for the bitboard
// shift-and-mask generation technique and the split between a captures pass
// and a non-captures pass; rewritten for the side-relative ("US always
// pushes toward rank 8") frame instead of the teacher's absolute
// White/Black direction tables, and trimmed to the specification's encoding
// (Move kinds instead of scored/sortable moves — move ordering lives in
// search, not here).
package movegen

import (
	"github.com/dkobel/corvid/internal/bitboard"
	"github.com/dkobel/corvid/internal/chesstype"
	"github.com/dkobel/corvid/internal/move"
	"github.com/dkobel/corvid/internal/position"
)

// GenMode selects which subset of pseudo-legal moves to generate. Search
// uses All; quiescence search uses CapturesOnly.
type GenMode int

const (
	All GenMode = iota
	CapturesOnly
)

// Generate appends every pseudo-legal move for Us in p to dst and returns
// the extended slice, so callers can reuse a pre-allocated backing array
// across plies the way the teacher's MoveSlice does.
func Generate(p *position.Position, mode GenMode, dst []move.Move) []move.Move {
	dst = generatePawnMoves(p, mode, dst)
	dst = generatePieceMoves(p, chesstype.Knight, mode, dst)
	dst = generatePieceMoves(p, chesstype.Bishop, mode, dst)
	dst = generatePieceMoves(p, chesstype.Rook, mode, dst)
	dst = generatePieceMoves(p, chesstype.Queen, mode, dst)
	dst = generateKingMoves(p, mode, dst)
	if mode == All {
		dst = generateCastling(p, dst)
	}
	return dst
}

func generatePawnMoves(p *position.Position, mode GenMode, dst []move.Move) []move.Move {
	us := p.PieceBbSide(chesstype.Pawn, chesstype.Us)
	empty := ^p.Occupied()
	them := p.ColourBb(chesstype.Them)

	if mode == All {
		// Single push.
		singles := shiftUp8(us) & empty
		promos := singles & rankMask(chesstype.Rank8)
		quiet := singles &^ rankMask(chesstype.Rank8)
		for bb := quiet; bb != 0; {
			to := bb.PopLsb()
			dst = append(dst, move.Encode(to-8, to, move.Normal, chesstype.NoPiece))
		}
		for bb := promos; bb != 0; {
			to := bb.PopLsb()
			dst = appendPromotions(dst, to-8, to, move.Promotion)
		}

		// Double push: pawns on rank 2 that can push through an empty rank 3
		// into an empty rank 4.
		doubles := shiftUp8(shiftUp8(us&rankMask(chesstype.Rank2))&empty) & empty
		for bb := doubles; bb != 0; {
			to := bb.PopLsb()
			dst = append(dst, move.Encode(to-16, to, move.DoublePush, chesstype.NoPiece))
		}
	}

	// Captures (left = toward file A, i.e. shift by 7; right = shift by 9).
	left := shiftUpLeft(us) & them
	leftPromo := left & rankMask(chesstype.Rank8)
	leftPlain := left &^ rankMask(chesstype.Rank8)
	for bb := leftPlain; bb != 0; {
		to := bb.PopLsb()
		dst = append(dst, move.Encode(to-7, to, move.Capture, chesstype.NoPiece))
	}
	for bb := leftPromo; bb != 0; {
		to := bb.PopLsb()
		dst = appendPromotions(dst, to-7, to, move.PromCapture)
	}

	right := shiftUpRight(us) & them
	rightPromo := right & rankMask(chesstype.Rank8)
	rightPlain := right &^ rankMask(chesstype.Rank8)
	for bb := rightPlain; bb != 0; {
		to := bb.PopLsb()
		dst = append(dst, move.Encode(to-9, to, move.Capture, chesstype.NoPiece))
	}
	for bb := rightPromo; bb != 0; {
		to := bb.PopLsb()
		dst = appendPromotions(dst, to-9, to, move.PromCapture)
	}

	if ep := p.EpSquare(); ep.IsValid() {
		attackers := bitboard.PawnAttacksTo(ep, chesstype.Us) & us
		for bb := attackers; bb != 0; {
			from := bb.PopLsb()
			dst = append(dst, move.Encode(from, ep, move.EnPassant, chesstype.NoPiece))
		}
	}

	return dst
}

func appendPromotions(dst []move.Move, from, to chesstype.Square, kind move.Kind) []move.Move {
	for _, promo := range [4]chesstype.Piece{chesstype.Queen, chesstype.Knight, chesstype.Rook, chesstype.Bishop} {
		dst = append(dst, move.Encode(from, to, kind, promo))
	}
	return dst
}

func generatePieceMoves(p *position.Position, pt chesstype.Piece, mode GenMode, dst []move.Move) []move.Move {
	occ := p.Occupied()
	us := p.ColourBb(chesstype.Us)
	them := p.ColourBb(chesstype.Them)

	pieces := p.PieceBbSide(pt, chesstype.Us)
	for pieces != 0 {
		from := pieces.PopLsb()
		targets := bitboard.Attacks(pt, from, occ) &^ us
		captures := targets & them
		for bb := captures; bb != 0; {
			to := bb.PopLsb()
			dst = append(dst, move.Encode(from, to, move.Capture, chesstype.NoPiece))
		}
		if mode == All {
			quiet := targets &^ them
			for bb := quiet; bb != 0; {
				to := bb.PopLsb()
				dst = append(dst, move.Encode(from, to, move.Normal, chesstype.NoPiece))
			}
		}
	}
	return dst
}

func generateKingMoves(p *position.Position, mode GenMode, dst []move.Move) []move.Move {
	from := p.KingSquare(chesstype.Us)
	if !from.IsValid() {
		return dst
	}
	us := p.ColourBb(chesstype.Us)
	them := p.ColourBb(chesstype.Them)
	targets := bitboard.Attacks(chesstype.King, from, p.Occupied()) &^ us

	captures := targets & them
	for bb := captures; bb != 0; {
		to := bb.PopLsb()
		dst = append(dst, move.Encode(from, to, move.Capture, chesstype.NoPiece))
	}
	if mode == All {
		quiet := targets &^ them
		for bb := quiet; bb != 0; {
			to := bb.PopLsb()
			dst = append(dst, move.Encode(from, to, move.Normal, chesstype.NoPiece))
		}
	}
	return dst
}

// generateCastling emits US's two castling moves when legal, per spec §4.4:
// the rights bit is set, the squares between king and rook are empty, and
// none of the king's start/pass/destination squares is attacked by THEM.
// Castling only ever issues from E1 because the board is side-relative.
func generateCastling(p *position.Position, dst []move.Move) []move.Move {
	rights := p.CastlingRights()
	if rights == chesstype.NoCastling {
		return dst
	}
	occ := p.Occupied()

	if rights.Has(chesstype.UsShort) &&
		occ&intermediate(chesstype.SqE1, chesstype.SqH1) == 0 &&
		!squaresAttacked(p, chesstype.SqE1, chesstype.SqF1, chesstype.SqG1) {
		dst = append(dst, move.Encode(chesstype.SqE1, chesstype.SqG1, move.Castle, chesstype.NoPiece))
	}
	if rights.Has(chesstype.UsLong) &&
		occ&intermediate(chesstype.SqE1, chesstype.SqA1) == 0 &&
		!squaresAttacked(p, chesstype.SqE1, chesstype.SqD1, chesstype.SqC1) {
		dst = append(dst, move.Encode(chesstype.SqE1, chesstype.SqC1, move.Castle, chesstype.NoPiece))
	}
	return dst
}

func squaresAttacked(p *position.Position, squares ...chesstype.Square) bool {
	for _, sq := range squares {
		if p.AttacksTo(sq)&p.ColourBb(chesstype.Them) != 0 {
			return true
		}
	}
	return false
}

// intermediate returns the squares strictly between a and b on the same
// rank, exclusive of both endpoints.
func intermediate(a, b chesstype.Square) bitboard.Bitboard {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	var bb bitboard.Bitboard
	for sq := lo + 1; sq < hi; sq++ {
		bb |= bitboard.SquareBb(sq)
	}
	return bb
}

func rankMask(r chesstype.Rank) bitboard.Bitboard { return bitboard.RankMask[r] }

func shiftUp8(bb bitboard.Bitboard) bitboard.Bitboard { return bb << 8 }

// shiftUpLeft/shiftUpRight shift a pawn bitboard one rank up and one file
// toward A/H respectively, masking off wraparound across the board edge
// before shifting.
func shiftUpLeft(bb bitboard.Bitboard) bitboard.Bitboard {
	return (bb &^ bitboard.FileMask[chesstype.FileA]) << 7
}

func shiftUpRight(bb bitboard.Bitboard) bitboard.Bitboard {
	return (bb &^ bitboard.FileMask[chesstype.FileH]) << 9
}
