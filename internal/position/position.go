// Package position implements the side-relative chess board representation
// described by the specification: the board is always stored oriented so
// the side to move ("Us") moves toward increasing ranks, and whenever the
// physical side to move changes the whole board is mirrored vertically
// (FlipPosition) rather than keeping two sets of direction-dependent move
// tables. A child position is always produced by value from its parent
// (MakeMove has a value receiver) — search never mutates a position in
// place.
//
// Grounded on the teacher's internal/position/position.go for package shape
// and doc-comment style; the orientation and copy-on-move semantics are the
// specification's (§3, §4.2, §9), not the teacher's own absolute-board,
// mutable do/undo-move representation.
package position

import (
	"github.com/dkobel/corvid/internal/assert"
	"github.com/dkobel/corvid/internal/bitboard"
	"github.com/dkobel/corvid/internal/chesstype"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position is the core board representation. See the package doc comment
// for the orientation convention.
type Position struct {
	pieces  [chesstype.NumPieceTypes]bitboard.Bitboard // both sides combined, per piece type
	colours [2]bitboard.Bitboard                       // per side, Us/Them

	castle    chesstype.CastlingRights
	epSquare  chesstype.Square
	halfmoves int
	fullmove  int

	hashKey uint64
	flipped bool

	// history holds every hashKey seen so far in this game/search branch,
	// including the current position's key, for repetition detection. Each
	// MakeMove call allocates a fresh backing array (as Clone does) so sibling
	// branches in the search tree never alias each other's history.
	history []uint64
}

// New returns the standard chess starting position.
func New() *Position {
	p, err := FromFEN(StartFEN)
	if err != nil {
		panic("position: malformed built-in start FEN: " + err.Error())
	}
	return p
}

// PieceBb returns the combined (both sides) occupancy bitboard for piece
// type p.
func (p *Position) PieceBb(pc chesstype.Piece) bitboard.Bitboard { return p.pieces[pc] }

// PieceBbSide returns the occupancy bitboard for piece type p belonging to
// side.
func (p *Position) PieceBbSide(pc chesstype.Piece, side chesstype.Side) bitboard.Bitboard {
	return p.pieces[pc] & p.colours[side]
}

// ColourBb returns the combined occupancy of all pieces of side.
func (p *Position) ColourBb(side chesstype.Side) bitboard.Bitboard { return p.colours[side] }

// Occupied returns the union of both sides' occupancy.
func (p *Position) Occupied() bitboard.Bitboard { return p.colours[chesstype.Us] | p.colours[chesstype.Them] }

// CastlingRights returns the current (side-relative) castling rights mask.
func (p *Position) CastlingRights() chesstype.CastlingRights { return p.castle }

// EpSquare returns the current en-passant target square, or InvalidSquare.
func (p *Position) EpSquare() chesstype.Square { return p.epSquare }

// HalfmoveClock returns the 50-move-rule counter.
func (p *Position) HalfmoveClock() int { return p.halfmoves }

// FullmoveNumber returns the FEN fullmove counter.
func (p *Position) FullmoveNumber() int { return p.fullmove }

// ZobristKey returns the incrementally maintained Zobrist hash.
func (p *Position) ZobristKey() uint64 { return p.hashKey }

// Flipped reports whether the board is currently mirrored relative to its
// original (FEN) orientation, i.e. whether Them is physically White.
func (p *Position) Flipped() bool { return p.flipped }

// History returns the sequence of Zobrist keys seen so far on this branch,
// oldest first, including the current position.
func (p *Position) History() []uint64 { return p.history }

// GetPieceOn returns the piece occupying sq, or NoPiece if it's empty. This
// is a linear scan over the six piece bitboards, matching the teacher's
// GetPieceOnSquare.
func (p *Position) GetPieceOn(sq chesstype.Square) chesstype.Piece {
	bb := bitboard.SquareBb(sq)
	for pc := chesstype.Pawn; pc <= chesstype.King; pc++ {
		if p.pieces[pc]&bb != 0 {
			return pc
		}
	}
	return chesstype.NoPiece
}

// SideOn returns the side occupying sq. Only meaningful when GetPieceOn(sq)
// != NoPiece.
func (p *Position) SideOn(sq chesstype.Square) chesstype.Side {
	if p.colours[chesstype.Us].Has(sq) {
		return chesstype.Us
	}
	return chesstype.Them
}

// KingSquare returns the square of side's king.
func (p *Position) KingSquare(side chesstype.Side) chesstype.Square {
	return p.PieceBbSide(chesstype.King, side).Lsb()
}

// putPiece places a piece on an empty square, updating bitboards and the
// Zobrist key. sq must be empty.
func (p *Position) putPiece(sq chesstype.Square, pc chesstype.Piece, side chesstype.Side) {
	if assert.DEBUG {
		assert.Assert(p.GetPieceOn(sq) == chesstype.NoPiece, "putPiece: square occupied")
	}
	bb := bitboard.SquareBb(sq)
	p.pieces[pc] |= bb
	p.colours[side] |= bb
	p.hashKey ^= pieceSquareKey(side, pc, sq)
}

// removePiece removes a known piece from a square, updating bitboards and
// the Zobrist key.
func (p *Position) removePiece(sq chesstype.Square, pc chesstype.Piece, side chesstype.Side) {
	bb := bitboard.SquareBb(sq)
	p.pieces[pc] &^= bb
	p.colours[side] &^= bb
	p.hashKey ^= pieceSquareKey(side, pc, sq)
}

// movePiece relocates a piece from one empty-destination square to another,
// toggling both bits in one step and updating the Zobrist key for both
// squares. from must differ from to.
func (p *Position) movePiece(from, to chesstype.Square, pc chesstype.Piece, side chesstype.Side) {
	if assert.DEBUG {
		assert.Assert(from != to, "movePiece: from == to")
	}
	mask := bitboard.SquareBb(from) | bitboard.SquareBb(to)
	p.pieces[pc] ^= mask
	p.colours[side] ^= mask
	p.hashKey ^= pieceSquareKey(side, pc, from)
	p.hashKey ^= pieceSquareKey(side, pc, to)
}

// setCastlingRights updates the castling rights mask, keeping the Zobrist
// key in sync.
func (p *Position) setCastlingRights(c chesstype.CastlingRights) {
	p.hashKey ^= zobristCastle[p.castle]
	p.castle = c
	p.hashKey ^= zobristCastle[p.castle]
}

// setEpSquare updates the en-passant target, keeping the Zobrist key in
// sync.
func (p *Position) setEpSquare(sq chesstype.Square) {
	if p.epSquare.IsValid() {
		p.hashKey ^= zobristEpFile[p.epSquare.FileOf()]
	}
	p.epSquare = sq
	if p.epSquare.IsValid() {
		p.hashKey ^= zobristEpFile[p.epSquare.FileOf()]
	}
}

// attacksTo returns every square from which some piece currently on the
// board attacks sq, regardless of side — the union, for each piece type p,
// of Attacks(p, sq, occ) & pieces[p], plus pawns attacking in the direction
// appropriate to whichever side's pawn would be doing the attacking.
func (p *Position) attacksTo(sq chesstype.Square) bitboard.Bitboard {
	occ := p.Occupied()
	attackers := bitboard.Attacks(chesstype.Knight, sq, occ) & p.pieces[chesstype.Knight]
	attackers |= bitboard.Attacks(chesstype.King, sq, occ) & p.pieces[chesstype.King]
	attackers |= bitboard.Attacks(chesstype.Bishop, sq, occ) & (p.pieces[chesstype.Bishop] | p.pieces[chesstype.Queen])
	attackers |= bitboard.Attacks(chesstype.Rook, sq, occ) & (p.pieces[chesstype.Rook] | p.pieces[chesstype.Queen])
	attackers |= bitboard.PawnAttacksTo(sq, chesstype.Us) & p.PieceBbSide(chesstype.Pawn, chesstype.Us)
	attackers |= bitboard.PawnAttacksTo(sq, chesstype.Them) & p.PieceBbSide(chesstype.Pawn, chesstype.Them)
	return attackers
}

// AttacksTo returns every square from which some piece on the board
// currently attacks sq, regardless of side — exposed for the move generator
// (castling's "is this square attacked" checks, spec §4.4).
func (p *Position) AttacksTo(sq chesstype.Square) bitboard.Bitboard { return p.attacksTo(sq) }

// IsChecked reports whether side's king is attacked by the opposing side.
func (p *Position) IsChecked(side chesstype.Side) bool {
	king := p.KingSquare(side)
	if !king.IsValid() {
		return false
	}
	return p.attacksTo(king)&p.colours[side.Other()] != 0
}

// Clone returns a deep copy of p. history gets its own backing array so
// mutating the clone's history (as MakeMove does) never aliases the
// parent's, per the "copy the vector on each ply" approach from spec §9.
func (p *Position) Clone() *Position {
	c := *p
	c.history = make([]uint64, len(p.history))
	copy(c.history, p.history)
	return &c
}

// FlipPosition mirrors the board vertically in place: every piece bitboard
// is byte-swapped, the colour bitboards are swapped then byte-swapped, the
// en-passant square (if any) is mirrored, castling rights are rotated
// Us<->Them, and flipped is toggled. The Zobrist key is rebuilt via its
// side-to-move coefficient and per-square coefficients change identity
// (Us/Them swap), so it is fully recomputed here rather than patched
// incrementally — still O(popcount) work, same order as a single move.
func (p *Position) FlipPosition() {
	for pc := chesstype.Pawn; pc <= chesstype.King; pc++ {
		p.pieces[pc] = p.pieces[pc].ByteSwap()
	}
	p.colours[chesstype.Us], p.colours[chesstype.Them] = p.colours[chesstype.Them].ByteSwap(), p.colours[chesstype.Us].ByteSwap()

	if p.epSquare.IsValid() {
		p.epSquare ^= 56
	}
	p.castle = p.castle.Flip()
	p.flipped = !p.flipped

	p.hashKey = p.computeHashFromScratch()
}

// computeHashFromScratch recomputes the Zobrist key from the current board
// state, used by FlipPosition (where patching every coefficient
// incrementally would cost as much as a full recompute anyway) and by tests
// verifying incremental-hash correctness (spec §8 property 4).
func (p *Position) computeHashFromScratch() uint64 {
	var key uint64
	for pc := chesstype.Pawn; pc <= chesstype.King; pc++ {
		for _, side := range [2]chesstype.Side{chesstype.Us, chesstype.Them} {
			bb := p.PieceBbSide(pc, side)
			for bb != 0 {
				sq := bb.PopLsb()
				key ^= pieceSquareKey(side, pc, sq)
			}
		}
	}
	key ^= zobristCastle[p.castle]
	if p.epSquare.IsValid() {
		key ^= zobristEpFile[p.epSquare.FileOf()]
	}
	if p.flipped {
		key ^= zobristSideToMove
	}
	return key
}

// CheckInvariants verifies structural invariants 1–4 from spec §3: piece
// bitboards are disjoint, colour bitboards are disjoint, pieces and colours
// cover the same squares, and each side has exactly one king. The Zobrist,
// en-passant and side-alternation invariants (5–7) are not checked here.
// Called from the package tests.
func (p *Position) CheckInvariants() bool {
	for i := chesstype.Pawn; i <= chesstype.King; i++ {
		for j := i + 1; j <= chesstype.King; j++ {
			if p.pieces[i]&p.pieces[j] != 0 {
				return false
			}
		}
	}
	if p.colours[chesstype.Us]&p.colours[chesstype.Them] != 0 {
		return false
	}
	var all bitboard.Bitboard
	for pc := chesstype.Pawn; pc <= chesstype.King; pc++ {
		all |= p.pieces[pc]
	}
	if all != p.Occupied() {
		return false
	}
	if p.PieceBbSide(chesstype.King, chesstype.Us).PopCount() != 1 {
		return false
	}
	if p.PieceBbSide(chesstype.King, chesstype.Them).PopCount() != 1 {
		return false
	}
	return true
}
