// Package move implements the packed 32-bit Move representation (spec-wise
// only 18 bits are significant) and its long-algebraic-notation (LAN)
// encoding. Grounded on the teacher's Move2UCI helper (internal/uci/uci.go
// in the teacher), generalised into a full pack/unpack/predicate set per the
// specification's move encoding.
package move

import (
	"fmt"
	"strings"

	"github.com/dkobel/corvid/internal/chesstype"
)

// Kind is the move-kind tag stored in bits 12..14 of a Move.
type Kind uint8

const (
	Normal Kind = iota
	Castle
	Capture
	EnPassant
	Promotion
	DoublePush
	PromCapture
)

const (
	fromMask  = 0x3F
	toShift   = 6
	toMask    = 0x3F << toShift
	kindShift = 12
	kindMask  = 0x7 << kindShift
	promShift = 15
	promMask  = 0x7 << promShift
)

// Move packs from/to squares, a move kind and (for promotions) the
// promotion piece into a single 32-bit word. Bits 18..31 are unused.
type Move uint32

// None is the null move, reported to the UI when no legal move exists.
const None Move = 0

// Encode packs a move. promo is ignored unless kind is Promotion or
// PromCapture, in which case it must be one of Knight/Bishop/Rook/Queen.
func Encode(from, to chesstype.Square, kind Kind, promo chesstype.Piece) Move {
	m := Move(from) | Move(to)<<toShift | Move(kind)<<kindShift
	if kind == Promotion || kind == PromCapture {
		m |= Move(promo) << promShift
	}
	return m
}

// From returns the origin square.
func (m Move) From() chesstype.Square { return chesstype.Square(m & fromMask) }

// To returns the destination square.
func (m Move) To() chesstype.Square { return chesstype.Square((m & toMask) >> toShift) }

// Kind returns the move kind.
func (m Move) Kind() Kind { return Kind((m & kindMask) >> kindShift) }

// Promotion returns the promotion piece, valid only when Kind is Promotion
// or PromCapture.
func (m Move) Promotion() chesstype.Piece { return chesstype.Piece((m & promMask) >> promShift) }

// IsCapture reports whether the move removes an enemy piece (a plain
// Capture, EnPassant, or PromCapture).
func (m Move) IsCapture() bool {
	switch m.Kind() {
	case Capture, EnPassant, PromCapture:
		return true
	}
	return false
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	k := m.Kind()
	return k == Promotion || k == PromCapture
}

// IsQuiet reports whether the move is neither a capture nor a promotion —
// the class of moves eligible to become killer moves (spec §4.8 step 9).
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// flipSquare xors a square by 56, the rank-mirroring transform also used by
// Bitboard.ByteSwap.
func flipSquare(sq chesstype.Square) chesstype.Square { return sq ^ 56 }

// Flip returns m with both squares mirrored vertically (xor 56), used to
// convert a side-relative move back to absolute board coordinates for
// display when the position was flipped.
func (m Move) Flip() Move {
	return Encode(flipSquare(m.From()), flipSquare(m.To()), m.Kind(), m.Promotion())
}

// LAN renders m in long algebraic notation, e.g. "e2e4", "e7e8q".
func (m Move) LAN() string {
	var b strings.Builder
	b.WriteString(m.From().String())
	b.WriteString(m.To().String())
	if m.IsPromotion() {
		b.WriteByte(m.Promotion().PromotionLetter())
	}
	return b.String()
}

func (m Move) String() string {
	if m == None {
		return "0000"
	}
	return fmt.Sprintf("%s", m.LAN())
}

// ParseLAN parses the 4- or 5-byte LAN syntax into (from, to, promo, ok). It
// does not and cannot check legality on its own — callers must match the
// result against the legal move list (see LegalFromLAN).
func ParseLAN(s string) (from, to chesstype.Square, promo chesstype.Piece, ok bool) {
	if len(s) != 4 && len(s) != 5 {
		return 0, 0, chesstype.NoPiece, false
	}
	from, ok1 := chesstype.ParseSquare(s[0:2])
	to, ok2 := chesstype.ParseSquare(s[2:4])
	if !ok1 || !ok2 {
		return 0, 0, chesstype.NoPiece, false
	}
	promo = chesstype.NoPiece
	if len(s) == 5 {
		p, ok3 := chesstype.PromotionFromLetter(s[4])
		if !ok3 {
			return 0, 0, chesstype.NoPiece, false
		}
		promo = p
	}
	return from, to, promo, true
}
