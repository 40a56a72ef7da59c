// Package chesstype defines the small, dependency-free enums shared by every
// other package in this engine: squares, files, ranks, sides, pieces and
// castling rights. Keeping them in one leaf package avoids import cycles
// between position, movegen, evaluator and search.
package chesstype

import "fmt"

// Square is a board index 0..63 with A1=0, H8=63 (rank = index>>3, file =
// index&7). InvalidSquare (64) stands for "absent", e.g. a missing
// en-passant target.
type Square int8

const (
	SqA1 Square = iota
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA8
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8

	// InvalidSquare marks the absence of a square, e.g. Position.EpSquare
	// when there is no en-passant target.
	InvalidSquare Square = 64
)

// File is 0..7, A..H.
type File int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// Rank is 0..7, rank 1..rank 8.
type Rank int8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

// RankOf returns the rank (0..7) of sq.
func (sq Square) RankOf() Rank { return Rank(sq >> 3) }

// FileOf returns the file (0..7) of sq.
func (sq Square) FileOf() File { return File(sq & 7) }

// MakeSquare builds a square from file and rank.
func MakeSquare(f File, r Rank) Square { return Square(int(r)*8 + int(f)) }

// IsValid reports whether sq is a real board square (not InvalidSquare).
func (sq Square) IsValid() bool { return sq >= SqA1 && sq <= SqH8 }

// ParseSquare parses a two-character algebraic square name, e.g. "e4", into
// a Square. Shared by the FEN and LAN parsers so the bounds-checking lives
// in one place.
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return InvalidSquare, false
	}
	f, r := s[0], s[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return InvalidSquare, false
	}
	return MakeSquare(File(f-'a'), Rank(r-'1')), true
}

var fileNames = "abcdefgh"

// String formats the square in algebraic notation, e.g. "e4". Returns "-"
// for InvalidSquare, matching FEN's en-passant field convention.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", fileNames[sq.FileOf()], sq.RankOf()+1)
}

// Side is the two-valued colour-relative player: Us is the side to move, Them
// is waiting. The board is always stored oriented so Us moves "upward".
type Side int8

const (
	Us Side = iota
	Them
)

// Other returns the opposite side.
func (s Side) Other() Side { return s ^ 1 }

// Piece is one of the six piece types, plus NoPiece.
type Piece int8

const (
	Pawn Piece = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPiece
)

// NumPieceTypes is the count of real (non-sentinel) piece types.
const NumPieceTypes = 6

var pieceLetters = "PNBRQK"

// String returns the uppercase FEN letter for the piece ("P","N",... ) or
// "-" for NoPiece.
func (p Piece) String() string {
	if p < Pawn || p > King {
		return "-"
	}
	return string(pieceLetters[p])
}

// CastlingRights is a 4-bit mask over {Us short, Us long, Them short, Them
// long}, always kept in the side-relative frame.
type CastlingRights uint8

const (
	UsShort   CastlingRights = 1 << 0
	UsLong    CastlingRights = 1 << 1
	ThemShort CastlingRights = 1 << 2
	ThemLong  CastlingRights = 1 << 3

	NoCastling  CastlingRights = 0
	AnyCastling CastlingRights = UsShort | UsLong | ThemShort | ThemLong
)

// Has reports whether all bits of mask are set.
func (c CastlingRights) Has(mask CastlingRights) bool { return c&mask == mask }

// flipCastleTable rotates the rights mask so Us<->Them swap (bits 0<->2,
// 1<->3), used by FlipPosition.
var flipCastleTable = [16]CastlingRights{}

func init() {
	for c := CastlingRights(0); c < 16; c++ {
		var out CastlingRights
		if c&UsShort != 0 {
			out |= ThemShort
		}
		if c&UsLong != 0 {
			out |= ThemLong
		}
		if c&ThemShort != 0 {
			out |= UsShort
		}
		if c&ThemLong != 0 {
			out |= UsLong
		}
		flipCastleTable[c] = out
	}
}

// Flip rotates castling rights between the Us and Them frames.
func (c CastlingRights) Flip() CastlingRights { return flipCastleTable[c] }

// PromotionLetter returns the lowercase LAN promotion suffix for p ("n",
// "b", "r", "q"), or 0 if p is not a legal promotion target.
func (p Piece) PromotionLetter() byte {
	switch p {
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	}
	return 0
}

// PromotionFromLetter parses a LAN promotion suffix byte into the
// corresponding Piece, returning (piece, ok).
func PromotionFromLetter(l byte) (Piece, bool) {
	switch l {
	case 'n':
		return Knight, true
	case 'b':
		return Bishop, true
	case 'r':
		return Rook, true
	case 'q':
		return Queen, true
	}
	return NoPiece, false
}
