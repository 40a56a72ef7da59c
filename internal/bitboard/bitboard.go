// Package bitboard implements the 64-bit occupancy primitives the rest of
// the engine is built on: bit manipulation, precomputed leaper-attack
// tables, and magic-bitboard sliding attacks for rooks and bishops. All
// tables are built once at process start in init() and are read-only
// thereafter, so they are safe to share across goroutines without locking.
package bitboard

import (
	"math/bits"
	"strings"

	"github.com/dkobel/corvid/internal/chesstype"
)

// Bitboard is a 64-bit unsigned word with bit i set iff square i is a member
// of the set.
type Bitboard uint64

const (
	Empty Bitboard = 0
	All   Bitboard = ^Bitboard(0)
)

var (
	FileMask [8]Bitboard
	RankMask [8]Bitboard
)

func init() {
	for f := chesstype.FileA; f <= chesstype.FileH; f++ {
		var m Bitboard
		for r := chesstype.Rank1; r <= chesstype.Rank8; r++ {
			m |= SquareBb(chesstype.MakeSquare(f, r))
		}
		FileMask[f] = m
	}
	for r := chesstype.Rank1; r <= chesstype.Rank8; r++ {
		var m Bitboard
		for f := chesstype.FileA; f <= chesstype.FileH; f++ {
			m |= SquareBb(chesstype.MakeSquare(f, r))
		}
		RankMask[r] = m
	}
}

// SquareBb returns the single-bit bitboard for sq.
func SquareBb(sq chesstype.Square) Bitboard {
	return Bitboard(1) << uint(sq)
}

// Has reports whether sq's bit is set in b.
func (b Bitboard) Has(sq chesstype.Square) bool {
	return b&SquareBb(sq) != 0
}

// Set returns b with sq's bit set.
func (b Bitboard) Set(sq chesstype.Square) Bitboard {
	return b | SquareBb(sq)
}

// Clear returns b with sq's bit cleared.
func (b Bitboard) Clear(sq chesstype.Square) Bitboard {
	return b &^ SquareBb(sq)
}

// Lsb returns the index of the least-significant set bit, or InvalidSquare
// if b is empty.
func (b Bitboard) Lsb() chesstype.Square {
	if b == Empty {
		return chesstype.InvalidSquare
	}
	return chesstype.Square(bits.TrailingZeros64(uint64(b)))
}

// PopLsb returns the Lsb of b and clears it from b.
func (b *Bitboard) PopLsb() chesstype.Square {
	sq := b.Lsb()
	*b &= *b - 1
	return sq
}

// PopCount returns the number of set bits in b.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// ByteSwap reverses the byte (i.e. rank) order of b, turning a board upside
// down while keeping file order within each rank intact. Used by
// FlipPosition to mirror the board vertically.
func (b Bitboard) ByteSwap() Bitboard {
	return Bitboard(bits.ReverseBytes64(uint64(b)))
}

// String renders b as an 8x8 ASCII board, rank 8 first, for debugging.
func (b Bitboard) String() string {
	var sb strings.Builder
	for r := chesstype.Rank8; r >= chesstype.Rank1; r-- {
		for f := chesstype.FileA; f <= chesstype.FileH; f++ {
			if b.Has(chesstype.MakeSquare(f, r)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
		}
		if r > chesstype.Rank1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
