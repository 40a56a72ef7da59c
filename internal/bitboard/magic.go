package bitboard

import "github.com/dkobel/corvid/internal/chesstype"

// magic holds the fancy-magic bitboard data for a single square: the
// relevant occupancy mask, the magic multiplier, the shift, and the slice of
// the shared attack table this square owns.
//
// The generation algorithm (including the seed table and the sparse PRNG)
// is the well-known Stockfish approach to fancy magic bitboards; see
// https://www.chessprogramming.org/Magic_Bitboards.
type magic struct {
	mask    Bitboard
	magic   Bitboard
	attacks []Bitboard
	shift   uint
}

func (m *magic) index(occupied Bitboard) uint {
	occ := occupied & m.mask
	occ *= m.magic
	occ >>= m.shift
	return uint(occ)
}

var (
	rookMagics   [64]magic
	bishopMagics [64]magic

	rookTable   []Bitboard
	bishopTable []Bitboard
)

var rookDeltas = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var bishopDeltas = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func init() {
	rookTable = make([]Bitboard, 0x19000)
	bishopTable = make([]Bitboard, 0x1480)
	initMagics(rookDeltas, &rookTable, &rookMagics)
	initMagics(bishopDeltas, &bishopTable, &bishopMagics)
}

// seeds are the per-rank PRNG seeds used to speed up the magic search, taken
// from Stockfish's magic generator (they are not security-sensitive; they
// just happen to converge fast for this table size).
var seeds = [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

// RookAttacks returns the rook attack bitboard from sq given the current
// board occupancy.
func RookAttacks(sq chesstype.Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	return m.attacks[m.index(occupied)]
}

// BishopAttacks returns the bishop attack bitboard from sq given the current
// board occupancy.
func BishopAttacks(sq chesstype.Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	return m.attacks[m.index(occupied)]
}

// initMagics computes the mask, magic multiplier and attack table for every
// square for one sliding-piece family (rook or bishop), given its four ray
// directions and a table of PRNG seeds (one per rank, a Stockfish tuning
// trick to shorten the search).
func initMagics(deltas [4][2]int, table *[]Bitboard, magics *[64]magic) {
	var occupancy [4096]Bitboard
	var reference [4096]Bitboard
	var epoch [4096]int
	cnt := 0

	for sq := chesstype.SqA1; sq <= chesstype.SqH8; sq++ {
		f, r := int(sq.FileOf()), int(sq.RankOf())

		edges := Empty
		if r != 0 {
			edges |= RankMask[chesstype.Rank1]
		}
		if r != 7 {
			edges |= RankMask[chesstype.Rank8]
		}
		if f != 0 {
			edges |= FileMask[chesstype.FileA]
		}
		if f != 7 {
			edges |= FileMask[chesstype.FileH]
		}

		m := &magics[sq]
		m.mask = slidingAttack(deltas, sq, Empty) &^ edges
		m.shift = uint(64 - m.mask.PopCount())

		if sq == chesstype.SqA1 {
			m.attacks = *table
		} else {
			m.attacks = magics[sq-1].attacks[size(magics[sq-1].mask):]
		}

		// Carry-Rippler: enumerate every subset of the mask.
		b := Bitboard(0)
		n := 0
		for {
			occupancy[n] = b
			reference[n] = slidingAttack(deltas, sq, b)
			n++
			b = (b - m.mask) & m.mask
			if b == 0 {
				break
			}
		}

		rng := newXorshift(seeds[r])
		for i := 0; i < n; {
			// Keep drawing candidates until one maps every occupancy bit
			// pattern to a sufficiently well-spread high byte.
			for {
				m.magic = Bitboard(rng.sparseRand())
				if ((m.magic * m.mask) >> 56).PopCount() >= 6 {
					break
				}
			}
			cnt++
			for i = 0; i < n; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.attacks[idx] = reference[i]
				} else if m.attacks[idx] != reference[i] {
					break
				}
			}
		}
	}
}

// size returns the attack-table footprint (2^popcount(mask)) needed for a
// square's mask, used to slice off each square's share of the shared table.
func size(mask Bitboard) int {
	return 1 << uint(mask.PopCount())
}

// slidingAttack computes the sliding attack set along deltas from sq against
// the given occupancy by walking each ray one step at a time. Only used at
// init time to build the magic tables; far too slow for use during search.
func slidingAttack(deltas [4][2]int, sq chesstype.Square, occupied Bitboard) Bitboard {
	var attack Bitboard
	f0, r0 := int(sq.FileOf()), int(sq.RankOf())
	for _, d := range deltas {
		f, r := f0, r0
		for {
			f += d[0]
			r += d[1]
			if f < 0 || f > 7 || r < 0 || r > 7 {
				break
			}
			s := chesstype.MakeSquare(chesstype.File(f), chesstype.Rank(r))
			attack = attack.Set(s)
			if occupied.Has(s) {
				break
			}
		}
	}
	return attack
}

// xorshift64star is Sebastiano Vigna's xorshift64* pseudo-random generator,
// used (with fixed per-rank seeds) to find magic multipliers deterministically.
type xorshift64star struct {
	s uint64
}

func newXorshift(seed uint64) *xorshift64star {
	return &xorshift64star{s: seed}
}

func (x *xorshift64star) next() uint64 {
	x.s ^= x.s >> 12
	x.s ^= x.s << 25
	x.s ^= x.s >> 27
	return x.s * 2685821657736338717
}

// sparseRand produces candidate magics with roughly 1/8th of their bits set,
// which converges much faster than uniformly random 64-bit values.
func (x *xorshift64star) sparseRand() uint64 {
	return x.next() & x.next() & x.next()
}
