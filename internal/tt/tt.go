// Package tt implements the fixed-size, direct-mapped, always-replace
// transposition table: one 64-bit packed payload (depth/eval/bound/move)
// plus a second 64-bit field carrying the full Zobrist key for collision
// verification, per spec §4.7.
//
// Grounded on the teacher's internal/transpositiontable/tt.go and
// ttentry.go for the bit-packing approach (a compact struct, shift/mask
// accessors, power-of-two sizing from a megabyte budget) and for reporting
// via golang.org/x/text/message with German thousands grouping; the
// always-replace policy and the packed layout itself follow the
// specification rather than the teacher's depth-preferred, aged-replacement
// scheme.
package tt

import (
	"math"
	"math/bits"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkobel/corvid/internal/move"
)

var out = message.NewPrinter(language.German)

// Bound classifies how an entry's eval relates to the true minimax value.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

const (
	depthShift = 0
	depthMask  = 0x7F << depthShift // 7 bits
	boundShift = 7
	boundMask  = 0x3 << boundShift // 2 bits
	moveShift  = 9
	moveMask   = uint64(0x3FFFF) << moveShift // 18 bits
	evalShift  = 32
)

// entrySize is the in-memory footprint of one slot: the packed payload plus
// the verification key, both uint64.
const entrySize = 16

// MaxSizeMB bounds Resize the same way the teacher bounds its own TT.
const MaxSizeMB = 65536

// Table is a fixed-size, direct-mapped, always-replace transposition table.
// Not safe for concurrent use without external synchronisation, matching
// the teacher's TtTable contract.
type Table struct {
	payload []uint64
	keys    []uint64
	mask    uint64

	Puts   uint64
	Probes uint64
	Hits   uint64
	Misses uint64
}

// New creates a table sized to the largest power-of-two entry count that
// fits within sizeMB megabytes.
func New(sizeMB int) *Table {
	t := &Table{}
	t.Resize(sizeMB)
	return t
}

// Resize reallocates the table, clearing all entries. sizeMB is clamped to
// MaxSizeMB.
func (t *Table) Resize(sizeMB int) {
	if sizeMB > MaxSizeMB {
		sizeMB = MaxSizeMB
	}
	if sizeMB < 1 {
		sizeMB = 1
	}
	bytes := uint64(sizeMB) * 1024 * 1024
	entries := uint64(1) << uint64(math.Floor(math.Log2(float64(bytes/entrySize))))
	if entries == 0 {
		entries = 1
	}
	t.payload = make([]uint64, entries)
	t.keys = make([]uint64, entries)
	t.mask = entries - 1
	t.Puts, t.Probes, t.Hits, t.Misses = 0, 0, 0, 0
}

// Clear zeroes every entry without reallocating.
func (t *Table) Clear() {
	for i := range t.payload {
		t.payload[i] = 0
		t.keys[i] = 0
	}
	t.Puts, t.Probes, t.Hits, t.Misses = 0, 0, 0, 0
}

func (t *Table) index(key uint64) uint64 { return key & t.mask }

// Entry is the unpacked view of one slot's payload, returned by Probe.
type Entry struct {
	Depth int
	Eval  int32
	Bound Bound
	Move  move.Move
}

func packPayload(depth int, eval int32, bound Bound, m move.Move) uint64 {
	return uint64(depth)&depthMask |
		(uint64(bound)<<boundShift)&boundMask |
		(uint64(m)<<moveShift)&moveMask |
		uint64(uint32(eval))<<evalShift
}

func unpackPayload(payload uint64) Entry {
	return Entry{
		Depth: int(payload & depthMask >> depthShift),
		Eval:  int32(uint32(payload >> evalShift)),
		Bound: Bound(payload & boundMask >> boundShift),
		Move:  move.Move((payload & moveMask) >> moveShift),
	}
}

// Probe looks up key and returns (entry, true) on a verified hit, or
// (zero-Entry, false) on a miss or a colliding occupant (spec §4.7:
// "readers ignore a collision").
func (t *Table) Probe(key uint64) (Entry, bool) {
	t.Probes++
	i := t.index(key)
	if t.keys[i] != key {
		t.Misses++
		return Entry{}, false
	}
	t.Hits++
	return unpackPayload(t.payload[i]), true
}

// Store writes an entry, always replacing whatever currently occupies the
// slot (spec §4.7's always-replace policy — no depth-preferred or aging
// logic).
func (t *Table) Store(key uint64, depth int, eval int32, bound Bound, m move.Move) {
	if len(t.payload) == 0 {
		return
	}
	t.Puts++
	i := t.index(key)
	t.keys[i] = key
	t.payload[i] = packPayload(depth, eval, bound, m)
}

// Hashfull reports table occupancy in permille, as UCI's "hashfull" info
// field expects. It counts the non-empty slots among the first 1000 (or
// the whole table when it is smaller) rather than keeping a running
// counter, which would need to detect same-slot overwrites.
func (t *Table) Hashfull() int {
	if len(t.keys) == 0 {
		return 0
	}
	sample := len(t.keys)
	if sample > 1000 {
		sample = 1000
	}
	used := 0
	for i := 0; i < sample; i++ {
		if t.keys[i] != 0 {
			used++
		}
	}
	return used * 1000 / sample
}

// ToTT normalises a mate score for storage: the search scores a mate as
// +/-(Inf - ply), i.e. by its distance from the root, but the TT entry may
// be read back at a different ply, so mate scores are shifted by ply to be
// relative to the storing node before storing (spec §4.7).
func ToTT(score int32, ply int, posInf int32) int32 {
	if score >= posInf-int32(maxPlyWindow) {
		return score + int32(ply)
	}
	if score <= -posInf+int32(maxPlyWindow) {
		return score - int32(ply)
	}
	return score
}

// FromTT reverses ToTT when reading an entry back at the current ply.
func FromTT(score int32, ply int, posInf int32) int32 {
	if score >= posInf-int32(maxPlyWindow) {
		return score - int32(ply)
	}
	if score <= -posInf+int32(maxPlyWindow) {
		return score + int32(ply)
	}
	return score
}

// maxPlyWindow bounds how close to +/-INF a score must be to be treated as
// a mate score worth ply-normalising, matching spec §4.7's "within MAX_PLY
// of +/-INF" condition.
const maxPlyWindow = 128

// String reports table occupancy the way the teacher's TtTable.String does,
// with German thousands-grouped numbers.
func (t *Table) String() string {
	total := len(t.payload)
	bitsUsed := bits.Len64(uint64(total))
	return out.Sprintf("tt: %d entries (2^%d), puts %d probes %d hits %d misses %d",
		total, bitsUsed-1, t.Puts, t.Probes, t.Hits, t.Misses)
}
