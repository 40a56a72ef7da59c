// Package perft walks the move tree to a fixed depth counting leaf nodes,
// the classic move-generator correctness check. Grounded on the teacher's
// internal/movegen/perft.go (the Perft struct with its per-category
// counters and German-locale thousands-grouped report), rewritten around
// this engine's value-copy MakeMove instead of the teacher's DoMove/UndoMove
// mutable stack — there's no undo step here, each recursive call just walks
// into a fresh copy of the position.
package perft

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkobel/corvid/internal/chesstype"
	"github.com/dkobel/corvid/internal/move"
	"github.com/dkobel/corvid/internal/movegen"
	"github.com/dkobel/corvid/internal/position"
)

var out = message.NewPrinter(language.German)

// Counters accumulates the per-category totals produced by Run, matching
// the breakdown the teacher's Perft struct reports (nodes, captures,
// en passant, checks, checkmates, castles, promotions).
type Counters struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Checks     uint64
	CheckMates uint64
	Castles    uint64
	Promotions uint64
}

// DivideEntry is one root move's leaf-node contribution, as reported by
// Divide.
type DivideEntry struct {
	Move  move.Move
	Nodes uint64
}

// Run counts leaf nodes reachable from p in depth plies, classifying each
// leaf move into Counters' categories. depth < 1 is clamped to 1.
func Run(p *position.Position, depth int) Counters {
	if depth < 1 {
		depth = 1
	}
	var c Counters
	walk(p, depth, &c)
	return c
}

// Divide runs one ply of move generation and reports the leaf-node count
// contributed by each legal root move, the standard debugging aid for
// isolating a move generator bug to a specific branch.
func Divide(p *position.Position, depth int) []DivideEntry {
	if depth < 1 {
		depth = 1
	}
	var entries []DivideEntry
	var buf [256]move.Move
	moves := movegen.Generate(p, movegen.All, buf[:0])
	for _, m := range moves {
		child := p.MakeMove(m)
		if child.IsChecked(chesstype.Them) {
			continue
		}
		var c Counters
		if depth > 1 {
			walk(&child, depth-1, &c)
		} else {
			c.Nodes = 1
		}
		entries = append(entries, DivideEntry{Move: m, Nodes: c.Nodes})
	}
	return entries
}

func walk(p *position.Position, depth int, c *Counters) {
	var buf [256]move.Move
	moves := movegen.Generate(p, movegen.All, buf[:0])
	for _, m := range moves {
		child := p.MakeMove(m)
		if child.IsChecked(chesstype.Them) {
			continue
		}
		if depth > 1 {
			walk(&child, depth-1, c)
			continue
		}
		c.Nodes++
		if m.IsCapture() {
			c.Captures++
		}
		if m.Kind() == move.EnPassant {
			c.EnPassant++
		}
		if m.Kind() == move.Castle {
			c.Castles++
		}
		if m.IsPromotion() {
			c.Promotions++
		}
		if child.IsChecked(chesstype.Us) {
			c.Checks++
			var buf2 [256]move.Move
			if !hasLegalMove(&child, buf2[:0]) {
				c.CheckMates++
			}
		}
	}
}

func hasLegalMove(p *position.Position, buf []move.Move) bool {
	moves := movegen.Generate(p, movegen.All, buf)
	for _, m := range moves {
		child := p.MakeMove(m)
		if !child.IsChecked(chesstype.Them) {
			return true
		}
	}
	return false
}

// Report runs Run and prints a German-locale, thousands-grouped breakdown
// to stdout, matching the shape (if not the exact numbers) of the teacher's
// StartPerft console report.
func Report(p *position.Position, depth int) Counters {
	out.Printf("Performing perft test for depth %d\n", depth)
	start := time.Now()
	c := Run(p, depth)
	elapsed := time.Since(start)
	nps := uint64(0)
	if elapsed > 0 {
		nps = uint64(float64(c.Nodes) / elapsed.Seconds())
	}
	out.Printf("Time        : %s\n", elapsed)
	out.Printf("NPS         : %d nps\n", nps)
	out.Printf("Nodes       : %d\n", c.Nodes)
	out.Printf("Captures    : %d\n", c.Captures)
	out.Printf("En passant  : %d\n", c.EnPassant)
	out.Printf("Checks      : %d\n", c.Checks)
	out.Printf("Checkmates  : %d\n", c.CheckMates)
	out.Printf("Castles     : %d\n", c.Castles)
	out.Printf("Promotions  : %d\n", c.Promotions)
	return c
}
