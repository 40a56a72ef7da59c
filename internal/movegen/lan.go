package movegen

import (
	"github.com/dkobel/corvid/internal/chesstype"
	"github.com/dkobel/corvid/internal/move"
	"github.com/dkobel/corvid/internal/position"
)

// LegalFromLAN parses lan (UCI's absolute-board "e2e4"/"e7e8q" syntax) and
// matches it against p's legal moves, converting to p's side-relative frame
// first when p is flipped. Grounded on the teacher's GetMoveFromUci
// (internal/uci/uci.go), which does the same parse-then-match against
// generated moves rather than trusting the UCI input's legality.
func LegalFromLAN(p *position.Position, lan string) (move.Move, bool) {
	from, to, promo, ok := move.ParseLAN(lan)
	if !ok {
		return move.None, false
	}
	if p.Flipped() {
		from = from ^ 56
		to = to ^ 56
	}

	var buf [256]move.Move
	for _, m := range Generate(p, All, buf[:0]) {
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() && m.Promotion() != promo {
			continue
		}
		child := p.MakeMove(m)
		if child.IsChecked(chesstype.Them) {
			continue
		}
		return m, true
	}
	return move.None, false
}
