package search

import (
	"github.com/dkobel/corvid/internal/chesstype"
	"github.com/dkobel/corvid/internal/evaluator"
	"github.com/dkobel/corvid/internal/move"
	"github.com/dkobel/corvid/internal/position"
)

// Move ordering scores, descending priority, per spec §4.8.
const (
	scoreHashMove    = 20000
	scoreCaptureBase = 9000
	scoreKiller0     = 7000
	scoreKiller1     = 6000
)

// moveScore assigns m its ordering priority. pos is the position m is about
// to be played from (captures/MVV-LVA need to see what's on the target
// square before the move is made).
func moveScore(pos *position.Position, m, hashMove move.Move, killers [2]move.Move) int32 {
	if hashMove != move.None && m == hashMove {
		return scoreHashMove
	}
	switch m.Kind() {
	case move.Capture:
		attacker := int32(pos.GetPieceOn(m.From()))
		victim := evaluator.PieceValue(pos.GetPieceOn(m.To()))
		return scoreCaptureBase + victim - attacker
	case move.PromCapture:
		attacker := int32(pos.GetPieceOn(m.From()))
		victim := evaluator.PieceValue(pos.GetPieceOn(m.To()))
		return scoreCaptureBase + victim - attacker + evaluator.PieceValue(m.Promotion())
	case move.EnPassant:
		return scoreCaptureBase + evaluator.PieceValue(chesstype.Pawn) - int32(chesstype.Pawn) + 10
	default:
		if m == killers[0] {
			return scoreKiller0
		}
		if m == killers[1] {
			return scoreKiller1
		}
		return 0
	}
}

// selectNext performs one step of a lazy selection sort: finds the
// highest-scoring move at or after from and swaps it into place. O(n^2)
// overall, but with a tiny constant — the spec's explicit tradeoff, since
// good moves almost always come first and beta cutoffs keep the effective
// depth low (spec §4.8).
func selectNext(moves []move.Move, scores []int32, from int) {
	best := from
	for i := from + 1; i < len(moves); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	moves[from], moves[best] = moves[best], moves[from]
	scores[from], scores[best] = scores[best], scores[from]
}
