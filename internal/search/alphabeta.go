package search

import (
	"github.com/dkobel/corvid/internal/chesstype"
	"github.com/dkobel/corvid/internal/evaluator"
	"github.com/dkobel/corvid/internal/move"
	"github.com/dkobel/corvid/internal/movegen"
	"github.com/dkobel/corvid/internal/position"
	"github.com/dkobel/corvid/internal/tt"
)

// search implements spec §4.8's core recursion: negamax alpha-beta with a
// check extension, TT probing/storing, and killer/MVV-LVA move ordering.
// pv receives the principal variation rooted at this node, deepest move
// last removed (prepended as the recursion unwinds).
func (s *Search) search(pos *position.Position, depth, ply int, alpha, beta int32, pv *[]move.Move) int32 {
	if ply > 0 && (isThreefold(pos) || isFiftyMoves(pos)) {
		return 0
	}

	if pos.IsChecked(chesstype.Us) {
		depth++
	}

	if depth <= 0 {
		return s.quiesce(pos, alpha, beta)
	}
	if ply >= s.MaxPly || ply >= plyCap {
		return evaluator.Evaluate(pos)
	}

	s.nodes++
	if s.checkTime() {
		return 0
	}

	isPVNode := ply == 0
	var hashMove move.Move
	key := pos.ZobristKey()
	if s.UseTT {
		if entry, ok := s.tt.Probe(key); ok {
			hashMove = entry.Move
			if !isPVNode && entry.Depth >= depth {
				eval := tt.FromTT(entry.Eval, ply, Inf)
				switch entry.Bound {
				case tt.BoundExact:
					*pv = []move.Move{hashMove}
					return eval
				case tt.BoundLower:
					if eval >= beta {
						*pv = []move.Move{hashMove}
						return eval
					}
				case tt.BoundUpper:
					if eval <= alpha {
						*pv = []move.Move{hashMove}
						return eval
					}
				}
			}
		}
	}

	moves := movegen.Generate(pos, movegen.All, s.moveBuf[ply][:0])
	scores := make([]int32, len(moves))
	for i, m := range moves {
		scores[i] = moveScore(pos, m, hashMove, s.killers[ply])
	}

	legalMoves := 0
	bestValue := -Inf
	var bestMove move.Move
	origAlpha := alpha

	for i := range moves {
		selectNext(moves, scores, i)
		m := moves[i]

		child := pos.MakeMove(m)
		if child.IsChecked(chesstype.Them) {
			continue
		}
		legalMoves++

		var childPV []move.Move
		value := -s.search(&child, depth-1, ply+1, -beta, -alpha, &childPV)

		if value > bestValue {
			bestValue = value
			bestMove = m
			*pv = append([]move.Move{m}, childPV...)
		}

		if value >= beta {
			if s.UseKillers && m.IsQuiet() && m != s.killers[ply][0] {
				s.killers[ply][1] = s.killers[ply][0]
				s.killers[ply][0] = m
			}
			if s.UseTT {
				s.tt.Store(key, depth, tt.ToTT(beta, ply, Inf), tt.BoundLower, m)
			}
			return beta
		}
		if value > alpha {
			alpha = value
		}
	}

	if legalMoves == 0 {
		if pos.IsChecked(chesstype.Us) {
			return -Inf + int32(ply)
		}
		return 0
	}

	if s.UseTT {
		bound := tt.BoundUpper
		if alpha > origAlpha {
			bound = tt.BoundExact
		}
		s.tt.Store(key, depth, tt.ToTT(bestValue, ply, Inf), bound, bestMove)
	}

	return bestValue
}

// quiesce is the capture-only leaf search: stand-pat beta cutoff, then
// captures only, no extensions, no TT access, no killer updates (spec
// §4.8's Quiescence).
func (s *Search) quiesce(pos *position.Position, alpha, beta int32) int32 {
	s.nodes++
	if s.checkTime() {
		return 0
	}

	standPat := evaluator.Evaluate(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var buf [256]move.Move
	moves := movegen.Generate(pos, movegen.CapturesOnly, buf[:0])
	scores := make([]int32, len(moves))
	for i, m := range moves {
		scores[i] = moveScore(pos, m, move.None, [2]move.Move{})
	}

	for i := range moves {
		selectNext(moves, scores, i)
		m := moves[i]

		child := pos.MakeMove(m)
		if child.IsChecked(chesstype.Them) {
			continue
		}

		value := -s.quiesce(&child, -beta, -alpha)
		if value >= beta {
			return beta
		}
		if value > alpha {
			alpha = value
		}
	}

	return alpha
}
