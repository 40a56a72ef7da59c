package position

import (
	"github.com/dkobel/corvid/internal/chesstype"
	"github.com/dkobel/corvid/internal/move"
)

// castlePreserveMask[sq] is ANDed into the castling rights mask whenever a
// move's from or to square is sq, per spec §4.5 step 2: moving from or
// capturing on a rook- or king-home square permanently disables the
// corresponding right. All squares other than the six home squares leave
// every right untouched.
var castlePreserveMask [64]chesstype.CastlingRights

func init() {
	for sq := range castlePreserveMask {
		castlePreserveMask[sq] = chesstype.AnyCastling
	}
	castlePreserveMask[chesstype.SqE1] = chesstype.AnyCastling &^ (chesstype.UsShort | chesstype.UsLong)
	castlePreserveMask[chesstype.SqA1] = chesstype.AnyCastling &^ chesstype.UsLong
	castlePreserveMask[chesstype.SqH1] = chesstype.AnyCastling &^ chesstype.UsShort
	castlePreserveMask[chesstype.SqE8] = chesstype.AnyCastling &^ (chesstype.ThemShort | chesstype.ThemLong)
	castlePreserveMask[chesstype.SqA8] = chesstype.AnyCastling &^ chesstype.ThemLong
	castlePreserveMask[chesstype.SqH8] = chesstype.AnyCastling &^ chesstype.ThemShort
}

// MakeMove applies m to p and returns the resulting position. p is passed
// and received by value, so the caller's Position is never mutated — the
// method body operates on its own local copy, matching spec §4.5's "produce
// the updated Position by value" contract. history gets a freshly allocated
// backing array (see Clone) so sibling search branches never alias it.
func (p Position) MakeMove(m move.Move) Position {
	from, to := m.From(), m.To()

	p.setEpSquare(chesstype.InvalidSquare)
	p.setCastlingRights(p.castle & castlePreserveMask[from] & castlePreserveMask[to])

	var movedPiece chesstype.Piece
	isCapture := m.IsCapture()

	switch m.Kind() {
	case move.Normal:
		movedPiece = p.GetPieceOn(from)
		p.movePiece(from, to, movedPiece, chesstype.Us)

	case move.Capture:
		movedPiece = p.GetPieceOn(from)
		captured := p.GetPieceOn(to)
		p.removePiece(to, captured, chesstype.Them)
		p.movePiece(from, to, movedPiece, chesstype.Us)

	case move.DoublePush:
		movedPiece = chesstype.Pawn
		p.movePiece(from, to, chesstype.Pawn, chesstype.Us)
		p.setEpSquare(from + 8)

	case move.EnPassant:
		movedPiece = chesstype.Pawn
		p.movePiece(from, to, chesstype.Pawn, chesstype.Us)
		p.removePiece(to-8, chesstype.Pawn, chesstype.Them)

	case move.Castle:
		movedPiece = chesstype.King
		p.movePiece(from, to, chesstype.King, chesstype.Us)
		switch to {
		case chesstype.SqG1:
			p.movePiece(chesstype.SqH1, chesstype.SqF1, chesstype.Rook, chesstype.Us)
		case chesstype.SqC1:
			p.movePiece(chesstype.SqA1, chesstype.SqD1, chesstype.Rook, chesstype.Us)
		}

	case move.Promotion:
		movedPiece = chesstype.Pawn
		p.removePiece(from, chesstype.Pawn, chesstype.Us)
		p.putPiece(to, m.Promotion(), chesstype.Us)

	case move.PromCapture:
		movedPiece = chesstype.Pawn
		captured := p.GetPieceOn(to)
		p.removePiece(to, captured, chesstype.Them)
		p.removePiece(from, chesstype.Pawn, chesstype.Us)
		p.putPiece(to, m.Promotion(), chesstype.Us)
	}

	if movedPiece == chesstype.Pawn || isCapture {
		p.halfmoves = 0
	} else {
		p.halfmoves++
	}
	// The fullmove counter increments after Black's move. flipped (still
	// reflecting the pre-move orientation here, before FlipPosition below)
	// is true exactly when Us is Black in this call.
	if p.flipped {
		p.fullmove++
	}

	p.FlipPosition()

	newHistory := make([]uint64, len(p.history)+1)
	copy(newHistory, p.history)
	newHistory[len(p.history)] = p.hashKey
	p.history = newHistory

	return p
}
