package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dkobel/corvid/internal/chesstype"
)

// FromFEN parses a standard six-field FEN string into a Position.
//
// The board field is always parsed as if White were Us: White pieces'
// natural forward direction (increasing rank) already matches the
// side-relative "Us moves up" convention, so no mirroring is needed when
// White is to move. When Black is to move, the fully-parsed White-as-Us
// position is flipped once via FlipPosition, which mirrors the board,
// rotates castling rights and the en-passant square into the Us/Them frame,
// and sets flipped — exactly the "w/b chooses whether to flip after
// parsing" behaviour described by the specification.
//
// The board field is tolerant of unknown characters (skipped), digits
// (skip that many files), and repeated rank separators ('/' or '//').
// Fields past the board/side are optional and default to no castling
// rights, no en-passant target, halfmove clock 0, fullmove number 1.
func FromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, fmt.Errorf("position: empty FEN")
	}

	p := &Position{epSquare: chesstype.InvalidSquare}

	if err := parseBoard(p, fields[0]); err != nil {
		return nil, err
	}

	side := "w"
	if len(fields) > 1 {
		side = fields[1]
	}

	if len(fields) > 2 {
		parseCastling(p, fields[2])
	}
	if len(fields) > 3 && fields[3] != "-" {
		sq, ok := chesstype.ParseSquare(fields[3])
		if !ok {
			return nil, fmt.Errorf("position: invalid en-passant field %q", fields[3])
		}
		p.epSquare = sq
	}
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil && n >= 0 {
			p.halfmoves = n
		}
	}
	p.fullmove = 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n >= 1 {
			p.fullmove = n
		}
	}

	p.hashKey = p.computeHashFromScratch()

	if side == "b" || side == "B" {
		p.FlipPosition()
	}

	p.history = []uint64{p.hashKey}
	return p, nil
}

func pieceFromLetter(l byte) (chesstype.Piece, bool) {
	switch l {
	case 'P', 'p':
		return chesstype.Pawn, true
	case 'N', 'n':
		return chesstype.Knight, true
	case 'B', 'b':
		return chesstype.Bishop, true
	case 'R', 'r':
		return chesstype.Rook, true
	case 'Q', 'q':
		return chesstype.Queen, true
	case 'K', 'k':
		return chesstype.King, true
	}
	return chesstype.NoPiece, false
}

func isUpper(l byte) bool { return l >= 'A' && l <= 'Z' }

// parseBoard fills p's piece bitboards from the FEN board field, treating
// White as Us (see FromFEN doc comment).
func parseBoard(p *Position, field string) error {
	rank, file := 7, 0
	for i := 0; i < len(field); i++ {
		ch := field[i]
		switch {
		case ch == '/':
			// A separator right after another one (file still 0) is an
			// extra separator and does not step down another rank.
			if file != 0 {
				rank--
				file = 0
			}
		case ch >= '1' && ch <= '8':
			file += int(ch - '0')
		default:
			pc, ok := pieceFromLetter(ch)
			if !ok {
				// Unknown character in the board field: ignore it, per spec §6.
				continue
			}
			if rank < 0 || rank > 7 || file < 0 || file > 7 {
				// Tolerate malformed separators that would otherwise run the
				// cursor off the board; just drop the stray piece.
				continue
			}
			side := chesstype.Them
			if isUpper(ch) {
				side = chesstype.Us
			}
			sq := chesstype.MakeSquare(chesstype.File(file), chesstype.Rank(rank))
			p.putPiece(sq, pc, side)
			file++
		}
	}
	return nil
}

func parseCastling(p *Position, field string) {
	if field == "-" {
		return
	}
	var c chesstype.CastlingRights
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case 'K':
			c |= chesstype.UsShort
		case 'Q':
			c |= chesstype.UsLong
		case 'k':
			c |= chesstype.ThemShort
		case 'q':
			c |= chesstype.ThemLong
		}
	}
	p.castle = c
}

// FEN renders the position back into standard FEN notation, always in
// absolute White/Black terms regardless of the side-relative internal
// frame.
func (p *Position) FEN() string {
	q := p.Clone()
	sideChar := byte('w')
	if q.flipped {
		q.FlipPosition()
		sideChar = 'b'
	}

	var sb strings.Builder
	for r := chesstype.Rank8; r >= chesstype.Rank1; r-- {
		empty := 0
		for f := chesstype.FileA; f <= chesstype.FileH; f++ {
			sq := chesstype.MakeSquare(f, r)
			pc := q.GetPieceOn(sq)
			if pc == chesstype.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := pc.String()
			if q.SideOn(sq) == chesstype.Them {
				letter = strings.ToLower(letter)
			}
			sb.WriteString(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > chesstype.Rank1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteByte(sideChar)
	sb.WriteByte(' ')

	castle := ""
	if q.castle&chesstype.UsShort != 0 {
		castle += "K"
	}
	if q.castle&chesstype.UsLong != 0 {
		castle += "Q"
	}
	if q.castle&chesstype.ThemShort != 0 {
		castle += "k"
	}
	if q.castle&chesstype.ThemLong != 0 {
		castle += "q"
	}
	if castle == "" {
		castle = "-"
	}
	sb.WriteString(castle)

	sb.WriteByte(' ')
	sb.WriteString(q.epSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(q.halfmoves))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(q.fullmove))
	return sb.String()
}
