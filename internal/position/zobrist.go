package position

import (
	"math/rand"

	"github.com/dkobel/corvid/internal/chesstype"
)

// Zobrist coefficients, one per (side, piece, square), one per castling
// rights value, one per en-passant file, and one flat side-to-move
// coefficient applied iff the position is flipped (spec §3 invariant 5).
// Built once at process start from a fixed seed so hashes are reproducible
// across runs — the exact values don't matter, only that they are stable
// and well distributed.
var (
	zobristPieceSquare [2][chesstype.NumPieceTypes][64]uint64
	zobristCastle      [16]uint64
	zobristEpFile      [8]uint64
	zobristSideToMove  uint64
)

func init() {
	r := rand.New(rand.NewSource(0xC0FFEE))
	for side := 0; side < 2; side++ {
		for p := 0; p < chesstype.NumPieceTypes; p++ {
			for sq := 0; sq < 64; sq++ {
				zobristPieceSquare[side][p][sq] = r.Uint64()
			}
		}
	}
	for c := range zobristCastle {
		zobristCastle[c] = r.Uint64()
	}
	for f := range zobristEpFile {
		zobristEpFile[f] = r.Uint64()
	}
	zobristSideToMove = r.Uint64()
}

func pieceSquareKey(side chesstype.Side, p chesstype.Piece, sq chesstype.Square) uint64 {
	return zobristPieceSquare[side][p][sq]
}
