package move

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkobel/corvid/internal/chesstype"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := Encode(chesstype.SqE2, chesstype.SqE4, DoublePush, chesstype.NoPiece)
	assert.Equal(t, chesstype.SqE2, m.From())
	assert.Equal(t, chesstype.SqE4, m.To())
	assert.Equal(t, DoublePush, m.Kind())
	assert.False(t, m.IsCapture())
	assert.True(t, m.IsQuiet())
}

func TestPromotionEncoding(t *testing.T) {
	m := Encode(chesstype.SqE7, chesstype.SqE8, Promotion, chesstype.Queen)
	assert.True(t, m.IsPromotion())
	assert.Equal(t, chesstype.Queen, m.Promotion())
	assert.Equal(t, "e7e8q", m.LAN())
}

func TestPromCaptureIsCaptureAndPromotion(t *testing.T) {
	m := Encode(chesstype.SqB7, chesstype.SqA8, PromCapture, chesstype.Rook)
	assert.True(t, m.IsCapture())
	assert.True(t, m.IsPromotion())
	assert.False(t, m.IsQuiet())
}

func TestFlipMirrorsBothSquares(t *testing.T) {
	m := Encode(chesstype.SqE2, chesstype.SqE4, DoublePush, chesstype.NoPiece)
	flipped := m.Flip()
	assert.Equal(t, chesstype.SqE7, flipped.From())
	assert.Equal(t, chesstype.SqE5, flipped.To())
	assert.Equal(t, m, flipped.Flip())
}

func TestLANRoundTripParsing(t *testing.T) {
	from, to, promo, ok := ParseLAN("a7a8q")
	assert.True(t, ok)
	assert.Equal(t, chesstype.SqA7, from)
	assert.Equal(t, chesstype.SqA8, to)
	assert.Equal(t, chesstype.Queen, promo)

	_, _, _, ok = ParseLAN("z9z9")
	assert.False(t, ok)

	_, _, _, ok = ParseLAN("e2e4x")
	assert.False(t, ok)
}

func TestNoneMoveStringIsNullMove(t *testing.T) {
	assert.Equal(t, "0000", None.String())
}
