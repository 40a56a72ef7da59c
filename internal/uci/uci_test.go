package uci

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkobel/corvid/internal/chesstype"
)

func TestUciCommandAnnouncesIdentityAndUciok(t *testing.T) {
	h := NewHandler()
	result := h.Command("uci")
	assert.Contains(t, result, "id name corvid")
	assert.Contains(t, result, "uciok")
}

func TestIsReadyRespondsReadyOk(t *testing.T) {
	h := NewHandler()
	assert.Contains(t, h.Command("isready"), "readyok")
}

func TestLoopStopsOnQuit(t *testing.T) {
	h := NewHandler()
	h.InIo = bufio.NewScanner(strings.NewReader("uci\nquit\n"))
	buf := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buf)
	h.Loop()
	assert.Contains(t, buf.String(), "uciok")
}

func TestPositionCommandWithFenAndMoves(t *testing.T) {
	h := NewHandler()
	h.Command("position fen 7k/R7/8/8/8/8/8/1R2K3 w - - 0 1 moves b1b8")

	assert.True(t, h.pos.IsChecked(chesstype.Us))
}

func TestGoCommandEventuallyPrintsBestmove(t *testing.T) {
	h := NewHandler()
	buf := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buf)

	h.Command("position startpos")
	h.Command("go depth 3")

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "bestmove")
	}, 5*time.Second, 10*time.Millisecond)
}

func TestStopAllowsGoCommandToReturnPromptly(t *testing.T) {
	h := NewHandler()
	buf := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buf)

	h.Command("position startpos")
	h.Command("go infinite")
	time.Sleep(20 * time.Millisecond)
	h.Command("stop")

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "bestmove")
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSetOptionHashResizesTranspositionTable(t *testing.T) {
	h := NewHandler()
	h.Command("setoption name Hash value 32")
	assert.NotNil(t, h.search)
	// 32 MB of 16-byte entries is 2^21 slots.
	assert.Contains(t, h.search.String(), "(2^21)")
}

func TestUnknownCommandDoesNotPanic(t *testing.T) {
	h := NewHandler()
	assert.NotPanics(t, func() {
		h.Command("notacommand with args")
	})
}

func TestParseLimitsRejectsTruncatedTimeTokensWithoutPanicking(t *testing.T) {
	for _, tokens := range [][]string{
		{"go", "wtime"},
		{"go", "btime"},
		{"go", "winc"},
		{"go", "binc"},
		{"go", "movestogo"},
	} {
		var ok bool
		assert.NotPanics(t, func() {
			_, ok = parseLimits(tokens)
		})
		assert.False(t, ok)
	}
}

func TestGoCommandWithTruncatedTimeTokenDoesNotPanic(t *testing.T) {
	h := NewHandler()
	assert.NotPanics(t, func() {
		h.Command("go wtime")
	})
}
