package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkobel/corvid/internal/position"
)

func TestFindsMateInOneWithLadderMate(t *testing.T) {
	p, err := position.FromFEN("7k/R7/8/8/8/8/8/1R2K3 w - - 0 1")
	require.NoError(t, err)

	s := New(1)
	result := s.StartSearch(p, Limits{Depth: 4}, nil)

	assert.Equal(t, "b1b8", result.BestMove.String())
	assert.Equal(t, 1, result.Info.Mate)
	assert.Equal(t, Inf-1, result.Info.Score)
}

func TestStartSearchReturnsMoveFromCurrentPosition(t *testing.T) {
	p, err := position.FromFEN(position.StartFEN)
	require.NoError(t, err)

	s := New(1)
	result := s.StartSearch(p, Limits{Depth: 3}, nil)

	assert.NotZero(t, result.BestMove)
}

func TestOnInfoIsCalledOncePerCompletedDepth(t *testing.T) {
	p, err := position.FromFEN(position.StartFEN)
	require.NoError(t, err)

	s := New(1)
	var depths []int
	s.StartSearch(p, Limits{Depth: 3}, func(info Info) {
		depths = append(depths, info.Depth)
	})

	assert.Equal(t, []int{1, 2, 3}, depths)
}

func TestStopCancelsAnInFlightSearch(t *testing.T) {
	p, err := position.FromFEN(position.StartFEN)
	require.NoError(t, err)

	s := New(1)
	done := make(chan Result, 1)
	go func() {
		done <- s.StartSearch(p, Limits{Depth: 64}, nil)
	}()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	select {
	case result := <-done:
		assert.NotZero(t, result.BestMove)
	case <-time.After(5 * time.Second):
		t.Fatal("search did not return after Stop")
	}
}

func TestComputeDeadlineHalvesMoveTime(t *testing.T) {
	s := New(1)
	now := time.Unix(1000, 0)
	deadline := s.computeDeadline(now, Limits{MoveTime: 10 * time.Second}, false)
	assert.Equal(t, 5*time.Second, deadline.Sub(now))
}

func TestComputeDeadlineUsesBlackClockWhenWeAreBlack(t *testing.T) {
	s := New(1)
	now := time.Unix(1000, 0)
	limits := Limits{
		WhiteTime: 60 * time.Second,
		BlackTime: 30 * time.Second,
		WhiteInc:  2 * time.Second,
		BlackInc:  1 * time.Second,
		MovesToGo: 10,
	}
	deadline := s.computeDeadline(now, limits, true)
	want := (limits.BlackInc*9 + limits.BlackTime) / 10
	assert.Equal(t, want, deadline.Sub(now))
}

func TestComputeDeadlineDefaultFormulaWithoutMovesToGo(t *testing.T) {
	s := New(1)
	now := time.Unix(1000, 0)
	limits := Limits{WhiteTime: 60 * time.Second, WhiteInc: 1 * time.Second}
	deadline := s.computeDeadline(now, limits, false)
	want := (limits.WhiteInc*39 + limits.WhiteTime) / 40
	assert.Equal(t, want, deadline.Sub(now))
}

func TestIsThreefoldDetectsRepeatedPosition(t *testing.T) {
	p, err := position.FromFEN(position.StartFEN)
	require.NoError(t, err)
	p.History()

	assert.False(t, isThreefold(p))

	// Shuffle both knights out and back twice: the start position is then
	// in the history three times.
	for i := 0; i < 2; i++ {
		for _, lan := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
			next := p.MakeMove(findMove(t, p, lan))
			p = &next
		}
	}
	assert.True(t, isThreefold(p))
}

func TestIsFiftyMovesAtThreshold(t *testing.T) {
	p, err := position.FromFEN("4k3/8/8/8/8/8/8/4K3 w - - 99 50")
	require.NoError(t, err)
	assert.False(t, isFiftyMoves(p))

	p, err = position.FromFEN("4k3/8/8/8/8/8/8/4K3 w - - 100 50")
	require.NoError(t, err)
	assert.True(t, isFiftyMoves(p))
}

func TestNewGameClearsTranspositionTable(t *testing.T) {
	p, err := position.FromFEN(position.StartFEN)
	require.NoError(t, err)

	s := New(1)
	s.StartSearch(p, Limits{Depth: 3}, nil)
	s.NewGame()

	assert.Equal(t, 0, s.tt.Hashfull())
}
