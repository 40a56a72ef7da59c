package perft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkobel/corvid/internal/position"
)

// Known-good node counts from https://www.chessprogramming.org/Perft_Results.
func TestStartPositionPerft(t *testing.T) {
	expected := []uint64{1, 20, 400, 8902, 197281}
	p, err := position.FromFEN(position.StartFEN)
	require.NoError(t, err)

	for depth := 1; depth < len(expected); depth++ {
		c := Run(p, depth)
		assert.Equal(t, expected[depth], c.Nodes, "depth %d", depth)
	}
}

func TestKiwipetePerft(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	expected := map[int]uint64{1: 48, 2: 2039, 3: 97862}
	p, err := position.FromFEN(fen)
	require.NoError(t, err)

	for depth, want := range expected {
		c := Run(p, depth)
		assert.Equal(t, want, c.Nodes, "depth %d", depth)
	}
}

func TestStartPositionDepthOneCategoryBreakdown(t *testing.T) {
	p, err := position.FromFEN(position.StartFEN)
	require.NoError(t, err)
	c := Run(p, 1)
	assert.Equal(t, uint64(20), c.Nodes)
	assert.Zero(t, c.Captures)
	assert.Zero(t, c.Checks)
}

func TestEnPassantCaptureIsCountedOnceNotTwice(t *testing.T) {
	fen := "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1"
	p, err := position.FromFEN(fen)
	require.NoError(t, err)

	c := Run(p, 1)
	assert.Equal(t, uint64(1), c.EnPassant)
	assert.Equal(t, uint64(1), c.Captures)
}

func TestDivideSumsToTotalNodes(t *testing.T) {
	p, err := position.FromFEN(position.StartFEN)
	require.NoError(t, err)
	entries := Divide(p, 2)
	var sum uint64
	for _, e := range entries {
		sum += e.Nodes
	}
	assert.Equal(t, uint64(400), sum)
	assert.Len(t, entries, 20)
}
