package pool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/pool/strategy"
)

// assertInvariants checks every structural invariant of a live pool:
//
//   - hole set and partition set are each sorted ascending by start
//   - holes are never adjacent (always coalesced)
//   - holes ∪ partitions exactly tile [0, words): no gap, no overlap
//   - the bitmap is the characteristic function of the partition set,
//     with zero padding bits
//
// Call it after every mutation in tests.
func assertInvariants(t *testing.T, m *Manager) {
	t.Helper()

	require.True(t, m.initialized(), "assertInvariants needs an initialized pool")

	for i := 1; i < len(m.holes); i++ {
		require.Less(t, m.holes[i-1].Start, m.holes[i].Start, "hole set out of order")
		require.Less(t, m.holes[i-1].End(), m.holes[i].Start,
			"adjacent or overlapping holes at %d", i)
	}
	for i := 1; i < len(m.partitions); i++ {
		require.Less(t, m.partitions[i-1].Start, m.partitions[i].Start, "partition set out of order")
		require.LessOrEqual(t, m.partitions[i-1].End(), m.partitions[i].Start,
			"overlapping partitions at %d", i)
	}

	// Merge both sets and require an exact tiling of [0, words).
	tiles := make([]format.Extent, 0, len(m.holes)+len(m.partitions))
	tiles = append(tiles, m.holes...)
	for _, p := range m.partitions {
		tiles = insertSorted(tiles, p)
	}
	next := 0
	for _, e := range tiles {
		require.Equal(t, next, e.Start, "gap or overlap before extent %+v", e)
		require.GreaterOrEqual(t, e.Length, 1, "zero-length extent %+v", e)
		next = e.End()
	}
	require.Equal(t, m.words, next, "extents do not cover the pool")

	// Bitmap fidelity, including padding bits.
	used := make([]bool, len(m.bitmap)*8)
	for _, p := range m.partitions {
		for i := p.Start; i < p.End(); i++ {
			used[i] = true
		}
	}
	for i := range used {
		require.Equal(t, used[i], format.Bit(m.bitmap, i), "bitmap bit %d", i)
	}
}

// newTestPool builds and initializes a best-fit pool for tests.
func newTestPool(t *testing.T, wordSize, words int) *Manager {
	t.Helper()

	m := New(wordSize, strategy.BestFit)
	require.NoError(t, m.Initialize(words))
	t.Cleanup(m.Shutdown)
	return m
}

// holeSet decodes the pool's exported hole list for comparisons.
func holeSet(m *Manager) []format.Extent {
	return format.DecodeHoleList(m.HoleList())
}
