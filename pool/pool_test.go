package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/pool/strategy"
)

func TestInitialize_SeedsSingleHole(t *testing.T) {
	m := newTestPool(t, 8, 100)

	assert.Equal(t, []format.Extent{{Start: 0, Length: 100}}, holeSet(m))
	assert.Equal(t, 800, m.MemoryLimit())
	assert.Equal(t, 8, m.WordSize())
	assert.Len(t, m.MemoryStart(), 800)
	assertInvariants(t, m)
}

func TestInitialize_ClampsToMaxWords(t *testing.T) {
	m := New(1, strategy.BestFit)
	require.NoError(t, m.Initialize(1 << 20))
	defer m.Shutdown()

	assert.Equal(t, format.MaxWords, m.MemoryLimit())
	assert.Equal(t, []format.Extent{{Start: 0, Length: format.MaxWords}}, holeSet(m))
}

// Re-initializing discards all prior state, including live partitions.
func TestInitialize_DiscardsPriorState(t *testing.T) {
	m := newTestPool(t, 4, 10)
	_, err := m.Allocate(16)
	require.NoError(t, err)

	require.NoError(t, m.Initialize(20))
	assert.Equal(t, []format.Extent{{Start: 0, Length: 20}}, holeSet(m))
	assert.Zero(t, m.Stats().Partitions)
	assertInvariants(t, m)
}

// A zero-word pool holds no store and is indistinguishable from an
// uninitialized one; negative sizes clamp to zero.
func TestInitialize_ZeroAndNegative(t *testing.T) {
	for _, words := range []int{0, -5} {
		m := New(4, strategy.BestFit)
		require.NoError(t, m.Initialize(words))

		assert.Nil(t, m.HoleList())
		assert.Nil(t, m.BitmapBytes())
		assert.Zero(t, m.MemoryLimit())

		_, err := m.Allocate(4)
		assert.ErrorIs(t, err, ErrNotInitialized)
	}
}

// Exports on an uninitialized pool return nil, never fault; MemoryLimit
// returns zero while MemoryStart has no defined value (nil here).
func TestUninitialized_Accessors(t *testing.T) {
	m := New(2, strategy.BestFit)

	assert.Nil(t, m.HoleList())
	assert.Nil(t, m.BitmapBytes())
	assert.Nil(t, m.MemoryStart())
	assert.Zero(t, m.MemoryLimit())
	assert.Equal(t, 2, m.WordSize())

	_, err := m.Allocate(1)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestShutdown_Idempotent(t *testing.T) {
	m := New(4, strategy.BestFit)
	m.Shutdown() // never initialized

	require.NoError(t, m.Initialize(10))
	m.Shutdown()
	m.Shutdown()

	assert.Nil(t, m.HoleList())
	assert.Zero(t, m.MemoryLimit())
}

// Scenario: 10-word pool, allocate 4 words then 2 words under best-fit.
func TestAllocate_CarvesFromLowEnd(t *testing.T) {
	m := newTestPool(t, 8, 10)

	a, err := m.Allocate(4 * 8)
	require.NoError(t, err)
	require.Len(t, a, 32)
	assert.Equal(t, []format.Extent{{Start: 4, Length: 6}}, holeSet(m))
	assertInvariants(t, m)

	b, err := m.Allocate(2 * 8)
	require.NoError(t, err)
	require.Len(t, b, 16)
	assert.Equal(t, []format.Extent{{Start: 6, Length: 4}}, holeSet(m))
	assertInvariants(t, m)

	// Blocks are distinct word-aligned sub-slices of the store.
	assert.Equal(t, &m.mem[0], &a[0])
	assert.Equal(t, &m.mem[32], &b[0])
}

// Partial-word requests round up to whole words.
func TestAllocate_RoundsUpToWords(t *testing.T) {
	m := newTestPool(t, 8, 10)

	blk, err := m.Allocate(9) // 2 words
	require.NoError(t, err)
	assert.Len(t, blk, 16)
	assert.Equal(t, []format.Extent{{Start: 2, Length: 8}}, holeSet(m))
	assertInvariants(t, m)
}

func TestAllocate_InvalidSizes(t *testing.T) {
	m := newTestPool(t, 4, 10)

	for _, size := range []int{0, -1, 41} {
		_, err := m.Allocate(size)
		assert.ErrorIs(t, err, ErrInvalidSize, "size %d", size)
	}

	// Whole-pool allocation is legal.
	blk, err := m.Allocate(40)
	require.NoError(t, err)
	assert.Len(t, blk, 40)
	assert.Empty(t, holeSet(m))
	assertInvariants(t, m)
}

func TestAllocate_NoFittingHole(t *testing.T) {
	m := newTestPool(t, 4, 10)

	// Two 4-word partitions, then free the first: holes (0,4) and (8,2).
	a, err := m.Allocate(16)
	require.NoError(t, err)
	b, err := m.Allocate(16)
	require.NoError(t, err)
	_ = b
	m.Free(a)

	// A 5-word request fits nowhere, and the failed attempt must not
	// mutate anything.
	before := holeSet(m)
	_, err = m.Allocate(20)
	assert.ErrorIs(t, err, ErrNoFittingHole)
	assert.Equal(t, before, holeSet(m))
	assertInvariants(t, m)
}

// A strategy breaking its contract surfaces as an error, not corruption.
func TestAllocate_BadStrategyOffset(t *testing.T) {
	m := newTestPool(t, 4, 10)
	m.SetStrategy(func(int, []byte) int { return 3 }) // not a hole start

	before := holeSet(m)
	_, err := m.Allocate(4)
	assert.ErrorIs(t, err, ErrBadStrategyOffset)
	assert.Equal(t, before, holeSet(m))
	assertInvariants(t, m)
}

// SetStrategy swaps placement behavior between calls.
func TestSetStrategy_SwapsAtRuntime(t *testing.T) {
	m := newTestPool(t, 4, 36)

	// Build holes (0,10), (20,2), (30,6) around partitions at 10 and 22.
	carve := func(words int) []byte {
		t.Helper()
		blk, err := m.Allocate(words * 4)
		require.NoError(t, err)
		return blk
	}
	a := carve(10) // (0,10)
	keep1 := carve(10)
	b := carve(2) // (20,2)
	keep2 := carve(8)
	_ = keep1
	_ = keep2
	m.Free(a)
	m.Free(b)
	require.Equal(t,
		[]format.Extent{{Start: 0, Length: 10}, {Start: 20, Length: 2}, {Start: 30, Length: 6}},
		holeSet(m))

	// Best-fit: 5 words goes to the 6-word hole at 30.
	blk, err := m.Allocate(5 * 4)
	require.NoError(t, err)
	assert.Equal(t, &m.mem[30*4], &blk[0])
	m.Free(blk)

	// Worst-fit: the same request goes to the 10-word hole at 0.
	m.SetStrategy(strategy.WorstFit)
	blk, err = m.Allocate(5 * 4)
	require.NoError(t, err)
	assert.Equal(t, &m.mem[0], &blk[0])
	assertInvariants(t, m)
}

// Exported snapshots are owned copies, decoupled from later mutations.
func TestExports_AreOwnedCopies(t *testing.T) {
	m := newTestPool(t, 4, 16)

	list := m.HoleList()
	bitmap := m.BitmapBytes()

	_, err := m.Allocate(8)
	require.NoError(t, err)

	assert.Equal(t, []format.Extent{{Start: 0, Length: 16}}, format.DecodeHoleList(list))
	assert.Equal(t, []byte{0x00, 0x00}, bitmap[format.BitmapPrefixSize:])
}

func TestBitmapBytes_Layout(t *testing.T) {
	m := newTestPool(t, 4, 10)

	blk, err := m.Allocate(4 * 4)
	require.NoError(t, err)

	enc := m.BitmapBytes()
	require.Len(t, enc, format.BitmapPrefixSize+2) // 10 words pad to 2 bytes
	assert.Equal(t, uint16(2), format.ReadU16(enc, 0))
	// Words 0-3 used: low nibble of the first byte, padding bits zero.
	assert.Equal(t, []byte{0x0F, 0x00}, enc[format.BitmapPrefixSize:])

	m.Free(blk)
	enc = m.BitmapBytes()
	assert.Equal(t, []byte{0x00, 0x00}, enc[format.BitmapPrefixSize:])
}

func TestStats_Counters(t *testing.T) {
	m := newTestPool(t, 4, 10)

	blk, err := m.Allocate(12) // 3 words
	require.NoError(t, err)
	_, err = m.Allocate(400) // invalid, not counted as strategy fail
	require.ErrorIs(t, err, ErrInvalidSize)
	_, err = m.Allocate(36) // 9 words, no fit
	require.ErrorIs(t, err, ErrNoFittingHole)
	m.Free(blk)
	m.Free(blk) // silent no-op

	s := m.Stats()
	assert.Equal(t, 3, s.AllocCalls)
	assert.Equal(t, 1, s.AllocFails)
	assert.Equal(t, 2, s.FreeCalls)
	assert.Equal(t, 1, s.FreeNoOps)
	assert.Equal(t, int64(3), s.WordsAllocated)
	assert.Equal(t, int64(3), s.WordsFreed)
	assert.Equal(t, 1, s.Holes)
	assert.Equal(t, 0, s.Partitions)
}

func TestWithAnonStore(t *testing.T) {
	m := New(8, strategy.BestFit, WithAnonStore())
	require.NoError(t, m.Initialize(128))
	defer m.Shutdown()

	blk, err := m.Allocate(64)
	require.NoError(t, err)
	require.Len(t, blk, 64)

	// The mapping is ordinary writable memory.
	for i := range blk {
		blk[i] = byte(i)
	}
	assert.Equal(t, byte(63), m.MemoryStart()[63])
	assertInvariants(t, m)
}
