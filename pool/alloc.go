package pool

import (
	"slices"

	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/pool/strategy"
)

// Allocate carves a block of at least sizeInBytes bytes out of the pool and
// returns it as a sub-slice of the backing store. The request is rounded up
// to whole words, so the block is word-aligned and its capacity is the
// rounded size. On any failure the pool is left unchanged and a sentinel
// error is returned with a nil slice.
func (m *Manager) Allocate(sizeInBytes int) ([]byte, error) {
	m.stats.AllocCalls++

	if !m.initialized() {
		return nil, ErrNotInitialized
	}
	if sizeInBytes <= 0 || sizeInBytes > m.MemoryLimit() {
		return nil, ErrInvalidSize
	}

	words := (sizeInBytes + m.wordSize - 1) / m.wordSize

	selected := m.fn(words, format.EncodeHoleList(m.holes))
	if selected == strategy.NoFit {
		m.stats.AllocFails++
		return nil, ErrNoFittingHole
	}

	// The strategy is trusted to answer with one of the offsets it was
	// given; anything else is a contract violation surfaced as an error
	// rather than corrupted state.
	idx := slices.IndexFunc(m.holes, func(h format.Extent) bool {
		return h.Start == selected
	})
	if idx < 0 || m.holes[idx].Length < words {
		return nil, ErrBadStrategyOffset
	}

	// Carve from the low end: an exact fit removes the hole, otherwise the
	// hole keeps its tail.
	if m.holes[idx].Length == words {
		m.holes = slices.Delete(m.holes, idx, idx+1)
	} else {
		m.holes[idx].Start += words
		m.holes[idx].Length -= words
	}

	m.partitions = insertSorted(m.partitions, format.Extent{Start: selected, Length: words})
	format.SetRange(m.bitmap, selected, words)
	m.stats.WordsAllocated += int64(words)

	off := selected * m.wordSize
	end := off + words*m.wordSize
	return m.mem[off:end:end], nil
}
