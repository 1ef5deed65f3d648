package pool

import (
	"unsafe"

	"github.com/joshuapare/memkit/internal/format"
)

// Free releases a block previously returned by Allocate, merging the freed
// extent with its neighbors in the hole set. Blocks that do not begin a
// live partition (foreign slices, stale blocks from before a re-Initialize,
// a second Free of the same block) are ignored silently: leniency here is a
// documented design choice, not an omission.
func (m *Manager) Free(block []byte) {
	m.stats.FreeCalls++

	if !m.initialized() || len(block) == 0 {
		m.stats.FreeNoOps++
		return
	}

	// Map the block's base address back to a word offset by its position
	// within the backing store. Both slices are live, so the pointer
	// arithmetic is well-defined.
	base := uintptr(unsafe.Pointer(&m.mem[0]))
	addr := uintptr(unsafe.Pointer(&block[0]))
	if addr < base || addr >= base+uintptr(len(m.mem)) {
		m.stats.FreeNoOps++
		return
	}
	off := int(addr-base) / m.wordSize

	freed, ok := m.removePartition(off)
	if !ok {
		m.stats.FreeNoOps++
		return
	}

	m.coalesce(freed)
	format.ClearRange(m.bitmap, freed.Start, freed.Length)
	m.stats.WordsFreed += int64(freed.Length)
}

// removePartition deletes and returns the partition starting at the given
// word offset, if one exists.
func (m *Manager) removePartition(off int) (format.Extent, bool) {
	for i, p := range m.partitions {
		if p.Start == off {
			m.partitions = append(m.partitions[:i], m.partitions[i+1:]...)
			return p, true
		}
	}
	return format.Extent{}, false
}

// coalesce inserts the freed extent into the hole set, absorbing at most
// one neighbor per side. Holes are never adjacent before a free, so one
// backward and one forward merge suffice to restore canonical form.
func (m *Manager) coalesce(freed format.Extent) {
	// Backward: a hole ending exactly where the freed extent begins.
	for i, h := range m.holes {
		if h.End() == freed.Start {
			freed.Start = h.Start
			freed.Length += h.Length
			m.holes = append(m.holes[:i], m.holes[i+1:]...)
			break
		}
	}

	// Forward: a hole beginning exactly where the (possibly extended)
	// freed extent ends.
	for i, h := range m.holes {
		if freed.End() == h.Start {
			freed.Length += h.Length
			m.holes = append(m.holes[:i], m.holes[i+1:]...)
			break
		}
	}

	m.holes = insertSorted(m.holes, freed)
}
