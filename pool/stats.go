package pool

// Stats holds cumulative operation counters plus a snapshot of the current
// layout. Counters survive Initialize/Shutdown; the layout fields reflect
// the moment Stats was called.
type Stats struct {
	AllocCalls     int   // total Allocate calls
	AllocFails     int   // Allocate calls refused by the strategy
	FreeCalls      int   // total Free calls
	FreeNoOps      int   // Free calls that matched no live partition
	WordsAllocated int64 // total words handed out
	WordsFreed     int64 // total words released

	Holes      int // current hole count
	Partitions int // current live partition count
}

// Stats returns a copy of the current counters and layout snapshot.
func (m *Manager) Stats() Stats {
	s := m.stats
	s.Holes = len(m.holes)
	s.Partitions = len(m.partitions)
	return s
}
