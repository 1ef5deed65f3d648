// Package pool simulates a fixed-capacity, word-addressed memory pool with
// pluggable placement strategies.
//
// # Overview
//
// A Manager owns a contiguous backing store of wordCount × wordSize bytes
// and tracks its layout three ways, kept in lock-step at every observable
// point:
//
//   - the hole set: sorted, non-overlapping, never-adjacent free extents
//   - the partition set: sorted, non-overlapping live allocations
//   - the occupancy bitmap: one bit per word, 1 = used
//
// Together the hole and partition sets exactly tile [0, wordCount): no
// gaps, no overlaps. Adjacent holes are merged immediately when memory is
// released, so the hole set a strategy sees is always in canonical form.
//
// # Usage Example
//
//	m := pool.New(8, strategy.BestFit)
//	if err := m.Initialize(1024); err != nil {
//	    return err
//	}
//	defer m.Shutdown()
//
//	block, err := m.Allocate(100)
//	if err != nil {
//	    return err
//	}
//
//	// ... use block ...
//
//	m.Free(block)
//
// # Placement Strategies
//
// Allocation placement is delegated to a strategy.Func. The Manager encodes
// its hole set into the flat little-endian form (see internal/format) and
// the strategy answers with the start offset of the chosen hole, or
// strategy.NoFit. The built-in strategies are best-fit and worst-fit; any
// function honoring the contract can be swapped in at runtime with
// SetStrategy.
//
// # Word Granularity
//
// Every allocation is rounded up to a whole number of words and carved from
// the low end of the chosen hole, so all returned blocks are word-aligned
// within the store. Pools are capped at 65535 words to match the 16-bit
// offsets of the exported hole list.
//
// # Error Model
//
// Failures surface as package sentinel errors (ErrNotInitialized,
// ErrInvalidSize, ErrNoFittingHole), never as panics. Free is deliberately
// lenient: releasing an address with no live partition, including a double
// free, is a silent no-op.
//
// # Thread Safety
//
// A Manager is not thread-safe. Callers must synchronize access externally;
// concurrent use without synchronization is undefined.
package pool
