package pool

import (
	"fmt"
	"slices"

	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/internal/store"
	"github.com/joshuapare/memkit/pool/strategy"
)

// Manager orchestrates the backing store, hole set, partition set, and
// occupancy bitmap, mutating all four as one logical unit per operation.
// Not safe for concurrent use.
type Manager struct {
	wordSize int
	words    int // pool capacity in words; 0 while uninitialized

	store store.Store
	mem   []byte // store.Bytes(), cached

	holes      []format.Extent // ascending by start, non-overlapping, never adjacent
	partitions []format.Extent // ascending by start, disjoint from holes
	bitmap     []byte          // packed per-word occupancy, padded to whole bytes

	fn      strategy.Func
	useAnon bool

	stats Stats
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithAnonStore backs the pool with an anonymous memory mapping instead of
// an ordinary heap buffer. The simulated layout is identical either way.
func WithAnonStore() Option {
	return func(m *Manager) {
		m.useAnon = true
	}
}

// New creates a Manager with the given word size (in bytes, the alignment
// and allocation unit) and default placement strategy. Word sizes below one
// byte are rounded up to one; a nil strategy falls back to best-fit. The
// Manager owns no memory until Initialize.
func New(wordSize int, fn strategy.Func, opts ...Option) *Manager {
	if wordSize < 1 {
		wordSize = 1
	}
	if fn == nil {
		fn = strategy.BestFit
	}
	m := &Manager{
		wordSize: wordSize,
		fn:       fn,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize sets up a fresh pool of sizeInWords words, discarding any prior
// state first (an implicit Shutdown). The size is clamped to
// [0, format.MaxWords]; a zero-word pool holds no store and behaves like an
// uninitialized one. The new pool starts as a single hole spanning
// [0, sizeInWords).
func (m *Manager) Initialize(sizeInWords int) error {
	m.Shutdown()

	if sizeInWords < 0 {
		sizeInWords = 0
	}
	if sizeInWords > format.MaxWords {
		sizeInWords = format.MaxWords
	}
	if sizeInWords == 0 {
		return nil
	}

	var (
		s   store.Store
		err error
	)
	if m.useAnon {
		s, err = store.NewAnon(sizeInWords * m.wordSize)
		if err != nil {
			return fmt.Errorf("pool: map backing store: %w", err)
		}
	} else {
		s = store.NewHeap(sizeInWords * m.wordSize)
	}

	m.store = s
	m.mem = s.Bytes()
	m.words = sizeInWords
	m.holes = []format.Extent{{Start: 0, Length: sizeInWords}}
	m.partitions = nil
	m.bitmap = make([]byte, format.BitmapLen(sizeInWords))
	return nil
}

// Shutdown releases the backing store and clears the hole set, partition
// set, and bitmap. Idempotent; safe on a Manager that was never
// initialized. Exported snapshots handed out earlier remain valid, since
// they are independent copies.
func (m *Manager) Shutdown() {
	if m.store != nil {
		_ = m.store.Release()
		m.store = nil
	}
	m.mem = nil
	m.words = 0
	m.holes = nil
	m.partitions = nil
	m.bitmap = nil
}

// SetStrategy swaps the placement strategy. Takes effect on the next
// Allocate; in-flight state is untouched. A nil strategy is ignored.
func (m *Manager) SetStrategy(fn strategy.Func) {
	if fn != nil {
		m.fn = fn
	}
}

// WordSize returns the word size in bytes. Available at any time.
func (m *Manager) WordSize() int {
	return m.wordSize
}

// MemoryStart returns the whole backing store. Calling it before Initialize
// is a precondition violation; it returns nil in that case rather than a
// defined address.
func (m *Manager) MemoryStart() []byte {
	return m.mem
}

// MemoryLimit returns the pool capacity in bytes, or 0 when uninitialized.
func (m *Manager) MemoryLimit() int {
	return m.words * m.wordSize
}

func (m *Manager) initialized() bool {
	return m.words > 0
}

// insertSorted places e into set keeping ascending order by start.
func insertSorted(set []format.Extent, e format.Extent) []format.Extent {
	i, _ := slices.BinarySearchFunc(set, e, func(a, b format.Extent) int {
		return a.Start - b.Start
	})
	return slices.Insert(set, i, e)
}
