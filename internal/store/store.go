// Package store provides fixed-size byte buffers backing a memory pool.
// Two variants exist: a plain heap-allocated buffer and an anonymous
// memory mapping. Both hand out the full buffer once and release it on
// demand; a Store is never resized.
package store

// Store is a contiguous, fixed-size byte buffer.
//
// Release invalidates the buffer previously returned by Bytes; it is
// idempotent. Stores are not safe for concurrent use.
type Store interface {
	// Bytes returns the whole buffer. Nil after Release.
	Bytes() []byte

	// Release frees the buffer.
	Release() error
}

// heapStore backs the pool with an ordinary Go allocation.
type heapStore struct {
	buf []byte
}

// NewHeap returns a zeroed heap-backed store of size bytes.
func NewHeap(size int) Store {
	return &heapStore{buf: make([]byte, size)}
}

func (s *heapStore) Bytes() []byte {
	return s.buf
}

func (s *heapStore) Release() error {
	s.buf = nil
	return nil
}
