//go:build unix

package store

import (
	"golang.org/x/sys/unix"
)

// anonStore backs the pool with an anonymous private mapping.
type anonStore struct {
	buf []byte
}

// NewAnon returns a zeroed store of size bytes backed by an anonymous
// memory mapping. A zero-size request degrades to a heap store, since
// mmap rejects zero-length mappings.
func NewAnon(size int) (Store, error) {
	if size == 0 {
		return NewHeap(0), nil
	}
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	return &anonStore{buf: buf}, nil
}

func (s *anonStore) Bytes() []byte {
	return s.buf
}

func (s *anonStore) Release() error {
	if s.buf == nil {
		return nil
	}
	err := unix.Munmap(s.buf)
	s.buf = nil
	return err
}
