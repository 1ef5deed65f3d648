//go:build windows

package store

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// anonStore backs the pool with pages committed via VirtualAlloc.
type anonStore struct {
	addr uintptr
	buf  []byte
}

// NewAnon returns a zeroed store of size bytes backed by committed virtual
// memory. A zero-size request degrades to a heap store, since VirtualAlloc
// rejects zero-length reservations.
func NewAnon(size int) (Store, error) {
	if size == 0 {
		return NewHeap(0), nil
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	return &anonStore{addr: addr, buf: buf}, nil
}

func (s *anonStore) Bytes() []byte {
	return s.buf
}

func (s *anonStore) Release() error {
	if s.addr == 0 {
		return nil
	}
	err := windows.VirtualFree(s.addr, 0, windows.MEM_RELEASE)
	s.addr = 0
	s.buf = nil
	return err
}
