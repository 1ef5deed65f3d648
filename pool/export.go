package pool

import (
	"fmt"
	"os"

	"github.com/joshuapare/memkit/internal/format"
)

// HoleList returns the current hole set in the stable encoded form: a
// little-endian uint16 count followed by (start, length) pairs ascending by
// start. The caller owns the returned slice; it never aliases pool state.
// Returns nil when uninitialized.
func (m *Manager) HoleList() []byte {
	if !m.initialized() {
		return nil
	}
	return format.EncodeHoleList(m.holes)
}

// BitmapBytes returns the occupancy bitmap in the stable encoded form: a
// little-endian uint16 byte-length prefix followed by the packed bitmap,
// LSB-first within each byte, padding bits zero. The caller owns the
// returned slice. Returns nil when uninitialized.
func (m *Manager) BitmapBytes() []byte {
	if !m.initialized() {
		return nil
	}
	return format.EncodeBitmap(m.bitmap)
}

// DumpMemoryMap writes the hole set to path as text, one extent per
// bracket pair:
//
//	[0, 10] - [12, 2] - [20, 6]
//
// A fully allocated pool writes the literal "[0, 0]". The file is created
// or truncated. Fails when the pool is uninitialized or the file cannot be
// written.
func (m *Manager) DumpMemoryMap(path string) error {
	if !m.initialized() {
		return ErrNotInitialized
	}
	if err := os.WriteFile(path, []byte(format.FormatHoleMap(m.holes)), 0o644); err != nil {
		return fmt.Errorf("pool: write memory map: %w", err)
	}
	return nil
}
