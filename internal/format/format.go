// Package format houses the stable boundary encodings of the memory pool:
// the flat hole list handed to placement strategies, the packed occupancy
// bitmap, and the human-readable memory-map text. The layouts (little-endian
// 16-bit fields, LSB-first bit packing) are a fixed contract,
// independent from whatever containers the pool uses internally, so
// strategies and external inspectors never depend on pool internals.
package format

import "encoding/binary"

const (
	// MaxWords is the largest addressable pool size in words. Hole offsets
	// and lengths travel as unsigned 16-bit fields, so a pool is clamped to
	// 65535 words.
	MaxWords = 65535

	// HoleCountSize is the encoded size of the leading hole count.
	HoleCountSize = 2

	// HolePairSize is the encoded size of one (start, length) pair.
	HolePairSize = 4

	// BitmapPrefixSize is the encoded size of the bitmap byte-length prefix.
	BitmapPrefixSize = 2
)

// Extent is a contiguous run of words, identified by its start offset and
// length (both in words). It describes holes and partitions alike.
type Extent struct {
	Start  int
	Length int
}

// End returns the first word offset past the extent.
func (e Extent) End() int {
	return e.Start + e.Length
}

// PutU16 writes a uint16 value to the buffer at the specified offset in little-endian format.
func PutU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

// ReadU16 reads a uint16 value from the buffer at the specified offset in little-endian format.
func ReadU16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// EncodeHoleList flattens extents into the strategy-facing hole list.
// Layout (all fields little-endian uint16):
//
//	0x00  count
//	0x02  count × (start, length) pairs, ascending by start
//
// The caller owns the returned slice.
func EncodeHoleList(holes []Extent) []byte {
	out := make([]byte, HoleCountSize+len(holes)*HolePairSize)
	PutU16(out, 0, uint16(len(holes)))
	for i, h := range holes {
		off := HoleCountSize + i*HolePairSize
		PutU16(out, off, uint16(h.Start))
		PutU16(out, off+2, uint16(h.Length))
	}
	return out
}

// DecodeHoleList is the inverse of EncodeHoleList. A nil, empty, or
// truncated list decodes to however many whole pairs it carries; a nil
// input yields nil.
func DecodeHoleList(list []byte) []Extent {
	if len(list) < HoleCountSize {
		return nil
	}
	count := int(ReadU16(list, 0))
	holes := make([]Extent, 0, count)
	for i := 0; i < count; i++ {
		off := HoleCountSize + i*HolePairSize
		if off+HolePairSize > len(list) {
			break
		}
		holes = append(holes, Extent{
			Start:  int(ReadU16(list, off)),
			Length: int(ReadU16(list, off+2)),
		})
	}
	return holes
}
