// Package strategy defines the placement-strategy contract of the memory
// pool and its two built-in implementations, best-fit and worst-fit.
//
// A strategy is a pure function: it reads the encoded hole list the pool
// hands it, picks a hole, and returns that hole's start offset. It holds no
// state, mutates nothing, and is deterministic over a given snapshot, which
// makes strategies freely swappable at runtime via Manager.SetStrategy.
//
// Strategies operate on the encoded form (format.EncodeHoleList) rather
// than on pool internals. The flat little-endian layout is a stable
// contract, so external strategies can be written against it without
// importing anything from this module.
package strategy

import (
	"github.com/joshuapare/memkit/internal/format"
)

// NoFit is returned when no hole can satisfy the request.
const NoFit = -1

// Func selects a hole for a request of sizeInWords words. holeList is the
// encoded hole list (count followed by (start, length) pairs, all
// little-endian uint16, ascending by start). The return value must be the
// start offset of one of the listed holes, or NoFit.
type Func func(sizeInWords int, holeList []byte) int

// BestFit picks the smallest hole with length >= sizeInWords. Ties go to
// the lowest start offset: the list is ascending by start and only a
// strictly smaller hole displaces the current pick.
func BestFit(sizeInWords int, holeList []byte) int {
	start, length := NoFit, format.MaxWords+1
	forEachHole(holeList, func(s, l int) {
		if l >= sizeInWords && l < length {
			start, length = s, l
		}
	})
	return start
}

// WorstFit picks the largest hole with length >= sizeInWords, ties going to
// the lowest start offset.
func WorstFit(sizeInWords int, holeList []byte) int {
	start, length := NoFit, 0
	forEachHole(holeList, func(s, l int) {
		if l >= sizeInWords && l > length {
			start, length = s, l
		}
	})
	return start
}

// forEachHole walks the encoded hole list in order. Truncated input stops
// the walk at the last whole pair; nil input yields no holes.
func forEachHole(list []byte, fn func(start, length int)) {
	if len(list) < format.HoleCountSize {
		return
	}
	count := int(format.ReadU16(list, 0))
	for i := 0; i < count; i++ {
		off := format.HoleCountSize + i*format.HolePairSize
		if off+format.HolePairSize > len(list) {
			return
		}
		fn(int(format.ReadU16(list, off)), int(format.ReadU16(list, off+2)))
	}
}
