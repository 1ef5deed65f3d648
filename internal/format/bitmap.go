package format

// Occupancy bitmap helpers. One bit per word, 1 = used. Bits are packed
// LSB-first: within a byte, bit 0 is the lowest-numbered word of that group
// of eight. The bitmap length is padded up to a whole number of bytes and
// the padding bits stay zero.

// BitmapLen returns the padded byte length of a bitmap covering words.
func BitmapLen(words int) int {
	return (words + 7) / 8
}

// SetRange marks words [start, start+n) as used.
func SetRange(bits []byte, start, n int) {
	for i := start; i < start+n; i++ {
		bits[i>>3] |= 1 << (i & 7)
	}
}

// ClearRange marks words [start, start+n) as free.
func ClearRange(bits []byte, start, n int) {
	for i := start; i < start+n; i++ {
		bits[i>>3] &^= 1 << (i & 7)
	}
}

// Bit reports whether word i is marked used.
func Bit(bits []byte, i int) bool {
	return bits[i>>3]&(1<<(i&7)) != 0
}

// EncodeBitmap prefixes the packed bitmap with its byte length.
// Layout:
//
//	0x00  byte length (little-endian uint16)
//	0x02  packed bitmap bytes
//
// The caller owns the returned slice; it never aliases bits.
func EncodeBitmap(bits []byte) []byte {
	out := make([]byte, BitmapPrefixSize+len(bits))
	PutU16(out, 0, uint16(len(bits)))
	copy(out[BitmapPrefixSize:], bits)
	return out
}
