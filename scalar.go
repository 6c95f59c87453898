package vbyte

// readUvarint32 decodes the varint at the start of src and returns it with
// the number of bytes read. Groups are accumulated least significant first;
// only the low four bits of a fifth byte fit into a uint32 and the rest are
// dropped. An over-long varint is consumed up to its terminator with the
// groups after the fifth ignored, so every terminator byte yields exactly one
// value.
// It returns n == 0 when src ends before a terminator.
func readUvarint32(src []byte) (v uint32, n int) {
	for i, b := range src {
		switch {
		case i < maxVarintLen-1:
			v |= uint32(b&0x7F) << (7 * i)
		case i == maxVarintLen-1:
			v |= uint32(b&0x0F) << 28
		}
		if b < 0x80 {
			return v, i + 1
		}
	}
	return 0, 0
}

// decodeScalar decodes every complete varint in src into dst one byte at a
// time and returns the number of values written. A trailing partial varint
// is not decoded.
func decodeScalar(dst []uint32, src []byte) int {
	out := 0
	for len(src) > 0 {
		if b := src[0]; b < 0x80 {
			dst[out] = uint32(b)
			out++
			src = src[1:]
			continue
		}
		v, n := readUvarint32(src)
		if n == 0 {
			break
		}
		dst[out] = v
		out++
		src = src[n:]
	}
	return out
}

// skipVarints returns the byte offset just past the first k varints of src,
// or -1 if src holds fewer than k complete varints.
func skipVarints(src []byte, k int) int {
	off := 0
	for ; k > 0; k-- {
		_, n := readUvarint32(src[off:])
		if n == 0 {
			return -1
		}
		off += n
	}
	return off
}
