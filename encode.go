package vbyte

import "math/bits"

// EncodedLen returns the number of bytes the minimal encoding of v occupies.
func EncodedLen(v uint32) int {
	return (bits.Len32(v|1) + 6) / 7
}

// MaxEncodedLen returns the worst-case encoded size of n values.
func MaxEncodedLen(n int) int {
	return n * maxVarintLen
}

// Encode writes the minimal varint encoding of values to dst and returns the
// number of bytes written. dst must hold at least MaxEncodedLen(len(values))
// bytes, or exactly the sum of EncodedLen over values.
func Encode(dst []byte, values []uint32) int {
	n := 0
	for _, v := range values {
		n += putUvarint32(dst[n:], v)
	}
	return n
}

// AppendUint32s appends the encoding of values to dst and returns the
// extended slice.
func AppendUint32s(dst []byte, values []uint32) []byte {
	size := 0
	for _, v := range values {
		size += EncodedLen(v)
	}
	start := len(dst)
	if cap(dst)-start < size {
		grown := make([]byte, start, start+size)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:start+size]
	Encode(dst[start:], values)
	return dst
}

// AppendUint32 appends the encoding of a single value to dst.
func AppendUint32(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

func putUvarint32(dst []byte, v uint32) int {
	i := 0
	for v >= 0x80 {
		dst[i] = byte(v) | 0x80
		v >>= 7
		i++
	}
	dst[i] = byte(v)
	return i + 1
}
