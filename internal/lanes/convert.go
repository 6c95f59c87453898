package lanes

import "encoding/binary"

// The BitCast functions reinterpret byte lanes as wider little-endian lanes,
// the way a vector register is reinterpreted without moving data. A trailing
// partial element is dropped.

// BitCastToUint16 reinterprets pairs of byte lanes as uint16 lanes.
func BitCastToUint16(v Vec[uint8]) Vec[uint16] {
	out := Vec[uint16]{n: v.n / 2}
	for i := 0; i < out.n; i++ {
		out.data[i] = binary.LittleEndian.Uint16(v.data[2*i:])
	}
	return out
}

// BitCastToUint32 reinterprets groups of four byte lanes as uint32 lanes.
func BitCastToUint32(v Vec[uint8]) Vec[uint32] {
	out := Vec[uint32]{n: v.n / 4}
	for i := 0; i < out.n; i++ {
		out.data[i] = binary.LittleEndian.Uint32(v.data[4*i:])
	}
	return out
}

// MulAddPairsTo16 multiplies adjacent byte lanes by w0 and w1 and sums each
// pair into one uint16 lane (PMADDUBSW without saturation).
func MulAddPairsTo16(v Vec[uint8], w0, w1 uint16) Vec[uint16] {
	out := Vec[uint16]{n: v.n / 2}
	for i := 0; i < out.n; i++ {
		out.data[i] = uint16(v.data[2*i])*w0 + uint16(v.data[2*i+1])*w1
	}
	return out
}

// MulAddPairsTo32 multiplies adjacent uint16 lanes by w0 and w1 and sums each
// pair into one uint32 lane (PMADDWD on unsigned input).
func MulAddPairsTo32(v Vec[uint16], w0, w1 uint32) Vec[uint32] {
	out := Vec[uint32]{n: v.n / 2}
	for i := 0; i < out.n; i++ {
		out.data[i] = uint32(v.data[2*i])*w0 + uint32(v.data[2*i+1])*w1
	}
	return out
}

// MulAddPairsTo64 multiplies adjacent uint32 lanes by w0 and w1 and sums each
// pair into one uint64 lane.
func MulAddPairsTo64(v Vec[uint32], w0, w1 uint64) Vec[uint64] {
	out := Vec[uint64]{n: v.n / 2}
	for i := 0; i < out.n; i++ {
		out.data[i] = uint64(v.data[2*i])*w0 + uint64(v.data[2*i+1])*w1
	}
	return out
}

// TruncateTo32 keeps the low half of every uint64 lane, gathering the even
// uint32 lanes of the reinterpreted vector.
func TruncateTo32(v Vec[uint64]) Vec[uint32] {
	out := Vec[uint32]{n: v.n}
	for i := 0; i < v.n; i++ {
		out.data[i] = uint32(v.data[i])
	}
	return out
}

// ZeroExtendTo32 widens uint16 lanes to uint32 lanes.
func ZeroExtendTo32(v Vec[uint16]) Vec[uint32] {
	out := Vec[uint32]{n: v.n}
	for i := 0; i < v.n; i++ {
		out.data[i] = uint32(v.data[i])
	}
	return out
}
