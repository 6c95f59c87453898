package vbyte

import "github.com/Akron/vbyte-go/internal/lanes"

// continuationMaskGeneric compares every byte of the batch, read as int8,
// against zero. A negative byte carries the continuation bit.
func continuationMaskGeneric(batch []byte) uint64 {
	return uint64(lanes.LessThanZero(lanes.Load(batch, len(batch))))
}

// widenBytes zero-extends every byte of a batch without continuation bits
// into dst. It is the fast path shared by all kernels.
func widenBytes(dst []uint32, batch []byte) {
	_ = dst[len(batch)-1]
	for i, b := range batch {
		dst[i] = uint32(b)
	}
}
