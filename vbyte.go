// Package vbyte decodes streams of LEB128 varints into uint32 values with
// batch-parallel kernels.
//
// A varint stores 7 payload bits per byte, least significant group first,
// and sets the high bit of every byte except the last. A uint32 needs at most
// five bytes. A stream is a plain concatenation of varints with no length
// prefix, as produced by protobuf and encoding/binary.
//
// Decoding works on batches of 16, 32 or 64 bytes depending on the vector
// width of the CPU. Per batch a continuation mask is built once, the number
// of complete varints and the bytes they span are derived from it, and the
// payload groups are reassembled either by compress/shift/merge steps
// (StrategyMaskShift) or by a table-driven byte shuffle over 16-byte groups
// (StrategyMaskedVByte). The bytes that do not fill a batch are handled by a
// scalar decoder, which is also the reference the kernels are tested against.
//
// Decode and DecodeScalar trust their input: dst must hold one value per
// varint and src must end on a varint boundary. DecodeAppend and Validate
// check the input first. The package holds no mutable global state; lookup
// tables are built once at init.
package vbyte

//go:generate go run -tags avogen ./internal/avo -out vbyte_amd64.s

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
)

const (
	// maxVarintLen is the longest encoding of a uint32.
	maxVarintLen = 5
	// groupSize is the window of one masked vbyte step and the narrowest batch.
	groupSize = 16
	// MaxBatchWidth is the widest batch a kernel processes at once.
	MaxBatchWidth = 64
)

// continuationMask returns a bitmask with bit i set iff batch[i] has its
// continuation bit set. len(batch) is a multiple of 16 and at most 64.
var continuationMask func(batch []byte) uint64 = continuationMaskGeneric

// shuffleGroup gathers src bytes into dst by index; an index with the high
// bit set produces zero.
var shuffleGroup func(dst, src, idx *[groupSize]byte) = shuffleGroupGeneric

var (
	simdAvailable     bool
	defaultBatchWidth = groupSize
)

// ErrTruncated is returned when a stream ends inside a varint.
var ErrTruncated = errors.New("vbyte: truncated varint")

// Initialize SIMD path if available
func init() {
	initSIMDSelection()
}

// IsSIMDavailable reports whether assembly kernels are active.
func IsSIMDavailable() bool {
	return simdAvailable
}

// BatchWidth returns the batch width Decode uses on this CPU.
func BatchWidth() int {
	return defaultBatchWidth
}

// Decode decodes the varints in src into dst and returns the number of
// values written. dst must have room for every varint in src (len(src) is
// always enough) and src must end on a varint boundary; neither is checked.
func Decode(dst []uint32, src []byte) int {
	return decodeMaskShift(dst, src, defaultBatchWidth, nil)
}

// DecodeScalar decodes src one byte at a time. It produces the same output
// as Decode and exists as a reference and for short inputs.
func DecodeScalar(dst []uint32, src []byte) int {
	return decodeScalar(dst, src)
}

// Count returns the number of complete varints in src.
func Count(src []byte) int {
	n := 0
	for len(src) >= MaxBatchWidth {
		n += MaxBatchWidth - bits.OnesCount64(continuationMask(src[:MaxBatchWidth]))
		src = src[MaxBatchWidth:]
	}
	for len(src) >= groupSize {
		n += groupSize - bits.OnesCount64(continuationMask(src[:groupSize]))
		src = src[groupSize:]
	}
	for _, b := range src {
		if b < 0x80 {
			n++
		}
	}
	return n
}

// Validate checks that src ends on a varint boundary. Varints longer than
// five bytes are not detected.
func Validate(src []byte) error {
	if len(src) == 0 || src[len(src)-1] < 0x80 {
		return nil
	}
	start := len(src) - 1
	for start > 0 && src[start-1] >= 0x80 {
		start--
	}
	return fmt.Errorf("%w: %d trailing continuation bytes at offset %d",
		ErrTruncated, len(src)-start, start)
}

// DecodeAppend validates src, decodes it and appends the values to dst.
func DecodeAppend(dst []uint32, src []byte) ([]uint32, error) {
	if err := Validate(src); err != nil {
		return dst, err
	}
	count := Count(src)
	start := len(dst)
	dst = slices.Grow(dst, count)[:start+count]
	Decode(dst[start:], src)
	return dst, nil
}
