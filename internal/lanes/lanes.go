// Package lanes provides a portable fixed-width lane batch for the varint
// kernels.
//
// A Vec holds up to MaxLanes elements of one unsigned integer type and a
// lane count. The operations mirror the vector instructions the decoders are
// written against (compare-to-mask, compress, table lookup, widen, masked
// shift/or, reduce) so the same kernel shape runs on every architecture. On
// targets with assembly kernels only the hot primitives are replaced; the
// kernel logic stays here.
package lanes

import "math/bits"

// MaxLanes is the widest batch supported, one bit per lane in a Mask.
const MaxLanes = 64

// Lanes is the set of element types a Vec can hold.
type Lanes interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Vec is a batch of n lanes. Lanes at index >= n are always zero.
type Vec[T Lanes] struct {
	data [MaxLanes]T
	n    int
}

// Mask has bit i set when lane i is selected.
type Mask uint64

// FirstN returns a mask with the lowest n lanes set.
func FirstN(n int) Mask {
	if n >= MaxLanes {
		return ^Mask(0)
	}
	if n <= 0 {
		return 0
	}
	return Mask(1)<<uint(n) - 1
}

// Not inverts m within the first n lanes.
func (m Mask) Not(n int) Mask {
	return ^m & FirstN(n)
}

// CountTrue returns the number of selected lanes.
func (m Mask) CountTrue() int {
	return bits.OnesCount64(uint64(m))
}

// AllFalse reports whether no lane is selected.
func (m Mask) AllFalse() bool {
	return m == 0
}

// GetBit reports whether lane i is selected.
func (m Mask) GetBit(i int) bool {
	return m>>uint(i)&1 != 0
}

// Load reads the first n elements of src into a Vec.
// It panics if n exceeds MaxLanes or len(src).
func Load[T Lanes](src []T, n int) Vec[T] {
	if n > MaxLanes {
		panic("lanes: batch wider than MaxLanes")
	}
	var v Vec[T]
	copy(v.data[:n], src[:n])
	v.n = n
	return v
}

// Zero returns n zero lanes.
func Zero[T Lanes](n int) Vec[T] {
	return Vec[T]{n: n}
}

// Iota returns the lanes 0, 1, ..., n-1.
func Iota[T Lanes](n int) Vec[T] {
	v := Vec[T]{n: n}
	for i := 0; i < n; i++ {
		v.data[i] = T(i)
	}
	return v
}

// NumLanes returns the number of active lanes.
func (v Vec[T]) NumLanes() int {
	return v.n
}

// Get returns lane i.
func (v Vec[T]) Get(i int) T {
	return v.data[i]
}

// Data returns the active lanes. The slice aliases v.
func (v *Vec[T]) Data() []T {
	return v.data[:v.n]
}

// StoreN writes the first count lanes to dst.
func (v *Vec[T]) StoreN(dst []T, count int) {
	copy(dst[:count], v.data[:count])
}

// LessThanZero selects the byte lanes whose sign bit is set when read as int8.
func LessThanZero(v Vec[uint8]) Mask {
	var m Mask
	for i := 0; i < v.n; i++ {
		m |= Mask(v.data[i]>>7) << uint(i)
	}
	return m
}

// GreaterEqualZero selects the byte lanes whose sign bit is clear.
func GreaterEqualZero(v Vec[uint8]) Mask {
	return LessThanZero(v).Not(v.n)
}

// NotZero selects the non-zero lanes.
func NotZero[T Lanes](v Vec[T]) Mask {
	var m Mask
	for i := 0; i < v.n; i++ {
		if v.data[i] != 0 {
			m |= 1 << uint(i)
		}
	}
	return m
}

// IfThenElseZero keeps the lanes selected by m and zeroes the rest.
func IfThenElseZero[T Lanes](m Mask, v Vec[T]) Vec[T] {
	for i := 0; i < v.n; i++ {
		if !m.GetBit(i) {
			v.data[i] = 0
		}
	}
	return v
}

// IfThenZeroElse zeroes the lanes selected by m.
func IfThenZeroElse[T Lanes](m Mask, v Vec[T]) Vec[T] {
	return IfThenElseZero(m.Not(v.n), v)
}

// AndScalar masks every lane with c.
func AndScalar[T Lanes](v Vec[T], c T) Vec[T] {
	for i := 0; i < v.n; i++ {
		v.data[i] &= c
	}
	return v
}

// SlideDown moves lane i+k to lane i and fills the top k lanes with zero.
func SlideDown[T Lanes](v Vec[T], k int) Vec[T] {
	if k >= v.n {
		return Zero[T](v.n)
	}
	copy(v.data[:v.n-k], v.data[k:v.n])
	clear(v.data[v.n-k : v.n])
	return v
}

// Compress packs the lanes selected by m to the front, preserving their
// order, and zeroes the remaining lanes. It returns the packed vector and the
// number of selected lanes.
func Compress[T Lanes](v Vec[T], m Mask) (Vec[T], int) {
	out := Vec[T]{n: v.n}
	m &= FirstN(v.n)
	count := 0
	for m != 0 {
		i := bits.TrailingZeros64(uint64(m))
		out.data[count] = v.data[i]
		count++
		m &= m - 1
	}
	return out, count
}

// ReduceMax returns the largest lane.
func ReduceMax[T Lanes](v Vec[T]) T {
	var max T
	for i := 0; i < v.n; i++ {
		if v.data[i] > max {
			max = v.data[i]
		}
	}
	return max
}

// TableLookupBytesOr0 returns, for every lane of idx, the lane of v it names,
// or zero when the index is out of range. Indices with the high bit set are
// always out of range, which matches PSHUFB.
func TableLookupBytesOr0(v Vec[uint8], idx Vec[uint8]) Vec[uint8] {
	out := Vec[uint8]{n: idx.n}
	for i := 0; i < idx.n; i++ {
		if j := int(idx.data[i]); j < v.n {
			out.data[i] = v.data[j]
		}
	}
	return out
}

// PromoteTo32 zero-extends every byte lane to 32 bits.
func PromoteTo32(v Vec[uint8]) Vec[uint32] {
	out := Vec[uint32]{n: v.n}
	for i := 0; i < v.n; i++ {
		out.data[i] = uint32(v.data[i])
	}
	return out
}

// MaskedShiftOr returns acc with every lane selected by m replaced by
// acc<<k | v. Unselected lanes keep their value.
func MaskedShiftOr[T Lanes](m Mask, acc, v Vec[T], k uint) Vec[T] {
	m &= FirstN(acc.n)
	for m != 0 {
		i := bits.TrailingZeros64(uint64(m))
		acc.data[i] = acc.data[i]<<k | v.data[i]
		m &= m - 1
	}
	return acc
}
