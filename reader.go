package vbyte

import (
	"errors"
	"slices"
)

// Reader provides random access to a varint stream.
// A Reader is not safe for concurrent use. Create multiple readers from
// the same buffer if concurrent access is needed.
type Reader struct {
	// values holds the decoded values (decoded once on Load)
	values []uint32

	// pos is the current position for sequential iteration (0-based)
	pos int

	// isSorted indicates if the values are non-decreasing
	isSorted bool

	// loaded indicates if the reader has been loaded with data
	loaded bool

	// dec decodes on Load; nil selects the package default
	dec *Decoder
}

// ErrInvalidBuffer is returned when a buffer is too small or malformed.
var ErrInvalidBuffer = errors.New("vbyte: invalid buffer")

// ErrNotLoaded is returned when operations are called before Load().
var ErrNotLoaded = errors.New("vbyte: reader not loaded")

// ErrPositionOutOfRange is returned when accessing a position beyond the stream.
var ErrPositionOutOfRange = errors.New("vbyte: position out of range")

// NewReader creates an empty Reader that must be loaded with Load() before use.
// It decodes with the package default strategy.
func NewReader() *Reader {
	return &Reader{}
}

// NewReaderWithDecoder creates an empty Reader that decodes with dec.
func NewReaderWithDecoder(dec *Decoder) *Reader {
	return &Reader{dec: dec}
}

// Load decodes a varint stream into the reader.
// This resets all internal state and can be called multiple times to reuse the reader.
// The buffer must end on a varint boundary.
func (r *Reader) Load(buf []byte) error {
	var (
		values []uint32
		err    error
	)
	if r.dec != nil {
		values, err = r.dec.DecodeAppend(r.values[:0], buf)
	} else {
		values, err = DecodeAppend(r.values[:0], buf)
	}
	if err != nil {
		r.loaded = false
		return err
	}

	r.values = values
	r.isSorted = slices.IsSorted(values)
	r.pos = 0
	r.loaded = true
	return nil
}

// IsLoaded returns whether the reader has been loaded with data.
func (r *Reader) IsLoaded() bool {
	return r.loaded
}

// Len returns the number of values in the stream.
func (r *Reader) Len() int {
	if !r.loaded {
		return 0
	}
	return len(r.values)
}

// Pos returns the current position for sequential iteration.
func (r *Reader) Pos() int {
	return r.pos
}

// Reset resets the reader position to the beginning for sequential iteration.
func (r *Reader) Reset() {
	r.pos = 0
}

// Get returns the value at the specified position.
// Returns an error if the reader is not loaded or pos is out of range.
func (r *Reader) Get(pos int) (uint32, error) {
	if !r.loaded {
		return 0, ErrNotLoaded
	}
	if pos < 0 || pos >= len(r.values) {
		return 0, ErrPositionOutOfRange
	}
	return r.values[pos], nil
}

// GetSafe returns the value at the specified position and whether the position is valid.
// Returns (0, false) if the reader is not loaded or pos is out of range.
func (r *Reader) GetSafe(pos int) (uint32, bool) {
	val, err := r.Get(pos)
	return val, err == nil
}

// Next returns the next value in sequence and its position.
// Returns (value, pos, true) on success, or (0, 0, false) if not loaded or no more elements.
func (r *Reader) Next() (value uint32, pos int, ok bool) {
	if !r.loaded || r.pos >= len(r.values) {
		return 0, 0, false
	}
	value = r.values[r.pos]
	pos = r.pos
	r.pos++
	return value, pos, true
}

// SkipTo advances to and returns the first value >= req.
// Sorted streams are searched with binary search, others are scanned
// linearly in iteration order.
// Returns (value, pos, true) if found, or (0, 0, false) if not loaded or no value >= req exists.
func (r *Reader) SkipTo(req uint32) (value uint32, pos int, ok bool) {
	if !r.loaded || len(r.values) == 0 {
		return 0, 0, false
	}
	if r.isSorted {
		return r.skipToBinarySearch(req)
	}
	return r.skipToLinear(req)
}

// skipToBinarySearch searches from the current position to the end.
func (r *Reader) skipToBinarySearch(req uint32) (value uint32, pos int, ok bool) {
	idx, _ := slices.BinarySearch(r.values[r.pos:], req)
	absPos := r.pos + idx
	if absPos >= len(r.values) {
		r.pos = len(r.values)
		return 0, 0, false
	}
	r.pos = absPos + 1
	return r.values[absPos], absPos, true
}

func (r *Reader) skipToLinear(req uint32) (value uint32, pos int, ok bool) {
	for r.pos < len(r.values) {
		v := r.values[r.pos]
		p := r.pos
		r.pos++
		if v >= req {
			return v, p, true
		}
	}
	return 0, 0, false
}

// Decode copies all decoded values into the provided destination slice.
// If dst has insufficient capacity, a new slice is allocated.
// Returns nil if the reader is not loaded.
func (r *Reader) Decode(dst []uint32) []uint32 {
	if !r.loaded {
		return nil
	}
	dst = slices.Grow(dst[:0], len(r.values))[:len(r.values)]
	copy(dst, r.values)
	return dst
}

// IsSorted returns whether the values are non-decreasing.
func (r *Reader) IsSorted() bool {
	return r.isSorted
}
