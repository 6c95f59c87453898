package vbyte

// SlimReader provides memory-efficient access to a varint stream.
// Unlike Reader, SlimReader does not pre-decode values into a buffer. Instead, it
// keeps only the encoded bytes and a cursor and decodes on the fly.
//
// SlimReader suits many small streams backed by MMAP'd data where the decoded
// form would not fit in memory. Sequential access with Next is O(1) per value,
// random access with Get walks the stream.

// SlimReader is safe for concurrent read access to the same underlying buffer,
// but each SlimReader instance should not be accessed concurrently.
type SlimReader struct {
	buf    []byte // encoded stream
	off    int    // byte offset of the varint at pos
	pos    int    // current iteration position
	count  int    // number of varints in buf
	loaded bool
}

// NewSlimReader creates an empty SlimReader that must be loaded with Load() before use.
func NewSlimReader() *SlimReader {
	return &SlimReader{}
}

// Load validates a varint stream and attaches it to the reader.
// This resets all internal state and can be called multiple times to reuse the reader.
// The buffer must remain valid for the lifetime of the SlimReader (ideal for MMAP).
func (r *SlimReader) Load(buf []byte) error {
	if err := Validate(buf); err != nil {
		r.loaded = false
		r.count = 0
		return err
	}
	r.buf = buf
	r.count = Count(buf)
	r.off = 0
	r.pos = 0
	r.loaded = true
	return nil
}

// IsLoaded returns whether the reader has been loaded with data.
func (r *SlimReader) IsLoaded() bool {
	return r.loaded
}

// Len returns the number of values in the stream.
func (r *SlimReader) Len() int {
	if !r.loaded {
		return 0
	}
	return r.count
}

// Get returns the value at the specified position without moving the
// iteration cursor. Positions at or after the cursor are reached from the
// cursor, earlier ones from the start of the stream.
func (r *SlimReader) Get(pos int) (uint32, error) {
	if !r.loaded {
		return 0, ErrNotLoaded
	}
	if pos < 0 || pos >= r.count {
		return 0, ErrPositionOutOfRange
	}
	off, from := 0, 0
	if pos >= r.pos {
		off, from = r.off, r.pos
	}
	off += skipVarints(r.buf[off:], pos-from)
	v, _ := readUvarint32(r.buf[off:])
	return v, nil
}

// GetSafe returns the value at the specified position and whether the position is valid.
// Returns (0, false) if the reader is not loaded or pos is out of range.
func (r *SlimReader) GetSafe(pos int) (uint32, bool) {
	val, err := r.Get(pos)
	return val, err == nil
}

// Pos returns the current position for sequential iteration.
func (r *SlimReader) Pos() int {
	return r.pos
}

// Reset resets the reader position to the beginning for sequential iteration.
func (r *SlimReader) Reset() {
	r.pos = 0
	r.off = 0
}

// Next returns the next value in sequence and its position.
// Returns (value, pos, true) on success, or (0, 0, false) if not loaded or no more elements.
func (r *SlimReader) Next() (value uint32, pos int, ok bool) {
	if !r.loaded || r.pos >= r.count {
		return 0, 0, false
	}
	value, n := readUvarint32(r.buf[r.off:])
	pos = r.pos
	r.off += n
	r.pos++
	return value, pos, true
}

// SkipTo advances to and returns the first value >= req, scanning in
// iteration order.
// Returns (value, pos, true) if found, or (0, 0, false) if not loaded or no value >= req exists.
func (r *SlimReader) SkipTo(req uint32) (value uint32, pos int, ok bool) {
	for {
		v, p, ok := r.Next()
		if !ok {
			return 0, 0, false
		}
		if v >= req {
			return v, p, true
		}
	}
}

// Decode decodes all values into the provided destination slice.
// This is more efficient than multiple Get() calls when all values are needed.
// The dst slice will be resized as needed.
// Returns nil if the reader is not loaded.
func (r *SlimReader) Decode(dst []uint32) []uint32 {
	if !r.loaded {
		return nil
	}
	if cap(dst) < r.count {
		dst = make([]uint32, r.count)
	} else {
		dst = dst[:r.count]
	}
	Decode(dst, r.buf)
	return dst
}
