package vbyte

import "github.com/Akron/vbyte-go/internal/lanes"

// resolveBoundary derives from the continuation mask of a width-byte batch
// the number of varints that end inside it and the number of bytes they
// span. Continuation bytes after the last terminator belong to a varint that
// continues in the next batch and are excluded from both. A batch without a
// terminator has count and span zero.
func resolveBoundary(cont lanes.Mask, width int) (count, span int) {
	count = cont.Not(width).CountTrue()
	if count == 0 {
		return 0, 0
	}
	// Lane indices survive only on terminator bytes; the highest one closes
	// the last complete varint.
	idx := lanes.IfThenZeroElse(cont, lanes.Iota[uint8](width))
	span = int(lanes.ReduceMax(idx)) + 1
	return count, span
}
