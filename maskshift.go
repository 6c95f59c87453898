package vbyte

import "github.com/Akron/vbyte-go/internal/lanes"

// reassembleMaskShift decodes the count complete varints of a batch into dst.
//
// The terminator of every varint is compacted into its own 32-bit lane and
// acts as the accumulator seed. Walking backwards from the terminators, the
// k-th byte before the end of every varint long enough to have one is then
// compacted into the same lane and merged with acc = acc<<7 | group. The
// walk stops as soon as no varint in the batch reaches the next length, so
// batches of short varints skip the later rounds. It returns the number of
// merge rounds run.
func reassembleMaskShift(dst []uint32, v lanes.Vec[uint8], cont lanes.Mask, count int) int {
	width := v.NumLanes()
	term := cont.Not(width)

	seed, _ := lanes.Compress(v, term)
	acc := lanes.PromoteTo32(seed)

	// Continuation bytes directly followed by a terminator: the second to last
	// byte of every multi-byte varint. The lane past the batch reads as zero,
	// so a varint cut off by the batch end contributes lanes only after the
	// last complete one.
	nth := cont & lanes.GreaterEqualZero(lanes.SlideDown(v, 1))

	rounds := 0
	for k := 1; k < maxVarintLen && !nth.AllFalse(); k++ {
		acc = mergeGroup(acc, v, nth, term, k)
		rounds++
		nth = nth >> 1 & cont
	}

	acc.StoreN(dst, count)
	return rounds
}

// mergeGroup folds the bytes selected by nth, each k bytes before its
// varint's terminator, into acc.
func mergeGroup(acc lanes.Vec[uint32], v lanes.Vec[uint8], nth, term lanes.Mask, k int) lanes.Vec[uint32] {
	// Swap the terminator of every varint that has a byte in nth for that
	// byte, so each varint still selects exactly one lane and the compacted
	// lanes line up with acc.
	sel := (nth<<uint(k) ^ term) | nth

	groups, _ := lanes.Compress(lanes.IfThenElseZero(nth, v), sel)
	// A selected byte always has its continuation bit set, so non-zero marks
	// the lanes that take part in this round.
	has := lanes.NotZero(groups)
	groups = lanes.AndScalar(groups, 0x7F)
	return lanes.MaskedShiftOr(has, acc, lanes.PromoteTo32(groups), 7)
}
