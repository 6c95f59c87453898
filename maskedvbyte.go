package vbyte

import "github.com/Akron/vbyte-go/internal/lanes"

// readGroupMaskedVByte decodes the varints at the start of the 16-byte group
// src[:16] into dst, given the group's continuation mask in the low 16 bits
// of mask. It returns the bytes consumed and the values produced. Patterns no
// layout covers fall back to decoding a single varint from src, which may
// extend past the group; if src holds no further terminator all of it is
// consumed without producing a value.
func readGroupMaskedVByte(dst []uint32, src []byte, mask uint64, st *Stats) (consumed, produced int) {
	group := (*[groupSize]byte)(src)
	if mask&0xFFFF == 0 {
		widenBytes(dst[:groupSize], group[:])
		return groupSize, groupSize
	}

	layout := maskedVByteLayouts[mask&(1<<maskPatternLen-1)]
	if layout.consumed == 0 {
		v, n := readUvarint32(src)
		if n == 0 {
			return len(src), 0
		}
		dst[0] = v
		return n, 1
	}
	st.addTableLookup()

	id := int(layout.shuffle)
	var shuffled [groupSize]byte
	switch {
	case id < shuffles3Byte:
		shuffleGroup(&shuffled, group, &maskedVByteShuffles[id])
		// Lane j holds [first, second or 0]; drop both continuation bits.
		h := lanes.BitCastToUint16(lanes.Load(shuffled[:], groupSize))
		for i, x := range h.Data() {
			h.Data()[i] = x&0x7F | x&0x7F00>>1
		}
		w := lanes.ZeroExtendTo32(h)
		w.StoreN(dst, 6)
		return int(layout.consumed), 6

	case id < shuffles5Byte:
		shuffleGroup(&shuffled, group, &maskedVByteShuffles[id])
		w := lanes.BitCastToUint32(lanes.Load(shuffled[:], groupSize))
		for i, x := range w.Data() {
			w.Data()[i] = x&0x7F | x&0x7F00>>1 | x&0x7F0000>>2
		}
		w.StoreN(dst, 4)
		return int(layout.consumed), 4

	default:
		// Strip the continuation bits first so the multiply-add cascade below
		// never carries into a neighbouring group.
		var payload [groupSize]byte
		for i, b := range group {
			payload[i] = b & 0x7F
		}
		shuffleGroup(&shuffled, &payload, &maskedVByteShuffles[id])
		v := lanes.Load(shuffled[:], groupSize)
		h := lanes.MulAddPairsTo16(v, 1, 1<<7)
		w := lanes.MulAddPairsTo32(h, 1, 1<<14)
		q := lanes.MulAddPairsTo64(w, 1, 1<<28)
		out := lanes.TruncateTo32(q)
		out.StoreN(dst, 2)
		return int(layout.consumed), 2
	}
}

// shuffleGroupGeneric is the portable PSHUFB.
func shuffleGroupGeneric(dst, src, idx *[groupSize]byte) {
	v := lanes.TableLookupBytesOr0(lanes.Load(src[:], groupSize), lanes.Load(idx[:], groupSize))
	v.StoreN(dst[:], groupSize)
}
