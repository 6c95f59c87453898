package vbyte

import "github.com/Akron/vbyte-go/internal/lanes"

// decodeMaskShift runs the mask/shift kernel over every full batch of src
// and hands the remainder to the scalar decoder. width is 16, 32 or 64.
func decodeMaskShift(dst []uint32, src []byte, width int, st *Stats) int {
	in, out := 0, 0
	for len(src)-in >= width {
		batch := src[in : in+width]
		cont := lanes.Mask(continuationMask(batch))
		st.addBatch()
		if cont == 0 {
			widenBytes(dst[out:out+width], batch)
			st.addFastPath()
			in += width
			out += width
			continue
		}
		count, span := resolveBoundary(cont, width)
		if count == 0 {
			// A whole batch of continuation bytes is malformed input; the
			// scalar decoder consumes it up to the next terminator.
			break
		}
		rounds := reassembleMaskShift(dst[out:out+count], lanes.Load(batch, width), cont, count)
		st.addCompactions(rounds + 1)
		in += span
		out += count
	}
	return out + decodeTail(dst[out:], src[in:], st)
}

// decodeMaskedVByte loads width bytes at a time. A window without
// continuation bits is widened in one step; otherwise it is decoded in
// 16-byte groups as long as a full group is left inside the window.
func decodeMaskedVByte(dst []uint32, src []byte, width int, st *Stats) int {
	in, out := 0, 0
	for len(src)-in >= width {
		mask := continuationMask(src[in : in+width])
		st.addBatch()
		if mask == 0 {
			widenBytes(dst[out:out+width], src[in:in+width])
			st.addFastPath()
			in += width
			out += width
			continue
		}
		for shifted := 0; shifted <= width-groupSize; {
			consumed, produced := readGroupMaskedVByte(dst[out:], src[in:], mask>>uint(shifted), st)
			in += consumed
			out += produced
			shifted += consumed
		}
	}
	return out + decodeTail(dst[out:], src[in:], st)
}

func decodeTail(dst []uint32, src []byte, st *Stats) int {
	n := decodeScalar(dst, src)
	st.addTail(len(src), n)
	return n
}
