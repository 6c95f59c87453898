package vbyte

// Masked vbyte lookup tables.
//
// The low 12 bits of a group's continuation mask determine the lengths of the
// varints that end in its first 12 bytes. Every such pattern maps to one of
// three layouts, each identified by a shuffle id:
//
//	ids   0..63   six varints of at most 2 bytes, one uint16 lane each
//	ids  64..144  four varints of at most 3 bytes, one uint32 lane each
//	ids 145..169  two varints of at most 5 bytes, one uint64 lane each
//
// Within a layout the id encodes the varint lengths, so the shuffle vector is
// a function of the id alone. Patterns that fit no layout are only produced
// by malformed input and have consumed == 0.

const (
	shuffles2Byte  = 0
	shuffles3Byte  = 64
	shuffles5Byte  = 145
	shuffleCount   = 170
	maskPatternLen = 12
	noByte         = 0xFF
)

type groupLayout struct {
	shuffle  uint8 // index into maskedVByteShuffles
	consumed uint8 // bytes of the decoded varints, 0 if undecodable
}

var (
	maskedVByteLayouts  [1 << maskPatternLen]groupLayout
	maskedVByteShuffles [shuffleCount][groupSize]byte
)

func init() {
	for id := 0; id < shuffleCount; id++ {
		maskedVByteShuffles[id] = shuffleForID(id)
	}
	for pattern := 0; pattern < 1<<maskPatternLen; pattern++ {
		maskedVByteLayouts[pattern] = layoutForPattern(uint16(pattern))
	}
}

// patternLengths returns the lengths of the varints terminated within the
// first 12 bytes described by pattern.
func patternLengths(pattern uint16) []int {
	var lengths []int
	start := 0
	for i := 0; i < maskPatternLen; i++ {
		if pattern>>i&1 == 0 {
			lengths = append(lengths, i+1-start)
			start = i + 1
		}
	}
	return lengths
}

// fitsLayout reports whether the first n lengths exist and are all at most
// maxLen bytes long.
func fitsLayout(lengths []int, n, maxLen int) bool {
	if len(lengths) < n {
		return false
	}
	for _, l := range lengths[:n] {
		if l > maxLen {
			return false
		}
	}
	return true
}

func layoutForPattern(pattern uint16) groupLayout {
	lengths := patternLengths(pattern)
	sum := func(n int) uint8 {
		s := 0
		for _, l := range lengths[:n] {
			s += l
		}
		return uint8(s)
	}
	switch {
	case fitsLayout(lengths, 6, 2):
		id := shuffles2Byte
		for j, l := range lengths[:6] {
			id |= (l - 1) << j
		}
		return groupLayout{shuffle: uint8(id), consumed: sum(6)}
	case fitsLayout(lengths, 4, 3):
		id, pow := 0, 1
		for _, l := range lengths[:4] {
			id += (l - 1) * pow
			pow *= 3
		}
		return groupLayout{shuffle: uint8(shuffles3Byte + id), consumed: sum(4)}
	case fitsLayout(lengths, 2, maxVarintLen):
		id := (lengths[0]-1)*maxVarintLen + lengths[1] - 1
		return groupLayout{shuffle: uint8(shuffles5Byte + id), consumed: sum(2)}
	}
	return groupLayout{}
}

// idLengths inverts the id encoding of layoutForPattern. It returns the varint
// lengths of the layout and the lane size in bytes.
func idLengths(id int) (lengths []int, laneBytes int) {
	switch {
	case id < shuffles3Byte:
		for j := 0; j < 6; j++ {
			lengths = append(lengths, id>>j&1+1)
		}
		return lengths, 2
	case id < shuffles5Byte:
		id -= shuffles3Byte
		for j := 0; j < 4; j++ {
			lengths = append(lengths, id%3+1)
			id /= 3
		}
		return lengths, 4
	default:
		id -= shuffles5Byte
		return []int{id/maxVarintLen + 1, id%maxVarintLen + 1}, 8
	}
}

// shuffleForID places the bytes of varint j at the start of lane j and fills
// the rest of the lane with noByte, which the shuffle turns into zero.
func shuffleForID(id int) [groupSize]byte {
	var shuf [groupSize]byte
	for i := range shuf {
		shuf[i] = noByte
	}
	lengths, laneBytes := idLengths(id)
	src := 0
	for j, l := range lengths {
		for b := 0; b < l; b++ {
			shuf[j*laneBytes+b] = byte(src)
			src++
		}
	}
	return shuf
}
