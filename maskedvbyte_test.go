package vbyte

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskedVByteLayouts(t *testing.T) {
	valid := 0
	for pattern := 0; pattern < 1<<maskPatternLen; pattern++ {
		layout := maskedVByteLayouts[pattern]
		if layout.consumed == 0 {
			continue
		}
		valid++
		consumed := int(layout.consumed)
		require.LessOrEqual(t, consumed, maskPatternLen, "pattern %#x", pattern)
		require.Zero(t, pattern>>(consumed-1)&1, "pattern %#x must end on a terminator", pattern)

		lengths, _ := idLengths(int(layout.shuffle))
		require.Equal(t, patternLengths(uint16(pattern))[:len(lengths)], lengths, "pattern %#x", pattern)
		sum := 0
		for _, l := range lengths {
			sum += l
		}
		require.Equal(t, consumed, sum, "pattern %#x", pattern)
	}
	assert.Equal(t, 3844, valid)
}

func TestMaskedVByteLayoutExamples(t *testing.T) {
	tests := []struct {
		pattern  uint16
		shuffle  uint8
		consumed uint8
	}{
		{0x000, 0, 6},
		{0x001, 1, 7},
		{0x555, 63, 12},
		// 2, 1, 3 and 1 bytes.
		{0b0_0001_1001, shuffles3Byte + 1 + 2*9, 7},
		// 5 and 1 bytes.
		{0b0_01111, shuffles5Byte + 4*5, 6},
		// 1 and 5 bytes.
		{0b011110, shuffles5Byte + 4, 6},
		{0xFFF, 0, 0},
		// Only one terminator.
		{0xFFE, 0, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, groupLayout{shuffle: tc.shuffle, consumed: tc.consumed},
			maskedVByteLayouts[tc.pattern], "pattern %#x", tc.pattern)
	}
}

func TestShuffleForID(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([groupSize]byte{
		0, noByte, 1, noByte, 2, noByte, 3, noByte, 4, noByte, 5, noByte,
		noByte, noByte, noByte, noByte,
	}, shuffleForID(0))

	// 5 and 2 bytes in uint64 lanes.
	assert.Equal([groupSize]byte{
		0, 1, 2, 3, 4, noByte, noByte, noByte,
		5, 6, noByte, noByte, noByte, noByte, noByte, noByte,
	}, shuffleForID(shuffles5Byte+4*5+1))

	for id := 0; id < shuffleCount; id++ {
		assert.Equal(shuffleForID(id), maskedVByteShuffles[id], "id %d", id)
	}
}

func TestShuffleGroup(t *testing.T) {
	var src, dst, generic [groupSize]byte
	for i := range src {
		src[i] = byte(0xA0 + i)
	}
	rng := rand.New(rand.NewSource(10))
	for id := 0; id < shuffleCount; id++ {
		shuffleGroupGeneric(&generic, &src, &maskedVByteShuffles[id])
		shuffleGroup(&dst, &src, &maskedVByteShuffles[id])
		require.Equal(t, generic, dst, "id %d", id)
	}
	for i := 0; i < 100; i++ {
		var idx [groupSize]byte
		rng.Read(idx[:])
		// PSHUFB only looks at the high bit and the low four bits.
		for j := range idx {
			idx[j] &= 0x8F
		}
		shuffleGroupGeneric(&generic, &src, &idx)
		shuffleGroup(&dst, &src, &idx)
		require.Equal(t, generic, dst, "idx %v", idx)
	}
}

func TestReadGroupMaskedVByte(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for iter := 0; iter < 2000; iter++ {
		src := AppendUint32s(nil, genValues(rng, 20, 1+iter%5))
		require.GreaterOrEqual(t, len(src), groupSize)

		dst := make([]uint32, groupSize)
		consumed, produced := readGroupMaskedVByte(dst, src, continuationMaskGeneric(src[:groupSize]), nil)
		require.Greater(t, produced, 0)

		want := make([]uint32, groupSize)
		n := decodeScalar(want, src[:consumed])
		require.Equal(t, n, produced, "iteration %d", iter)
		require.Equal(t, want[:n], dst[:produced], "iteration %d", iter)
	}
}

func TestReadGroupMaskedVByteFallback(t *testing.T) {
	assert := assert.New(t)
	dst := make([]uint32, groupSize)

	// An over-long first varint fits no layout.
	src := append([]byte{0x81, 0x80, 0x80, 0x80, 0x80, 0x00}, make([]byte, 10)...)
	consumed, produced := readGroupMaskedVByte(dst, src, continuationMaskGeneric(src), nil)
	assert.Equal(6, consumed)
	assert.Equal(1, produced)
	assert.Equal(uint32(1), dst[0])

	// The fallback may read past the group.
	src = append(make([]byte, 0, 20), 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
	src = append(src, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01)
	consumed, produced = readGroupMaskedVByte(dst, src, continuationMaskGeneric(src[:groupSize]), nil)
	assert.Equal(18, consumed)
	assert.Equal(1, produced)
	assert.Equal(uint32(0xFFFFFFFF), dst[0])

	// No terminator at all.
	src = make([]byte, groupSize)
	for i := range src {
		src[i] = 0x80
	}
	consumed, produced = readGroupMaskedVByte(dst, src, continuationMaskGeneric(src), nil)
	assert.Equal(groupSize, consumed)
	assert.Equal(0, produced)
}

func TestReadGroupMaskedVByteCountsLookups(t *testing.T) {
	var st Stats
	src := AppendUint32s(nil, []uint32{300, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14})
	dst := make([]uint32, groupSize)
	consumed, produced := readGroupMaskedVByte(dst, src, continuationMaskGeneric(src[:groupSize]), &st)
	assert.Equal(t, 7, consumed)
	assert.Equal(t, 6, produced)
	assert.Equal(t, []uint32{300, 1, 2, 3, 4, 5}, dst[:6])
	assert.Equal(t, int64(1), st.TableLookups)
}
