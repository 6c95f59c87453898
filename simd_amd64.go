//go:build amd64 && !noasm

package vbyte

import "golang.org/x/sys/cpu"

func initSIMDSelection() {
	switch {
	case cpu.X86.HasAVX512BW:
		defaultBatchWidth = 64
	case cpu.X86.HasAVX2:
		defaultBatchWidth = 32
	}
	if cpu.X86.HasSSE2 {
		continuationMask = continuationMaskSSE2
		simdAvailable = true
	}
	if cpu.X86.HasSSSE3 {
		shuffleGroup = shuffleGroupSSSE3
	}
}

// Assembly entry points provided by vbyte_amd64.s.
//
//go:noescape
func movemaskSSE2(src *byte, n int) uint64

//go:noescape
func shuffle16SSSE3(dst, src, idx *byte)

func continuationMaskSSE2(batch []byte) uint64 {
	return movemaskSSE2(&batch[0], len(batch))
}

func shuffleGroupSSSE3(dst, src, idx *[groupSize]byte) {
	shuffle16SSSE3(&dst[0], &src[0], &idx[0])
}
