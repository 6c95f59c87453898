//go:build avogen
// +build avogen

package main

import (
	. "github.com/mmcloughlin/avo/build"
	op "github.com/mmcloughlin/avo/operand"
)

// genShuffleKernel emits the masked vbyte group shuffle: one PSHUFB of the
// 16 input bytes by a 16-byte index vector. Index bytes with the high bit set
// select zero.
func genShuffleKernel() {
	TEXT("shuffle16SSSE3", NOSPLIT, "func(dst, src, idx *byte)")
	Doc("shuffle16SSSE3 stores src shuffled by idx to dst, 16 bytes each.")

	dst := Load(Param("dst"), GP64())
	src := Load(Param("src"), GP64())
	idx := Load(Param("idx"), GP64())

	data := XMM()
	MOVOU(op.Mem{Base: src}, data)
	ctrl := XMM()
	MOVOU(op.Mem{Base: idx}, ctrl)
	PSHUFB(ctrl, data)
	MOVOU(data, op.Mem{Base: dst})
	RET()
}
