//go:build avogen
// +build avogen

package main

import (
	. "github.com/mmcloughlin/avo/build"
	op "github.com/mmcloughlin/avo/operand"
	"github.com/mmcloughlin/avo/reg"
)

// genMovemaskKernel emits the continuation mask builder. PMOVMSKB collects
// the high bit of 16 bytes at a time; successive chunks are shifted into
// place in a 64-bit result, so n must be a multiple of 16 and at most 64.
func genMovemaskKernel() {
	TEXT("movemaskSSE2", NOSPLIT, "func(src *byte, n int) uint64")
	Doc("movemaskSSE2 returns a bitmask with bit i set iff src[i] has its high bit set.")

	src := Load(Param("src"), GP64())
	n := Load(Param("n"), GP64())

	result := GP64()
	XORQ(result, result)
	// The shift count of SHLQ must live in CL.
	XORQ(reg.RCX, reg.RCX)

	loop := "movemask_loop"
	done := "movemask_done"

	Label(loop)
	CMPQ(n, op.Imm(16))
	JL(op.LabelRef(done))

	x := XMM()
	MOVOU(op.Mem{Base: src}, x)
	bits := GP64()
	PMOVMSKB(x, bits)
	SHLQ(reg.CL, bits)
	ORQ(bits, result)

	ADDQ(op.Imm(16), src)
	ADDQ(op.Imm(16), reg.RCX)
	SUBQ(op.Imm(16), n)
	JMP(op.LabelRef(loop))

	Label(done)
	Store(result, ReturnIndex(0))
	RET()
}
