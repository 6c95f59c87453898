//go:build avogen
// +build avogen

// Command avo generates vbyte_amd64.s. The package has two assembly
// primitives: the PMOVMSKB continuation mask builder used by every batch and
// the PSHUFB group shuffle used by the masked vbyte strategy.
package main

import (
	"flag"
	"log"

	. "github.com/mmcloughlin/avo/build"
)

var kernels = flag.String("component", "all", "kernels to emit: mask, shuffle or all")

func main() {
	flag.Parse()

	Package("github.com/Akron/vbyte-go")
	ConstraintExpr("amd64")
	ConstraintExpr("!noasm")

	switch *kernels {
	case "mask":
		genMovemaskKernel()
	case "shuffle":
		genShuffleKernel()
	case "all":
		genMovemaskKernel()
		genShuffleKernel()
	default:
		log.Fatalf("unknown component %q", *kernels)
	}

	Generate()
}
