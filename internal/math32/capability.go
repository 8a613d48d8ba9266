package math32

import (
	"golang.org/x/sys/cpu"
)

var (
	useAVX2 = cpu.X86.HasAVX2    // nolint unused
	useNEON = cpu.ARM64.HasASIMD // nolint unused
)

// magSqInto is the active implementation, selected once at init.
var magSqInto = magSqIntoGeneric

func init() {
	// The unrolled loop only pays off when the compiler can vectorize the
	// independent lanes; on scalar-only targets the generic loop is as fast.
	if useAVX2 || useNEON {
		magSqInto = magSqIntoUnrolled
	}
}
