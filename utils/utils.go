package utils

import (
	"fmt"
	"os"

	"github.com/rsilicon/rsdspemu/base"
)

// Mask returns a bitmask covering the lower 'bits' bits.
func Mask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bits)) - 1
}

// SignExtend interprets the lower 'bits' bits of v as a signed
// two's-complement number and returns it widened to 64 bits.
func SignExtend(v uint64, bits int) int64 {
	shl := uint(64 - bits)
	return int64(v<<shl) >> shl
}

// SignBit reports whether the sign position (bit bits-1) of v is set.
func SignBit(v uint64, bits int) bool {
	return v&(uint64(1)<<uint(bits-1)) != 0
}

func Assert(check bool, msg string) {
	if !check {
		fmt.Printf("ASSERT: %s\n", msg)
		os.Exit(-1)
	}
}

// ModeBitsToString renders a decoded configuration word the way the
// datasheets list it, one field per line.
func ModeBitsToString(mode base.ModeBits) string {
	ret := fmt.Sprintf("  MODE_BITS = 0x%05x%016x\n", mode.Hi, mode.Lo)
	for i := 0; i < 4; i++ {
		c := mode.Field(i*base.CoeffWidth, base.CoeffWidth)
		ret += fmt.Sprintf("  COEFF_%d         = 0x%05x\n", i, c)
	}
	sel := base.OutputSelect(mode.Field(80, 3))
	ret += fmt.Sprintf("  output_select   = 0b%03b (%s)\n", uint32(sel), sel)
	ret += fmt.Sprintf("  register_inputs = %d\n", mode.Field(83, 1))
	return ret
}
