package dsp

import (
	"fmt"

	"github.com/rsilicon/rsdspemu/base"
)

// Mode is the decoded form of the 84-bit configuration word. It is
// fixed at construction time; a Core never re-reads it mid-run.
type Mode struct {
	Coeff          [4]uint32 // COEFF_0..3, CoeffWidth bits each
	OutputSelect   base.OutputSelect
	RegisterInputs bool
}

// DecodeModeBits unpacks a configuration word. Pure; any 84-bit
// pattern decodes to something.
func DecodeModeBits(bits base.ModeBits) Mode {
	var m Mode
	for i := 0; i < 4; i++ {
		m.Coeff[i] = bits.Field(i*base.CoeffWidth, base.CoeffWidth)
	}
	m.OutputSelect = base.OutputSelect(bits.Field(80, 3))
	m.RegisterInputs = bits.Field(83, 1) != 0
	return m
}

// Encode packs a Mode back into the wire layout.
func (m Mode) Encode() base.ModeBits {
	var bits base.ModeBits
	for i := 0; i < 4; i++ {
		c := uint64(m.Coeff[i]) & ((1 << base.CoeffWidth) - 1)
		pos := i * base.CoeffWidth
		if pos < 64 {
			bits.Lo |= c << uint(pos)
			if pos+base.CoeffWidth > 64 {
				bits.Hi |= uint32(c >> uint(64-pos))
			}
		} else {
			bits.Hi |= uint32(c << uint(pos-64))
		}
	}
	bits.Hi |= (uint32(m.OutputSelect) & 0x7) << (80 - 64)
	if m.RegisterInputs {
		bits.Hi |= 1 << (83 - 64)
	}
	return bits
}

// CheckWidths is the elaboration-time precondition: the accumulator
// must hold a full product. A violation is unbuildable, not a runtime
// condition.
func CheckWidths() error {
	if base.AccWidth < base.AWidth+base.BWidth {
		return fmt.Errorf("accumulator width (%d) < operand widths %d+%d",
			base.AccWidth, base.AWidth, base.BWidth)
	}
	if base.ZWidth > base.AccWidth {
		return fmt.Errorf("output width (%d) > accumulator width (%d)",
			base.ZWidth, base.AccWidth)
	}
	return nil
}
