package dsp

import (
	"github.com/rsilicon/rsdspemu/base"
	"github.com/rsilicon/rsdspemu/utils"
)

/**
  Cycle-accurate model of the 20x18x64 multiply-accumulate slice.

  One Step() call is one rising clock edge. All next-state values are
  computed from the pre-edge registers plus the current inputs, then
  committed at once, so there are no read-after-write hazards within a
  cycle. Outputs are what a testbench would sample just before the
  edge: combinational paths reflect this cycle's inputs, registered
  paths still hold last cycle's values.
*/

// In is the input port set sampled each cycle. Reset is synchronous
// and dominates every other update rule the cycle it is asserted.
type In struct {
	Reset      bool
	A          uint32 // AWidth bits
	B          uint32 // BWidth bits
	AccFir     uint32 // ShiftWidth bits; left-shift for the adder's FIR term
	Feedback   base.Feedback
	LoadAcc    bool
	UnsignedA  bool
	UnsignedB  bool
	ShiftRight uint32 // ShiftWidth bits
	Round      bool
	Saturate   bool
	Subtract   bool
}

// Out is the output port set of one cycle.
type Out struct {
	Z    uint64 // ZWidth bits
	DlyB uint32 // B delayed by exactly one cycle, BWidth bits
}

type Core struct {
	mode Mode

	acc  int64  // Accumulator register
	zReg uint64 // Extra output pipeline stage
	dlyB uint32 // B passthrough register

	inReg    In        // Front-end input latch, captured every cycle
	shiftDly [2]uint32 // shift_right delay line; [0] one cycle old, [1] two

	Flags *DebugFlags
}

func NewCore(mode Mode) *Core {
	utils.Assert(CheckWidths() == nil, "accumulator narrower than a full product")

	c := new(Core)
	c.mode = mode
	for i := range c.mode.Coeff {
		c.mode.Coeff[i] &= uint32(utils.Mask(base.CoeffWidth))
	}
	c.Flags = new(DebugFlags)
	c.Reset()
	return c
}

func NewCoreFromModeBits(bits base.ModeBits) *Core {
	return NewCore(DecodeModeBits(bits))
}

// Mode returns the configuration the core was built with.
func (c *Core) Mode() Mode {
	return c.mode
}

// Acc exposes the accumulator register for harnesses and tests.
func (c *Core) Acc() int64 {
	return c.acc
}

// Reset forces every register to zero, as a synchronous reset cycle
// would. Step() with In.Reset set is equivalent.
func (c *Core) Reset() {
	c.acc = 0
	c.zReg = 0
	c.dlyB = 0
	c.inReg = In{}
	c.shiftDly[0] = 0
	c.shiftDly[1] = 0
}

func (in *In) sanitize() {
	in.A &= uint32(utils.Mask(base.AWidth))
	in.B &= uint32(utils.Mask(base.BWidth))
	in.AccFir &= uint32(utils.Mask(base.ShiftWidth))
	in.ShiftRight &= uint32(utils.Mask(base.ShiftWidth))
	in.Feedback &= 0x7
}

// Step advances the core by one clock edge and returns the outputs
// for the cycle that just completed.
func (c *Core) Step(in In) Out {
	in.sanitize()

	if in.Reset {
		c.Reset()
		return Out{}
	}

	// Input stage: when register_inputs is set the datapath consumes
	// last cycle's captured values, otherwise the live inputs.
	eff := in
	if c.mode.RegisterInputs {
		eff = c.inReg
	}

	// shift_right taps. The accumulator path has one more cycle of
	// latency than the adder path, so it reads one tap deeper.
	shiftCur := in.ShiftRight
	shiftAligned := c.shiftDly[0]
	if c.mode.RegisterInputs {
		shiftCur = c.shiftDly[0]
		shiftAligned = c.shiftDly[1]
	}

	// Multiplier operand selection
	rawA := eff.A
	rawB := eff.B
	switch eff.Feedback {
	case base.FeedbackInput, base.FeedbackInputAlt:
	case base.FeedbackAOnly:
		rawB = 0
	case base.FeedbackAcc:
		rawA = uint32(uint64(c.acc) & utils.Mask(base.AWidth))
	default:
		rawA = c.mode.Coeff[eff.Feedback-base.FeedbackCoeff0]
	}

	unsignedMode := eff.UnsignedA && eff.UnsignedB
	product := multiply(rawA, rawB, eff.UnsignedA, eff.UnsignedB)

	// Adder. The second addend is selected by the LIVE feedback value
	// even when register_inputs is active; the hardware pipelines it
	// that way. The FeedbackAcc code routes the A input (shifted by
	// acc_fir) into the adder as a streaming FIR term while the
	// multiplier consumes the accumulator itself.
	var addend int64
	switch in.Feedback {
	case base.FeedbackAOnly:
		addend = 0
	case base.FeedbackAcc:
		addend = extend(eff.A, base.AWidth, eff.UnsignedA) << uint(eff.AccFir)
	default:
		addend = c.acc
	}
	p := product
	if eff.Subtract {
		p = -p
	}
	adder := addend + p // wraps at 64 bits

	// Accumulator holds unless load_acc is asserted
	accNext := c.acc
	if eff.LoadAcc {
		accNext = adder
	}

	// Round/shift/saturate
	rawProduct := uint64(product) & utils.Mask(base.ZWidth)
	var rss uint64
	switch c.mode.OutputSelect & 0x3 {
	case base.OutMult:
		rss = rawProduct
	case base.OutAccDelayed:
		rss = c.roundShiftSat(c.acc, shiftAligned, unsignedMode, eff.Round, eff.Saturate)
	case base.OutAdd:
		rss = c.roundShiftSat(adder, shiftCur, unsignedMode, eff.Round, eff.Saturate)
	case base.OutAcc:
		rss = c.roundShiftSat(c.acc, shiftCur, unsignedMode, eff.Round, eff.Saturate)
	}

	// Output mux: top bit of output_select swaps the zero-latency
	// path for the extra register stage.
	z := rss
	if c.mode.OutputSelect.Registered() {
		z = c.zReg
	}
	out := Out{Z: z, DlyB: c.dlyB}

	// Commit
	c.acc = accNext
	c.zReg = rss
	c.dlyB = in.B
	c.shiftDly[1] = c.shiftDly[0]
	c.shiftDly[0] = in.ShiftRight
	c.inReg = in

	return out
}

// multiply implements the sign-magnitude multiplier: each operand is
// reduced to magnitude and sign per its own unsigned flag, magnitudes
// are multiplied, the result is negated when exactly one operand was
// negative. A fully unsigned pair takes the plain unsigned product.
func multiply(a uint32, b uint32, unsignedA bool, unsignedB bool) int64 {
	if unsignedA && unsignedB {
		return int64(uint64(a) * uint64(b))
	}

	signA := !unsignedA && utils.SignBit(uint64(a), base.AWidth)
	signB := !unsignedB && utils.SignBit(uint64(b), base.BWidth)

	magA := uint64(a)
	if signA {
		magA = uint64(-a) & utils.Mask(base.AWidth)
	}
	magB := uint64(b)
	if signB {
		magB = uint64(-b) & utils.Mask(base.BWidth)
	}

	mag := int64(magA * magB)
	if signA != signB {
		mag = -mag
	}
	return mag
}

// extend widens an operand to accumulator width, zero- or
// sign-extending per its unsigned flag.
func extend(v uint32, bits int, unsigned bool) int64 {
	if unsigned {
		return int64(v)
	}
	return utils.SignExtend(uint64(v), bits)
}

func (c *Core) roundShiftSat(v int64, shift uint32, unsignedMode bool, round bool, saturate bool) uint64 {
	if round && shift > 0 {
		v += int64(1) << uint(shift-1)
	}
	if unsignedMode {
		v = int64(uint64(v) >> uint(shift))
	} else {
		v >>= uint(shift)
	}

	if saturate {
		if unsignedMode {
			if uint64(v) > utils.Mask(base.ZWidth) {
				v = int64(utils.Mask(base.ZWidth))
				c.Flags.SaturationCount += 1
			}
		} else {
			max := int64(1)<<(base.ZWidth-1) - 1
			min := -(int64(1) << (base.ZWidth - 1))
			if v > max {
				v = max
				c.Flags.SaturationCount += 1
			} else if v < min {
				v = min
				c.Flags.SaturationCount += 1
			}
		}
	} else if unsignedMode {
		if uint64(v) > utils.Mask(base.ZWidth) {
			c.Flags.WrapCount += 1
		}
	} else if utils.SignExtend(uint64(v), base.ZWidth) != v {
		c.Flags.WrapCount += 1
	}

	return uint64(v) & utils.Mask(base.ZWidth)
}
