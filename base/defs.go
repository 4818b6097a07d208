package base

// Port widths for the 20x18x64 MAC slice. The accumulator must be at
// least AWidth+BWidth bits wide; dsp.CheckWidths() verifies this before
// a simulation is allowed to start.
const (
	AWidth     = 20 // Multiplier operand A
	BWidth     = 18 // Multiplier operand B
	ZWidth     = 38 // Output port (also the saturation window)
	AccWidth   = 64 // Accumulator register
	CoeffWidth = 20 // Fixed coefficient bank entries
	ShiftWidth = 6  // shift_right / acc_fir fields
	ModeWidth  = 84 // Configuration word
)

// Feedback selects the multiplier's A operand and, indirectly, the
// adder's second addend (see dsp.Core).
type Feedback uint32

const (
	FeedbackInput    Feedback = 0 // Multiply the current A input
	FeedbackInputAlt Feedback = 1 // Same as FeedbackInput (alias encoding)
	FeedbackAOnly    Feedback = 2 // A input, with B forced to zero
	FeedbackAcc      Feedback = 3 // Low AWidth bits of the accumulator
	FeedbackCoeff0   Feedback = 4
	FeedbackCoeff1   Feedback = 5
	FeedbackCoeff2   Feedback = 6
	FeedbackCoeff3   Feedback = 7
)

var feedbackNames = map[Feedback]string{
	FeedbackInput:    "INPUT",
	FeedbackInputAlt: "INPUT",
	FeedbackAOnly:    "A_ONLY",
	FeedbackAcc:      "ACC",
	FeedbackCoeff0:   "COEFF_0",
	FeedbackCoeff1:   "COEFF_1",
	FeedbackCoeff2:   "COEFF_2",
	FeedbackCoeff3:   "COEFF_3",
}

func (f Feedback) String() string {
	name, ok := feedbackNames[f&0x7]
	if !ok {
		return "<?>"
	}
	return name
}

// OutputSelect picks what the z port reflects.
//
//   bit 2: one-cycle-delayed output register instead of the zero-latency path
//   bit 1: adder result (instead of the accumulator) into round/shift/saturate
//   bit 0: accumulator path uses the current shift amount instead of the
//          delay-aligned one
//
// The 0b000 code bypasses round/shift/saturate entirely and exposes the
// raw multiplier product.
type OutputSelect uint32

const (
	OutMult       OutputSelect = 0 // Raw multiplier product
	OutAccDelayed OutputSelect = 1 // Saturated accumulator, aligned shift
	OutAdd        OutputSelect = 2 // Saturated adder output
	OutAcc        OutputSelect = 3 // Saturated accumulator, current shift

	// OR with one of the above for the extra output register stage
	OutRegistered OutputSelect = 4
)

var outputSelectNames = map[OutputSelect]string{
	OutMult:                       "MULT",
	OutAccDelayed:                 "ACC_DLY",
	OutAdd:                        "ADD",
	OutAcc:                        "ACC",
	OutMult | OutRegistered:       "MULT_REG",
	OutAccDelayed | OutRegistered: "ACC_DLY_REG",
	OutAdd | OutRegistered:        "ADD_REG",
	OutAcc | OutRegistered:        "ACC_REG",
}

func (sel OutputSelect) String() string {
	name, ok := outputSelectNames[sel&0x7]
	if !ok {
		return "<?>"
	}
	return name
}

// Registered reports whether the extra output pipeline stage is selected.
func (sel OutputSelect) Registered() bool {
	return sel&OutRegistered != 0
}

// FromAdder reports whether the round/shift/saturate stage reads the
// combinational adder output rather than the accumulator register.
func (sel OutputSelect) FromAdder() bool {
	return sel&0x2 != 0
}

// ModeBits is the 84-bit configuration word. Lo holds bits 63:0, Hi
// holds bits 83:64.
//
//   bits [19:0]  COEFF_0
//   bits [39:20] COEFF_1
//   bits [59:40] COEFF_2
//   bits [79:60] COEFF_3
//   bits [82:80] output_select
//   bit  [83]    register_inputs
type ModeBits struct {
	Hi uint32
	Lo uint64
}

// Field extracts 'width' bits starting at bit 'pos'.
func (m ModeBits) Field(pos int, width int) uint32 {
	var v uint64
	if pos >= 64 {
		v = uint64(m.Hi) >> uint(pos-64)
	} else {
		v = m.Lo >> uint(pos)
		if pos+width > 64 {
			v |= uint64(m.Hi) << uint(64-pos)
		}
	}
	return uint32(v) & uint32((uint64(1)<<uint(width))-1)
}
