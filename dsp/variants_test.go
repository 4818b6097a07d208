package dsp

import (
	"testing"

	"github.com/rsilicon/rsdspemu/base"
)

func Test_VariantTable(t *testing.T) {
	cases := []struct {
		core *Core
		sel  base.OutputSelect
		reg  bool
	}{
		{NewMult(), 0b000, false},
		{NewMultRegin(), 0b000, true},
		{NewMultRegout(), 0b100, false},
		{NewMultReginRegout(), 0b100, true},
		{NewMultadd(), 0b010, false},
		{NewMultaddRegin(), 0b010, true},
		{NewMultaddRegout(), 0b110, false},
		{NewMultaddReginRegout(), 0b110, true},
		{NewMultacc(), 0b001, false},
		{NewMultaccRegin(), 0b001, true},
		{NewMultaccRegout(), 0b101, false},
		{NewMultaccReginRegout(), 0b101, true},
	}

	for i, c := range cases {
		mode := c.core.Mode()
		if mode.OutputSelect != c.sel {
			t.Errorf("variant %d: output_select != 0b%03b. Got 0b%03b",
				i, uint32(c.sel), uint32(mode.OutputSelect))
		}
		if mode.RegisterInputs != c.reg {
			t.Errorf("variant %d: register_inputs != %t", i, c.reg)
		}
		if mode.Coeff != [4]uint32{} {
			t.Errorf("variant %d: coefficient bank not zeroed", i)
		}
	}
}

func Test_VariantMatchesDirectConfiguration(t *testing.T) {
	// A preset must behave exactly like a Core configured by hand
	for _, name := range VariantNames() {
		mode, err := VariantMode(name)
		if err != nil {
			t.Fatalf("%s: %s", name, err)
		}

		preset := NewCore(mode)
		direct := NewCore(Mode{OutputSelect: mode.OutputSelect,
			RegisterInputs: mode.RegisterInputs})

		inputs := []In{
			{Reset: true},
			{A: 5, B: 3, UnsignedA: true, UnsignedB: true, LoadAcc: true},
			{A: 0x80001, B: 0x3FFFE, LoadAcc: true, Subtract: true},
			{A: 7, B: 7, Feedback: base.FeedbackAcc, LoadAcc: true},
			{ShiftRight: 2, Round: true, Saturate: true},
			{},
		}
		for cycle, in := range inputs {
			a := preset.Step(in)
			b := direct.Step(in)
			if a != b {
				t.Errorf("%s: cycle %d diverged: %+v != %+v", name, cycle, a, b)
			}
		}
	}
}

func Test_UnknownVariant(t *testing.T) {
	if _, err := VariantMode("MULTDIV"); err == nil {
		t.Errorf("bogus variant accepted")
	}
}
