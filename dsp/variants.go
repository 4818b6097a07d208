package dsp

import (
	"fmt"
	"sort"

	"github.com/rsilicon/rsdspemu/base"
)

// The fixed-configuration family members. Each is just a Core with a
// preset (output_select, register_inputs) pair; ports a preset does
// not expose stay at their zero defaults in In.
var variantModes = map[string]Mode{
	"MULT":                 {OutputSelect: base.OutMult},
	"MULT_REGIN":           {OutputSelect: base.OutMult, RegisterInputs: true},
	"MULT_REGOUT":          {OutputSelect: base.OutMult | base.OutRegistered},
	"MULT_REGIN_REGOUT":    {OutputSelect: base.OutMult | base.OutRegistered, RegisterInputs: true},
	"MULTADD":              {OutputSelect: base.OutAdd},
	"MULTADD_REGIN":        {OutputSelect: base.OutAdd, RegisterInputs: true},
	"MULTADD_REGOUT":       {OutputSelect: base.OutAdd | base.OutRegistered},
	"MULTADD_REGIN_REGOUT": {OutputSelect: base.OutAdd | base.OutRegistered, RegisterInputs: true},
	"MULTACC":              {OutputSelect: base.OutAccDelayed},
	"MULTACC_REGIN":        {OutputSelect: base.OutAccDelayed, RegisterInputs: true},
	"MULTACC_REGOUT":       {OutputSelect: base.OutAccDelayed | base.OutRegistered},
	"MULTACC_REGIN_REGOUT": {OutputSelect: base.OutAccDelayed | base.OutRegistered, RegisterInputs: true},
}

// VariantMode looks up the preset for a named family member. The
// coefficient bank can be filled in before handing the Mode to
// NewCore; the presets themselves carry zeros.
func VariantMode(name string) (Mode, error) {
	mode, ok := variantModes[name]
	if !ok {
		return Mode{}, fmt.Errorf("unknown variant '%s' (known: %v)",
			name, VariantNames())
	}
	return mode, nil
}

// VariantNames lists the family members in a stable order.
func VariantNames() []string {
	var names []string
	for name := range variantModes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Convenience constructors for the preset table.

func NewMult() *Core            { return NewCore(variantModes["MULT"]) }
func NewMultRegin() *Core       { return NewCore(variantModes["MULT_REGIN"]) }
func NewMultRegout() *Core      { return NewCore(variantModes["MULT_REGOUT"]) }
func NewMultReginRegout() *Core { return NewCore(variantModes["MULT_REGIN_REGOUT"]) }
func NewMultadd() *Core         { return NewCore(variantModes["MULTADD"]) }
func NewMultaddRegin() *Core    { return NewCore(variantModes["MULTADD_REGIN"]) }
func NewMultaddRegout() *Core   { return NewCore(variantModes["MULTADD_REGOUT"]) }
func NewMultaddReginRegout() *Core {
	return NewCore(variantModes["MULTADD_REGIN_REGOUT"])
}
func NewMultacc() *Core       { return NewCore(variantModes["MULTACC"]) }
func NewMultaccRegin() *Core  { return NewCore(variantModes["MULTACC_REGIN"]) }
func NewMultaccRegout() *Core { return NewCore(variantModes["MULTACC_REGOUT"]) }
func NewMultaccReginRegout() *Core {
	return NewCore(variantModes["MULTACC_REGIN_REGOUT"])
}
