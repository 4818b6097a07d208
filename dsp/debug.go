package dsp

import (
	"github.com/fatih/color"
)

// DebugFlags collects arithmetic events observed while stepping. The
// datapath itself never errors; these exist so a run can report where
// values hit the rails.
type DebugFlags struct {
	SaturationCount int // Clamps performed by the saturate stage
	WrapCount       int // Out-of-window values passed through unsaturated
}

func (df *DebugFlags) Reset() {
	df.SaturationCount = 0
	df.WrapCount = 0
}

func (df *DebugFlags) Print() {
	if df.SaturationCount == 0 && df.WrapCount == 0 {
		color.Green("No saturation or wraparound events")
		return
	}
	if df.SaturationCount > 0 {
		color.Yellow("Saturation clamps:        %d", df.SaturationCount)
	}
	if df.WrapCount > 0 {
		color.Yellow("Unsaturated wraparounds:  %d", df.WrapCount)
	}
}
