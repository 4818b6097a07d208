package dsp

import (
	"fmt"
	"syscall"

	"github.com/eiannone/keyboard"
	"github.com/fatih/color"

	"github.com/rsilicon/rsdspemu/settings"
)

const debugPrompt = "< (N)ext cycle | (R)un | (V)iew config | (Q)uit >"

// RunVectors clocks the core through a stimulus list. If onCycle is
// non-nil it is called with every cycle's sampled outputs (trace
// writers hook in here). With settings.StepDebug set the run stops
// after every cycle and waits for a key, teaching-bench style.
func RunVectors(core *Core, vectors []In, onCycle func(int, Out, int64)) error {
	running := false

	for cycle, in := range vectors {
		if settings.StepDebug && !running {
			color.Blue("cycle=%d (of %d), ACC=%d", cycle, len(vectors), core.Acc())
			color.Cyan("  %s", inputsToString(in))
		}

		out := core.Step(in)

		if onCycle != nil {
			onCycle(cycle, out, core.Acc())
		}

		if settings.StepDebug && !running {
			color.White("  => z=0x%010x dly_b=0x%05x ACC=%d",
				out.Z, out.DlyB, core.Acc())
			fmt.Println()
			color.Yellow(debugPrompt)

			for {
				char, _, err := keyboard.GetSingleKey()
				if err != nil {
					return err
				}

				if char == 'q' {
					syscall.Exit(1)
				} else if char == 'r' {
					running = true
					break
				} else if char == 'v' {
					color.White("  output_select=%s register_inputs=%t coeffs=%v",
						core.mode.OutputSelect, core.mode.RegisterInputs,
						core.mode.Coeff)
					color.Yellow(debugPrompt)
				} else if char == 'n' || char == 0 {
					break
				}
			}
		}
	}

	return nil
}

func inputsToString(in In) string {
	ret := fmt.Sprintf("a=0x%05x b=0x%05x feedback=%s", in.A, in.B, in.Feedback)
	if in.Reset {
		ret = "RESET " + ret
	}
	if in.UnsignedA {
		ret += " uns_a"
	}
	if in.UnsignedB {
		ret += " uns_b"
	}
	if in.LoadAcc {
		ret += " load_acc"
	}
	if in.Subtract {
		ret += " subtract"
	}
	if in.AccFir != 0 {
		ret += fmt.Sprintf(" acc_fir=%d", in.AccFir)
	}
	if in.ShiftRight != 0 {
		ret += fmt.Sprintf(" shift_right=%d", in.ShiftRight)
	}
	if in.Round {
		ret += " round"
	}
	if in.Saturate {
		ret += " saturate"
	}
	return ret
}
