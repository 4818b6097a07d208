package main

import (
	"flag"
	"fmt"
	"math/rand"
	"syscall"

	"github.com/fatih/color"

	"github.com/rsilicon/rsdspemu/axis"
	"github.com/rsilicon/rsdspemu/base"
	"github.com/rsilicon/rsdspemu/config"
	"github.com/rsilicon/rsdspemu/debugger"
	"github.com/rsilicon/rsdspemu/dsp"
	"github.com/rsilicon/rsdspemu/reader"
	"github.com/rsilicon/rsdspemu/settings"
	"github.com/rsilicon/rsdspemu/utils"
	"github.com/rsilicon/rsdspemu/writer"
)

func parseCommandLineParameters() {
	flag.StringVar(&settings.ConfigFile, "config", settings.ConfigFile, "Simulation config file (YAML/TOML)")
	flag.StringVar(&settings.VectorFilename, "vec", settings.VectorFilename, "Stimulus vector file")
	flag.StringVar(&settings.TraceFilename, "trace", settings.TraceFilename, "CSV trace output file")
	flag.StringVar(&settings.Variant, "variant", settings.Variant, "Named preset (MULT, MULTACC_REGIN, ...)")
	flag.StringVar(&settings.InputWav, "in", settings.InputWav, "Input wav-file (FIR demo)")
	flag.StringVar(&settings.OutputWav, "out", settings.OutputWav, "Output wav-file (FIR demo)")
	flag.BoolVar(&settings.PrintMode, "print-mode", settings.PrintMode, "Decode and print the mode word")
	flag.BoolVar(&settings.PrintStats, "print-stats", settings.PrintStats, "Print overflow counters after a run")
	flag.BoolVar(&settings.StepDebug, "step-debug", settings.StepDebug, "Single-step with a state printout per cycle")
	flag.BoolVar(&settings.Debugger, "debugger", settings.Debugger, "Interactive TUI cycle stepper")
	flag.BoolVar(&settings.AxisRun, "axis", settings.AxisRun, "Run the stream broadcaster self-check")
	flag.IntVar(&settings.AxisLanes, "lanes", settings.AxisLanes, "Broadcaster output lanes")
	flag.IntVar(&settings.AxisItems, "items", settings.AxisItems, "Broadcaster self-check item count")
	flag.Parse()
}

func buildMode() dsp.Mode {
	var mode dsp.Mode
	if settings.Variant != "" {
		var err error
		mode, err = dsp.VariantMode(settings.Variant)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			syscall.Exit(-1)
		}
	} else {
		mode.OutputSelect = base.OutputSelect(settings.OutputSelect)
		mode.RegisterInputs = settings.RegisterInputs
	}
	mode.Coeff = settings.Coefficients
	return mode
}

func main() {
	fmt.Printf("* RS_DSP/axis_broadcast emulator v%s\n", settings.Version)

	parseCommandLineParameters()

	// The config file fills in whatever the flags left at defaults
	if err := config.Load(); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		syscall.Exit(-1)
	}

	if err := dsp.CheckWidths(); err != nil {
		fmt.Printf("ERROR: unbuildable configuration: %s\n", err)
		syscall.Exit(-1)
	}

	mode := buildMode()

	if settings.PrintMode {
		fmt.Print(utils.ModeBitsToString(mode.Encode()))
		return
	}

	if settings.AxisRun {
		runBroadcaster()
		return
	}

	if settings.InputWav != "" {
		if err := runFIRDemo(mode); err != nil {
			fmt.Printf("ERROR: %s\n", err)
			syscall.Exit(-1)
		}
		return
	}

	if settings.VectorFilename == "" {
		fmt.Println("No stimulus specified. Use '-vec', '-in' or '-axis'.")
		syscall.Exit(-1)
	}

	vectors, err := reader.ReadVectors(settings.VectorFilename)
	if err != nil {
		fmt.Printf("Reading vector file failed: %s\n", err)
		syscall.Exit(-1)
	}
	fmt.Printf("* %d cycles from '%s'\n", len(vectors), settings.VectorFilename)

	core := dsp.NewCore(mode)

	if settings.Debugger {
		if err := debugger.Run(core, vectors); err != nil {
			fmt.Printf("ERROR: %s\n", err)
			syscall.Exit(-1)
		}
		return
	}

	var trace *writer.TraceWriter
	onCycle := func(cycle int, out dsp.Out, acc int64) {
		fmt.Printf("%6d: z=0x%010x dly_b=0x%05x\n", cycle, out.Z, out.DlyB)
	}
	if settings.TraceFilename != "" {
		trace, err = writer.NewTraceWriter(settings.TraceFilename)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			syscall.Exit(-1)
		}
		defer trace.Close()
		onCycle = func(cycle int, out dsp.Out, acc int64) {
			trace.Write(out, acc)
		}
	}

	if err := dsp.RunVectors(core, vectors, onCycle); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		syscall.Exit(-1)
	}

	if settings.PrintStats {
		core.Flags.Print()
	}
}

/*
  FIR demo: the input WAV is run through the coefficient bank as a
  4-tap filter. Each output sample is four MAC cycles (one per
  coefficient, B carrying the delayed input samples) plus a reset
  cycle to clear the accumulator for the next window.
*/
func runFIRDemo(mode dsp.Mode) error {
	samples, format, err := reader.ReadWAV(settings.InputWav)
	if err != nil {
		return err
	}
	fmt.Printf("* Filtering %d samples through the coefficient bank\n", len(samples))

	// The adder output exposes the full 4-tap sum combinationally on
	// the last MAC cycle of each window
	mode.OutputSelect = base.OutAdd
	mode.RegisterInputs = false
	if mode.Coeff == [4]uint32{0, 0, 0, 0} {
		mode.Coeff[0] = 1 << 16 // Unity passthrough when unconfigured
	}
	core := dsp.NewCore(mode)

	toB := func(v float64) uint32 {
		// Scale to the signed 18-bit B operand range
		s := int32(v * float64(int64(1)<<(base.BWidth-1)-1))
		return uint32(s) & uint32(utils.Mask(base.BWidth))
	}
	fromZ := func(z uint64) float64 {
		return float64(utils.SignExtend(z, base.ZWidth)) /
			float64(int64(1)<<(base.BWidth-1)-1)
	}

	output := make([][2]float64, len(samples))
	for ch := 0; ch < 2; ch++ {
		core.Step(dsp.In{Reset: true})
		for n := range samples {
			var out dsp.Out
			for tap := 0; tap < 4; tap++ {
				x := 0.0
				if n-tap >= 0 {
					x = samples[n-tap][ch]
				}
				out = core.Step(dsp.In{
					B:        toB(x),
					Feedback: base.FeedbackCoeff0 + base.Feedback(tap),
					LoadAcc:  true,
					Saturate: true,
				})
			}
			// Coefficients are CoeffWidth-bit integers; normalize so
			// a bank of {1<<16,0,0,0} is unity gain.
			output[n][ch] = fromZ(out.Z) / float64(int64(1)<<16)
			core.Step(dsp.In{Reset: true})
		}
	}

	return writer.SaveAsWAV(settings.OutputWav, format, output)
}

// runBroadcaster replays random traffic with random per-lane ready
// patterns and checks every lane sees every item exactly once.
func runBroadcaster() {
	lanes := settings.AxisLanes
	b := axis.New(lanes)

	var sent []uint64
	received := make([][]uint64, lanes)
	next := uint64(1)

	b.Step(axis.In{Reset: true, Ready: make([]bool, lanes)})

	cycles := 0
	for len(received[0]) < settings.AxisItems && cycles < settings.AxisItems*100 {
		in := axis.In{
			Valid: rand.Intn(4) != 0,
			Beat:  axis.Beat{Data: next},
			Ready: make([]bool, lanes),
		}
		for i := range in.Ready {
			in.Ready[i] = rand.Intn(2) == 0
		}

		out := b.Step(in)
		if out.Ready && in.Valid {
			sent = append(sent, next)
			next += 1
		}
		for i := 0; i < lanes; i++ {
			if out.Valid[i] && in.Ready[i] {
				received[i] = append(received[i], out.Beat.Data)
			}
		}
		cycles += 1
	}

	ok := true
	for i := 0; i < lanes; i++ {
		for j := range received[i] {
			if j >= len(sent) || received[i][j] != sent[j] {
				color.Red("lane %d: item %d mismatch", i, j)
				ok = false
				break
			}
		}
	}
	if ok {
		color.Green("axis_broadcast: %d items x %d lanes replayed in order (%d cycles)",
			len(received[0]), lanes, cycles)
	}
}
