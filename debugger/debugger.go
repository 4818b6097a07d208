package debugger

import (
	"fmt"

	termui "github.com/gizak/termui/v3"
	ui "github.com/gizak/termui/v3"
	widgets "github.com/gizak/termui/v3/widgets"

	"github.com/rsilicon/rsdspemu/dsp"
	"github.com/rsilicon/rsdspemu/settings"
	"github.com/rsilicon/rsdspemu/utils"
)

type uiState struct {
	terminalWidth  int
	terminalHeight int

	vectorView *widgets.Paragraph
	stateView  *widgets.Paragraph
	modeView   *widgets.Paragraph
	helpLine   *widgets.Paragraph
}

var views uiState

var boxTitleStyle = termui.NewStyle(termui.ColorRed, termui.ColorBlue)

// Run single-steps a core through the vector list under a termui
// screen. Returns when the user quits or the vectors run out.
func Run(core *dsp.Core, vectors []dsp.In) error {
	if err := ui.Init(); err != nil {
		return err
	}
	defer ui.Close()

	width, height := termui.TerminalDimensions()
	views.terminalWidth = width
	views.terminalHeight = height
	views.vectorView = widgets.NewParagraph()
	views.stateView = widgets.NewParagraph()
	views.modeView = widgets.NewParagraph()
	views.helpLine = widgets.NewParagraph()

	cycle := 0
	var lastOut dsp.Out
	for cycle < len(vectors) {
		updateScreen(core, vectors, cycle, lastOut)

		switch waitForInput() {
		case "quit":
			return nil
		case "next cycle":
			lastOut = core.Step(vectors[cycle])
			cycle += 1
		case "next 10":
			for i := 0; i < 10 && cycle < len(vectors); i++ {
				lastOut = core.Step(vectors[cycle])
				cycle += 1
			}
		case "run":
			for cycle < len(vectors) {
				lastOut = core.Step(vectors[cycle])
				cycle += 1
			}
		case "resize":
			width, height = termui.TerminalDimensions()
			views.terminalWidth = width
			views.terminalHeight = height
			ui.Clear()
		}
	}

	updateScreen(core, vectors, cycle, lastOut)
	waitForQuit()
	return nil
}

func waitForInput() string {
	for e := range ui.PollEvents() {
		switch e.ID {
		case "q", "<C-c>", "<Escape>":
			return "quit"
		case "n", "<Down>", "<Enter>":
			return "next cycle"
		case "s", "<PageDown>":
			return "next 10"
		case "r", "<End>":
			return "run"
		case "<Resize>":
			return "resize"
		}
	}
	return "quit"
}

func waitForQuit() {
	for e := range ui.PollEvents() {
		switch e.ID {
		case "q", "<C-c>", "<Escape>", "<Enter>":
			return
		}
	}
}

func updateScreen(core *dsp.Core, vectors []dsp.In, cycle int, lastOut dsp.Out) {
	updateVectorView(vectors, cycle)
	updateStateView(core, cycle, lastOut)
	updateModeView(core)

	views.helpLine.Text =
		"[ESC/q:](fg:black) Quit [|](fg:white,bg:black) " +
			"[n:](fg:black) Next cycle [|](fg:white,bg:black) " +
			"[s:](fg:black) +10 cycles [|](fg:white,bg:black) " +
			"[r:](fg:black) Run to end "
	views.helpLine.Border = false
	views.helpLine.TextStyle = boxTitleStyle
	views.helpLine.SetRect(0, views.terminalHeight-1,
		views.terminalWidth, views.terminalHeight)

	ui.Render(views.vectorView, views.stateView, views.modeView, views.helpLine)
}

func updateVectorView(vectors []dsp.In, cycle int) {
	height := views.terminalHeight - 1
	first := cycle - height/2
	if first < 0 {
		first = 0
	}

	text := ""
	for i := first; i < len(vectors) && i < first+height-2; i++ {
		line := fmt.Sprintf("%4d: %s", i, vectorToString(vectors[i]))
		if i == cycle {
			text += fmt.Sprintf("[%s](fg:black,bg:white)\n", line)
		} else {
			text += line + "\n"
		}
	}

	views.vectorView.Title = "Stimulus"
	views.vectorView.Text = text
	views.vectorView.SetRect(0, 0, views.terminalWidth/2, height)
}

func vectorToString(in dsp.In) string {
	ret := fmt.Sprintf("a=0x%05x b=0x%05x fb=%s", in.A, in.B, in.Feedback)
	if in.Reset {
		ret = "RESET " + ret
	}
	if in.LoadAcc {
		ret += " load"
	}
	if in.Subtract {
		ret += " sub"
	}
	if in.ShiftRight != 0 {
		ret += fmt.Sprintf(" shr=%d", in.ShiftRight)
	}
	return ret
}

func updateStateView(core *dsp.Core, cycle int, lastOut dsp.Out) {
	views.stateView.Title = fmt.Sprintf("State @ cycle %d", cycle)
	views.stateView.Text = fmt.Sprintf(
		"ACC:   [0x%016x](fg:cyan) (%d)\n"+
			"z:     [0x%010x](fg:cyan)\n"+
			"dly_b: [0x%05x](fg:cyan)\n"+
			"\nSaturation clamps: %d\nWraparounds:       %d",
		uint64(core.Acc()), core.Acc(), lastOut.Z, lastOut.DlyB,
		core.Flags.SaturationCount, core.Flags.WrapCount)
	views.stateView.SetRect(views.terminalWidth/2, 0,
		views.terminalWidth, (views.terminalHeight-1)/2)
}

func updateModeView(core *dsp.Core) {
	mode := core.Mode()
	views.modeView.Title = "Configuration"
	views.modeView.Text = utils.ModeBitsToString(mode.Encode())
	if settings.Variant != "" {
		views.modeView.Title = "Configuration (" + settings.Variant + ")"
	}
	views.modeView.SetRect(views.terminalWidth/2, (views.terminalHeight-1)/2,
		views.terminalWidth, views.terminalHeight-1)
}
