package settings

var Version = "0.1"

// Simulation config file (YAML). Optional; flags below override.
var ConfigFile = ""

// Stimulus vector file driving the DSP core cycle by cycle
var VectorFilename = ""

// Input/output WAV files for the FIR demo path
var InputWav = ""
var OutputWav = "output.wav"

// CSV trace of z/dly_b/acc per cycle
var TraceFilename = ""

// Named variant preset (MULT, MULTADD_REGIN, ...). Empty means the
// mode word below is used as-is.
var Variant = ""

// Configuration word fields (see base.ModeBits)
var Coefficients = [4]uint32{0, 0, 0, 0}
var OutputSelect = 0
var RegisterInputs = false

// Broadcaster demo
var AxisRun = false
var AxisLanes = 4
var AxisItems = 256

// Decode and print the mode word, then exit
var PrintMode = false

// Step debugger (plain color trace, one key per cycle)
var StepDebug = false

// Full-screen TUI debugger
var Debugger = false

// Print overflow/saturation counters after a run
var PrintStats = false
