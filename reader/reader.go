package reader

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"

	"github.com/rsilicon/rsdspemu/base"
	"github.com/rsilicon/rsdspemu/dsp"
)

/**
  Stimulus vector files: one line per clock cycle, whitespace-separated
  "name=value" fields. Omitted fields are zero for that cycle. '#'
  starts a comment. Values accept decimal, 0x.. and 0b.. notation.

    # cycle 0: plain unsigned multiply
    a=5 b=3 unsigned_a=1 unsigned_b=1
    a=0x7ffff b=0x1ffff load_acc=1 feedback=3
*/

// ReadVectors parses a stimulus file into per-cycle input port sets.
func ReadVectors(filename string) ([]dsp.In, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var vectors []dsp.In
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo += 1
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var in dsp.In
		for _, field := range fields {
			if err := parseField(&in, field); err != nil {
				return nil, errors.Wrapf(err, "%s:%d", filename, lineNo)
			}
		}
		vectors = append(vectors, in)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}

	return vectors, nil
}

func parseField(in *dsp.In, field string) error {
	parts := strings.SplitN(field, "=", 2)
	if len(parts) != 2 {
		return errors.Errorf("malformed field '%s' (want name=value)", field)
	}
	name := parts[0]

	value, err := strconv.ParseUint(parts[1], 0, 64)
	if err != nil {
		return errors.Wrapf(err, "field '%s'", name)
	}

	switch name {
	case "reset":
		in.Reset = value != 0
	case "a":
		in.A = uint32(value)
	case "b":
		in.B = uint32(value)
	case "acc_fir":
		in.AccFir = uint32(value)
	case "feedback":
		in.Feedback = base.Feedback(value)
	case "load_acc":
		in.LoadAcc = value != 0
	case "unsigned_a":
		in.UnsignedA = value != 0
	case "unsigned_b":
		in.UnsignedB = value != 0
	case "shift_right":
		in.ShiftRight = uint32(value)
	case "round":
		in.Round = value != 0
	case "saturate":
		in.Saturate = value != 0
	case "subtract":
		in.Subtract = value != 0
	default:
		return errors.Errorf("unknown port '%s'", name)
	}
	return nil
}

// ReadWAV decodes an input WAV for the FIR demo path and returns the
// samples together with the stream format.
func ReadWAV(filename string) ([][2]float64, beep.Format, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, beep.Format{}, err
	}
	defer file.Close()

	streamer, format, err := wav.Decode(file)
	if err != nil {
		return nil, format, errors.Wrapf(err, "decoding %s", filename)
	}
	defer streamer.Close()

	var samples [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		samples = append(samples, buf[:n]...)
		if !ok {
			break
		}
	}

	return samples, format, nil
}
