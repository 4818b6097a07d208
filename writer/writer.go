package writer

import (
	"bufio"
	"fmt"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"

	"github.com/rsilicon/rsdspemu/dsp"
)

// TraceWriter dumps one CSV row per cycle: the sampled outputs plus
// the accumulator, for diffing against RTL simulation logs.
type TraceWriter struct {
	file  *os.File
	buf   *bufio.Writer
	cycle int
}

func NewTraceWriter(filename string) (*TraceWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "creating trace %s", filename)
	}

	tw := &TraceWriter{file: file, buf: bufio.NewWriter(file)}
	fmt.Fprintf(tw.buf, "cycle,z,dly_b,acc\n")
	return tw, nil
}

func (tw *TraceWriter) Write(out dsp.Out, acc int64) {
	fmt.Fprintf(tw.buf, "%d,0x%010x,0x%05x,0x%016x\n",
		tw.cycle, out.Z, out.DlyB, uint64(acc))
	tw.cycle += 1
}

func (tw *TraceWriter) Close() error {
	if err := tw.buf.Flush(); err != nil {
		tw.file.Close()
		return err
	}
	return tw.file.Close()
}

type writeStreamer struct {
	data    [][2]float64
	written int
}

func (ws *writeStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := 0; i < len(samples); i++ {
		if ws.written+i >= len(ws.data) {
			ws.written += i
			return i, false
		}
		samples[i] = ws.data[ws.written+i]
	}
	ws.written += len(samples)
	return len(samples), ws.written < len(ws.data)
}

func (ws *writeStreamer) Err() error {
	return nil
}

// SaveAsWAV writes the FIR demo output samples.
func SaveAsWAV(filename string, format beep.Format, samples [][2]float64) error {
	fmt.Printf("* Writing to '%s' (%d samples)\n", filename, len(samples))
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %s", filename)
	}
	defer file.Close()

	if err := wav.Encode(file, &writeStreamer{data: samples}, format); err != nil {
		return errors.Wrapf(err, "encoding %s", filename)
	}
	return nil
}
