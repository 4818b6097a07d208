package axis

/**
  Cycle-accurate model of the stream broadcaster: one AXI4-Stream
  slave port fanned out to N master ports. All lanes carry the same
  payload; only the per-lane valid/ready handshakes differ. A two-slot
  elastic buffer (output register + skid register) keeps the slave
  side full-throughput while any lane stalls for a cycle.

  Same stepping discipline as dsp.Core: one Step() per rising edge,
  outputs sampled pre-edge, synchronous reset via In.Reset.
*/

// Beat is one transfer on the stream: payload plus the end-of-frame
// marker.
type Beat struct {
	Data uint64
	Last bool
}

// In is the broadcaster's input port set for one cycle. Ready must
// have one entry per lane.
type In struct {
	Reset bool
	Valid bool
	Beat  Beat
	Ready []bool
}

// Out is the port set a testbench samples: the slave-side ready that
// was presented this cycle, plus each lane's valid and the shared
// payload.
type Out struct {
	Ready bool
	Valid []bool
	Beat  Beat
}

type Broadcaster struct {
	lanes int

	out       Beat   // Output-holding register, drives every lane
	outValid  []bool // Per-lane valid; cleared as each consumer accepts
	skid      Beat   // One-deep overflow slot
	skidValid bool
	ready     bool // Registered slave-side ready
}

func New(lanes int) *Broadcaster {
	b := new(Broadcaster)
	b.lanes = lanes
	b.outValid = make([]bool, lanes)
	b.Reset()
	return b
}

func (b *Broadcaster) Lanes() int {
	return b.lanes
}

func (b *Broadcaster) Reset() {
	b.out = Beat{}
	b.skid = Beat{}
	b.skidValid = false
	b.ready = false
	for i := range b.outValid {
		b.outValid[i] = false
	}
}

// Step advances the broadcaster by one clock edge.
func (b *Broadcaster) Step(in In) Out {
	if in.Reset {
		b.Reset()
		return Out{Valid: make([]bool, b.lanes)}
	}

	out := Out{
		Ready: b.ready,
		Valid: make([]bool, b.lanes),
		Beat:  b.out,
	}
	copy(out.Valid, b.outValid)

	// The output stage drains this cycle when every lane is either
	// already empty or being accepted right now.
	drained := true
	for i := 0; i < b.lanes; i++ {
		if b.outValid[i] && !in.Ready[i] {
			drained = false
		}
	}

	accepted := b.ready && in.Valid

	// Per-lane consumption first; a load below re-fills every lane.
	for i := 0; i < b.lanes; i++ {
		if b.outValid[i] && in.Ready[i] {
			b.outValid[i] = false
		}
	}

	if accepted && drained {
		// Straight through to the output register
		b.out = in.Beat
		b.fillValid()
	} else if accepted {
		// Output stage still busy; park in the skid slot. b.ready
		// guaranteed the slot was free.
		b.skid = in.Beat
		b.skidValid = true
	} else if drained && b.skidValid {
		// Promote the parked item
		b.out = b.skid
		b.skidValid = false
		b.fillValid()
	}

	// Input can be accepted next cycle as long as the skid slot is
	// free to catch an in-flight beat.
	b.ready = !b.skidValid

	return out
}

func (b *Broadcaster) fillValid() {
	for i := range b.outValid {
		b.outValid[i] = true
	}
}
