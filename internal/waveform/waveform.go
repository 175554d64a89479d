// Package waveform synthesises the carrier bursts ("pulses") the KCS
// frame encoder concatenates into a sample stream: one cycle of a
// sine or square wave at a given frequency, scaled by amplitude and
// tiled to the requested cycle count.
package waveform

import (
	"math"

	"github.com/jsh6789/kcsmodem/internal/params"
)

// Generator synthesises carrier cycles for a fixed framerate, shape
// and amplitude. It holds no mutable state; the same Generator can be
// reused across an entire encode run.
type Generator struct {
	framerate int
	amplitude float64
	shape     params.Waveform
}

// New builds a Generator from a Params snapshot.
func New(p params.Params) *Generator {
	return &Generator{
		framerate: p.Framerate,
		amplitude: clip(p.Amplitude, 0, 1),
		shape:     p.Waveform,
	}
}

// Synthesise produces `cycles` repetitions of one cycle of the
// generator's waveform at `frequency` Hz, as signed 16-bit samples
// centred on zero. Returns an empty (non-nil) slice if cycles==0 or
// frequency==0.
func (g *Generator) Synthesise(frequency, cycles int) []int16 {
	if cycles <= 0 || frequency <= 0 {
		return []int16{}
	}

	cycleLength := g.framerate / frequency
	if cycleLength <= 0 {
		return []int16{}
	}

	firstCycle := make([]int16, cycleLength)
	switch g.shape {
	case params.Square:
		g.fillSquareCycle(firstCycle)
	default:
		g.fillSineCycle(firstCycle)
	}

	dataLength := cycleLength * cycles
	data := make([]int16, dataLength)
	// Tile by bitwise copy: every cycle begins and ends at the same
	// sample value, so adjacent tiles are phase-continuous.
	for x := 0; x < dataLength; x += cycleLength {
		copy(data[x:x+cycleLength], firstCycle)
	}
	return data
}

// fillSineCycle starts the phase at pi/2 so the cycle begins at
// positive peak rather than a zero crossing, keeping every cycle
// boundary at the same sample value for clean tiling.
func (g *Generator) fillSineCycle(cycle []int16) {
	const startPhase = math.Pi / 2
	n := len(cycle)
	for k := 0; k < n; k++ {
		v := g.amplitude * math.Sin(2*math.Pi*float64(k)/float64(n)+startPhase)
		cycle[k] = toInt16(clip(v, -1, 1))
	}
}

// fillSquareCycle fills the first half with +amplitude and the
// second half with -amplitude.
func (g *Generator) fillSquareCycle(cycle []int16) {
	n := len(cycle)
	half := n / 2
	high := toInt16(clip(g.amplitude, 0, 1))
	low := -high
	for k := 0; k < half; k++ {
		cycle[k] = high
	}
	for k := half; k < n; k++ {
		cycle[k] = low
	}
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func toInt16(v float64) int16 {
	return int16(v * math.MaxInt16)
}
