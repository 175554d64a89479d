// Package params holds the immutable configuration for a single KCS
// encode or decode run: framerate, mark/space frequencies, cycle
// counts, amplitude, squelch, leader/trailer lengths, null-pulse
// length and waveform shape.
package params

import "math"

// Waveform selects the shape synthesised for one carrier cycle.
type Waveform int

const (
	Sine Waveform = iota
	Square
)

func (w Waveform) String() string {
	switch w {
	case Square:
		return "square"
	default:
		return "sine"
	}
}

// ParseWaveform maps a CLI/config string onto a Waveform, defaulting
// to Sine for anything other than "square".
func ParseWaveform(s string) Waveform {
	if s == "square" {
		return Square
	}
	return Sine
}

// Standard KCS profile constants.
const (
	DefaultFramerate   = 44100
	DefaultMarkFreq    = 2400
	DefaultSpaceFreq   = 1200
	DefaultMarkCycles  = 8 // symmetric on both encode and decode side
	DefaultSpaceCycles = 4
	DefaultAmplitude   = 0.8
	DefaultSquelch     = 0.25
	DefaultLeaderSecs  = 5
	DefaultTrailerSecs = 5
	DefaultNullCycles  = 800

	// RawBufferSize is the fixed decode window used by "raw" streaming
	// mode, matching decode_raw.c's hardcoded BUFFER_SIZE.
	RawBufferSize = 19408
)

// Params is an immutable snapshot of every tunable the encoder and
// decoder consult. A Params value is constructed once per run and
// never mutated afterwards; every component that needs it is handed a
// copy (Params has no pointer fields, so copies are fully independent).
type Params struct {
	Framerate    int
	MarkFreq     int
	SpaceFreq    int
	MarkCycles   int
	SpaceCycles  int
	Amplitude    float64
	Squelch      float64
	LeaderSecs   float64
	TrailerSecs  float64
	NullCycles   int
	Waveform     Waveform
}

// Standard returns the standard KCS profile: mark=2400Hz, space=1200Hz,
// 8 mark cycles, 4 space cycles, amplitude=0.8, squelch=0.25, sine
// waveform, with a 5s leader/trailer and null pulses disabled.
func Standard() Params {
	return Params{
		Framerate:   DefaultFramerate,
		MarkFreq:    DefaultMarkFreq,
		SpaceFreq:   DefaultSpaceFreq,
		MarkCycles:  DefaultMarkCycles,
		SpaceCycles: DefaultSpaceCycles,
		Amplitude:   DefaultAmplitude,
		Squelch:     DefaultSquelch,
		LeaderSecs:  DefaultLeaderSecs,
		TrailerSecs: DefaultTrailerSecs,
		NullCycles:  0,
		Waveform:    Sine,
	}
}

// Clipped returns a copy of p with amplitude and squelch clamped into
// [0,1]. Out-of-range values are silently clipped rather than rejected,
// so a bad parameter never aborts a run.
func (p Params) Clipped() Params {
	p.Amplitude = clip01(p.Amplitude)
	p.Squelch = clip01(p.Squelch)
	return p
}

func clip01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// MarkCycleLength is floor(F/f1), the sample length of one mark cycle.
func (p Params) MarkCycleLength() int {
	return p.Framerate / p.MarkFreq
}

// SpaceCycleLength is floor(F/f0), the sample length of one space cycle.
func (p Params) SpaceCycleLength() int {
	return p.Framerate / p.SpaceFreq
}

// LeaderCycles is the number of mark cycles making up the leader
// carrier: L seconds worth of the mark tone.
func (p Params) LeaderCycles() int {
	return int(p.LeaderSecs * float64(p.MarkFreq))
}

// TrailerCycles is the number of mark cycles making up the trailer
// carrier: T seconds worth of the mark tone.
func (p Params) TrailerCycles() int {
	return int(p.TrailerSecs * float64(p.MarkFreq))
}

// StreamBufferSize returns the default sliding-window buffer size for
// the non-raw ("backend-agnostic") streaming driver: 264 times the
// longer of a mark or a space symbol's sample length, matching
// kcs_decode_pa's dec_blocksize formula.
func (p Params) StreamBufferSize() int {
	markSamples := p.Framerate * p.MarkCycles / p.MarkFreq
	spaceSamples := p.Framerate * p.SpaceCycles / p.SpaceFreq
	longest := markSamples
	if spaceSamples > longest {
		longest = spaceSamples
	}
	return 264 * longest
}
