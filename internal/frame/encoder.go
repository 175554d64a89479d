// Package frame implements the KCS frame encoder: it turns a byte
// buffer into a concatenated sample stream, framing each byte with a
// start bit, eight LSB-first data bits, an optional null pulse after
// a newline, and two stop bits.
package frame

import (
	"errors"
	"io"

	"github.com/jsh6789/kcsmodem/internal/params"
	"github.com/jsh6789/kcsmodem/internal/ports"
	"github.com/jsh6789/kcsmodem/internal/waveform"
)

const newline = 0x0A

// Encoder synthesises the wire-level byte framing (start bit, data
// bits, optional null pulse, stop bits) on top of a waveform.Generator.
type Encoder struct {
	p   params.Params
	gen *waveform.Generator

	markPulse  []int16
	spacePulse []int16
	nullPulse  []int16
}

// NewEncoder builds an Encoder for the given parameters, pre-rendering
// the mark/space/null pulse shapes once so EncodeBytes only copies.
func NewEncoder(p params.Params) *Encoder {
	p = p.Clipped()
	gen := waveform.New(p)
	e := &Encoder{p: p, gen: gen}
	e.markPulse = gen.Synthesise(p.MarkFreq, p.MarkCycles)
	e.spacePulse = gen.Synthesise(p.SpaceFreq, p.SpaceCycles)
	if p.NullCycles > 0 {
		e.nullPulse = gen.Synthesise(p.MarkFreq, p.NullCycles)
	}
	return e
}

// EncodeBytes converts a byte buffer into a concatenated sample
// stream: start bit, eight LSB-first data bits, optional null pulse
// after 0x0A, two stop bits, per byte.
func (e *Encoder) EncodeBytes(data []byte) []int16 {
	// Amortised-growth buffer (append), replacing the reference's
	// per-symbol realloc.
	out := make([]int16, 0, e.estimateLength(data))
	for _, b := range data {
		out = append(out, e.spacePulse...) // start bit

		for bit := 0; bit < 8; bit++ {
			if (b>>bit)&1 == 1 {
				out = append(out, e.markPulse...)
			} else {
				out = append(out, e.spacePulse...)
			}
		}

		if b == newline && len(e.nullPulse) > 0 {
			out = append(out, e.nullPulse...)
		}

		out = append(out, e.markPulse...) // stop bit 1
		out = append(out, e.markPulse...) // stop bit 2
	}
	return out
}

func (e *Encoder) estimateLength(data []byte) int {
	perByte := len(e.spacePulse) + 4*len(e.markPulse) + 4*len(e.spacePulse) + 2*len(e.markPulse)
	return perByte * len(data)
}

// Carrier synthesises `seconds` worth of pure mark-frequency carrier,
// used for the leader and trailer bursts.
func (e *Encoder) Carrier(seconds float64) []int16 {
	cycles := int(seconds * float64(e.p.MarkFreq))
	return e.gen.Synthesise(e.p.MarkFreq, cycles)
}

// EncodeStream reads the entirety of src in fixed-size blocks, writes
// a leader, the framed encoding of every block, and a trailer to dst,
// in that order. It never fails except on sink/source I/O.
func (e *Encoder) EncodeStream(src ports.ByteSource, dst ports.SampleSink) error {
	if err := dst.WriteSamples(e.Carrier(e.p.LeaderSecs)); err != nil {
		return err
	}

	const blockSize = 4096
	block := make([]byte, blockSize)
	for {
		n, readErr := src.ReadBytes(block)
		if n > 0 {
			if err := dst.WriteSamples(e.EncodeBytes(block[:n])); err != nil {
				return err
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return readErr
		}
	}

	return dst.WriteSamples(e.Carrier(e.p.TrailerSecs))
}
