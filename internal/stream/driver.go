// Package stream implements the KCS streaming driver: it owns a
// fixed-size sample buffer, feeds blocks to the cycle detector and
// frame decoder, shifts the buffer by the returned resume offset, and
// pumps decoded bytes to a sink — letting decode run over an
// arbitrarily long input without buffering the entire recording.
package stream

import (
	"errors"
	"io"

	"github.com/jsh6789/kcsmodem/internal/cycle"
	"github.com/jsh6789/kcsmodem/internal/decode"
	"github.com/jsh6789/kcsmodem/internal/diagnostics"
	"github.com/jsh6789/kcsmodem/internal/params"
	"github.com/jsh6789/kcsmodem/internal/ports"
)

// Driver owns a fixed-size sliding sample window that lets the decoder
// run over an arbitrarily long recording without buffering all of it.
type Driver struct {
	buf    []int16
	offset int

	detector *cycle.Detector
	decoder  *decode.FrameDecoder

	onBlock func(diagnostics.BlockStats)
}

// NewDriver builds a Driver with the given window size. Use
// params.Params.StreamBufferSize for the "backend-agnostic" default,
// or params.RawBufferSize for raw mode.
func NewDriver(p params.Params, bufferSize int) *Driver {
	return &Driver{
		buf:      make([]int16, bufferSize),
		offset:   bufferSize, // entire buffer must be filled on first read
		detector: cycle.NewDetector(p),
		decoder:  decode.NewFrameDecoder(p),
	}
}

// OnBlock registers a callback invoked with amplitude diagnostics for
// every window Run processes, once per iteration of its read loop. It
// is purely observational: the reported stats are never consulted by
// the detector or decoder.
func (d *Driver) OnBlock(fn func(diagnostics.BlockStats)) {
	d.onBlock = fn
}

// Run drains src, decoding bytes and writing them to dst in strict
// stream order, until src is exhausted and no further cycles are
// producible from what remains buffered.
func (d *Driver) Run(src ports.SampleSource, dst ports.ByteSink) error {
	for {
		fillStart := len(d.buf) - d.offset
		n, readErr := readFullSamples(src, d.buf[fillStart:])
		filled := fillStart + n
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}
		atEOF := errors.Is(readErr, io.EOF)

		window := d.buf[:filled]
		if d.onBlock != nil {
			d.onBlock(diagnostics.Analyse(window))
		}
		seq := d.detector.Detect(window)
		out, resume := d.decoder.Decode(seq, filled)

		if len(out) > 0 {
			if err := dst.WriteBytes(out); err != nil {
				return err
			}
		}

		if atEOF {
			// No further samples will ever arrive: whatever remains
			// unconsumed past `resume` cannot complete into a frame
			// and is dropped, exactly as a truncated trailing frame
			// would be within a single in-memory decode.
			return nil
		}

		remaining := filled - resume
		copy(d.buf[:remaining], window[resume:])
		d.offset = len(d.buf) - remaining
	}
}

// readFullSamples reads until buf is completely filled or the source
// reports an error (including io.EOF), following io.ReadFull's
// contract adapted to SampleSource.
func readFullSamples(src ports.SampleSource, buf []int16) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := src.ReadSamples(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, io.ErrNoProgress
		}
	}
	return total, nil
}
