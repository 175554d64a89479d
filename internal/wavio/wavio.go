// Package wavio adapts the KCS sample ports (ports.SampleSink /
// ports.SampleSource) to mono 16-bit PCM WAV containers, built on
// github.com/go-audio/wav for RIFF/WAVE chunk encoding and decoding.
package wavio

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth    = 16
	numChannels = 1
	pcmFormat   = 1 // linear PCM
)

// Writer is a ports.SampleSink backed by a WAV container. Each
// WriteSamples call passes its samples straight to the encoder; Close
// finalises the header's chunk sizes.
type Writer struct {
	enc        *wav.Encoder
	sampleRate int
}

// NewWriter wraps ws in a WAV encoder at the given sample rate. The
// caller is still responsible for closing ws after Close returns.
func NewWriter(ws io.WriteSeeker, sampleRate int) *Writer {
	return &Writer{
		enc:        wav.NewEncoder(ws, sampleRate, bitDepth, numChannels, pcmFormat),
		sampleRate: sampleRate,
	}
}

// WriteSamples implements ports.SampleSink.
func (w *Writer) WriteSamples(samples []int16) error {
	if len(samples) == 0 {
		return nil
	}
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: w.sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	return w.enc.Write(buf)
}

// Close flushes the WAV header and trailing chunk sizes. It must be
// called once writing is finished; the underlying writer is not closed.
func (w *Writer) Close() error {
	return w.enc.Close()
}

// Reader is a ports.SampleSource backed by a WAV container, reading
// mono 16-bit PCM frames.
type Reader struct {
	dec *wav.Decoder
}

// NewReader wraps rs in a WAV decoder. It returns an error if rs does
// not contain a valid RIFF/WAVE stream.
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wavio: not a valid WAV file")
	}
	return &Reader{dec: dec}, nil
}

// SampleRate reports the container's declared sample rate.
func (r *Reader) SampleRate() int {
	return int(r.dec.SampleRate)
}

// ReadSamples implements ports.SampleSource, following the io.EOF
// convention: it returns io.EOF once the container is exhausted,
// possibly alongside a final partial read.
func (r *Reader) ReadSamples(buf []int16) (int, error) {
	ib := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: int(r.dec.SampleRate)},
		Data:           make([]int, len(buf)),
		SourceBitDepth: bitDepth,
	}
	n, err := r.dec.PCMBuffer(ib)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		buf[i] = int16(ib.Data[i])
	}
	if n < len(buf) {
		return n, io.EOF
	}
	return n, nil
}
