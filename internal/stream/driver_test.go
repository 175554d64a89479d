package stream

import (
	"io"
	"testing"

	"github.com/jsh6789/kcsmodem/internal/frame"
	"github.com/jsh6789/kcsmodem/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSampleSource serves samples from an in-memory slice, reporting
// io.EOF once exhausted — a minimal ports.SampleSource for tests.
type sliceSampleSource struct {
	data []int16
	pos  int
}

func (s *sliceSampleSource) ReadSamples(buf []int16) (int, error) {
	n := copy(buf, s.data[s.pos:])
	s.pos += n
	if s.pos >= len(s.data) {
		return n, io.EOF
	}
	return n, nil
}

// byteCollector accumulates every WriteBytes call in stream order.
type byteCollector struct {
	out []byte
}

func (b *byteCollector) WriteBytes(data []byte) error {
	b.out = append(b.out, data...)
	return nil
}

// TestStreamingEquivalence checks that decoding through a small fixed
// window, one read at a time, reproduces the encoded bytes exactly.
func TestStreamingEquivalence(t *testing.T) {
	p := params.Standard()
	enc := frame.NewEncoder(p)
	samples := enc.EncodeBytes([]byte("hello"))

	driver := NewDriver(p, 4096)
	src := &sliceSampleSource{data: samples}
	sink := &byteCollector{}

	require.NoError(t, driver.Run(src, sink))
	assert.Equal(t, []byte("hello"), sink.out)
}

func TestStreamingLargePayload(t *testing.T) {
	p := params.Standard()
	enc := frame.NewEncoder(p)

	input := make([]byte, 2000)
	for i := range input {
		input[i] = byte(i)
	}
	samples := enc.EncodeBytes(input)

	driver := NewDriver(p, p.StreamBufferSize())
	src := &sliceSampleSource{data: samples}
	sink := &byteCollector{}

	require.NoError(t, driver.Run(src, sink))
	assert.Equal(t, input, sink.out)
}

func TestStreamingSilenceYieldsNothing(t *testing.T) {
	p := params.Standard()
	driver := NewDriver(p, p.StreamBufferSize())
	src := &sliceSampleSource{data: make([]int16, p.Framerate)}
	sink := &byteCollector{}

	require.NoError(t, driver.Run(src, sink))
	assert.Empty(t, sink.out)
}
