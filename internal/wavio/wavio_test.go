package wavio

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "kcs-*.wav")
	require.NoError(t, err)
	defer f.Close()

	samples := []int16{0, 16000, -16000, 32767, -32768, 1, -1}

	w := NewWriter(f, 44100)
	require.NoError(t, w.WriteSamples(samples))
	require.NoError(t, w.Close())

	_, err = f.Seek(0, 0)
	require.NoError(t, err)

	r, err := NewReader(f)
	require.NoError(t, err)
	assert.Equal(t, 44100, r.SampleRate())

	buf := make([]int16, len(samples)+8)
	n, _ := r.ReadSamples(buf)
	assert.Equal(t, samples, buf[:n])
}

func TestNewReaderRejectsInvalidFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "kcs-*.wav")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteString("not a wav file")
	require.NoError(t, err)
	_, err = f.Seek(0, 0)
	require.NoError(t, err)

	_, err = NewReader(f)
	assert.Error(t, err)
}
