package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsh6789/kcsmodem/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	p := params.Standard()
	p.Waveform = params.Square
	p.MarkFreq = 3000

	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, Save(path, p))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestLoadAppliesDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mark_freq: 3000\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)

	want := params.Standard()
	want.MarkFreq = 3000
	assert.Equal(t, want, got)
}

func TestLoadClampsOutOfRangeAmplitude(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loud.yaml")
	require.NoError(t, os.WriteFile(path, []byte("amplitude: 5\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Amplitude)
}
