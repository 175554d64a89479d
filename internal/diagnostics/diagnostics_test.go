package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyseEmptyIsZeroValue(t *testing.T) {
	assert.Equal(t, BlockStats{}, Analyse(nil))
}

func TestAnalyseConstantSignalHasZeroStdDev(t *testing.T) {
	samples := make([]int16, 100)
	for i := range samples {
		samples[i] = 1000
	}
	got := Analyse(samples)
	assert.InDelta(t, 1000, got.Mean, 1e-9)
	assert.InDelta(t, 0, got.StdDev, 1e-9)
	assert.Equal(t, int16(1000), got.Peak)
}

func TestAnalysePicksLargestMagnitudePeak(t *testing.T) {
	samples := []int16{100, -500, 300, 499}
	got := Analyse(samples)
	assert.Equal(t, int16(-500), got.Peak)
}
