// Package diagnostics reports descriptive statistics over a block of
// samples for observability only — nothing here feeds back into
// detection or squelch; no automatic gain control or phase-locked loop
// consults it.
package diagnostics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// BlockStats summarises one block of samples.
type BlockStats struct {
	Mean   float64
	StdDev float64
	Peak   int16
	RMS    float64
}

// Analyse computes BlockStats over samples. It returns the zero value
// for an empty block.
func Analyse(samples []int16) BlockStats {
	if len(samples) == 0 {
		return BlockStats{}
	}

	data := make([]float64, len(samples))
	var sumSquares float64
	var peak int16
	peakAbs := -1
	for i, s := range samples {
		v := float64(s)
		data[i] = v
		sumSquares += v * v
		if a := absInt(int(s)); a > peakAbs {
			peakAbs = a
			peak = s
		}
	}

	mean, stddev := stat.MeanStdDev(data, nil)
	return BlockStats{
		Mean:   mean,
		StdDev: stddev,
		Peak:   peak,
		RMS:    math.Sqrt(sumSquares / float64(len(data))),
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
