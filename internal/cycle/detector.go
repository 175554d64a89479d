// Package cycle implements the KCS cycle detector: a squelch-gated
// zero-crossing scanner that walks a sample window, locates individual
// wave cycles, filters them by amplitude against the squelch
// threshold, and classifies each surviving cycle as mark or space
// based on its length in samples.
package cycle

import (
	"math"

	"github.com/jsh6789/kcsmodem/internal/params"
)

// Classification is the symbol a detected cycle was recognised as.
type Classification int

const (
	Mark Classification = iota
	Space
)

// DetectedCycle is one accepted wave cycle: its classification and
// its length in samples (the distance between the two zero crossings
// that bounded it, or, for a cycle cut off by the end of the window,
// from its falling crossing to the window end).
type DetectedCycle struct {
	Class Classification
	Span  int
}

// CycleSequence is the ordered output of one Detect call: the
// accepted cycles, parallel to Increments, where Increments[i] is the
// number of window samples consumed to produce Cycles[i] — including
// any noise cycles rejected just before it, and (for i==0) the initial
// squelch/zero-crossing acquisition skip. The cumulative sum of
// Increments[:i+1] is therefore the absolute sample offset, within the
// window handed to Detect, of the end of Cycles[i].
type CycleSequence struct {
	Cycles     []DetectedCycle
	Increments []int
}

// Detector holds the precomputed constants derived from Params: the
// nominal mark/space cycle lengths, the shared detection tolerance,
// and the squelch threshold.
type Detector struct {
	markLen  int
	spaceLen int
	lo       int
	hi       int
	tau      int
	squelch  int16
}

// NewDetector builds a Detector for the given parameters.
func NewDetector(p params.Params) *Detector {
	p = p.Clipped()
	l1 := roundDiv(p.Framerate, p.MarkFreq)
	l0 := roundDiv(p.Framerate, p.SpaceFreq)
	lo, hi := l0, l1
	if lo > hi {
		lo, hi = hi, lo
	}
	tau := (hi - lo) / 4

	return &Detector{
		markLen:  l1,
		spaceLen: l0,
		lo:       lo - tau,
		hi:       hi + tau,
		tau:      tau,
		squelch:  int16(p.Squelch * math.MaxInt16),
	}
}

func roundDiv(a, b int) int {
	return int(math.Round(float64(a) / float64(b)))
}

// Detect scans one sample window and produces its CycleSequence.
func (d *Detector) Detect(data []int16) CycleSequence {
	var seq CycleSequence
	n := len(data)

	// Step 1: skip until the first suprathreshold sample.
	p := 0
	for p < n && data[p] <= d.squelch {
		p++
	}
	// Step 2: advance past any remaining non-negative samples to reach
	// the next negative excursion, aligning p on a falling zero
	// crossing.
	for p < n && data[p] >= 0 {
		p++
	}

	pending := p // samples consumed before the first candidate cycle

	for p < n {
		// Step 3: locate the next cycle boundary.
		q := p + 1
		for q < n && data[q] < 0 {
			q++
		}
		negative := q - p
		for q < n && data[q] >= 0 {
			q++
		}
		if q >= n && data[n-1] < 0 {
			// The window ends inside the cycle's negative half: no
			// complete cycle is available; leave the tail as part of
			// the next window (nothing emitted, pending samples
			// already account for p).
			break
		}

		span := q - p
		// length is what acceptance and classification use. If the
		// window ends during the cycle's non-negative half, the window
		// end is taken as the cycle's end and its length is estimated
		// as twice its negative half, so a recording that stops right
		// after its last cycle still yields that cycle.
		length := span
		if q >= n {
			length = 2 * negative
		}

		// Step 4: squelch check — any sample in [p,q) above threshold?
		suprathreshold := false
		for i := p; i < q; i++ {
			if data[i] >= d.squelch {
				suprathreshold = true
				break
			}
		}
		if !suprathreshold {
			pending += span
			p = q
			continue
		}

		// Step 5: acceptance range and classification.
		if length < d.lo || length > d.hi {
			pending += span
			p = q
			continue
		}
		delta1 := absInt(length - d.markLen)
		delta0 := absInt(length - d.spaceLen)
		switch {
		case delta1 < delta0:
			seq.Cycles = append(seq.Cycles, DetectedCycle{Class: Mark, Span: span})
			seq.Increments = append(seq.Increments, pending+span)
			pending = 0
		case delta0 < delta1:
			seq.Cycles = append(seq.Cycles, DetectedCycle{Class: Space, Span: span})
			seq.Increments = append(seq.Increments, pending+span)
			pending = 0
		default:
			// Tie: dropped, not emitted.
			pending += span
		}

		p = q
	}

	return seq
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
