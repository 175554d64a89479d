// Package decode implements the KCS frame decoder: given a
// cycle.CycleSequence it recognises byte frames (start bit, eight
// LSB-first data bits, two stop bits), emits decoded bytes, and
// computes the sample-space offset below which everything has been
// safely consumed.
package decode

import (
	"github.com/jsh6789/kcsmodem/internal/cycle"
	"github.com/jsh6789/kcsmodem/internal/params"
)

// FrameDecoder recognises byte frames in a cycle.CycleSequence.
type FrameDecoder struct {
	markCycles  int
	spaceCycles int
}

// NewFrameDecoder builds a FrameDecoder for the given parameters.
func NewFrameDecoder(p params.Params) *FrameDecoder {
	return &FrameDecoder{markCycles: p.MarkCycles, spaceCycles: p.SpaceCycles}
}

// Decode consumes seq (produced from a window of windowLength
// samples) and returns the decoded byte prefix plus the sample offset
// at which a following window should resume: every committed frame
// lies below it except the last frame's final stop cycle. If no frame is
// ever committed, the returned offset is windowLength, so the caller
// discards the entire window, including any partial frame at its end.
func (fd *FrameDecoder) Decode(seq cycle.CycleSequence, windowLength int) ([]byte, int) {
	cycles := seq.Cycles
	n := len(cycles)

	cum := make([]int, n+1)
	for i, inc := range seq.Increments {
		cum[i+1] = cum[i] + inc
	}

	var out []byte
	lastGood := windowLength
	pos := 0

	for pos < n {
		// Step 1: skip inter-frame marks.
		for pos < n && cycles[pos].Class == cycle.Mark {
			pos++
		}
		if pos >= n {
			break
		}
		frameStart := pos

		// Step 2: start bit — C0 contiguous spaces.
		matched, next := fd.matchRun(cycles, pos, cycle.Space, fd.spaceCycles)
		if matched < fd.spaceCycles {
			pos = fd.resync(cycles, frameStart)
			continue
		}
		pos = next

		// Step 3: data bits, with best-effort recovery when a bit's
		// cycles are corrupted.
		var decoded byte
		for bit := 0; bit < 8; bit++ {
			markMatched, markNext := fd.matchRun(cycles, pos, cycle.Mark, fd.markCycles)
			if markMatched == fd.markCycles {
				decoded |= 1 << uint(bit)
				pos = markNext
				continue
			}
			spaceMatched, spaceNext := fd.matchRun(cycles, pos, cycle.Space, fd.spaceCycles)
			if spaceMatched == fd.spaceCycles {
				pos = spaceNext
				continue
			}
			// Neither run matched: bit stays 0, position does not
			// advance — retried at the same cycle for the next bit.
		}

		// Step 4: stop bits — 2*C1 contiguous marks.
		stopMatched, stopNext := fd.matchRun(cycles, pos, cycle.Mark, 2*fd.markCycles)
		if stopMatched < 2*fd.markCycles {
			pos = fd.resync(cycles, frameStart)
			continue
		}
		pos = stopNext

		// Step 5: commit. The resume offset is the start of the final
		// stop cycle rather than its end: a following window's
		// squelch/zero-crossing acquisition consumes that cycle and
		// aligns on the next frame's first cycle instead of skipping it.
		out = append(out, decoded)
		lastGood = cum[pos] - cycles[pos-1].Span
	}

	return out, lastGood
}

// matchRun counts up to `want` contiguous cycles of the given class
// starting at `start`, returning the match count and the cycle index
// just past it.
func (fd *FrameDecoder) matchRun(cycles []cycle.DetectedCycle, start int, class cycle.Classification, want int) (matched, next int) {
	i := start
	count := 0
	for i < len(cycles) && count < want && cycles[i].Class == class {
		i++
		count++
	}
	return count, i
}

// resync advances past at most spaceCycles contiguous space cycles
// from the failing frame's start, then resumes frame search there.
func (fd *FrameDecoder) resync(cycles []cycle.DetectedCycle, frameStart int) int {
	matched, next := fd.matchRun(cycles, frameStart, cycle.Space, fd.spaceCycles)
	if matched == 0 {
		// frameStart wasn't a space cycle (shouldn't happen — step 1
		// always leaves pos on a space or at end), advance by one to
		// guarantee forward progress.
		return frameStart + 1
	}
	return next
}
