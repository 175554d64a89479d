package frame

import (
	"math/bits"
	"testing"

	"github.com/jsh6789/kcsmodem/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFrameEncodingLength checks that a single encoded byte's sample
// count matches the framing formula directly: one start-bit symbol,
// eight data-bit symbols (mark or space per set bit), two stop-bit
// mark symbols, plus a null pulse spliced in after a newline.
func TestFrameEncodingLength(t *testing.T) {
	p := params.Standard()
	enc := NewEncoder(p)

	markSamples := len(enc.markPulse)
	spaceSamples := len(enc.spacePulse)

	cases := []byte{0x00, 0x01, 0x41, 0x80, 0xAA, 0xFF, 0x0A}
	for _, b := range cases {
		samples := enc.EncodeBytes([]byte{b})
		ones := bits.OnesCount8(b)
		zeros := 8 - ones

		expected := spaceSamples + ones*markSamples + zeros*spaceSamples + 2*markSamples
		if b == newline && p.NullCycles > 0 {
			expected += len(enc.nullPulse)
		}
		assert.Equal(t, expected, len(samples), "byte 0x%02X", b)
	}
}

func TestEncodeBytesEmpty(t *testing.T) {
	enc := NewEncoder(params.Standard())
	assert.Empty(t, enc.EncodeBytes(nil))
}

func TestNullPulseSplicedAfterNewline(t *testing.T) {
	p := params.Standard()
	p.NullCycles = 800
	enc := NewEncoder(p)
	require.NotEmpty(t, enc.nullPulse)

	withNull := enc.EncodeBytes([]byte{'\n'})
	withoutNull := enc.EncodeBytes([]byte{'A'})
	assert.Equal(t, len(withoutNull)+len(enc.nullPulse), len(withNull))
}

// TestEncodeLetterA checks the encoded sample count for the letter
// 'A' (0x41 = 0b01000001, two set bits) against the framing formula.
func TestEncodeLetterA(t *testing.T) {
	p := params.Standard()
	enc := NewEncoder(p)

	c0 := p.Framerate / p.SpaceFreq * p.SpaceCycles
	c1 := p.Framerate / p.MarkFreq * p.MarkCycles

	samples := enc.EncodeBytes([]byte{0x41})
	ones := bits.OnesCount8(0x41)
	expected := c0 + ones*c1 + (8-ones)*c0 + 2*c1
	assert.Equal(t, expected, len(samples))
}
