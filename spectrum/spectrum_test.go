package spectrum

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tone(n int, freq, amp, rate float64) []complex64 {
	out := make([]complex64, n)
	inc := 2 * math.Pi * freq / rate
	for i := range out {
		phase := float64(i) * inc
		s, c := math.Sincos(phase)
		out[i] = complex(float32(amp*c), float32(amp*s))
	}
	return out
}

func TestToneCalibration(t *testing.T) {
	const rate = 270833.333333

	a, err := Analyze(tone(65536, 67000, 1.0, rate), rate)
	require.NoError(t, err)

	p, ok := a.PeakNear(67000, 1000)
	require.True(t, ok)

	// Full-scale tone reads 0 dBFS within scalloping loss.
	assert.InDelta(t, 0.0, p.DB, 1.0)
	assert.InDelta(t, 67000, p.Freq, 2*rate/65536)
}

func TestHalfScaleTone(t *testing.T) {
	const rate = 2500000.0

	a, err := Analyze(tone(1<<16, -300000, 0.5, rate), rate)
	require.NoError(t, err)

	p, ok := a.PeakNear(-300000, 2000)
	require.True(t, ok)
	assert.InDelta(t, -6.0, p.DB, 1.0)
}

func TestPeaksOrdering(t *testing.T) {
	const rate = 500000.0
	sig := tone(1<<15, 50000, 1.0, rate)
	weak := tone(1<<15, -100000, 0.1, rate)
	for i := range sig {
		sig[i] += weak[i]
	}

	a, err := Analyze(sig, rate)
	require.NoError(t, err)

	peaks := a.Peaks(6)
	require.NotEmpty(t, peaks)
	assert.InDelta(t, 50000, peaks[0].Freq, rate/float64(a.N)*2)
	for i := 1; i < len(peaks); i++ {
		assert.LessOrEqual(t, peaks[i].DB, peaks[i-1].DB)
	}
}

func TestAnalyzeTooShort(t *testing.T) {
	_, err := Analyze(make([]complex64, 16), 48000)
	assert.Error(t, err)
}

func TestRenderWritesPlot(t *testing.T) {
	const rate = 250000.0
	a, err := Analyze(tone(4096, 20000, 0.8, rate), rate)
	require.NoError(t, err)

	var buf bytes.Buffer
	a.Render(&buf, 80)

	out := buf.String()
	assert.Contains(t, out, "[-BW/2]")
	assert.Contains(t, out, "[+BW/2]")
	assert.Contains(t, out, "Peak Detection")
}
