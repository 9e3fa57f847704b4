package dsp

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/F5OEO/kalibrate-hydrasdr/spectrum"
)

// expectedOutputs is the exact output count for n inputs from reset state:
// every 5th input reaches Stage 2, which emits 13 outputs per 24 inputs
// front-loaded by the phase accumulator.
func expectedOutputs(n int) int {
	m := n / s1Decim
	return (m*s2Interp + s2Decim - 1) / s2Decim
}

// refResample is a float64 rendition of the cascade used as ground truth.
func refResample(in []complex64) []complex128 {
	h1 := make([]float64, s1Taps)
	for i := range h1 {
		h1[i] = float64(s1Coeffs[i])
	}

	banks := make([][]float64, s2Phases)
	for p := range banks {
		banks[p] = make([]float64, s2TapsPerPhase)
		for k := 0; k < s2TapsPerPhase; k++ {
			raw := p + k*s2Phases
			if raw < s2TapsTotal {
				banks[p][s2TapsPerPhase-1-k] = float64(s2CoeffsRaw[raw])
			}
		}
	}

	hist1 := make([]complex128, 2*s1Taps)
	hist2 := make([]complex128, 2*s2TapsPerPhase)
	head1, head2, index, phase := 0, 0, 0, 0
	c1rev := make([]float64, s1Taps)
	for i := range c1rev {
		c1rev[i] = h1[s1Taps-1-i]
	}

	var out []complex128
	for _, x := range in {
		hist1[head1] = complex128(x)
		hist1[head1+s1Taps] = complex128(x)
		head1 = (head1 + 1) % s1Taps

		index++
		if index < s1Decim {
			continue
		}
		index = 0

		var y complex128
		for k := 0; k < s1Taps; k++ {
			y += hist1[head1+k] * complex(c1rev[k], 0)
		}

		hist2[head2] = y
		hist2[head2+s2TapsPerPhase] = y
		head2 = (head2 + 1) % s2TapsPerPhase

		for phase < s2Interp {
			var v complex128
			for k := 0; k < s2TapsPerPhase; k++ {
				v += hist2[head2+k] * complex(banks[phase][k], 0)
			}
			out = append(out, v)
			phase += s2Decim
		}
		phase -= s2Interp
	}

	return out
}

func randInput(n int, seed int64) []complex64 {
	rng := rand.New(rand.NewSource(seed))
	in := make([]complex64, n)
	for i := range in {
		in[i] = complex(rng.Float32()*2-1, rng.Float32()*2-1)
	}
	return in
}

func TestCoefficientSymmetry(t *testing.T) {
	for i := 0; i < s1Taps/2; i++ {
		assert.Equal(t, s1Coeffs[i], s1Coeffs[s1Taps-1-i], "s1 tap %d", i)
	}
	for i := 0; i < s2TapsTotal/2; i++ {
		assert.Equal(t, s2CoeffsRaw[i], s2CoeffsRaw[s2TapsTotal-1-i], "s2 tap %d", i)
	}
}

func TestCoefficientDCGain(t *testing.T) {
	var sum1, sum2 float64
	for _, c := range s1Coeffs {
		sum1 += float64(c)
	}
	for _, c := range s2CoeffsRaw {
		sum2 += float64(c)
	}

	assert.InDelta(t, 1.0, sum1, 1e-6)
	assert.InDelta(t, 13.0, sum2, 1e-6)
}

// One unit impulse through Stage 1 alone walks the reversed tap table in
// strides of the decimation factor.
func TestStage1ImpulseResponse(t *testing.T) {
	d := newFIRDecimator()

	var outputs []complex64
	push := func(x complex64) {
		if y, ok := d.push(x); ok {
			outputs = append(outputs, y)
		}
	}

	push(1)
	for i := 0; i < 120; i++ {
		push(0)
	}

	require.Len(t, outputs, 24)
	for m, y := range outputs {
		tap := s1Decim*m + s1Decim - 1
		var want float32
		if tap < s1Taps {
			want = s1Coeffs[tap]
		}
		assert.InDelta(t, want, real(y), 1e-7, "output %d", m)
		assert.InDelta(t, 0, imag(y), 1e-7, "output %d", m)
	}
}

func TestMatchesReference(t *testing.T) {
	in := randInput(5000, 42)

	r := NewResampler()
	out := make([]complex64, 2048)
	n := r.Process(in, out)

	want := refResample(in)
	require.Equal(t, len(want), n)

	for i := range want {
		assert.InDelta(t, real(want[i]), float64(real(out[i])), 1e-4, "sample %d", i)
		assert.InDelta(t, imag(want[i]), float64(imag(out[i])), 1e-4, "sample %d", i)
	}
}

func TestZeroInputCountAndValue(t *testing.T) {
	r := NewResampler()
	in := make([]complex64, 12000)
	out := make([]complex64, 4096)

	n := r.Process(in, out)
	require.Equal(t, expectedOutputs(len(in)), n)
	for i := 0; i < n; i++ {
		assert.Equal(t, complex64(0), out[i])
	}
}

// A constant 1+0j settles to 1+0j end to end: the interpolation gain is
// distributed across the 13 phases.
func TestDCGainEndToEnd(t *testing.T) {
	r := NewResampler()
	in := make([]complex64, 6000)
	for i := range in {
		in[i] = 1
	}
	out := make([]complex64, 2048)

	n := r.Process(in, out)
	require.Greater(t, n, 200)

	for _, y := range out[n-100 : n] {
		assert.InDelta(t, 1.0, real(y), 1e-4)
		assert.InDelta(t, 0.0, imag(y), 1e-4)
	}
}

func TestPipelineRatio(t *testing.T) {
	in := randInput(120000, 7)

	r := NewResampler()
	out := make([]complex64, 20000)
	n := r.Process(in, out)

	assert.Equal(t, 13000, n)
	assert.GreaterOrEqual(t, n, len(in)*13/120-1)
	assert.LessOrEqual(t, n, len(in)*13/120+1)
}

// When the output buffer fills mid-call the tail of the input is dropped,
// not buffered: a later call picks up from the filter state as-is.
func TestOutputCapacityClamp(t *testing.T) {
	in := randInput(120000, 8)

	r := NewResampler()
	out := make([]complex64, 100)
	n := r.Process(in, out)
	assert.Equal(t, 100, n)

	// A later call is still clamped to the output capacity.
	n = r.Process(in[:1200], out)
	assert.LessOrEqual(t, n, 100)
}

func TestResetRestoresDeterminism(t *testing.T) {
	in := randInput(10000, 9)

	r := NewResampler()
	outA := make([]complex64, 4096)
	nA := r.Process(in, outA)

	r.Reset()
	outB := make([]complex64, 4096)
	nB := r.Process(in, outB)

	require.Equal(t, nA, nB)
	assert.Equal(t, outA[:nA], outB[:nB])
}

func cmplxTone(n int, freq, amp float64) []complex64 {
	out := make([]complex64, n)
	// float64 phase accumulation; float32 drifts over long buffers.
	inc := 2 * math.Pi * freq / InputRate
	for i := range out {
		s, c := math.Sincos(float64(i) * inc)
		out[i] = complex(float32(amp*c), float32(amp*s))
	}
	return out
}

func runPipeline(in []complex64) []complex64 {
	r := NewResampler()
	out := make([]complex64, len(in)/9+16)
	n := r.Process(in, out)
	return out[:n]
}

// A 67 kHz tone is inside the passband: it must come through within 1 dB
// with spurs at least 60 dB down.
func TestPassbandTone(t *testing.T) {
	if testing.Short() {
		t.Skip("long spectral test")
	}

	out := runPipeline(cmplxTone(1000000, 67000, 0.5))
	require.Greater(t, len(out), 70000)

	a, err := spectrum.Analyze(out[4096:], OutputRate)
	require.NoError(t, err)

	p, ok := a.PeakNear(67000, 2000)
	require.True(t, ok, "no tone found near 67 kHz")

	// 0.5 amplitude is -6.02 dBFS.
	assert.Greater(t, p.DB, -7.1)
	assert.Less(t, p.DB, -5.0)

	// Strongest bin outside the tone's neighborhood.
	peakBin := 0
	for i := range a.Bins {
		if a.Bins[i] > a.Bins[peakBin] {
			peakBin = i
		}
	}
	spur := math.Inf(-1)
	for i := range a.Bins {
		if i >= peakBin-16 && i <= peakBin+16 {
			continue
		}
		if a.Bins[i] > spur {
			spur = a.Bins[i]
		}
	}
	assert.Less(t, spur, p.DB-60)
}

// A 300 kHz tone is deep in the stopband: the cascade must attenuate it by
// at least 40 dB.
func TestStopbandTone(t *testing.T) {
	if testing.Short() {
		t.Skip("long spectral test")
	}

	const amp = 0.79
	out := runPipeline(cmplxTone(1000000, 300000, amp))
	require.Greater(t, len(out), 70000)

	limit := float32(amp * math.Pow(10, -40.0/20))
	for i, y := range out[4096:] {
		mag := float32(math.Hypot(float64(real(y)), float64(imag(y))))
		require.Less(t, mag, limit, "sample %d", i)
	}
}

func BenchmarkProcess(b *testing.B) {
	in := randInput(InputRate/10, 3) // 100 ms of input
	r := NewResampler()
	out := make([]complex64, len(in)/9+16)

	b.SetBytes(int64(len(in) * 8))
	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		r.Process(in, out)
	}
}
