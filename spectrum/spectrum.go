// Package spectrum provides calibrated power spectra of complex baseband
// captures: Blackman-Harris windowing, dBFS scaling against full-scale
// coherent gain, peak search, and a terminal renderer.
package spectrum

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// Blackman-Harris 4-term a0 coefficient; the window's coherent gain.
const coherentGain = 0.35875

const minSamples = 256

// Analysis is a frequency-shifted power spectrum in dBFS. Bin 0 is
// -SampleRate/2, bin N/2 is DC.
type Analysis struct {
	Bins       []float64
	SampleRate float64
	N          int
}

// Peak is a local spectral maximum.
type Peak struct {
	Freq float64 // Hz relative to center
	DB   float64 // dBFS
}

// Analyze windows and transforms the largest power-of-two prefix of
// samples and returns its calibrated spectrum. 0 dBFS corresponds to a
// full-scale complex tone of amplitude 1.0.
func Analyze(samples []complex64, sampleRate float64) (*Analysis, error) {
	if len(samples) < minSamples {
		return nil, errors.Errorf("spectrum: need at least %d samples, have %d", minSamples, len(samples))
	}

	n := 1
	for n*2 <= len(samples) {
		n *= 2
	}

	seq := make([]complex128, n)
	for i := 0; i < n; i++ {
		seq[i] = complex128(samples[i])
	}
	window.BlackmanHarrisComplex(seq)

	fft := fourier.NewCmplxFFT(n)
	coeff := fft.Coefficients(nil, seq)

	// Full scale is a unit-amplitude tone scaled by the window's
	// coherent gain.
	dbOffset := 20 * math.Log10(float64(n)*coherentGain)

	a := &Analysis{
		Bins:       make([]float64, n),
		SampleRate: sampleRate,
		N:          n,
	}
	for i := 0; i < n; i++ {
		c := coeff[(i+n/2)%n]
		pwr := real(c)*real(c) + imag(c)*imag(c)
		a.Bins[i] = 10*math.Log10(pwr+1e-12) - dbOffset
	}

	return a, nil
}

// Freq returns the center frequency of bin i, relative to the capture
// center.
func (a *Analysis) Freq(i int) float64 {
	return (float64(i) - float64(a.N)/2) * a.SampleRate / float64(a.N)
}

// Max returns the strongest bin level in dBFS.
func (a *Analysis) Max() float64 {
	max := math.Inf(-1)
	for _, db := range a.Bins {
		if db > max {
			max = db
		}
	}
	return max
}

// Peaks returns up to limit local maxima within 40 dB of the strongest
// bin, strongest first.
func (a *Analysis) Peaks(limit int) []Peak {
	max := a.Max()

	var peaks []Peak
	for i := 1; i < a.N-1; i++ {
		db := a.Bins[i]
		if db <= a.Bins[i-1] || db <= a.Bins[i+1] {
			continue
		}
		if db <= max-40 || db <= -120 {
			continue
		}
		peaks = append(peaks, Peak{Freq: a.Freq(i), DB: db})
	}

	sort.Slice(peaks, func(i, j int) bool { return peaks[i].DB > peaks[j].DB })
	if len(peaks) > limit {
		peaks = peaks[:limit]
	}

	return peaks
}

// PeakNear returns the strongest local maximum within tol of freq,
// regardless of its level relative to the global maximum.
func (a *Analysis) PeakNear(freq, tol float64) (Peak, bool) {
	best := Peak{DB: math.Inf(-1)}
	found := false

	for i := 1; i < a.N-1; i++ {
		f := a.Freq(i)
		if f < freq-tol || f > freq+tol {
			continue
		}
		db := a.Bins[i]
		if db <= a.Bins[i-1] || db <= a.Bins[i+1] {
			continue
		}
		if db > best.DB {
			best = Peak{Freq: f, DB: db}
			found = true
		}
	}

	return best, found
}
