// KALIBRATE - A GSM base station scanner and clock offset calibrator.
// Copyright (C) 2025 The kalibrate-hydrasdr authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package dsp implements the two-stage rational resampler that converts the
// 2.5 MS/s baseband stream from the radio to the GSM symbol rate.
//
// Stage 1 is a 61-tap FIR decimator (÷5) producing 500 kS/s. Stage 2 is a
// 729-tap polyphase rational resampler (×13/24) producing 270833.333 S/s.
// The end-to-end ratio is exactly 13/120.
package dsp

import "github.com/tphakala/simd/f32"

const (
	// InputRate is the native sample rate the radio is configured for.
	InputRate = 2500000

	// IntermediateRate is the Stage-1 output rate.
	IntermediateRate = 500000

	// OutputRate is the GSM symbol rate, 13 MHz / 48.
	OutputRate = 13000000.0 / 48.0

	s1Decim = 5
	s1Taps  = 61

	s2Interp       = 13
	s2Decim        = 24
	s2TapsTotal    = 729
	s2Phases       = 13
	s2TapsPerPhase = 57
)

// firDecimator is the Stage-1 ÷5 decimating FIR. History is kept planar
// (split I/Q) and double-stored: each sample is written at head and at
// head+s1Taps, so the convolution window [head, head+s1Taps) is always
// contiguous and the inner loop is a straight dot product.
type firDecimator struct {
	histI []float32 // 2*s1Taps
	histQ []float32
	head  int
	index int

	// Taps in reverse of the natural filter order. History runs
	// oldest-to-newest from head, so a forward scan convolves.
	coeffs []float32
}

func newFIRDecimator() (d firDecimator) {
	d.histI = alignedFloat32(2 * s1Taps)
	d.histQ = alignedFloat32(2 * s1Taps)
	d.coeffs = alignedFloat32(s1Taps)
	for i := range d.coeffs {
		d.coeffs[i] = s1Coeffs[s1Taps-1-i]
	}
	return
}

func (d *firDecimator) reset() {
	d.head = 0
	d.index = 0
	clear(d.histI)
	clear(d.histQ)
}

// push accepts one input sample and reports whether an output was produced.
func (d *firDecimator) push(x complex64) (complex64, bool) {
	i, q := real(x), imag(x)
	d.histI[d.head] = i
	d.histI[d.head+s1Taps] = i
	d.histQ[d.head] = q
	d.histQ[d.head+s1Taps] = q

	d.head++
	if d.head >= s1Taps {
		d.head = 0
	}

	d.index++
	if d.index < s1Decim {
		return 0, false
	}
	d.index = 0

	re := f32.DotProductUnsafe(d.histI[d.head:d.head+s1Taps], d.coeffs)
	im := f32.DotProductUnsafe(d.histQ[d.head:d.head+s1Taps], d.coeffs)
	return complex(re, im), true
}

// polyResampler is the Stage-2 ×13/24 polyphase rational resampler. Branch p
// holds prototype coefficients {C[p + 13k] : 0 <= k < 57} in reverse order;
// out-of-range entries are zero. The phase accumulator advances by the
// decimation factor per output and drops by the interpolation factor per
// input, which nets 13 outputs for every 24 inputs.
type polyResampler struct {
	histI []float32 // 2*s2TapsPerPhase
	histQ []float32
	head  int
	phase int

	banks [][]float32 // s2Phases x s2TapsPerPhase
}

func newPolyResampler() (p polyResampler) {
	p.histI = alignedFloat32(2 * s2TapsPerPhase)
	p.histQ = alignedFloat32(2 * s2TapsPerPhase)

	p.banks = make([][]float32, s2Phases)
	for phase := range p.banks {
		bank := alignedFloat32(s2TapsPerPhase)
		for tap := 0; tap < s2TapsPerPhase; tap++ {
			raw := phase + tap*s2Phases
			if raw < s2TapsTotal {
				bank[s2TapsPerPhase-1-tap] = s2CoeffsRaw[raw]
			}
		}
		p.banks[phase] = bank
	}
	return
}

func (p *polyResampler) reset() {
	p.head = 0
	p.phase = 0
	clear(p.histI)
	clear(p.histQ)
}

// push accepts one Stage-1 output sample, appends up to ceil(13/24) output
// samples to out at produced, and returns the new produced count. When out
// fills mid-emission the remaining phases of this input are dropped; the
// caller accounts for the loss.
func (p *polyResampler) push(y complex64, out []complex64, produced int) int {
	i, q := real(y), imag(y)
	p.histI[p.head] = i
	p.histI[p.head+s2TapsPerPhase] = i
	p.histQ[p.head] = q
	p.histQ[p.head+s2TapsPerPhase] = q

	p.head++
	if p.head >= s2TapsPerPhase {
		p.head = 0
	}

	for p.phase < s2Interp {
		if produced >= len(out) {
			return produced
		}

		bank := p.banks[p.phase]
		re := f32.DotProductUnsafe(p.histI[p.head:p.head+s2TapsPerPhase], bank)
		im := f32.DotProductUnsafe(p.histQ[p.head:p.head+s2TapsPerPhase], bank)
		out[produced] = complex(re, im)
		produced++

		p.phase += s2Decim
	}
	p.phase -= s2Interp

	return produced
}

// Resampler converts complex baseband samples from InputRate to OutputRate.
// It is stateful and not safe for concurrent use.
type Resampler struct {
	s1 firDecimator
	s2 polyResampler
}

func NewResampler() *Resampler {
	return &Resampler{
		s1: newFIRDecimator(),
		s2: newPolyResampler(),
	}
}

// Reset clears all filter history and phase state. Call on retune so
// transients from the previous frequency do not leak into the new stream.
func (r *Resampler) Reset() {
	r.s1.reset()
	r.s2.reset()
}

// Process consumes in and writes up to len(out) resampled samples, returning
// the number written. Output beyond len(out) is discarded; callers must size
// out to at least ceil(len(in)*13/120) to avoid loss.
func (r *Resampler) Process(in, out []complex64) int {
	produced := 0

	for _, x := range in {
		y, ok := r.s1.push(x)
		if ok {
			produced = r.s2.push(y, out, produced)
		}

		if produced >= len(out) {
			break
		}
	}

	return produced
}
