package source

import "io"

// Sim is an in-process driver for tests and the DSP benchmark. Each Refill
// hands the fill callback a reusable chunk to populate; returning false
// ends the stream.
type Sim struct {
	chunk []int16

	fill func([]int16) bool

	sampleRate int
	centerFreq float64
	gain       float64
}

// NewSim returns a simulated driver yielding chunks of the given sample
// count. fill writes interleaved (i, q) int16 pairs into its argument and
// reports whether the chunk is valid.
func NewSim(chunkSamples int, fill func([]int16) bool) *Sim {
	return &Sim{
		chunk: make([]int16, chunkSamples*2),
		fill:  fill,
	}
}

func (d *Sim) Open() error  { return nil }
func (d *Sim) Close() error { return nil }

func (d *Sim) SetSampleRate(hz int) error     { d.sampleRate = hz; return nil }
func (d *Sim) SetCenterFreq(hz float64) error { d.centerFreq = hz; return nil }
func (d *Sim) SetGain(db float64) error       { d.gain = db; return nil }

// CenterFreq reports the last tuned frequency.
func (d *Sim) CenterFreq() float64 { return d.centerFreq }

func (d *Sim) Refill() ([]int16, error) {
	if !d.fill(d.chunk) {
		return nil, io.EOF
	}
	return d.chunk, nil
}
