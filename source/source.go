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

// Package source glues a hardware driver to the resampler and a ring
// buffer: a worker goroutine converts each driver chunk to complex floats,
// resamples it to the GSM symbol rate, and pushes the result to the ring;
// consumers block in Fill until enough samples are buffered.
package source

import (
	"context"
	"io"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/F5OEO/kalibrate-hydrasdr/dsp"
	"github.com/F5OEO/kalibrate-hydrasdr/ring"
)

// ErrStopped reports that streaming ended (Stop, shutdown request, or a
// driver read error) while a consumer was waiting in Fill.
var ErrStopped = errors.New("source stopped")

const (
	// batchSize bounds both the conversion batch and the per-call output
	// buffer handed to the resampler.
	batchSize = 32768

	// ringItems is the ring capacity in output samples, roughly a second
	// of symbol-rate data.
	ringItems = 256 * 1024

	// fillPoll is how often a waiting consumer re-checks for shutdown.
	fillPoll = 100 * time.Millisecond

	// sampleScale normalises 12-bit ADC counts to roughly [-1, 1].
	sampleScale = 1.0 / 2048.0
)

// Source owns the driver, the resampler, the ring buffer and the worker
// goroutine. One producer (the worker) and one consumer (the Fill caller)
// are supported.
type Source struct {
	drv Driver
	res *dsp.Resampler
	cb  *ring.Ring

	gain       float64
	centerFreq float64

	streaming atomic.Bool
	overflow  atomic.Uint32

	dataReady chan struct{}
	done      chan struct{}
}

// New returns an unopened source reading from drv at the given gain in dB.
func New(gain float64, drv Driver) *Source {
	return &Source{
		drv:       drv,
		res:       dsp.NewResampler(),
		gain:      gain,
		dataReady: make(chan struct{}, 1),
	}
}

// Open opens the driver, configures the fixed 2.5 MS/s capture rate and
// manual gain, and allocates the ring buffer. Failures are fatal to the
// session.
func (s *Source) Open() error {
	return s.open(ringItems)
}

func (s *Source) open(items int) error {
	if err := s.drv.Open(); err != nil {
		return errors.Wrap(err, "opening driver")
	}

	if err := s.drv.SetSampleRate(dsp.InputRate); err != nil {
		return err
	}
	if err := s.drv.SetGain(s.gain); err != nil {
		return err
	}

	itemSize := int(unsafe.Sizeof(complex64(0)))
	cb, err := ring.New(items, itemSize, false)
	if err != nil {
		return err
	}
	s.cb = cb

	return nil
}

// Close stops streaming and releases the driver and the ring buffer.
func (s *Source) Close() error {
	s.Stop()

	err := s.drv.Close()
	if s.cb != nil {
		if cerr := s.cb.Close(); err == nil {
			err = cerr
		}
		s.cb = nil
	}

	return err
}

// Tune retunes the device and resets the resampler so transients from the
// previous frequency do not mix into the new stream.
func (s *Source) Tune(hz float64) error {
	if err := s.drv.SetCenterFreq(hz); err != nil {
		return errors.Wrapf(err, "tuning to %.0f Hz", hz)
	}

	s.centerFreq = hz
	s.res.Reset()

	log.WithField("freq", hz).Debug("tuned")
	return nil
}

// CenterFreq returns the last tuned frequency in Hz.
func (s *Source) CenterFreq() float64 { return s.centerFreq }

// SetGain sets the hardware gain in dB.
func (s *Source) SetGain(db float64) error {
	if err := s.drv.SetGain(db); err != nil {
		return err
	}
	s.gain = db
	return nil
}

// Start arms the worker. No-op when already streaming.
func (s *Source) Start() error {
	if s.cb == nil {
		return errors.New("source not open")
	}
	if s.streaming.Swap(true) {
		return nil
	}

	s.res.Reset()
	s.overflow.Store(0)
	s.done = make(chan struct{})
	go s.worker()

	return nil
}

// Stop clears the streaming flag, joins the worker and wakes any waiter.
// Double-stop is a no-op.
func (s *Source) Stop() {
	if !s.streaming.Swap(false) {
		return
	}
	<-s.done
	s.notify()
}

// Buffer exposes the ring holding resampled output samples. Consumers
// drain it with Read or Peek after a successful Fill.
func (s *Source) Buffer() *ring.Ring { return s.cb }

// SampleRate returns the output rate of the pipeline, the GSM symbol rate.
func (s *Source) SampleRate() float64 { return dsp.OutputRate }

// Flush discards buffered output and clears the overflow account.
func (s *Source) Flush() {
	if s.cb != nil {
		s.cb.Flush()
	}
	s.overflow.Store(0)
}

// Fill blocks until at least n output samples are buffered, streaming ends,
// or ctx is cancelled. It returns the overflow count accumulated since the
// previous call, clearing it. Fill removes nothing from the ring. Starts
// the worker if it is not running.
func (s *Source) Fill(ctx context.Context, n int) (overruns uint32, err error) {
	if s.cb == nil {
		return 0, errors.New("source not open")
	}
	if !s.streaming.Load() {
		if err := s.Start(); err != nil {
			return 0, err
		}
	}

	for {
		if ctx.Err() != nil {
			return 0, ErrStopped
		}
		if s.cb.DataAvailable() >= n || !s.streaming.Load() {
			break
		}

		select {
		case <-s.dataReady:
		case <-time.After(fillPoll):
		case <-ctx.Done():
		}
	}

	if s.cb.DataAvailable() < n {
		return 0, ErrStopped
	}

	return s.overflow.Swap(0), nil
}

// Overruns returns and clears the overflow account without waiting.
func (s *Source) Overruns() uint32 { return s.overflow.Swap(0) }

func (s *Source) notify() {
	select {
	case s.dataReady <- struct{}{}:
	default:
	}
}

// worker runs on its own goroutine while streaming: refill, convert,
// resample, try-push. It never blocks on the consumer; when the ring mutex
// is contended or the ring is full the batch (or its tail) is dropped and
// accounted in the overflow counter. The driver deadline wins.
func (s *Source) worker() {
	defer close(s.done)

	in := make([]complex64, batchSize)
	out := make([]complex64, batchSize)

	for s.streaming.Load() {
		samples, err := s.drv.Refill()
		if err != nil {
			if err != io.EOF {
				log.WithError(err).Error("driver refill failed")
			}
			s.streaming.Store(false)
			break
		}

		total := len(samples) / 2
		for off := 0; off < total; off += batchSize {
			count := total - off
			if count > batchSize {
				count = batchSize
			}

			for k := 0; k < count; k++ {
				i := samples[2*(off+k)]
				q := samples[2*(off+k)+1]
				in[k] = complex(float32(i)*sampleScale, float32(q)*sampleScale)
			}

			produced := s.res.Process(in[:count], out)
			if produced == 0 {
				continue
			}

			if written, ok := s.cb.TryWrite(complexBytes(out[:produced])); ok {
				if written < produced {
					s.overflow.Add(uint32(produced - written))
				}
				s.notify()
			} else {
				s.overflow.Add(uint32(produced))
			}
		}
	}

	s.notify()
}

// complexBytes reinterprets a complex64 slice as raw bytes for the ring.
func complexBytes(c []complex64) []byte {
	if len(c) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&c[0])), len(c)*8)
}

// Complexes reinterprets ring bytes as complex64 samples; the view shares
// the ring's storage and follows Peek's validity rules.
func Complexes(b []byte) []complex64 {
	if len(b) < 8 {
		return nil
	}
	return unsafe.Slice((*complex64)(unsafe.Pointer(&b[0])), len(b)/8)
}
