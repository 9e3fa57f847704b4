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

package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/F5OEO/kalibrate-hydrasdr/source"
	"github.com/F5OEO/kalibrate-hydrasdr/spectrum"
)

// The FCCH burst is an unmodulated carrier 1625/24 kHz above the channel
// center. Its measured position against this expectation is the clock
// offset.
const fcchOffsetHz = 1625000.0 / 24.0

const (
	offsetWindow   = 65536
	offsetRounds   = 10
	offsetMaxTries = 40
	fcchSearchHz   = 30e3
)

// OffsetRecord reports a clock offset measurement series for one carrier.
type OffsetRecord struct {
	Band   string  `xml:",attr"`
	ARFCN  int     `xml:",attr"`
	Freq   float64 `xml:",attr"`
	Offset float64 `xml:",attr"` // Hz, mean over all measurements
	Stddev float64 `xml:",attr"` // Hz
	PPM    float64 `xml:",attr"`
}

func (r OffsetRecord) String() string {
	return fmt.Sprintf("{Band:%s ARFCN:%d Freq:%.0f Offset:%+.1fHz Stddev:%.1fHz PPM:%+.3f}",
		r.Band, r.ARFCN, r.Freq, r.Offset, r.Stddev, r.PPM,
	)
}

func (r OffsetRecord) Record() []string {
	return []string{
		r.Band,
		strconv.Itoa(r.ARFCN),
		strconv.FormatFloat(r.Freq, 'f', 0, 64),
		strconv.FormatFloat(r.Offset, 'f', 1, 64),
		strconv.FormatFloat(r.Stddev, 'f', 1, 64),
		strconv.FormatFloat(r.PPM, 'f', 3, 64),
	}
}

func (r OffsetRecord) Header() []string {
	return []string{"band", "arfcn", "freq_hz", "offset_hz", "stddev_hz", "ppm"}
}

// offsetDetect tunes to freq and measures the local oscillator error
// against the base station's FCCH tone.
func offsetDetect(ctx context.Context, src *source.Source, bandName string, arfcn int, freq float64) error {
	log.WithFields(log.Fields{"freq": freq, "arfcn": arfcn}).Info("calculating clock frequency offset")

	if err := src.Tune(freq); err != nil {
		return err
	}
	src.Flush()

	var offsets []float64
	buf := make([]byte, offsetWindow*8)

	for tries := 0; len(offsets) < offsetRounds && tries < offsetMaxTries; tries++ {
		overruns, err := src.Fill(ctx, offsetWindow)
		if err != nil {
			if errors.Is(err, source.ErrStopped) {
				break
			}
			return err
		}
		if overruns > 0 {
			log.WithField("overruns", overruns).Warn("dropped samples")
		}

		n := src.Buffer().Read(buf)
		samples := source.Complexes(buf[:n*8])

		a, err := spectrum.Analyze(samples, src.SampleRate())
		if err != nil {
			continue
		}
		if *showFFT {
			a.Render(os.Stderr, 120)
		}

		peak, ok := a.PeakNear(fcchOffsetHz, fcchSearchHz)
		if !ok {
			log.Debug("no FCCH tone in capture")
			continue
		}

		offset := peak.Freq - fcchOffsetHz
		offsets = append(offsets, offset)
		log.WithFields(log.Fields{"offset": offset, "level": peak.DB}).Debug("measurement")
	}

	if len(offsets) == 0 {
		if ctx.Err() != nil {
			return nil
		}
		return errors.Errorf("no FCCH tone found near %.0f Hz", freq)
	}

	mean, stddev := meanStddev(offsets)
	rec := OffsetRecord{
		Band:   bandName,
		ARFCN:  arfcn,
		Freq:   freq,
		Offset: mean,
		Stddev: stddev,
		PPM:    mean / freq * 1e6,
	}

	return encoder.Encode(rec)
}

func meanStddev(data []float64) (mean, stddev float64) {
	var sum, sumSq float64
	for _, v := range data {
		sum += v
		sumSq += v * v
	}
	mean = sum / float64(len(data))
	stddev = math.Sqrt(sumSq/float64(len(data)) - mean*mean)
	return
}
