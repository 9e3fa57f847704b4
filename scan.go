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
	"os"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/F5OEO/kalibrate-hydrasdr/gsm"
	"github.com/F5OEO/kalibrate-hydrasdr/source"
	"github.com/F5OEO/kalibrate-hydrasdr/spectrum"
)

const (
	scanWindow = 32768

	// A carrier must clear the band's median level by this much to count
	// as a base station.
	scanThresholdDB = 10.0
)

// ChannelRecord reports one candidate base station found by a band scan.
type ChannelRecord struct {
	Band  string  `xml:",attr"`
	ARFCN int     `xml:",attr"`
	Freq  float64 `xml:",attr"`
	Power float64 `xml:",attr"` // dBFS
}

func (r ChannelRecord) String() string {
	return fmt.Sprintf("{Band:%s ARFCN:%d Freq:%.1fMHz Power:%.1fdBFS}",
		r.Band, r.ARFCN, r.Freq/1e6, r.Power,
	)
}

func (r ChannelRecord) Record() []string {
	return []string{
		r.Band,
		strconv.Itoa(r.ARFCN),
		strconv.FormatFloat(r.Freq, 'f', 0, 64),
		strconv.FormatFloat(r.Power, 'f', 1, 64),
	}
}

func (r ChannelRecord) Header() []string {
	return []string{"band", "arfcn", "freq_hz", "power_dbfs"}
}

// scanBTS sweeps every channel of the band, measures carrier power at the
// symbol rate, and reports the channels that stand clear of the band's
// noise floor.
func scanBTS(ctx context.Context, src *source.Source, band gsm.Band) error {
	log.WithField("band", band.String()).Info("scanning for base stations")

	channels := band.Channels()
	powers := make([]float64, 0, len(channels))
	records := make([]ChannelRecord, 0, len(channels))
	buf := make([]byte, scanWindow*8)

	for _, n := range channels {
		if ctx.Err() != nil {
			break
		}

		freq, err := gsm.ARFCNToFreq(n, band)
		if err != nil {
			return err
		}
		if err := src.Tune(freq); err != nil {
			return err
		}
		src.Flush()

		if _, err := src.Fill(ctx, scanWindow); err != nil {
			if errors.Is(err, source.ErrStopped) {
				break
			}
			return err
		}

		read := src.Buffer().Read(buf)
		samples := source.Complexes(buf[:read*8])

		a, err := spectrum.Analyze(samples, src.SampleRate())
		if err != nil {
			continue
		}
		if *showFFT {
			fmt.Fprintf(os.Stderr, "chan %4d (%.1fMHz):\n", n, freq/1e6)
			a.Render(os.Stderr, 120)
		}

		power := a.Max()
		powers = append(powers, power)
		records = append(records, ChannelRecord{
			Band:  band.String(),
			ARFCN: n,
			Freq:  freq,
			Power: power,
		})

		log.WithFields(log.Fields{"arfcn": n, "power": power}).Debug("channel measured")
	}

	if len(records) == 0 {
		return nil
	}

	floor := median(powers)
	found := 0
	for _, rec := range records {
		if rec.Power < floor+scanThresholdDB {
			continue
		}
		if err := encoder.Encode(rec); err != nil {
			return err
		}
		found++
	}

	log.WithFields(log.Fields{
		"channels": len(records),
		"found":    found,
		"floor":    floor,
	}).Info("scan complete")

	return nil
}

func median(data []float64) float64 {
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}
