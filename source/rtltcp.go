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

package source

import (
	"io"
	"net"

	"github.com/bemasher/rtltcp"
	"github.com/pkg/errors"
)

// RTLTCP drives an rtl_tcp server. The dongle delivers unsigned 8-bit I/Q;
// samples are widened onto the signed 12-bit grid the pipeline's 1/2048
// scaler expects.
type RTLTCP struct {
	sdr  rtltcp.SDR
	addr string

	raw     []byte
	samples []int16
}

// NewRTLTCP returns a driver for the rtl_tcp server at addr. An empty addr
// uses the rtltcp default of 127.0.0.1:1234.
func NewRTLTCP(addr string) *RTLTCP {
	return &RTLTCP{addr: addr}
}

func (d *RTLTCP) Open() error {
	var addr *net.TCPAddr
	if d.addr != "" {
		var err error
		addr, err = net.ResolveTCPAddr("tcp", d.addr)
		if err != nil {
			return errors.Wrapf(err, "resolving %q", d.addr)
		}
	}

	if err := d.sdr.Connect(addr); err != nil {
		return errors.Wrap(err, "connecting to rtl_tcp")
	}

	d.raw = make([]byte, DriverBufferSamples*2)
	d.samples = make([]int16, DriverBufferSamples*2)

	return nil
}

func (d *RTLTCP) Close() error {
	if d.sdr.TCPConn == nil {
		return nil
	}
	return d.sdr.Close()
}

func (d *RTLTCP) SetSampleRate(hz int) error {
	return errors.Wrap(d.sdr.SetSampleRate(uint32(hz)), "setting sample rate")
}

func (d *RTLTCP) SetCenterFreq(hz float64) error {
	return errors.Wrap(d.sdr.SetCenterFreq(uint32(hz)), "setting center frequency")
}

func (d *RTLTCP) SetGain(db float64) error {
	// Manual gain control; the protocol takes tenths of a dB.
	if err := d.sdr.SetGainMode(false); err != nil {
		return errors.Wrap(err, "setting gain mode")
	}
	return errors.Wrap(d.sdr.SetGain(uint32(db*10)), "setting gain")
}

func (d *RTLTCP) Refill() ([]int16, error) {
	if _, err := io.ReadFull(d.sdr, d.raw); err != nil {
		return nil, err
	}

	for i, b := range d.raw {
		d.samples[i] = (int16(b) - 127) << 4
	}

	return d.samples, nil
}
