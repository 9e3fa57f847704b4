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

// DriverBufferSamples is the refill chunk size requested from drivers.
const DriverBufferSamples = 128 * 1024

// Driver is the hardware contract the source consumes: a device that, while
// armed, yields buffers of interleaved signed 16-bit I/Q on the 12-bit grid
// at the configured sample rate.
type Driver interface {
	Open() error
	Close() error

	// Attribute-style controls. Gain is in dB (0-70); drivers select
	// manual gain control mode when a gain is set.
	SetSampleRate(hz int) error
	SetCenterFreq(hz float64) error
	SetGain(db float64) error

	// Refill blocks until the next chunk of interleaved (i, q) int16
	// samples is available and returns it. The slice is reused and only
	// valid until the next call. io.EOF reports an orderly end of the
	// stream; any other error ends the worker loop.
	Refill() ([]int16, error)
}
