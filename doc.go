/*
KALIBRATE scans for GSM base stations and measures the local oscillator
offset of an SDR against their frequency correction bursts.

The pipeline captures complex baseband at 2.5 MS/s from an rtl_tcp server,
resamples it to the GSM symbol rate of 270833.333 Hz through a two-stage
FIR cascade (÷5 decimator, ×13/24 polyphase), and buffers the result in a
magic ring buffer for the measurement stages.

Command-line Flags:

	-s=GSM900

Scans the given band (GSM850, GSM-R, GSM900, EGSM, DCS, PCS) for base
stations and lists channels standing clear of the band's noise floor.

	-f=935.2e6
	-c=1 -b=GSM900

Measures the clock offset against the FCCH tone of the base station at the
given frequency, or at the given channel of the given band. Reports the
mean offset in Hz, its standard deviation, and the implied ppm error.

	-g=40

Sets the hardware gain in dB (0-70). Gain control is always manual.

	-server="127.0.0.1:1234"

Sets rtl_tcp server address or hostname and port to connect to.

	-format="plain"

Sets the measurement output format: plain, csv, json or xml.

	-A

Renders an ASCII spectrum of each capture to stderr.

	-B

Runs the DSP benchmark: streams a synthetic six-tone signal through the
full pipeline and reports throughput and the input/output spectra.

	-v
	-D

Raise log verbosity to info and debug respectively.

Every flag can be overridden with a KAL_ environment variable, e.g.
KAL_SERVER=192.168.1.2:1234.
*/
package main
