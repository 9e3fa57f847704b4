// Package gsm maps ARFCNs (absolute radio-frequency channel numbers) to
// base-station downlink frequencies for the bands the scanner covers.
package gsm

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Band identifies a GSM frequency band.
type Band int

const (
	GSM850 Band = iota
	GSMR
	GSM900
	EGSM
	DCS1800
	PCS1900
)

const channelSpacing = 200e3

var bandNames = map[Band]string{
	GSM850:  "GSM850",
	GSMR:    "GSM-R",
	GSM900:  "GSM900",
	EGSM:    "EGSM",
	DCS1800: "DCS",
	PCS1900: "PCS",
}

func (b Band) String() string {
	if name, ok := bandNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Band(%d)", int(b))
}

// ParseBand returns the band named by s (case-insensitive). Accepts the
// common aliases DCS1800 and PCS1900.
func ParseBand(s string) (Band, error) {
	switch strings.ToUpper(s) {
	case "GSM850":
		return GSM850, nil
	case "GSM-R", "GSMR":
		return GSMR, nil
	case "GSM900":
		return GSM900, nil
	case "EGSM":
		return EGSM, nil
	case "DCS", "DCS1800":
		return DCS1800, nil
	case "PCS", "PCS1900":
		return PCS1900, nil
	}
	return 0, errors.Errorf("gsm: bad band indicator %q", s)
}

// arfcnRange is a run of channel numbers with a linear frequency mapping.
type arfcnRange struct {
	first, last int
	base        float64 // downlink frequency of first
}

func (r arfcnRange) freq(n int) float64 {
	return r.base + float64(n-r.first)*channelSpacing
}

// Downlink mappings per 3GPP TS 45.005. DCS and PCS channel numbers
// overlap, which is why a band indicator is always required.
var bandRanges = map[Band][]arfcnRange{
	GSM850:  {{128, 251, 869.2e6}},
	GSMR:    {{955, 974, 921.2e6}},
	GSM900:  {{1, 124, 935.2e6}},
	EGSM:    {{975, 1023, 925.2e6}, {0, 124, 935.0e6}},
	DCS1800: {{512, 885, 1805.2e6}},
	PCS1900: {{512, 810, 1930.2e6}},
}

// ARFCNToFreq returns the downlink frequency in Hz of channel n in band b.
func ARFCNToFreq(n int, b Band) (float64, error) {
	for _, r := range bandRanges[b] {
		if n >= r.first && n <= r.last {
			return r.freq(n), nil
		}
	}
	return 0, errors.Errorf("gsm: channel %d not in %s", n, b)
}

// FreqToARFCN returns the channel whose downlink frequency is hz in band b.
func FreqToARFCN(hz float64, b Band) (int, error) {
	for _, r := range bandRanges[b] {
		lo, hi := r.freq(r.first), r.freq(r.last)
		if hz < lo-channelSpacing/2 || hz > hi+channelSpacing/2 {
			continue
		}
		n := r.first + int((hz-r.base)/channelSpacing+0.5)
		if n >= r.first && n <= r.last {
			return n, nil
		}
	}
	return 0, errors.Errorf("gsm: %.1f Hz not in %s", hz, b)
}

// Channels returns every ARFCN of the band in ascending frequency order.
func (b Band) Channels() []int {
	var chans []int
	for _, r := range bandRanges[b] {
		for n := r.first; n <= r.last; n++ {
			chans = append(chans, n)
		}
	}
	return chans
}
