package gsm

import "testing"

func TestARFCNToFreq(t *testing.T) {
	cases := []struct {
		band Band
		n    int
		want float64
	}{
		{GSM900, 1, 935.2e6},
		{GSM900, 124, 959.8e6},
		{EGSM, 0, 935.0e6},
		{EGSM, 975, 925.2e6},
		{EGSM, 1023, 934.8e6},
		{GSMR, 955, 921.2e6},
		{GSMR, 974, 925.0e6},
		{GSM850, 128, 869.2e6},
		{GSM850, 251, 893.8e6},
		{DCS1800, 512, 1805.2e6},
		{DCS1800, 885, 1879.8e6},
		{PCS1900, 512, 1930.2e6},
		{PCS1900, 810, 1989.8e6},
	}

	for _, c := range cases {
		got, err := ARFCNToFreq(c.n, c.band)
		if err != nil {
			t.Fatalf("%s chan %d: %v", c.band, c.n, err)
		}
		if got != c.want {
			t.Errorf("%s chan %d: got %.1f want %.1f", c.band, c.n, got, c.want)
		}
	}
}

func TestARFCNOutOfBand(t *testing.T) {
	if _, err := ARFCNToFreq(125, GSM900); err == nil {
		t.Error("expected error for GSM900 channel 125")
	}
	if _, err := ARFCNToFreq(0, GSM900); err == nil {
		t.Error("expected error for GSM900 channel 0")
	}
	if _, err := ARFCNToFreq(886, DCS1800); err == nil {
		t.Error("expected error for DCS channel 886")
	}
}

func TestFreqToARFCNRoundTrip(t *testing.T) {
	for _, band := range []Band{GSM850, GSMR, GSM900, EGSM, DCS1800, PCS1900} {
		for _, n := range band.Channels() {
			freq, err := ARFCNToFreq(n, band)
			if err != nil {
				t.Fatalf("%s chan %d: %v", band, n, err)
			}
			back, err := FreqToARFCN(freq, band)
			if err != nil {
				t.Fatalf("%s %.1f Hz: %v", band, freq, err)
			}
			if back != n {
				t.Errorf("%s chan %d: round-tripped to %d", band, n, back)
			}
		}
	}
}

func TestParseBand(t *testing.T) {
	for _, s := range []string{"GSM850", "GSM-R", "GSM900", "EGSM", "DCS", "PCS", "dcs1800", "pcs1900"} {
		if _, err := ParseBand(s); err != nil {
			t.Errorf("ParseBand(%q): %v", s, err)
		}
	}
	if _, err := ParseBand("LTE"); err == nil {
		t.Error("expected error for unknown band")
	}
}

func TestChannelsAscendingFrequency(t *testing.T) {
	for _, band := range []Band{GSM850, GSMR, GSM900, EGSM, DCS1800, PCS1900} {
		last := -1.0
		for _, n := range band.Channels() {
			freq, err := ARFCNToFreq(n, band)
			if err != nil {
				t.Fatal(err)
			}
			if freq <= last {
				t.Fatalf("%s: channel %d out of frequency order", band, n)
			}
			last = freq
		}
	}
}
