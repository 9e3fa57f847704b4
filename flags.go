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
	"encoding/json"
	"encoding/xml"
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/F5OEO/kalibrate-hydrasdr/csv"
)

var scanBand = flag.String("s", "", "band to scan (GSM850, GSM-R, GSM900, EGSM, DCS, PCS)")
var bandInd = flag.String("b", "", "band indicator for -c and -f")
var freqFlag = flag.Float64("f", -1, "frequency of nearby GSM base station in Hz")
var chanFlag = flag.Int("c", -1, "channel of nearby GSM base station")
var gainFlag = flag.Float64("g", 40, "gain in dB")
var serverAddr = flag.String("server", "127.0.0.1:1234", "address or hostname of rtl_tcp instance")

var showFFT = flag.Bool("A", false, "show ASCII FFT of each capture")
var benchmark = flag.Bool("B", false, "run DSP benchmark and exit")
var verbose = flag.Bool("v", false, "verbose")
var debug = flag.Bool("D", false, "enable debug messages")

var encoder Encoder
var format = flag.String("format", "plain", "measurement output format: plain, csv, json, or xml")

var version = flag.Bool("version", false, "display build date and commit hash")

func RegisterFlags() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "\tGSM Base Station Scan:")
		fmt.Fprintf(os.Stderr, "\t\t%s -s <band> [options]\n", os.Args[0])
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "\tClock Offset Calculation:")
		fmt.Fprintf(os.Stderr, "\t\t%s -f <frequency> | -c <channel> -b <band> [options]\n", os.Args[0])
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Where options are:")
		flag.PrintDefaults()
	}
}

func EnvOverride() {
	flag.VisitAll(func(f *flag.Flag) {
		envName := "KAL_" + strings.ToUpper(f.Name)
		flagValue := os.Getenv(envName)
		if flagValue != "" {
			if err := flag.Set(f.Name, flagValue); err != nil {
				log.Printf(
					"Environment variable %q failed to override flag %q with value %q: %q\n",
					envName, f.Name, flagValue, err,
				)
			} else {
				log.Printf("Environment variable %q overrides flag %q with %q\n", envName, f.Name, flagValue)
			}
		}
	})
}

func HandleFlags() {
	switch {
	case *debug:
		log.SetLevel(log.DebugLevel)
	case *verbose:
		log.SetLevel(log.InfoLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}

	*format = strings.ToLower(*format)
	switch *format {
	case "plain":
		encoder = PlainEncoder{}
	case "csv":
		encoder = csv.NewEncoder(os.Stdout)
	case "json":
		encoder = json.NewEncoder(os.Stdout)
	case "xml":
		encoder = xml.NewEncoder(os.Stdout)
	default:
		log.Fatalf("invalid output format: %q", *format)
	}
}

// JSON, XML and CSV encoders all implement this interface so measurement
// output formatting stays uniform.
type Encoder interface {
	Encode(interface{}) error
}

type PlainEncoder struct{}

func (PlainEncoder) Encode(msg interface{}) (err error) {
	_, err = fmt.Println(msg)
	return
}
