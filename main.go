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
	"flag"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"

	"github.com/F5OEO/kalibrate-hydrasdr/gsm"
	"github.com/F5OEO/kalibrate-hydrasdr/source"
)

var (
	buildTag   = "dev"     // v#.#.#
	buildDate  = "unknown" // date -u '+%Y-%m-%d'
	commitHash = "unknown" // git rev-parse HEAD
)

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
}

func main() {
	RegisterFlags()
	EnvOverride()
	flag.Parse()

	if *version {
		fmt.Println("Build Tag: ", buildTag)
		fmt.Println("Build Date:", buildDate)
		fmt.Println("Commit:    ", commitHash)
		os.Exit(0)
	}

	HandleFlags()

	// Shutdown token: the first SIGINT cancels the context and every
	// blocking operation observes it within its poll tick. A second
	// SIGINT force-terminates.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		fmt.Fprintln(os.Stderr, "\nForcing exit.")
		os.Exit(1)
	}()

	if *benchmark {
		runBenchmark(ctx)
		return
	}

	var band gsm.Band
	var haveBand bool
	bts := *scanBand != ""

	if bts {
		var err error
		if band, err = gsm.ParseBand(*scanBand); err != nil {
			log.Error(err)
			flag.Usage()
			os.Exit(1)
		}
		haveBand = true
	} else if *bandInd != "" {
		var err error
		if band, err = gsm.ParseBand(*bandInd); err != nil {
			log.Error(err)
			flag.Usage()
			os.Exit(1)
		}
		haveBand = true
	}

	freq := *freqFlag
	arfcn := *chanFlag

	if !bts {
		if freq < 0 && arfcn < 0 {
			log.Error("must enter scan band -s, channel -c or frequency -f")
			flag.Usage()
			os.Exit(1)
		}
		if freq < 0 {
			if !haveBand {
				log.Error("channel lookup requires a band indicator -b")
				os.Exit(1)
			}
			var err error
			if freq, err = gsm.ARFCNToFreq(arfcn, band); err != nil {
				log.Fatal(err)
			}
		} else if arfcn < 0 && haveBand {
			// Best effort; on failure the offset report keeps channel -1.
			if n, err := gsm.FreqToARFCN(freq, band); err == nil {
				arfcn = n
			}
		}
	}

	src := source.New(*gainFlag, source.NewRTLTCP(*serverAddr))
	if err := src.Open(); err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	var err error
	if bts {
		err = scanBTS(ctx, src, band)
	} else {
		bandName := ""
		if haveBand {
			bandName = band.String()
		}
		err = offsetDetect(ctx, src, bandName, arfcn, freq)
	}
	if err != nil {
		log.Error(err)
		src.Close()
		os.Exit(1)
	}
}
