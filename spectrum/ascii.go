package spectrum

import (
	"fmt"
	"io"
)

// Display range for the bar plot.
const (
	floorDB = -115.0
	ceilDB  = -45.0
)

var blocks = [...]string{" ", " ", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// Render draws the spectrum as a colored bar plot of the given terminal
// width, followed by the strongest peaks. Bins are max-held into plot
// columns so narrow carriers survive the downsampling.
func (a *Analysis) Render(w io.Writer, width int) {
	plotWidth := width - 20
	if plotWidth < 10 {
		plotWidth = 10
	}

	bins := make([]float64, plotWidth)
	for col := 0; col < plotWidth; col++ {
		localMax := -1000.0
		start := col * a.N / plotWidth
		end := (col + 1) * a.N / plotWidth
		for j := start; j < end && j < a.N; j++ {
			if a.Bins[j] > localMax {
				localMax = a.Bins[j]
			}
		}
		bins[col] = localMax
	}

	fmt.Fprint(w, "\033[36m[-BW/2] \033[0m")

	for _, val := range bins {
		norm := (val - floorDB) / (ceilDB - floorDB)
		if norm < 0 {
			norm = 0
		}
		if norm > 1 {
			norm = 1
		}

		switch {
		case norm < 0.20:
			fmt.Fprint(w, "\033[90m")
		case norm < 0.40:
			fmt.Fprint(w, "\033[34m")
		case norm < 0.60:
			fmt.Fprint(w, "\033[36m")
		case norm < 0.80:
			fmt.Fprint(w, "\033[32m")
		default:
			fmt.Fprint(w, "\033[91m")
		}

		fmt.Fprint(w, blocks[int(norm*float64(len(blocks)-1))])
	}

	fmt.Fprintf(w, "\033[0m \033[36m[+BW/2]\033[0m Max: %.1fdBFS\n", a.Max())

	peaks := a.Peaks(6)
	if len(peaks) == 0 {
		return
	}
	fmt.Fprintln(w, "   Peak Detection (Top 6):")
	for i, p := range peaks {
		fmt.Fprintf(w, "    #%d: %9.1f Hz  (%6.1f dBFS)\n", i+1, p.Freq, p.DB)
	}
}
