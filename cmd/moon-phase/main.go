package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/chrissnell/skyalmanac/pkg/ephemeris"
)

// moon-phase prints the Moon's phase for a given instant. It needs no
// ephemeris files or earth-orientation data; the built-in lunar theory is
// accurate to well under a second of phase age.
func main() {
	var timeStr string
	flag.StringVar(&timeStr, "time", "", "UTC time to calculate phase for (RFC3339 format, e.g., 2026-01-15T12:00:00Z)")
	flag.Parse()

	var t time.Time
	if timeStr == "" {
		t = time.Now().UTC()
	} else {
		var err error
		t, err = time.Parse(time.RFC3339, timeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			os.Exit(1)
		}
	}

	ts := ephemeris.NewTimeScale(nil)
	oracle := &ephemeris.Oracle{TS: ts}
	in := ts.FromTime(t)

	phase := oracle.PhaseAngle(in)
	illum := oracle.Illumination(in)
	age := in.Sub(oracle.NewMoonBefore(in))

	// The phase angle shrinks toward full moon; it is waxing for the first
	// half of the synodic month.
	waxing := age < 29.530588861/2

	fmt.Printf("Moon Phase for %s\n", t.Format(time.RFC3339))
	fmt.Printf("  Phase Name:   %s\n", phaseName(illum, waxing))
	fmt.Printf("  Illumination: %.1f%%\n", illum*100)
	fmt.Printf("  Age:          %.1f days\n", age)
	fmt.Printf("  Phase Angle:  %.1f°\n", phase*180/math.Pi)
	if waxing {
		fmt.Printf("  Direction:    Waxing\n")
	} else {
		fmt.Printf("  Direction:    Waning\n")
	}
}

func phaseName(illum float64, waxing bool) string {
	switch {
	case illum < 0.02:
		return "New Moon"
	case illum < 0.48:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	case illum < 0.52:
		if waxing {
			return "First Quarter"
		}
		return "Last Quarter"
	case illum < 0.98:
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	default:
		return "Full Moon"
	}
}
