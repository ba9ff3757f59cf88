package ephemeris

import (
	"errors"
	"math"
	"testing"
	"time"
)

// The zero Oracle serves Sun and Moon from the built-in theories, so these
// tests need no VSOP87 files on disk.

func sunMoonOracle() (*Oracle, *TimeScale) {
	ts := NewTimeScale(nil)
	return &Oracle{TS: ts}, ts
}

func TestApparentSun(t *testing.T) {
	o, ts := sunMoonOracle()

	tests := []struct {
		name    string
		m       time.Month
		d       int
		wantDec float64
		tol     float64
	}{
		{"march equinox", time.March, 20, 0, 0.5},
		{"june solstice", time.June, 21, 23.43, 0.1},
		{"december solstice", time.December, 21, -23.43, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := o.Apparent(ts.UT1(2026, tt.m, tt.d, 12, 0, 0), Sun)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(pos.Dec-tt.wantDec) > tt.tol {
				t.Errorf("Sun Dec = %v, want %v ± %v", pos.Dec, tt.wantDec, tt.tol)
			}
			if pos.RA < 0 || pos.RA >= 24 {
				t.Errorf("Sun RA out of range: %v", pos.RA)
			}
			// One AU, give or take the orbital eccentricity.
			if pos.Distance < 0.96*AUKm || pos.Distance > 1.04*AUKm {
				t.Errorf("Sun distance = %v km", pos.Distance)
			}
		})
	}
}

func TestApparentMoon(t *testing.T) {
	o, ts := sunMoonOracle()
	pos, err := o.Apparent(ts.UT1(2026, time.April, 10, 0, 0, 0), Moon)
	if err != nil {
		t.Fatal(err)
	}
	if pos.Distance < 356000 || pos.Distance > 407000 {
		t.Errorf("Moon distance = %v km, want within orbit bounds", pos.Distance)
	}
	if pos.Dec < -29 || pos.Dec > 29 {
		t.Errorf("Moon Dec = %v, beyond maximum standstill", pos.Dec)
	}
}

func TestIllumination(t *testing.T) {
	o, ts := sunMoonOracle()
	for d := 1; d <= 28; d += 3 {
		in := ts.UT1(2026, time.February, d, 0, 0, 0)
		if f := o.Illumination(in); f < 0 || f > 1 {
			t.Errorf("Illumination on Feb %d = %v, want [0,1]", d, f)
		}
	}
}

func TestNewMoonBefore(t *testing.T) {
	o, ts := sunMoonOracle()
	in := ts.UT1(2026, time.July, 15, 0, 0, 0)
	nm := o.NewMoonBefore(in)

	age := in.Sub(nm)
	if age < 0 || age > 29.54 {
		t.Fatalf("new moon age = %v days, want [0, 29.54]", age)
	}
	// The Moon is dark at the instant the search found.
	if f := o.Illumination(nm); f > 0.01 {
		t.Errorf("Illumination at new moon = %v, want < 0.01", f)
	}
}

func TestCheckCoverage(t *testing.T) {
	o, ts := sunMoonOracle()
	if err := o.CheckCoverage(ts.UT1(2026, time.January, 1, 0, 0, 0)); err != nil {
		t.Errorf("2026 outside selection-0 coverage: %v", err)
	}
	err := o.CheckCoverage(ts.UT1(2150, time.January, 1, 0, 0, 0))
	if !errors.Is(err, ErrCoverage) {
		t.Errorf("CheckCoverage(2150) = %v, want ErrCoverage", err)
	}
}

func TestAltitudeDeg(t *testing.T) {
	o, ts := sunMoonOracle()
	// Sun near the June solstice: high at noon from the northern
	// mid-latitudes, below the horizon twelve hours later.
	noon := ts.UT1(2026, time.June, 21, 12, 0, 0)
	alt, err := o.AltitudeDeg(noon, Sun, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if alt < 55 || alt > 70 {
		t.Errorf("noon altitude = %v, want ~63", alt)
	}
	alt, err = o.AltitudeDeg(noon.Add(0.5), Sun, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if alt > -5 {
		t.Errorf("midnight altitude = %v, want well below horizon", alt)
	}
}
