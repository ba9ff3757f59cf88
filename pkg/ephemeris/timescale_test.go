package ephemeris

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chrissnell/skyalmanac/pkg/eop"
)

func TestUT1(t *testing.T) {
	ts := NewTimeScale(nil)

	if got := ts.UT1(2000, time.January, 1, 12, 0, 0).JD; got != 2451545.0 {
		t.Errorf("J2000.0 JD = %v, want 2451545.0", got)
	}

	// h=24 rolls over to the next day's midnight.
	a := ts.UT1(2026, time.February, 28, 24, 0, 0)
	b := ts.UT1(2026, time.March, 1, 0, 0, 0)
	if a.JD != b.JD {
		t.Errorf("hour rollover: %v != %v", a.JD, b.JD)
	}

	// Fractional and negative seconds.
	c := ts.UT1(2026, time.March, 1, 0, 0, -30)
	if d := c.Sub(b)*86400 + 30; math.Abs(d) > 1e-6 {
		t.Errorf("negative seconds off by %v s", d)
	}
}

func TestUT1Hours(t *testing.T) {
	ts := NewTimeScale(nil)
	v := ts.UT1Hours(2026, time.June, 10, []float64{0, 6, 12, 24.5})
	if len(v) != 4 {
		t.Fatalf("got %d instants, want 4", len(v))
	}
	if d := v[2].Sub(v[0]) - 0.5; math.Abs(d) > 1e-12 {
		t.Errorf("12h span = %v days, want 0.5", v[2].Sub(v[0]))
	}
	if d := v[3].Sub(v[0]) - 24.5/24; math.Abs(d) > 1e-12 {
		t.Errorf("24.5h span = %v days", v[3].Sub(v[0]))
	}
}

func TestGAST(t *testing.T) {
	ts := NewTimeScale(nil)
	// Apparent sidereal time at J2000.0 is 18h41m49.7s.
	got := ts.UT1(2000, time.January, 1, 12, 0, 0).GAST()
	want := 18.0 + 41.0/60 + 49.7/3600
	if math.Abs(got-want) > 0.01 {
		t.Errorf("GAST(J2000) = %v h, want %v h", got, want)
	}
	if got < 0 || got >= 24 {
		t.Errorf("GAST out of range: %v", got)
	}
}

func TestInstantArithmetic(t *testing.T) {
	ts := NewTimeScale(nil)
	a := ts.UT1(2026, time.August, 29, 6, 0, 0)
	b := a.Add(0.5)
	if d := b.Sub(a); d != 0.5 {
		t.Errorf("Sub after Add(0.5) = %v", d)
	}
	if !a.Before(b) || b.Before(a) {
		t.Error("Before ordering wrong")
	}
}

func TestCivilRoundTrip(t *testing.T) {
	ts := NewTimeScale(nil)
	in := ts.UT1(2026, time.August, 29, 18, 0, 0)
	y, m, d, hours := in.Civil()
	if y != 2026 || m != time.August || d != 29 {
		t.Errorf("Civil() date = %d-%v-%d", y, m, d)
	}
	if math.Abs(hours-18) > 1e-6 {
		t.Errorf("Civil() hours = %v, want 18", hours)
	}
}

func TestDeltaT(t *testing.T) {
	ts := NewTimeScale(nil)
	// Delta-T is around 69-75 s through the 2020s.
	dt := ts.UT1(2026, time.January, 1, 0, 0, 0).DeltaT()
	if dt < 60 || dt > 90 {
		t.Errorf("DeltaT(2026) = %v s, want ~70", dt)
	}
	// And grows into the future.
	later := ts.UT1(2100, time.January, 1, 0, 0, 0).DeltaT()
	if later <= dt {
		t.Errorf("DeltaT(2100) = %v, want > DeltaT(2026) = %v", later, dt)
	}
}

func TestDUT1NilTable(t *testing.T) {
	ts := NewTimeScale(nil)
	if got := ts.UT1(2026, time.January, 1, 0, 0, 0).DUT1(); got != 0 {
		t.Errorf("DUT1 with nil table = %v, want 0", got)
	}
}

// dut1Line fabricates one fixed-column finals2000A.all line in the columns
// the eop parser reads.
func dut1Line(mjd float64, flag byte, dut1 float64) string {
	b := []byte(strings.Repeat(" ", 70))
	copy(b[7:15], fmt.Sprintf("%8.2f", mjd))
	b[57] = flag
	copy(b[58:68], fmt.Sprintf("%10.7f", dut1))
	return string(b)
}

func TestDUT1FromTable(t *testing.T) {
	// 2026-01-01 00:00 UT1 is MJD 61041.
	lines := []string{
		dut1Line(61040, 'I', 0.1),
		dut1Line(61041, 'I', 0.3),
		dut1Line(61042, 'P', 0.5),
	}
	path := filepath.Join(t.TempDir(), "finals2000A.all")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := eop.Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	ts := NewTimeScale(table)

	if got := ts.UT1(2026, time.January, 1, 0, 0, 0).DUT1(); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("DUT1 at table node = %v, want 0.3", got)
	}
	if got := ts.UT1(2026, time.January, 1, 12, 0, 0).DUT1(); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("DUT1 at interval midpoint = %v, want 0.4", got)
	}
	if got := ts.UT1(2030, time.June, 1, 0, 0, 0).DUT1(); got != 0 {
		t.Errorf("DUT1 outside coverage = %v, want 0", got)
	}
}
