package almanac

import (
	"math"
	"testing"
	"time"

	"github.com/chrissnell/skyalmanac/pkg/config"
)

func TestEqtMap(t *testing.T) {
	tests := []struct {
		gha  float64
		want float64
	}{
		{180, 0},    // noon value, sun on the meridian
		{179, -1},   // sun late
		{183.5, 3.5}, // sun early
		{0, 0},      // midnight value
		{2, 2},
		{359, -1},
		{271, -89},
	}
	for _, tt := range tests {
		if got := eqtMap(tt.gha); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("eqtMap(%v) = %v, want %v", tt.gha, got, tt.want)
		}
	}
}

func TestFmtEqt(t *testing.T) {
	tests := []struct {
		offset float64
		want   string
	}{
		{0, "00:00"},
		{0.25, "01:00"},    // a quarter degree is one minute of time
		{-0.25, "01:00"},   // magnitude only
		{0.1, "00:24"},
		{0.10208333, "00:25"}, // 24.5 s rounds half-up
		{3.5, "14:00"},
	}
	for _, tt := range tests {
		if got := fmtEqt(tt.offset); got != tt.want {
			t.Errorf("fmtEqt(%v) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func TestEquationOfTime(t *testing.T) {
	e := sunMoonEngine(config.ConfigData{})

	// Early November: the equation of time peaks near 16m24s, sun fast.
	eqt, err := e.EquationOfTime(Date{2026, time.November, 3})
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []string{eqt.T00, eqt.T12} {
		if len(v) != 5 || v[2] != ':' {
			t.Fatalf("eqt value %q not mm:ss", v)
		}
		if v < "16:00" || v > "16:40" {
			t.Errorf("November eqt = %s, want ~16:24", v)
		}
	}
	// A fast sun transits before 12:00 and neither value is flagged.
	if eqt.Flag00 || eqt.Flag12 {
		t.Errorf("flags = (%v, %v), want none for a fast sun", eqt.Flag00, eqt.Flag12)
	}
	if h := eventHour(t, eqt.MerPass); h != 11 {
		t.Errorf("MerPass = %s, want 11:4x", eqt.MerPass)
	}

	if eqt.AgeDays < 0 || eqt.AgeDays > 29 {
		t.Errorf("AgeDays = %d", eqt.AgeDays)
	}
	if eqt.IllumPct < 0 || eqt.IllumPct > 100 {
		t.Errorf("IllumPct = %d", eqt.IllumPct)
	}

	// Mid-February: the sun runs slow by ~14 minutes, so both values carry
	// the slow-sun flag and meridian passage slips past 12:13.
	eqt, err = e.EquationOfTime(Date{2026, time.February, 11})
	if err != nil {
		t.Fatal(err)
	}
	if !eqt.Flag00 || !eqt.Flag12 {
		t.Errorf("February flags = (%v, %v), want both", eqt.Flag00, eqt.Flag12)
	}
	if h := eventHour(t, eqt.MerPass); h != 12 {
		t.Errorf("MerPass = %s, want 12:1x", eqt.MerPass)
	}
}
