package almanac

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/chrissnell/skyalmanac/internal/constants"
	"github.com/chrissnell/skyalmanac/pkg/config"
	"github.com/chrissnell/skyalmanac/pkg/ephemeris"
)

// sunMoonEngine works entirely off the built-in Sun and Moon theories; the
// tests here never touch planetary data files.
func sunMoonEngine(cfg config.ConfigData) *Engine {
	ts := ephemeris.NewTimeScale(nil)
	return NewEngine(&ephemeris.Oracle{TS: ts}, ts, cfg)
}

// eventHour parses the hh of an hh:mm cell.
func eventHour(t *testing.T, s string) int {
	t.Helper()
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		t.Fatalf("not an event time: %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		t.Fatalf("not an event time: %q", s)
	}
	return h
}

func TestSunEventsEquator(t *testing.T) {
	e := sunMoonEngine(config.ConfigData{})
	d := Date{2026, time.March, 20}

	ev, err := e.SunEvents(d, 0, constants.SunriseDepression)
	if err != nil {
		t.Fatal(err)
	}
	if !ev.HasRise || !ev.HasSet {
		t.Fatalf("equinox at the equator: HasRise=%v HasSet=%v, want both", ev.HasRise, ev.HasSet)
	}
	midnight := e.TS.UT1(d.Y, d.M, d.D, 0, 0, 0)
	rise := e.FormatEvent(ev.Rise, midnight)
	set := e.FormatEvent(ev.Set, midnight)
	if h := eventHour(t, rise); h < 5 || h > 6 {
		t.Errorf("sunrise = %s, want close to 06:00", rise)
	}
	if h := eventHour(t, set); h < 17 || h > 18 {
		t.Errorf("sunset = %s, want close to 18:00", set)
	}
}

func TestSunEventsPolar(t *testing.T) {
	e := sunMoonEngine(config.ConfigData{})

	tests := []struct {
		name string
		d    Date
		want HorizonState
	}{
		{"midnight sun", Date{2026, time.June, 21}, Above},
		{"polar night", Date{2026, time.December, 21}, Below},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := e.SunEvents(tt.d, 72, constants.SunriseDepression)
			if err != nil {
				t.Fatal(err)
			}
			if ev.HasRise || ev.HasSet {
				t.Fatalf("lat 72 on %v: HasRise=%v HasSet=%v, want neither", tt.d, ev.HasRise, ev.HasSet)
			}
			if ev.Final != tt.want {
				t.Errorf("final state = %v, want %v", ev.Final, tt.want)
			}
		})
	}
}

func TestTwilightOrdering(t *testing.T) {
	// At a mid latitude the dawn sequence is nautical, civil, sunrise; dusk
	// reverses it.
	e := sunMoonEngine(config.ConfigData{})
	d := Date{2026, time.March, 20}

	var dawn []float64
	for _, dep := range []float64{constants.NauticalDepression, constants.CivilDepression, constants.SunriseDepression} {
		ev, err := e.SunEvents(d, 50, dep)
		if err != nil {
			t.Fatal(err)
		}
		if !ev.HasRise {
			t.Fatalf("no dawn event at depression %v", dep)
		}
		dawn = append(dawn, ev.Rise.JD)
	}
	if !(dawn[0] < dawn[1] && dawn[1] < dawn[2]) {
		t.Errorf("dawn sequence out of order: %v", dawn)
	}
}

func TestMoonEvents(t *testing.T) {
	// The ~24h50m lunar day can skip one rise or set per month, so assert
	// over a short run of days rather than a single one.
	e := sunMoonEngine(config.ConfigData{})
	var anyRise, anySet bool
	for _, d := range []Date{
		{2026, time.April, 10},
		{2026, time.April, 11},
		{2026, time.April, 12},
	} {
		ev, err := e.MoonEvents(d, 0)
		if err != nil {
			t.Fatal(err)
		}
		anyRise = anyRise || ev.HasRise
		anySet = anySet || ev.HasSet
	}
	if !anyRise || !anySet {
		t.Errorf("equator moon days: anyRise=%v anySet=%v, want both", anyRise, anySet)
	}
}

func TestHourlySun(t *testing.T) {
	e := sunMoonEngine(config.ConfigData{})
	tab, err := e.Hourly(Date{2026, time.May, 5}, ephemeris.Sun)
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.GHA) != 25 || len(tab.GHAFmt) != 24 || len(tab.DecFmt) != 24 {
		t.Fatalf("table sizes: GHA=%d GHAFmt=%d DecFmt=%d", len(tab.GHA), len(tab.GHAFmt), len(tab.DecFmt))
	}
	// The Sun covers very nearly 15 degrees of GHA per hour.
	for h := 0; h < 24; h++ {
		dg := Norm(tab.GHA[h+1] - tab.GHA[h])
		if dg < 14.9 || dg > 15.1 {
			t.Errorf("hour %d: GHA step %v, want ~15", h, dg)
		}
		// So the tabulated v stays small.
		if tab.VMin[h] < -3 || tab.VMin[h] > 3 {
			t.Errorf("hour %d: v = %v arcmin", h, tab.VMin[h])
		}
	}
	// Early May declination is around N16 and increasing.
	if tab.Dec[12] < 15 || tab.Dec[12] > 17.5 {
		t.Errorf("noon Dec = %v, want ~16.3", tab.Dec[12])
	}
	if tab.Dec[24] <= tab.Dec[0] {
		t.Error("May declination should increase through the day")
	}
	// Semi-diameter is close to 15.9 arc-minutes.
	if tab.SDMin < 15.6 || tab.SDMin > 16.4 {
		t.Errorf("SD = %v arcmin", tab.SDMin)
	}
}

func TestHourlyMoon(t *testing.T) {
	e := sunMoonEngine(config.ConfigData{})
	tab, err := e.Hourly(Date{2026, time.May, 5}, ephemeris.Moon)
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.HPMin) != 24 || len(tab.HPFmt) != 24 {
		t.Fatalf("moon HP columns missing: HPMin=%d HPFmt=%d", len(tab.HPMin), len(tab.HPFmt))
	}
	for h := 0; h < 24; h++ {
		if tab.HPMin[h] < 53 || tab.HPMin[h] > 62 {
			t.Errorf("hour %d: HP = %v arcmin", h, tab.HPMin[h])
		}
	}
	// Moon SD runs 14.7-16.8 arc-minutes over the orbit.
	if tab.SDMin < 14.5 || tab.SDMin > 17 {
		t.Errorf("SD = %v arcmin", tab.SDMin)
	}
}

func TestHourlyAries(t *testing.T) {
	e := sunMoonEngine(config.ConfigData{})
	gha, ghaFmt := e.HourlyAries(Date{2026, time.May, 5})
	if len(gha) != 25 || len(ghaFmt) != 24 {
		t.Fatalf("Aries sizes: %d, %d", len(gha), len(ghaFmt))
	}
	// Sidereal rate: 15.04 degrees per hour.
	for h := 0; h < 24; h++ {
		dg := Norm(gha[h+1] - gha[h])
		if dg < 15.0 || dg > 15.1 {
			t.Errorf("hour %d: Aries GHA step %v", h, dg)
		}
	}
}
