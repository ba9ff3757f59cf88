// Package ephemeris evaluates apparent positions of the Sun, Moon,
// navigational planets, and stars, together with Greenwich apparent sidereal
// time, on the UT1 time scale. It is the sole astronomical dependency of the
// almanac core: positions come from the Meeus model series and the VSOP87
// planetary theory, Earth rotation from the IERS EOP series when available.
package ephemeris

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"

	"github.com/chrissnell/skyalmanac/pkg/eop"
)

// TimeScale builds UT1 instants. A nil EOP table means DUT1 is taken as zero
// and Delta-T comes from the built-in polynomial model.
type TimeScale struct {
	EOP *eop.Table
}

// NewTimeScale returns a TimeScale backed by the given EOP table, which may
// be nil.
func NewTimeScale(t *eop.Table) *TimeScale {
	return &TimeScale{EOP: t}
}

// Instant is a time on the UT1 scale. Instants are value types; the
// arithmetic helpers return new instants.
type Instant struct {
	JD float64 // UT1 Julian date
	ts *TimeScale
}

// UT1 builds an instant from civil Y,M,D,h,m,s. Out-of-range components roll
// over naturally (h=24 is the next day's 00:00) and seconds may be fractional
// or negative.
func (ts *TimeScale) UT1(y int, m time.Month, d, hr, min int, sec float64) Instant {
	dayFrac := float64(d) + (float64(hr)+(float64(min)+sec/60)/60)/24
	return Instant{JD: julian.CalendarGregorianToJD(y, int(m), dayFrac), ts: ts}
}

// UT1Hours builds an instant-vector: one instant per entry of hours, all on
// the same calendar date. Hour values may be fractional.
func (ts *TimeScale) UT1Hours(y int, m time.Month, d int, hours []float64) []Instant {
	v := make([]Instant, len(hours))
	jd0 := julian.CalendarGregorianToJD(y, int(m), float64(d))
	for i, h := range hours {
		v[i] = Instant{JD: jd0 + h/24, ts: ts}
	}
	return v
}

// FromTime builds an instant from a wall-clock time, treated as UT1.
func (ts *TimeScale) FromTime(t time.Time) Instant {
	return Instant{JD: julian.TimeToJD(t.UTC()), ts: ts}
}

// GAST returns Greenwich apparent sidereal time in hours, [0,24).
func (i Instant) GAST() float64 {
	return sidereal.Apparent(i.JD).Mod1().Hour()
}

// DUT1 returns UT1-UTC in seconds at this instant. Zero outside EOP coverage.
func (i Instant) DUT1() float64 {
	if i.ts == nil || i.ts.EOP == nil {
		return 0
	}
	d, _ := i.ts.EOP.DUT1(i.MJD())
	return d
}

// DeltaT returns TT-UT1 in seconds at this instant.
func (i Instant) DeltaT() float64 {
	return eop.DeltaT(i.JD)
}

// JDE returns the Julian Ephemeris Date (TT scale) for evaluating position
// theories.
func (i Instant) JDE() float64 {
	return i.JD + i.DeltaT()/86400
}

// MJD returns the Modified Julian Date on the UT1 scale.
func (i Instant) MJD() float64 {
	return i.JD - 2400000.5
}

// Add returns the instant the given number of days later.
func (i Instant) Add(days float64) Instant {
	return Instant{JD: i.JD + days, ts: i.ts}
}

// Sub returns i minus o in days.
func (i Instant) Sub(o Instant) float64 {
	return i.JD - o.JD
}

// Before reports whether i precedes o.
func (i Instant) Before(o Instant) bool {
	return i.JD < o.JD
}

// Time returns the instant as a wall-clock UTC time, ignoring DUT1. Used only
// for display formatting, where sub-DUT1 accuracy is irrelevant.
func (i Instant) Time() time.Time {
	return julian.JDToTime(i.JD)
}

// Civil returns the calendar date and the time of day in hours.
func (i Instant) Civil() (y int, m time.Month, d int, hours float64) {
	yy, mm, df := julian.JDToCalendar(i.JD)
	d = int(df)
	return yy, time.Month(mm), d, (df - float64(d)) * 24
}
