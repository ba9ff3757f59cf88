package almanac

import (
	"fmt"
	"time"

	"github.com/chrissnell/skyalmanac/internal/constants"
	"github.com/chrissnell/skyalmanac/pkg/config"
	"github.com/chrissnell/skyalmanac/pkg/ephemeris"
)

// HorizonState is a body's visibility relative to the horizon.
type HorizonState int

const (
	Unknown HorizonState = iota
	Above
	Below
)

func (s HorizonState) String() string {
	switch s {
	case Above:
		return "above"
	case Below:
		return "below"
	default:
		return "unknown"
	}
}

// Glyph returns the single-byte encoding of the state used in cached set
// strings: 'n' above, 'v' below, ':' unknown (the untouched hh:mm separator).
func (s HorizonState) Glyph() byte {
	switch s {
	case Above:
		return 'n'
	case Below:
		return 'v'
	default:
		return ':'
	}
}

// Date is a calendar day.
type Date struct {
	Y int
	M time.Month
	D int
}

// Add returns the date n days later.
func (d Date) Add(n int) Date {
	t := time.Date(d.Y, d.M, d.D, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return Date{t.Year(), t.Month(), t.Day()}
}

// Time returns the date's midnight in UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Y, d.M, d.D, 0, 0, 0, 0, time.UTC)
}

// Before reports calendar order.
func (d Date) Before(o Date) bool {
	if d.Y != o.Y {
		return d.Y < o.Y
	}
	if d.M != o.M {
		return d.M < o.M
	}
	return d.D < o.D
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Y, int(d.M), d.D)
}

// Engine carries all per-run state of the almanac core: configuration frozen
// at startup, the ephemeris oracle, the per-latitude moon horizon state, and
// the transient rise/set cache. A run uses one engine; parallel latitude
// workers each receive their own clone so no state is shared.
type Engine struct {
	Oracle *ephemeris.Oracle
	TS     *ephemeris.TimeScale
	Cfg    config.ConfigData

	// moonState[1..31] is per-latitude horizon state carried across days;
	// index 0 is scratch for forward searches.
	moonState [32]HorizonState

	cache       transitCache
	CacheHits   int
	CacheMisses int
}

// NewEngine builds an engine. cfg is copied; later mutation of the caller's
// value is invisible here.
func NewEngine(oracle *ephemeris.Oracle, ts *ephemeris.TimeScale, cfg config.ConfigData) *Engine {
	return &Engine{Oracle: oracle, TS: ts, Cfg: cfg}
}

// Clone returns an engine with the same oracle and configuration, the current
// moon state vector, and an empty cache. Workers operate on clones.
func (e *Engine) Clone() *Engine {
	n := NewEngine(e.Oracle, e.TS, e.Cfg)
	n.moonState = e.moonState
	return n
}

// MoonState returns the tracked state for a latitude index.
func (e *Engine) MoonState(latIdx int) HorizonState {
	return e.moonState[latIdx]
}

// SetMoonState overwrites the tracked state for a latitude index. Used when
// merging worker results back in latitude order.
func (e *Engine) SetMoonState(latIdx int, s HorizonState) {
	e.moonState[latIdx] = s
}

// boundaryOffsetDays is how far before midnight the display window opens: 30s
// in minute mode, 0.5s in seconds mode, so events that round up to the next
// day print as 00:00 on that day.
func (e *Engine) boundaryOffsetDays() float64 {
	if e.Cfg.SecondsOfTime {
		return 0.5 / 86400
	}
	return 30.0 / 86400
}

// dayWindow returns the half-open search interval [t0,t1) for calendar day d,
// opened and closed boundaryOffset before the enclosing midnights, plus the
// true midnight instant display times are rounded against. The close is owned
// by the next day's window, where it prints as 00:00.
func (e *Engine) dayWindow(d Date) (t0, t1, midnight ephemeris.Instant) {
	midnight = e.TS.UT1(d.Y, d.M, d.D, 0, 0, 0)
	off := e.boundaryOffsetDays()
	return midnight.Add(-off), midnight.Add(1 - off), midnight
}

// Latitude returns the ladder value for index 1..31.
func Latitude(latIdx int) int {
	return constants.Latitudes[latIdx-1]
}

// LatCount is the number of tabulated latitudes.
var LatCount = len(constants.Latitudes)
