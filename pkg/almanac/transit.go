package almanac

import (
	"fmt"
	"math"

	"github.com/chrissnell/skyalmanac/internal/constants"
	"github.com/chrissnell/skyalmanac/pkg/ephemeris"
)

// ghaAt returns an instantaneous GHA for the sweep at (hr, mi, sec) of the
// transit's day.
type ghaAt func(hr, mi int, sec float64) (float64, error)

// bodyGHAAt builds a ghaAt for a body, optionally through the colongitude
// transform used for lower transits.
func (e *Engine) bodyGHAAt(d Date, b ephemeris.Body, lower bool) ghaAt {
	return func(hr, mi int, sec float64) (float64, error) {
		in := e.TS.UT1(d.Y, d.M, d.D, hr, mi, sec)
		pos, err := e.Oracle.Apparent(in, b)
		if err != nil {
			return 0, err
		}
		g := GHAFromGAST(in.GAST(), pos.RA)
		if lower {
			g = Colong(g)
		}
		return g, nil
	}
}

// UpperTransit returns the Moon's upper transit time on day d as hh:mm (or
// hh:mm:ss in seconds mode), or NoEvent when the lunar day skips this date.
func (e *Engine) UpperTransit(d Date) (string, error) {
	t, err := e.Hourly(d, ephemeris.Moon)
	if err != nil {
		return "", err
	}
	return e.resolveTransit(d, t.GHA, t.GHASoD, t.GHAEoD, e.bodyGHAAt(d, ephemeris.Moon, false))
}

// LowerTransit is UpperTransit through the colongitude transform.
func (e *Engine) LowerTransit(d Date) (string, error) {
	t, err := e.Hourly(d, ephemeris.Moon)
	if err != nil {
		return "", err
	}
	tab := make([]float64, len(t.GHA))
	for i, g := range t.GHA {
		tab[i] = Colong(g)
	}
	return e.resolveTransit(d, tab, Colong(t.GHASoD), Colong(t.GHAEoD), e.bodyGHAAt(d, ephemeris.Moon, true))
}

// SunTransit returns the Sun's meridian passage on day d. The Sun's 15°/h
// rate matches the sweep seed exactly, so the same resolver serves.
func (e *Engine) SunTransit(d Date) (string, error) {
	t, err := e.Hourly(d, ephemeris.Sun)
	if err != nil {
		return "", err
	}
	return e.resolveTransit(d, t.GHA, t.GHASoD, t.GHAEoD, e.bodyGHAAt(d, ephemeris.Sun, false))
}

// PlanetTransit returns a planet's meridian passage on day d, to the minute.
func (e *Engine) PlanetTransit(d Date, b ephemeris.Body) (string, error) {
	t, err := e.Hourly(d, b)
	if err != nil {
		return "", err
	}
	return e.resolveTransit(d, t.GHA, t.GHASoD, t.GHAEoD, e.bodyGHAAt(d, b, false))
}

// resolveTransit locates the instant the tabulated GHA wraps through 0° by a
// two-level bracketed sweep: the hourly table brackets the hour, then a
// minute sweep (and in seconds mode a second sweep) walks up to the wrap. The
// sweep start indices are seeded from the remaining angle so only a few
// samples precede the event. soD and eoD are the GHA at the display-window
// open and close: a wrap in the opening sliver prints as 00:00 of this day,
// one past the close belongs to the next day.
func (e *Engine) resolveTransit(d Date, tab []float64, soD, eoD float64, at ghaAt) (string, error) {
	if tab[0] < soD {
		if e.Cfg.SecondsOfTime {
			return fmtTransit(0, 0, 0), nil
		}
		return fmtTransit(0, 0, -1), nil
	}

	hr := -1
	for i := 0; i < len(tab)-1; i++ {
		if tab[i+1] < tab[i] {
			hr = i
			break
		}
	}
	if hr < 0 {
		// The ~24h50m lunar day skips an upper or lower transit on some
		// calendar days.
		return NoEvent, nil
	}

	minStart := int((360-tab[hr])/constants.TransitSweepRate) - 1
	if minStart < 0 {
		minStart = 0
	}
	prev := tab[hr]
	if minStart > 0 {
		var err error
		prev, err = at(hr, minStart, 0)
		if err != nil {
			return "", err
		}
	}

	for mi := minStart; mi < 60; mi++ {
		g, err := at(hr, mi+1, 0)
		if err != nil {
			return "", err
		}
		if g < prev {
			if mi == minStart && minStart > 0 {
				return "", fmt.Errorf("%w: %s at %02d:%02d", ErrTransitSearchStartOverflow, d, hr, mi)
			}
			if e.Cfg.SecondsOfTime {
				return e.resolveTransitSeconds(d, at, hr, mi, prev, eoD)
			}
			if hr == 23 && mi == 59 {
				// 23:59:30 is both the rounding midpoint of the last
				// minute and the window close; eoD settles which day
				// owns the wrap.
				if eoD > prev {
					return NoEvent, nil
				}
				return fmtTransit(23, 59, -1), nil
			}
			return e.roundTransitMinute(at, hr, mi, prev, g)
		}
		prev = g
	}
	// The wrap promised by the hourly table did not materialize in the
	// minute sweep; the tabulated hour bracket was inconsistent.
	return "", fmt.Errorf("%w: %s hour %d sweep found no wrap", ErrTransitSearchStartOverflow, d, hr)
}

// roundTransitMinute rounds the bracketed minute half-up. When the boundary
// values place the event within half a second of the minute midpoint, the
// midpoint GHA settles the direction instead of the (noise-level) sign.
func (e *Engine) roundTransitMinute(at ghaAt, hr, mi int, prev, g float64) (string, error) {
	half := prev - 360 + g
	if math.Abs(half) >= constants.TransitHalfMinuteGHA {
		if half < 0 {
			mi++
		}
		return fmtTransit(hr, mi, -1), nil
	}
	mid, err := at(hr, mi, 30)
	if err != nil {
		return "", err
	}
	if mid > 180 { // not yet wrapped at the midpoint: event in the second half
		mi++
	}
	return fmtTransit(hr, mi, -1), nil
}

// resolveTransitSeconds repeats the sweep pattern one level deeper.
func (e *Engine) resolveTransitSeconds(d Date, at ghaAt, hr, mi int, prev, eoD float64) (string, error) {
	secStart := int((360-prev)/constants.TransitSweepRateSeconds*60) - 1
	if secStart < 0 {
		secStart = 0
	}
	if secStart > 0 {
		var err error
		prev, err = at(hr, mi, float64(secStart))
		if err != nil {
			return "", err
		}
	}
	for se := secStart; se < 60; se++ {
		g, err := at(hr, mi, float64(se+1))
		if err != nil {
			return "", err
		}
		if g < prev {
			if se == secStart && secStart > 0 {
				return "", fmt.Errorf("%w: %s at %02d:%02d:%02d", ErrTransitSearchStartOverflow, d, hr, mi, se)
			}
			if hr == 23 && mi == 59 && se == 59 {
				if eoD > prev {
					return NoEvent, nil
				}
				return fmtTransit(23, 59, 59), nil
			}
			half := prev - 360 + g
			if math.Abs(half) >= constants.TransitHalfSecondGHA {
				if half < 0 {
					se++
				}
				return fmtTransit(hr, mi, se), nil
			}
			mid, err := at(hr, mi, float64(se)+0.5)
			if err != nil {
				return "", err
			}
			if mid > 180 {
				se++
			}
			return fmtTransit(hr, mi, se), nil
		}
		prev = g
	}
	return "", fmt.Errorf("%w: %s %02d:%02d second sweep found no wrap", ErrTransitSearchStartOverflow, d, hr, mi)
}

// fmtTransit renders hr:mi(:se) with carries; se < 0 means minute precision.
func fmtTransit(hr, mi, se int) string {
	if se >= 60 {
		se = 0
		mi++
	}
	if mi >= 60 {
		mi = 0
		hr++
	}
	if se < 0 {
		return fmt.Sprintf("%02d:%02d", hr, mi)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hr, mi, se)
}
