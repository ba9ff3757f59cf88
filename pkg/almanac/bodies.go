package almanac

import (
	"math"

	"github.com/chrissnell/skyalmanac/internal/constants"
	"github.com/chrissnell/skyalmanac/pkg/ephemeris"
)

// Rough event periods, in days, declared to the crossing finder. Sun-up
// events repeat on a half-day scale; the lunar predicate is sampled on a
// minute scale because of the Moon's fast motion and the tight horizon
// threshold.
const (
	sunRoughPeriod  = 0.5
	moonRoughPeriod = 1.0 / 1440
)

// sunPredicate is true while the Sun's center is above -depression degrees
// at latitude latDeg on the Greenwich meridian.
func (e *Engine) sunPredicate(latDeg, depression float64) Predicate {
	return func(t ephemeris.Instant) (bool, error) {
		alt, err := e.Oracle.AltitudeDeg(t, ephemeris.Sun, latDeg, 0)
		if err != nil {
			return false, err
		}
		return alt > -depression, nil
	}
}

// moonThreshold returns the Moon's horizon altitude for day d in degrees:
// HP - SD - 34' of refraction, from the 12h distance. Positive because the
// Moon's parallax exceeds its semi-diameter plus refraction.
func (e *Engine) moonThreshold(d Date) (float64, error) {
	noon := e.TS.UT1(d.Y, d.M, d.D, 12, 0, 0)
	pos, err := e.Oracle.Apparent(noon, ephemeris.Moon)
	if err != nil {
		return 0, err
	}
	hp := math.Atan(constants.EarthRadiusKm / pos.Distance)
	sd := math.Atan(constants.MoonRadiusKm / pos.Distance)
	return (hp-sd)*180/math.Pi - 34.0/60, nil
}

func (e *Engine) moonPredicate(latDeg, threshold float64) Predicate {
	return func(t ephemeris.Instant) (bool, error) {
		alt, err := e.Oracle.AltitudeDeg(t, ephemeris.Moon, latDeg, 0)
		if err != nil {
			return false, err
		}
		return alt > threshold, nil
	}
}

// SunEvents resolves the Sun's crossings of -depression for day d. When the
// day has no crossings, Final is settled by sampling the predicate at noon,
// since the Sun cannot change state without crossing.
func (e *Engine) SunEvents(d Date, latDeg, depression float64) (Events, error) {
	t0, t1, _ := e.dayWindow(d)
	p := e.sunPredicate(latDeg, depression)
	crossings, err := FindCrossings(t0, t1, p, sunRoughPeriod)
	if err != nil {
		return Events{}, err
	}
	ev, err := Resolve(crossings)
	if err != nil {
		return ev, err
	}
	if ev.Final == Unknown {
		up, err := p(t0.Add(0.5))
		if err != nil {
			return ev, err
		}
		if up {
			ev.Final = Above
		} else {
			ev.Final = Below
		}
	}
	return ev, nil
}

// MoonEvents resolves the Moon's horizon crossings for day d at a latitude.
// A zero-crossing day keeps Final unknown; the state tracker owns that case.
func (e *Engine) MoonEvents(d Date, latDeg float64) (Events, error) {
	threshold, err := e.moonThreshold(d)
	if err != nil {
		return Events{}, err
	}
	t0, t1, _ := e.dayWindow(d)
	crossings, err := FindCrossings(t0, t1, e.moonPredicate(latDeg, threshold), moonRoughPeriod)
	if err != nil {
		return Events{}, err
	}
	return Resolve(crossings)
}
