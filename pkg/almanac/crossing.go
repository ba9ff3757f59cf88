package almanac

import (
	"github.com/chrissnell/skyalmanac/pkg/ephemeris"
)

// Predicate reports whether a body is above its horizon threshold at t.
type Predicate func(t ephemeris.Instant) (bool, error)

// Crossing is one state change of a predicate. Above is the value after the
// crossing.
type Crossing struct {
	T     ephemeris.Instant
	Above bool
}

// bisectTolDays is the crossing refinement tolerance, 0.1 s.
const bisectTolDays = 0.1 / 86400

// FindCrossings returns the ordered instants in [t0,t1) at which p changes
// value, with the new value at each. A crossing at exactly t1 belongs to the
// successor window, whose t0 it is. roughPeriod, in days, is a lower bound
// on the spacing of events of this predicate and controls the coarse sampling
// stride.
func FindCrossings(t0, t1 ephemeris.Instant, p Predicate, roughPeriod float64) ([]Crossing, error) {
	step := roughPeriod / 8
	if step < 1.0/1440 {
		step = 1.0 / 1440 // one minute
	}
	if step > 1.0/48 {
		step = 1.0 / 48 // thirty minutes
	}

	var crossings []Crossing
	prevT := t0
	prev, err := p(prevT)
	if err != nil {
		return nil, err
	}
	for t := t0.Add(step); ; t = t.Add(step) {
		if t.JD > t1.JD {
			t = t1
		}
		cur, err := p(t)
		if err != nil {
			return nil, err
		}
		if cur != prev {
			ct, err := bisectCrossing(prevT, t, prev, p)
			if err != nil {
				return nil, err
			}
			if ct.JD < t1.JD {
				crossings = append(crossings, Crossing{T: ct, Above: cur})
			}
		}
		if t.JD >= t1.JD {
			break
		}
		prevT, prev = t, cur
	}
	return crossings, nil
}

// bisectCrossing narrows a bracket [a,b] with p(a)=va, p(b)=!va down to
// bisectTolDays and returns the midpoint.
func bisectCrossing(a, b ephemeris.Instant, va bool, p Predicate) (ephemeris.Instant, error) {
	for b.Sub(a) > bisectTolDays {
		mid := a.Add(b.Sub(a) / 2)
		vm, err := p(mid)
		if err != nil {
			return ephemeris.Instant{}, err
		}
		if vm == va {
			a = mid
		} else {
			b = mid
		}
	}
	return a.Add(b.Sub(a) / 2), nil
}
