package almanac

import (
	"fmt"
	"math"

	"github.com/chrissnell/skyalmanac/pkg/ephemeris"
)

// NoEvent is the display sentinel for an absent rise or set time.
const NoEvent = "--:--"

// Events is the interpretation of a day's horizon crossings.
type Events struct {
	Rise, Set, Rise2, Set2                 ephemeris.Instant
	HasRise, HasSet, HasRise2, HasSet2     bool
	Final                                  HorizonState
}

// Resolve maps a crossing sequence onto rise/set events. Sequences of length
// 0..3 with alternating direction are the only valid shapes; anything else is
// ErrUnexpectedCrossingShape.
func Resolve(crossings []Crossing) (Events, error) {
	var ev Events
	if len(crossings) > 3 {
		return ev, fmt.Errorf("%w: %d crossings", ErrUnexpectedCrossingShape, len(crossings))
	}
	for i := 1; i < len(crossings); i++ {
		if crossings[i].Above == crossings[i-1].Above {
			return ev, fmt.Errorf("%w: repeated %v state", ErrUnexpectedCrossingShape, crossings[i].Above)
		}
	}

	switch len(crossings) {
	case 0:
		ev.Final = Unknown
	case 1:
		if crossings[0].Above {
			ev.Rise, ev.HasRise = crossings[0].T, true
			ev.Final = Above
		} else {
			ev.Set, ev.HasSet = crossings[0].T, true
			ev.Final = Below
		}
	case 2:
		if crossings[0].Above {
			ev.Rise, ev.HasRise = crossings[0].T, true
			ev.Set, ev.HasSet = crossings[1].T, true
			ev.Final = Below
		} else {
			ev.Set, ev.HasSet = crossings[0].T, true
			ev.Rise, ev.HasRise = crossings[1].T, true
			ev.Final = Above
		}
	case 3:
		if crossings[0].Above {
			ev.Rise, ev.HasRise = crossings[0].T, true
			ev.Set, ev.HasSet = crossings[1].T, true
			ev.Rise2, ev.HasRise2 = crossings[2].T, true
			ev.Final = Above
		} else {
			ev.Set, ev.HasSet = crossings[0].T, true
			ev.Rise, ev.HasRise = crossings[1].T, true
			ev.Set2, ev.HasSet2 = crossings[2].T, true
			ev.Final = Below
		}
	}
	return ev, nil
}

// FormatEvent renders an event instant as hh:mm or hh:mm:ss, rounding half-up
// against the midnight that anchors the display day. Instants inside the
// pre-midnight boundary window round to 00:00 of the display day.
func (e *Engine) FormatEvent(t, midnight ephemeris.Instant) string {
	secs := t.Sub(midnight) * 86400
	if e.Cfg.SecondsOfTime {
		s := int(math.Floor(secs + 0.5))
		if s < 0 {
			s = 0
		}
		return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
	}
	m := int(math.Floor(secs/60 + 0.5))
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
