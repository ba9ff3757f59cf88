package almanac

import (
	"github.com/chrissnell/skyalmanac/internal/log"
)

// Seek is the outcome of looking for a missing moonrise or moonset on the
// adjacent days.
type Seek int

const (
	// SeekAdjacent means the missing event occurs on the preceding or
	// following day; the cell renders as an ellipsis.
	SeekAdjacent Seek = iota
	// SeekBeforeStart means the event was before yesterday; the body has held
	// its state since before the page window.
	SeekBeforeStart
	// SeekBeyondEnd means the event is after tomorrow.
	SeekBeyondEnd
)

// firstCrossingRise reports whether the first crossing of the day was a rise.
// Valid only when the events carry at least one crossing.
func firstCrossingRise(ev Events) bool {
	if ev.HasRise && ev.HasSet {
		return ev.Rise.Before(ev.Set)
	}
	return ev.HasRise
}

// moonDay computes the Moon's events for (d, latIdx) and folds the outcome
// into the tracked per-latitude state.
func (e *Engine) moonDay(d Date, latIdx int) (Events, error) {
	ev, err := e.MoonEvents(d, float64(Latitude(latIdx)))
	if err != nil {
		return ev, err
	}
	if ev.Final != Unknown {
		e.moonState[latIdx] = ev.Final
	}
	return ev, nil
}

// maxStateSearchDays bounds the forward search for a latitude's initial moon
// state. The Moon always crosses any latitude's horizon within a tropical
// month, so the bound is generous.
const maxStateSearchDays = 32

// GetMoonState returns the Moon's horizon state for a zero-crossing day. A
// known tracked state is reused: no crossings means the state held for the
// whole day. Otherwise the scratch slot runs a forward search until some day
// yields a crossing, and the state before that crossing is adopted.
func (e *Engine) GetMoonState(d Date, latIdx int) (HorizonState, error) {
	if s := e.moonState[latIdx]; s != Unknown {
		return s, nil
	}
	lat := float64(Latitude(latIdx))
	for next, n := d.Add(1), 0; n < maxStateSearchDays; next, n = next.Add(1), n+1 {
		ev, err := e.MoonEvents(next, lat)
		if err != nil {
			return Unknown, err
		}
		if !ev.HasRise && !ev.HasSet {
			continue
		}
		// The state before the first future crossing has held since day d.
		var s HorizonState
		if firstCrossingRise(ev) {
			s = Below
		} else {
			s = Above
		}
		e.moonState[latIdx] = s
		return s, nil
	}
	log.Warnw("moon state forward search exhausted", "date", d.String(), "latitude", Latitude(latIdx))
	return Unknown, nil
}

// seekMoonset resolves a day that had a rise but no set.
func (e *Engine) seekMoonset(d Date, latIdx int) (Seek, error) {
	lat := float64(Latitude(latIdx))
	next, err := e.MoonEvents(d.Add(1), lat)
	if err != nil {
		return SeekAdjacent, err
	}
	if !next.HasSet {
		return SeekBeyondEnd, nil
	}
	prev, err := e.MoonEvents(d.Add(-1), lat)
	if err != nil {
		return SeekAdjacent, err
	}
	if !prev.HasSet {
		return SeekBeforeStart, nil
	}
	return SeekAdjacent, nil
}

// seekMoonrise resolves a day that had a set but no rise.
func (e *Engine) seekMoonrise(d Date, latIdx int) (Seek, error) {
	lat := float64(Latitude(latIdx))
	next, err := e.MoonEvents(d.Add(1), lat)
	if err != nil {
		return SeekAdjacent, err
	}
	if !next.HasRise {
		return SeekBeyondEnd, nil
	}
	prev, err := e.MoonEvents(d.Add(-1), lat)
	if err != nil {
		return SeekAdjacent, err
	}
	if !prev.HasRise {
		return SeekBeforeStart, nil
	}
	return SeekAdjacent, nil
}
