package almanac

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/chrissnell/skyalmanac/internal/constants"
	"github.com/chrissnell/skyalmanac/internal/log"
	"github.com/chrissnell/skyalmanac/pkg/ephemeris"
)

// TwilightRow is one latitude's twilight line for the page's middle day.
type TwilightRow struct {
	Lat                        int
	NautAM, CivilAM, Sunrise   string
	Sunset, CivilPM, NautPM    string
	Sunrise2, Sunset2          string // second events on three-crossing days
}

// MoonRow is one latitude's moonrise/moonset line across the page's 3 days.
type MoonRow struct {
	Lat          int
	Rise, Set    [3]string
	Rise2, Set2  [3]string
}

// DayData is one date's hourly columns plus the per-date block at the foot
// of the sun/moon page.
type DayData struct {
	Date                  Date
	Eqt                   EqtData
	MoonUpper, MoonLower  string
	SunSD, MoonSD, MoonHP float64 // arc-minutes

	Sun, Moon *HourlyTable
	Planets   []*HourlyTable
	AriesFmt  []string
}

// Page is everything the renderer needs for one 3-day opening. Stars, planet
// blocks, and lunar distances anchor on the middle day.
type Page struct {
	Dates    [3]Date
	Twilight []TwilightRow
	Moon     []MoonRow
	Days     [3]DayData

	Stars        []StarRow
	PlanetBlocks []PlanetBlock
	LD           []LDColumn
}

// BuildPage computes a 3-day page starting at d0. Twilight anchors on the
// middle day; moon rows span all three. Latitudes are dispatched to parallel
// workers when the configuration asks for it.
func (e *Engine) BuildPage(ctx context.Context, d0 Date) (*Page, error) {
	p := &Page{Dates: [3]Date{d0, d0.Add(1), d0.Add(2)}}

	var err error
	if e.Cfg.Multiprocess {
		p.Twilight, p.Moon, err = e.latitudesParallel(ctx, d0)
	} else {
		p.Twilight, p.Moon, err = e.latitudesSerial(ctx, d0)
	}
	if err != nil {
		return nil, err
	}

	for i, d := range p.Dates {
		day, err := e.buildDay(d)
		if err != nil {
			return nil, err
		}
		p.Days[i] = day
	}

	mid := p.Dates[1]
	p.Stars = e.StarRows(mid)
	if p.PlanetBlocks, err = e.PlanetBlocks(mid); err != nil {
		return nil, err
	}
	if e.Cfg.LDTables {
		if p.LD, err = e.LunarDistances(mid); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (e *Engine) buildDay(d Date) (DayData, error) {
	var day DayData
	day.Date = d

	eqt, err := e.EquationOfTime(d)
	if err != nil {
		return day, err
	}
	day.Eqt = eqt

	if day.MoonUpper, err = e.UpperTransit(d); err != nil {
		return day, err
	}
	if day.MoonLower, err = e.LowerTransit(d); err != nil {
		return day, err
	}

	sun, err := e.Hourly(d, ephemeris.Sun)
	if err != nil {
		return day, err
	}
	moon, err := e.Hourly(d, ephemeris.Moon)
	if err != nil {
		return day, err
	}
	day.Sun, day.Moon = sun, moon
	day.SunSD = sun.SDMin
	day.MoonSD = moon.SDMin
	day.MoonHP = moon.MeanHP

	for _, b := range ephemeris.Planets {
		t, err := e.Hourly(d, b)
		if err != nil {
			return day, err
		}
		day.Planets = append(day.Planets, t)
	}
	_, day.AriesFmt = e.HourlyAries(d)
	return day, nil
}

func (e *Engine) latitudesSerial(ctx context.Context, d0 Date) ([]TwilightRow, []MoonRow, error) {
	tw := make([]TwilightRow, LatCount)
	mr := make([]MoonRow, LatCount)
	for i := 0; i < LatCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		latIdx := i + 1
		t, m, err := e.latitudeRows(d0, latIdx)
		if err != nil {
			return nil, nil, err
		}
		tw[i], mr[i] = t, m
	}
	return tw, mr, nil
}

// latResult is one worker's output: its rows, its final moon state, and a
// processing-time accounting number.
type latResult struct {
	idx     int
	tw      TwilightRow
	mr      MoonRow
	state   HorizonState
	elapsed float64
	err     error
}

// latitudesParallel fans the latitude ladder out over cloned engines. Caches
// are per-clone: recomputation across workers is cheaper than coordinating a
// shared cache, and each worker still reuses its own three-day window.
// Results are merged back in latitude order, then the parent's moon state
// vector is updated slot by slot.
func (e *Engine) latitudesParallel(ctx context.Context, d0 Date) ([]TwilightRow, []MoonRow, error) {
	workers := runtime.GOMAXPROCS(0)
	if workers > constants.MaxWorkers {
		workers = constants.MaxWorkers
	}

	jobs := make(chan int)
	results := make(chan latResult, LatCount)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		clone := e.Clone()
		go func() {
			defer wg.Done()
			for idx := range jobs {
				start := time.Now()
				t, m, err := clone.latitudeRows(d0, idx)
				results <- latResult{
					idx:     idx,
					tw:      t,
					mr:      m,
					state:   clone.MoonState(idx),
					elapsed: time.Since(start).Seconds(),
					err:     err,
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 1; i <= LatCount; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	tw := make([]TwilightRow, LatCount)
	mr := make([]MoonRow, LatCount)
	states := make([]HorizonState, LatCount+1)
	timings := make([]float64, 0, LatCount)
	n := 0
	for r := range results {
		if r.err != nil {
			return nil, nil, r.err
		}
		tw[r.idx-1] = r.tw
		mr[r.idx-1] = r.mr
		states[r.idx] = r.state
		timings = append(timings, r.elapsed)
		n++
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if n != LatCount {
		return nil, nil, fmt.Errorf("latitude workers returned %d of %d rows", n, LatCount)
	}

	// Merge worker state back in latitude order only after all complete.
	for i := 1; i <= LatCount; i++ {
		if states[i] != Unknown {
			e.SetMoonState(i, states[i])
		}
	}
	log.Debugw("latitude batch complete", "page", d0.String(), "workers", workers,
		"meanSeconds", stat.Mean(timings, nil))
	return tw, mr, nil
}

// latitudeRows computes one latitude's twilight row (middle day) and moon row
// (all three days).
func (e *Engine) latitudeRows(d0 Date, latIdx int) (TwilightRow, MoonRow, error) {
	tw, err := e.twilightRow(d0.Add(1), latIdx)
	if err != nil {
		return tw, MoonRow{}, err
	}
	mr := MoonRow{Lat: Latitude(latIdx)}
	for i := 0; i < 3; i++ {
		cells, err := e.MoonRiseSet(d0.Add(i), latIdx)
		if err != nil {
			return tw, mr, err
		}
		mr.Rise[i], mr.Set[i] = cells.Rise, cells.Set
		mr.Rise2[i], mr.Set2[i] = cells.Rise2, cells.Set2
	}
	return tw, mr, nil
}

// twilightRow computes the six sun columns for one latitude and day.
func (e *Engine) twilightRow(d Date, latIdx int) (TwilightRow, error) {
	lat := float64(Latitude(latIdx))
	row := TwilightRow{Lat: Latitude(latIdx)}
	_, _, midnight := e.dayWindow(d)

	cells := func(depression float64) (am, pm, am2, pm2 string, err error) {
		ev, err := e.SunEvents(d, lat, depression)
		if errors.Is(err, ErrUnexpectedCrossingShape) {
			log.Warnw("unresolvable sun crossings", "date", d.String(), "latitude", lat, "error", err)
			return NoEvent, NoEvent, "", "", nil
		}
		if err != nil {
			return "", "", "", "", err
		}
		am, pm = NoEvent, NoEvent
		if ev.HasRise {
			am = e.FormatEvent(ev.Rise, midnight)
		}
		if ev.HasSet {
			pm = e.FormatEvent(ev.Set, midnight)
		}
		if ev.HasRise2 {
			am2 = e.FormatEvent(ev.Rise2, midnight)
		}
		if ev.HasSet2 {
			pm2 = e.FormatEvent(ev.Set2, midnight)
		}
		// Sides with no event render as the all-day glyph for the final state.
		if !ev.HasRise && !ev.HasSet {
			am, pm = stateCell(ev.Final), stateCell(ev.Final)
		} else if !ev.HasRise && ev.Final == Above {
			am = CellAboveAllDay
		} else if !ev.HasSet && ev.Final == Below {
			pm = CellBelowAllDay
		}
		return am, pm, am2, pm2, nil
	}

	var err error
	if row.NautAM, row.NautPM, _, _, err = cells(constants.NauticalDepression); err != nil {
		return row, err
	}
	if row.CivilAM, row.CivilPM, _, _, err = cells(constants.CivilDepression); err != nil {
		return row, err
	}
	if row.Sunrise, row.Sunset, row.Sunrise2, row.Sunset2, err = cells(constants.SunriseDepression); err != nil {
		return row, err
	}
	return row, nil
}

func stateCell(s HorizonState) string {
	switch s {
	case Above:
		return CellAboveAllDay
	case Below:
		return CellBelowAllDay
	default:
		return NoEvent
	}
}

// EventCells is a day's rendered moonrise/moonset pair, with optional second
// events on double-event days.
type EventCells struct {
	Rise, Set   string
	Rise2, Set2 string
}

// MoonRiseSet produces the Moon's display cells for (d, latIdx), going
// through the transient cache in minute mode. Days with a missing side are
// settled by the state tracker and the adjacent-day seeks.
func (e *Engine) MoonRiseSet(d Date, latIdx int) (EventCells, error) {
	if !e.Cfg.SecondsOfTime {
		if rise, set, ok := e.cache.lookup(d, latIdx); ok {
			e.CacheHits++
			set, st := unpackFinal(set)
			if st != Unknown {
				e.moonState[latIdx] = st
			}
			return EventCells{Rise: rise, Set: set}, nil
		}
		e.CacheMisses++
	}

	cells, final, err := e.computeMoonCells(d, latIdx)
	if err != nil {
		return cells, err
	}

	// Double events are not cached: the 5-byte slot cannot carry them.
	if !e.Cfg.SecondsOfTime && cells.Rise2 == "" && cells.Set2 == "" {
		e.cache.store(d, latIdx, cells.Rise, packFinal(cells.Set, final))
	}
	return cells, nil
}

func (e *Engine) computeMoonCells(d Date, latIdx int) (EventCells, HorizonState, error) {
	var cells EventCells
	_, _, midnight := e.dayWindow(d)

	ev, err := e.moonDay(d, latIdx)
	if errors.Is(err, ErrUnexpectedCrossingShape) {
		log.Warnw("unresolvable moon crossings", "date", d.String(), "latitude", Latitude(latIdx), "error", err)
		return EventCells{Rise: NoEvent, Set: NoEvent}, Unknown, nil
	}
	if err != nil {
		return cells, Unknown, err
	}

	switch {
	case !ev.HasRise && !ev.HasSet:
		st, err := e.GetMoonState(d, latIdx)
		if err != nil {
			return cells, Unknown, err
		}
		cells.Rise, cells.Set = stateCell(st), stateCell(st)
		return cells, st, nil

	case ev.HasRise && !ev.HasSet:
		cells.Rise = e.FormatEvent(ev.Rise, midnight)
		if ev.HasRise2 {
			cells.Rise2 = e.FormatEvent(ev.Rise2, midnight)
		}
		seek, err := e.seekMoonset(d, latIdx)
		if err != nil {
			return cells, ev.Final, err
		}
		cells.Set = seekCell(seek, Above)
		return cells, ev.Final, nil

	case !ev.HasRise && ev.HasSet:
		cells.Set = e.FormatEvent(ev.Set, midnight)
		if ev.HasSet2 {
			cells.Set2 = e.FormatEvent(ev.Set2, midnight)
		}
		seek, err := e.seekMoonrise(d, latIdx)
		if err != nil {
			return cells, ev.Final, err
		}
		cells.Rise = seekCell(seek, Below)
		return cells, ev.Final, nil

	default:
		cells.Rise = e.FormatEvent(ev.Rise, midnight)
		cells.Set = e.FormatEvent(ev.Set, midnight)
		if ev.HasRise2 {
			cells.Rise2 = e.FormatEvent(ev.Rise2, midnight)
		}
		if ev.HasSet2 {
			cells.Set2 = e.FormatEvent(ev.Set2, midnight)
		}
		return cells, ev.Final, nil
	}
}

// seekCell maps an adjacent-day seek outcome to a display cell. state is the
// body's held state implied by the one-sided day.
func seekCell(seek Seek, state HorizonState) string {
	if seek == SeekAdjacent {
		return CellAdjacent
	}
	return stateCell(state)
}
