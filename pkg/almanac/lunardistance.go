package almanac

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/chrissnell/skyalmanac/internal/constants"
	"github.com/chrissnell/skyalmanac/pkg/config"
	"github.com/chrissnell/skyalmanac/pkg/ephemeris"
)

// LDColumn is one reference body's hourly lunar distances for a day.
type LDColumn struct {
	Name     string
	Mag      float64
	NewMoon  bool      // Sun within the new-moon exclusion; rendered as "newMoon"
	Dist     []string  // 24 formatted distances
	MeanDist float64   // degrees
	MeanRate float64   // degrees per hour, signed
}

// ldStarLimit is the faintest star magnitude considered for lunar distances.
const ldStarLimit = 2.0

// maxLDColumns is how many reference bodies a day's table carries.
const maxLDColumns = 4

// LunarDistances builds the day's lunar-distance table: hourly Moon-to-body
// separations for the reference bodies picked by the configured strategy.
func (e *Engine) LunarDistances(d Date) ([]LDColumn, error) {
	hours := make([]float64, 24)
	floats.Span(hours, 0, 23)
	instants := e.TS.UT1Hours(d.Y, d.M, d.D, hours)

	moonRA := make([]float64, 24)
	moonDec := make([]float64, 24)
	for i, t := range instants {
		pos, err := e.Oracle.Apparent(t, ephemeris.Moon)
		if err != nil {
			return nil, err
		}
		moonRA[i], moonDec[i] = pos.RA, pos.Dec
	}

	var cols []LDColumn
	bodies := append([]ephemeris.Body{ephemeris.Sun}, ephemeris.Planets...)
	for _, b := range bodies {
		col, err := e.ldColumn(b.String(), 0, instants, moonRA, moonDec,
			func(t ephemeris.Instant) (float64, float64, error) {
				pos, err := e.Oracle.Apparent(t, b)
				if err != nil {
					return 0, 0, err
				}
				return pos.RA, pos.Dec, nil
			})
		if err != nil {
			return nil, err
		}
		if b == ephemeris.Sun && col.MeanDist < constants.NewMoonExclusion {
			col.NewMoon = true
		}
		cols = append(cols, col)
	}
	for _, s := range ephemeris.NavigationalStars {
		if s.Mag > ldStarLimit {
			continue
		}
		star := s
		col, err := e.ldColumn(s.Name, s.Mag, instants, moonRA, moonDec,
			func(t ephemeris.Instant) (float64, float64, error) {
				ra, dec := star.Apparent(t)
				return ra, dec, nil
			})
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	return e.selectLD(cols), nil
}

// ldColumn computes one body's hourly separation column.
func (e *Engine) ldColumn(name string, mag float64, instants []ephemeris.Instant,
	moonRA, moonDec []float64, at func(ephemeris.Instant) (float64, float64, error)) (LDColumn, error) {

	col := LDColumn{Name: name, Mag: mag, Dist: make([]string, 24)}
	dists := make([]float64, 24)
	for i, t := range instants {
		ra, dec, err := at(t)
		if err != nil {
			return col, err
		}
		dists[i] = separationDeg(moonRA[i], moonDec[i], ra, dec)
		col.Dist[i] = FmtDegMin(dists[i], 3)
	}
	col.MeanDist = stat.Mean(dists, nil)

	rates := make([]float64, 23)
	for i := range rates {
		rates[i] = dists[i+1] - dists[i]
	}
	col.MeanRate = stat.Mean(rates, nil)
	return col, nil
}

// separationDeg is the great-circle angle between two equatorial positions,
// RA in hours and Dec in degrees.
func separationDeg(ra1, dec1, ra2, dec2 float64) float64 {
	const rad = math.Pi / 180
	d1, d2 := dec1*rad, dec2*rad
	dra := (ra1 - ra2) * 15 * rad
	c := math.Sin(d1)*math.Sin(d2) + math.Cos(d1)*math.Cos(d2)*math.Cos(dra)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c) / rad
}

// selectLD picks up to maxLDColumns reference bodies by the configured
// strategy. Bodies whose distance arc moves too slowly to resolve time are
// dropped, as are those hugging the Moon or beyond a usable sextant arc. A
// new-moon Sun column is kept for rendering but never competes for selection.
func (e *Engine) selectLD(cols []LDColumn) []LDColumn {
	usable := func(c LDColumn) bool {
		return !c.NewMoon &&
			math.Abs(c.MeanRate) >= constants.LDRateCutoff &&
			c.MeanDist >= constants.NewMoonExclusion && c.MeanDist <= 120
	}

	var pool []LDColumn
	var pinned []LDColumn
	for _, c := range cols {
		if c.NewMoon {
			pinned = append(pinned, c)
			continue
		}
		if usable(c) {
			pool = append(pool, c)
		}
	}

	switch e.Cfg.LDStrategy {
	case config.LDDelta:
		sort.SliceStable(pool, func(i, j int) bool {
			return math.Abs(pool[i].MeanRate) > math.Abs(pool[j].MeanRate)
		})
	case config.LDBrightest:
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].Mag < pool[j].Mag
		})
	default: // closest-to-moon
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].MeanDist < pool[j].MeanDist
		})
	}

	if len(pool) > maxLDColumns {
		pool = pool[:maxLDColumns]
	}
	return append(pinned, pool...)
}
