package almanac

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/chrissnell/skyalmanac/internal/constants"
	"github.com/chrissnell/skyalmanac/pkg/config"
	"github.com/chrissnell/skyalmanac/pkg/ephemeris"
)

// HourlyTable holds one body's tabulated quantities for one calendar day:
// 24 displayed hours plus a 25th (next midnight) used for v/d differencing
// and transit bracketing, and the start/end-of-day GHA values evaluated just
// inside the display window boundaries.
type HourlyTable struct {
	Body ephemeris.Body
	Date Date

	GHA  []float64 // degrees, 25 entries (hour 0..24)
	Dec  []float64 // degrees signed, 25 entries
	Dist []float64 // km, 25 entries

	GHAFmt []string // 24 formatted rows
	DecFmt []string
	VFmt   []string
	DFmt   []string
	HPFmt  []string // Moon only

	VMin []float64 // hourly v, arc-minutes, 24 entries
	DMin []float64 // hourly d, arc-minutes signed, 24 entries

	HPMin  []float64 // Moon only: hourly horizontal parallax, arc-minutes
	SDMin  float64   // semi-diameter at 12h, arc-minutes
	MeanHP float64   // Moon: HP at 12h, arc-minutes

	GHASoD float64 // GHA at the display-window open of this day
	GHAEoD float64 // GHA at the display-window close
}

// bodyRadiusKm returns the volumetric mean radius used for semi-diameter.
func bodyRadiusKm(b ephemeris.Body) float64 {
	switch b {
	case ephemeris.Sun:
		return constants.SunRadiusKm
	case ephemeris.Moon:
		return constants.MoonRadiusKm
	default:
		return 0
	}
}

// Hourly tabulates body b for day d.
func (e *Engine) Hourly(d Date, b ephemeris.Body) (*HourlyTable, error) {
	hours := make([]float64, 25)
	floats.Span(hours, 0, 24)
	instants := e.TS.UT1Hours(d.Y, d.M, d.D, hours)
	if err := e.Oracle.CheckCoverage(instants[0]); err != nil {
		return nil, err
	}

	t := &HourlyTable{
		Body: b,
		Date: d,
		GHA:  make([]float64, 25),
		Dec:  make([]float64, 25),
		Dist: make([]float64, 25),
	}
	for i, in := range instants {
		pos, err := e.Oracle.Apparent(in, b)
		if err != nil {
			return nil, err
		}
		t.GHA[i] = GHAFromGAST(in.GAST(), pos.RA)
		t.Dec[i] = pos.Dec
		t.Dist[i] = pos.Distance
	}

	t.VMin = make([]float64, 24)
	t.DMin = make([]float64, 24)
	base := 15.0 // nominal hourly GHA motion, degrees
	if b == ephemeris.Moon {
		base = constants.MoonMeanHourlyGHA
	}
	for h := 0; h < 24; h++ {
		dg := math.Mod(t.GHA[h+1]-t.GHA[h]+360, 360)
		t.VMin[h] = (dg - base) * 60
		t.DMin[h] = (t.Dec[h+1] - t.Dec[h]) * 60
	}

	if b == ephemeris.Moon {
		t.HPMin = make([]float64, 24)
		for h := 0; h < 24; h++ {
			t.HPMin[h] = math.Atan(constants.EarthRadiusKm/t.Dist[h]) * 180 / math.Pi * 60
		}
		t.MeanHP = t.HPMin[12]
	}
	if r := bodyRadiusKm(b); r > 0 {
		t.SDMin = math.Atan(r/t.Dist[12]) * 180 / math.Pi * 60
	}

	// Boundary GHA values just inside the display window, so transit times
	// that round across midnight stay on the day they print under.
	off := e.boundaryOffsetDays()
	for i, in := range []ephemeris.Instant{instants[0].Add(-off), instants[24].Add(-off)} {
		pos, err := e.Oracle.Apparent(in, b)
		if err != nil {
			return nil, err
		}
		g := GHAFromGAST(in.GAST(), pos.RA)
		if i == 0 {
			t.GHASoD = g
		} else {
			t.GHAEoD = g
		}
	}

	e.formatHourly(t)
	return t, nil
}

// formatHourly fills the display columns according to the configured
// declination format.
func (t *HourlyTable) format(cfg config.ConfigData) {
	t.GHAFmt = make([]string, 24)
	t.DecFmt = make([]string, 24)
	for h := 0; h < 24; h++ {
		t.GHAFmt[h] = FmtDegMin(t.GHA[h], 3)
		if cfg.DeclFormat == config.DeclSigned {
			t.DecFmt[h] = fmt.Sprintf("%+9.4f", t.Dec[h])
			continue
		}
		prev, next := t.Dec[h], t.Dec[h]
		if h > 0 {
			prev = t.Dec[h-1]
		}
		if h < 23 {
			next = t.Dec[h+1]
		}
		letter, degrees := DeclCompare(prev, t.Dec[h], next, h)
		t.DecFmt[h] = FmtDecl(t.Dec[h], letter, degrees)
	}

	t.VFmt = make([]string, 24)
	t.DFmt = make([]string, 24)
	for h := 0; h < 24; h++ {
		d := t.DMin[h]
		if cfg.DValue == config.DValueHMNAO {
			d = math.Abs(d)
		}
		t.VFmt[h] = fmt.Sprintf("%4.1f", t.VMin[h])
		t.DFmt[h] = fmt.Sprintf("%4.1f", d)
	}
	if t.HPMin != nil {
		t.HPFmt = make([]string, 24)
		for h := 0; h < 24; h++ {
			t.HPFmt[h] = fmt.Sprintf("%4.1f", t.HPMin[h])
		}
	}
}

func (e *Engine) formatHourly(t *HourlyTable) {
	t.format(e.Cfg)
}

// DisplayD applies the configured d-value convention to a signed hourly d.
func (e *Engine) DisplayD(d float64) float64 {
	if e.Cfg.DValue == config.DValueHMNAO {
		return math.Abs(d)
	}
	return d
}

// HourlyAries tabulates the GHA of the first point of Aries: pure sidereal
// time, no body position involved.
func (e *Engine) HourlyAries(d Date) (gha []float64, ghaFmt []string) {
	hours := make([]float64, 25)
	floats.Span(hours, 0, 24)
	instants := e.TS.UT1Hours(d.Y, d.M, d.D, hours)
	gha = make([]float64, 25)
	ghaFmt = make([]string, 24)
	for i, in := range instants {
		gha[i] = Norm(in.GAST() * 15)
	}
	for h := 0; h < 24; h++ {
		ghaFmt[h] = FmtDegMin(gha[h], 3)
	}
	return gha, ghaFmt
}
