package ephemeris

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/elliptic"
	"github.com/soniakeys/meeus/v3/moonillum"
	"github.com/soniakeys/meeus/v3/moonphase"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// ErrCoverage indicates a requested date falls outside the coverage interval
// of the selected ephemeris.
var ErrCoverage = errors.New("date outside ephemeris coverage")

// AUKm is one astronomical unit in kilometers.
const AUKm = 149597870.7

// Body identifies a celestial body the oracle can evaluate.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
)

var bodyNames = [...]string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn"}

func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// Planets lists the four navigational planets in page order.
var Planets = []Body{Venus, Mars, Jupiter, Saturn}

// Position is an apparent-of-date place: right ascension in hours,
// declination in degrees, distance in km.
type Position struct {
	RA       float64
	Dec      float64
	Distance float64
}

// coverage spans (Julian years) per ephemeris selection. Selections mirror
// the sizes of the common JPL kernels: 0 is the small modern span, 4 the
// long-term one.
var coverageSpans = [...][2]float64{
	{1900, 2050},
	{1849, 2150},
	{1799, 2200},
	{1599, 2200},
	{-3000, 3000},
}

// Oracle evaluates apparent geocentric positions. The zero Oracle serves Sun
// and Moon; Open attaches the VSOP87 planetary theory.
type Oracle struct {
	TS        *TimeScale
	Selection int // ephemeris selection 0..4

	earth   *planetposition.V87Planet
	planets map[Body]*planetposition.V87Planet
}

// vsopIndex maps bodies to planetposition dataset indices.
var vsopIndex = map[Body]int{
	Mercury: planetposition.Mercury,
	Venus:   planetposition.Venus,
	Mars:    planetposition.Mars,
	Jupiter: planetposition.Jupiter,
	Saturn:  planetposition.Saturn,
}

// Open loads the VSOP87 planetary data from dir and returns an oracle ready
// for all bodies. dir is the directory holding the VSOP87 B files.
func Open(ts *TimeScale, dir string, selection int) (*Oracle, error) {
	o := &Oracle{TS: ts, Selection: selection, planets: make(map[Body]*planetposition.V87Planet)}
	earth, err := planetposition.LoadPlanetPath(planetposition.Earth, dir)
	if err != nil {
		return nil, fmt.Errorf("loading Earth ephemeris: %w", err)
	}
	o.earth = earth
	for b, idx := range vsopIndex {
		p, err := planetposition.LoadPlanetPath(idx, dir)
		if err != nil {
			return nil, fmt.Errorf("loading %v ephemeris: %w", b, err)
		}
		o.planets[b] = p
	}
	return o, nil
}

// CheckCoverage returns ErrCoverage when the instant is outside the selected
// ephemeris span.
func (o *Oracle) CheckCoverage(t Instant) error {
	span := coverageSpans[0]
	if o.Selection >= 0 && o.Selection < len(coverageSpans) {
		span = coverageSpans[o.Selection]
	}
	y := base.JDEToJulianYear(t.JD)
	if y < span[0] || y > span[1] {
		return fmt.Errorf("%w: %.1f outside [%.0f, %.0f]", ErrCoverage, y, span[0], span[1])
	}
	return nil
}

// Apparent returns the apparent-of-date position of a body at t.
func (o *Oracle) Apparent(t Instant, b Body) (Position, error) {
	jde := t.JDE()
	switch b {
	case Sun:
		α, δ := solar.ApparentEquatorial(jde)
		R := solar.Radius(base.J2000Century(jde))
		return Position{RA: α.Hour(), Dec: δ.Deg(), Distance: R * AUKm}, nil
	case Moon:
		α, δ, Δ := o.moonEquatorial(jde)
		return Position{RA: α.Hour(), Dec: δ.Deg(), Distance: Δ}, nil
	default:
		p, ok := o.planets[b]
		if !ok {
			return Position{}, fmt.Errorf("no ephemeris loaded for %v", b)
		}
		α, δ := elliptic.Position(p, o.earth, jde)
		return Position{RA: α.Hour(), Dec: δ.Deg(), Distance: o.planetDistance(p, jde) * AUKm}, nil
	}
}

// moonEquatorial converts the Meeus lunar theory output to apparent
// equatorial coordinates of date. Δ is in km.
func (o *Oracle) moonEquatorial(jde float64) (unit.RA, unit.Angle, float64) {
	λ, β, Δ := moonposition.Position(jde)
	Δψ, Δε := nutation.Nutation(jde)
	ε := nutation.MeanObliquity(jde) + Δε
	sε, cε := ε.Sincos()
	α, δ := coord.EclToEq(λ+Δψ, β, sε, cε)
	return α, δ, Δ
}

// planetDistance returns the geometric Earth-planet distance in AU from the
// heliocentric positions of both bodies.
func (o *Oracle) planetDistance(p *planetposition.V87Planet, jde float64) float64 {
	l1, b1, r1 := p.Position(jde)
	l2, b2, r2 := o.earth.Position(jde)
	x1, y1, z1 := heliocentricRect(l1, b1, r1)
	x2, y2, z2 := heliocentricRect(l2, b2, r2)
	dx, dy, dz := x1-x2, y1-y2, z1-z2
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func heliocentricRect(l, b unit.Angle, r float64) (x, y, z float64) {
	sb, cb := b.Sincos()
	sl, cl := l.Sincos()
	return r * cb * cl, r * cb * sl, r * sb
}

// AltitudeDeg returns the geocentric altitude of a body in degrees for an
// observer at latDeg/lonDeg (east positive). Parallax is not applied here;
// the caller folds horizontal parallax into the horizon threshold.
func (o *Oracle) AltitudeDeg(t Instant, b Body, latDeg, lonDeg float64) (float64, error) {
	pos, err := o.Apparent(t, b)
	if err != nil {
		return 0, err
	}
	gha := (t.GAST() - pos.RA) * 15
	lha := (gha + lonDeg) * math.Pi / 180
	φ := latDeg * math.Pi / 180
	δ := pos.Dec * math.Pi / 180
	sinAlt := math.Sin(φ)*math.Sin(δ) + math.Cos(φ)*math.Cos(δ)*math.Cos(lha)
	return math.Asin(sinAlt) * 180 / math.Pi, nil
}

// PhaseAngle returns the Sun-Moon-Earth phase angle at t, in radians.
func (o *Oracle) PhaseAngle(t Instant) float64 {
	jde := t.JDE()
	αm, δm, Δ := o.moonEquatorial(jde)
	αs, δs := solar.ApparentEquatorial(jde)
	R := solar.Radius(base.J2000Century(jde)) * AUKm
	return moonillum.PhaseAngleEq(αm, δm, Δ, αs, δs, R).Rad()
}

// Illumination returns the Moon's illuminated fraction at t, [0,1].
func (o *Oracle) Illumination(t Instant) float64 {
	return base.Illuminated(unit.Angle(o.PhaseAngle(t)))
}

// NewMoonBefore returns the instant of the latest new moon at or before t.
func (o *Oracle) NewMoonBefore(t Instant) Instant {
	jde := t.JDE()
	nm := moonphase.New(base.JDEToJulianYear(jde))
	// moonphase.New returns the new moon nearest the given epoch; step back a
	// synodic month when it lands in the future.
	for nm > jde {
		nm = moonphase.New(base.JDEToJulianYear(nm - 29.530588861))
	}
	return Instant{JD: nm - t.DeltaT()/86400, ts: t.ts}
}
