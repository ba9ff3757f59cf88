// Package almanac computes the daily-page quantities of a nautical almanac:
// hourly GHA/declination tables, rise/set/twilight times across the latitude
// ladder, lunar transits, and the equation of time. Positions come from
// pkg/ephemeris; this package owns the searching, rounding, and page-oriented
// formatting rules.
package almanac

import (
	"fmt"
	"math"
)

// Norm wraps an angle in degrees to [0,360).
func Norm(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Colong returns the colongitude of a GHA: gha+180 wrapped to [0,360). The
// lower transit of a body is the upper transit of its colongitude, so one
// search algorithm serves both.
func Colong(gha float64) float64 {
	return Norm(gha + 180)
}

// GHAFromGAST converts sidereal time and right ascension, both in hours, to a
// Greenwich hour angle in degrees.
func GHAFromGAST(gastHours, raHours float64) float64 {
	sha := (gastHours - raHours) * 15
	if sha < 0 {
		sha += 360
	}
	return Norm(sha)
}

// roundTenthMin rounds an angle in degrees to tenths of arc-minutes,
// returning whole degrees and the minute remainder with the 60.0' carry
// applied. A full circle carries to 0.
func roundTenthMin(deg float64) (d int, min float64) {
	tenths := math.Round(deg * 600)
	d = int(tenths) / 600
	min = float64(int(tenths)%600) / 10
	if d >= 360 {
		d -= 360
	}
	return d, min
}

// FmtDegMin renders an angle as whole degrees and tenths of minutes, with the
// degrees field right-aligned to width. Minutes that round to 60.0' carry
// into the degrees, and 360° wraps to 0°.
func FmtDegMin(deg float64, width int) string {
	d, m := roundTenthMin(Norm(deg))
	return fmt.Sprintf("%*d %04.1f", width, d, m)
}

// FmtDecl renders a declination with an optional hemisphere letter and
// degrees field, per the printed-page compression: rows that omit them show
// minutes only.
func FmtDecl(deg float64, showLetter, showDegrees bool) string {
	letter := "N"
	if deg < 0 {
		letter = "S"
	}
	d, m := roundTenthMin(math.Abs(deg))
	switch {
	case showLetter && showDegrees:
		return fmt.Sprintf("%s%2d %04.1f", letter, d, m)
	case showDegrees:
		return fmt.Sprintf(" %2d %04.1f", d, m)
	default:
		return fmt.Sprintf("    %04.1f", m)
	}
}

// DeclCompare decides, for hour h of a declination column, whether to render
// the hemisphere letter and the degrees portion. The letter reappears on the
// block-anchor hours, at sign changes, and whenever the rounded value crosses
// an integer degree; degrees accompany the letter, all other rows show
// minutes alone.
func DeclCompare(prev, cur, next float64, h int) (showLetter, showDegrees bool) {
	signChange := (h > 0 && math.Signbit(prev) != math.Signbit(cur)) ||
		(h < 23 && math.Signbit(next) != math.Signbit(cur))

	dPrev, _ := roundTenthMin(math.Abs(prev))
	dCur, _ := roundTenthMin(math.Abs(cur))
	degreeCross := h > 0 && dPrev != dCur

	showLetter = h%6 == 0 || signChange || degreeCross
	return showLetter, showLetter
}
