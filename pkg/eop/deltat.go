package eop

// DeltaT returns TT-UT1 in seconds for a UT1 Julian Date, from the
// Espenak-Meeus long-term polynomial fits. Conversion to the ephemeris (TT)
// scale always goes through this polynomial, which is accurate to well under
// a second over the almanac's coverage years; a loaded EOP table serves the
// direct DUT1 queries and the footer coverage dates, not this value.
func DeltaT(jd float64) float64 {
	y := 2000.0 + (jd-2451545.0)/365.25

	switch {
	case y < 2005:
		t := y - 2000
		return 63.86 + t*(0.3345+t*(-0.060374+t*(0.0017275+t*(0.000651814+t*0.00002373599))))
	case y < 2050:
		t := y - 2000
		return 62.92 + t*(0.32217+t*0.005589)
	case y < 2150:
		u := (y - 1820) / 100
		return -20 + 32*u*u - 0.5628*(2150-y)
	default:
		u := (y - 1820) / 100
		return -20 + 32*u*u
	}
}
