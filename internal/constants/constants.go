// Package constants defines application-wide constants and version information.
package constants

import "runtime"

// Version holds the application version information
const Version = "1.2-" + runtime.GOOS + "/" + runtime.GOARCH

// Volumetric mean radii used for semi-diameter and horizontal parallax, in km.
const (
	SunRadiusKm   = 695700.0
	MoonRadiusKm  = 1737.4
	EarthRadiusKm = 6371.0
)

// MoonMeanHourlyGHA is the Moon's nominal GHA motion per hour, 14°19'.
// The tabulated v-value is the excess over this rate, in arc-minutes.
const MoonMeanHourlyGHA = 14.0 + 19.0/60.0

// TransitSweepRate is the nominal Moon GHA motion per minute of time used to
// seed the minute-level transit sweep (14.25°/h ≈ 0.25°/min rounded up so the
// sweep starts 2-3 samples before the event).
const TransitSweepRate = 0.25

// TransitSweepRateSeconds replaces TransitSweepRate when seeding the
// seconds-level sweep. The extra 0.01 keeps the start index from overshooting
// the event by one sample; 0.25 was observed to do so for the lower transit
// of 2063-08-24.
const TransitSweepRateSeconds = 0.26

// Half-interval GHA thresholds that decide whether a transit bracket can be
// rounded by sign alone or must be split at its midpoint. 0.002° of GHA is
// about 0.5 s of time at the Moon's rate; 0.001° is about 0.25 s.
const (
	TransitHalfMinuteGHA = 0.002
	TransitHalfSecondGHA = 0.001
)

// LDRateCutoff is the minimum hourly rate of change of a lunar distance, in
// degrees per hour, for a body to be a useful lunar-distance target. Slower
// arcs do not resolve time well enough to be worth tabulating. Empirical.
const LDRateCutoff = 0.016

// NewMoonExclusion is the Sun-Moon separation in degrees under which the Sun
// is excluded from lunar-distance candidate selection.
const NewMoonExclusion = 10.0

// TransitCacheLen is the number of dates the twilight/moonrise cache ring
// retains. Five covers the 3-day page window plus the adjacent-day searches.
const TransitCacheLen = 5

// MaxWorkers caps the latitude worker pool.
const MaxWorkers = 8

// Latitudes is the almanac's fixed ladder of tabulated latitudes, degrees
// north positive, in page order.
var Latitudes = []int{
	72, 70, 68, 66, 64, 62, 60, 58, 56, 54, 52, 50, 45, 40, 35, 30, 20,
	10, 0, -10, -20, -30, -35, -40, -45, -50, -52, -54, -56, -58, -60,
}

// Horizon depression angles for the Sun, degrees below the geometric horizon.
const (
	SunriseDepression  = 0.8333
	CivilDepression    = 6.0
	NauticalDepression = 12.0
)
