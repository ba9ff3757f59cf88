package ephemeris

import (
	"github.com/soniakeys/meeus/v3/apparent"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/unit"
)

// Star is a navigational star in the J2000 frame. RA2000 is in hours, Dec2000
// in degrees. PMRA is annual proper motion in seconds of RA, PMDec in
// arcseconds.
type Star struct {
	Num     int // almanac star number, 1..57
	Name    string
	RA2000  float64
	Dec2000 float64
	PMRA    float64
	PMDec   float64
	Mag     float64
}

// Apparent returns the star's apparent place at t: proper motion, precession,
// nutation, and annual aberration applied. RA in hours, Dec in degrees.
func (s Star) Apparent(t Instant) (raHours, decDeg float64) {
	jde := t.JDE()
	from := &coord.Equatorial{
		RA:  unit.RAFromHour(s.RA2000),
		Dec: unit.AngleFromDeg(s.Dec2000),
	}
	to := &coord.Equatorial{}
	apparent.Position(from, to, 2000.0, base.JDEToJulianYear(jde),
		unit.HourAngleFromSec(s.PMRA), unit.AngleFromSec(s.PMDec))
	return to.RA.Hour(), to.Dec.Deg()
}

// NavigationalStars is the standard almanac list of 57 stars, in star-number
// (right ascension) order. Positions are FK5/J2000, magnitudes visual.
var NavigationalStars = []Star{
	{1, "Alpheratz", 0.1398, 29.0904, 0.0091, -0.163, 2.06},
	{2, "Ankaa", 0.4381, -42.3061, 0.0168, -0.395, 2.38},
	{3, "Schedar", 0.6751, 56.5373, 0.0062, -0.032, 2.23},
	{4, "Diphda", 0.7265, -17.9866, 0.0160, 0.033, 2.04},
	{5, "Achernar", 1.6286, -57.2368, 0.0130, -0.039, 0.46},
	{6, "Hamal", 2.1196, 23.4624, 0.0140, -0.145, 2.00},
	{7, "Acamar", 2.9711, -40.3047, -0.0037, 0.019, 2.88},
	{8, "Menkar", 3.0380, 4.0897, -0.0005, -0.076, 2.53},
	{9, "Mirfak", 3.4054, 49.8612, 0.0016, -0.026, 1.79},
	{10, "Aldebaran", 4.5987, 16.5093, 0.0045, -0.190, 0.85},
	{11, "Rigel", 5.2423, -8.2016, 0.0000, -0.001, 0.12},
	{12, "Capella", 5.2782, 45.9980, 0.0080, -0.424, 0.08},
	{13, "Bellatrix", 5.4189, 6.3497, -0.0006, -0.013, 1.64},
	{14, "Elnath", 5.4382, 28.6075, 0.0017, -0.175, 1.65},
	{15, "Alnilam", 5.6036, -1.2019, 0.0001, -0.001, 1.70},
	{16, "Betelgeuse", 5.9195, 7.4071, 0.0019, 0.010, 0.50},
	{17, "Canopus", 6.3992, -52.6957, 0.0017, 0.023, -0.74},
	{18, "Sirius", 6.7525, -16.7161, -0.0379, -1.211, -1.46},
	{19, "Adhara", 6.9771, -28.9721, 0.0003, 0.002, 1.50},
	{20, "Procyon", 7.6551, 5.2250, -0.0474, -1.022, 0.34},
	{21, "Pollux", 7.7553, 28.0262, -0.0474, -0.046, 1.14},
	{22, "Avior", 8.3752, -59.5095, -0.0018, 0.014, 1.86},
	{23, "Suhail", 9.1333, -43.4326, -0.0016, 0.014, 2.21},
	{24, "Miaplacidus", 9.2200, -69.7172, -0.0309, 0.108, 1.68},
	{25, "Alphard", 9.4598, -8.6586, -0.0010, 0.033, 1.98},
	{26, "Regulus", 10.1395, 11.9672, -0.0169, 0.005, 1.35},
	{27, "Dubhe", 11.0622, 61.7510, -0.0170, -0.035, 1.79},
	{28, "Denebola", 11.8177, 14.5721, -0.0342, -0.114, 2.14},
	{29, "Gienah", 12.2634, -17.5419, -0.0112, 0.022, 2.59},
	{30, "Acrux", 12.4433, -63.0991, -0.0026, -0.015, 0.76},
	{31, "Gacrux", 12.5194, -57.1132, 0.0020, -0.265, 1.63},
	{32, "Alioth", 12.9005, 55.9598, 0.0132, -0.009, 1.77},
	{33, "Spica", 13.4199, -11.1613, -0.0028, -0.028, 0.97},
	{34, "Alkaid", 13.7923, 49.3133, -0.0124, -0.014, 1.86},
	{35, "Hadar", 14.0637, -60.3730, -0.0030, -0.019, 0.61},
	{36, "Menkent", 14.1114, -36.3700, -0.0429, -0.520, 2.06},
	{37, "Arcturus", 14.2610, 19.1824, -0.0770, -1.998, -0.04},
	{38, "Rigil Kentaurus", 14.6599, -60.8354, -0.4945, 0.696, -0.27},
	{39, "Zubenelgenubi", 14.8480, -16.0418, -0.0074, -0.069, 2.75},
	{40, "Kochab", 14.8451, 74.1555, -0.0044, 0.012, 2.08},
	{41, "Alphecca", 15.5781, 26.7147, 0.0091, -0.089, 2.23},
	{42, "Antares", 16.4901, -26.4320, -0.0007, -0.023, 0.96},
	{43, "Atria", 16.8111, -69.0277, 0.0026, -0.032, 1.92},
	{44, "Sabik", 17.1730, -15.7249, 0.0028, 0.099, 2.43},
	{45, "Shaula", 17.5603, -37.1038, 0.0000, -0.030, 1.63},
	{46, "Rasalhague", 17.5822, 12.5600, 0.0082, -0.227, 2.08},
	{47, "Eltanin", 17.9434, 51.4889, -0.0008, -0.023, 2.23},
	{48, "Kaus Australis", 18.4029, -34.3846, -0.0027, -0.124, 1.85},
	{49, "Vega", 18.6156, 38.7837, 0.0172, 0.286, 0.03},
	{50, "Nunki", 18.9211, -26.2967, 0.0010, -0.053, 2.02},
	{51, "Altair", 19.8464, 8.8683, 0.0362, 0.387, 0.77},
	{52, "Peacock", 20.4275, -56.7351, 0.0009, -0.086, 1.94},
	{53, "Deneb", 20.6905, 45.2803, 0.0003, 0.002, 1.25},
	{54, "Enif", 21.7364, 9.8750, 0.0021, 0.001, 2.39},
	{55, "Al Na'ir", 22.1372, -46.9610, 0.0127, -0.148, 1.74},
	{56, "Fomalhaut", 22.9608, -29.6223, 0.0231, -0.165, 1.16},
	{57, "Markab", 23.0794, 15.2053, 0.0044, -0.042, 2.49},
}
