package almanac

import (
	"fmt"
	"math"

	"github.com/chrissnell/skyalmanac/pkg/ephemeris"
)

// EqtData is the daily equation-of-time block of the sun/moon page.
type EqtData struct {
	T00, T12       string // mm:ss at 00h and 12h
	Flag00, Flag12 bool   // color flags encoding the equation's sign
	MerPass        string // Sun meridian passage hh:mm
	AgeDays        int    // whole days since new moon at start of day
	IllumPct       int    // Moon illuminated percentage
}

// eqtMap reduces a Sun GHA to the signed meridian offset in degrees: GHA near
// 180° measures the offset at 00h, GHA near 0°/360° measures it at 12h.
func eqtMap(gha float64) float64 {
	switch {
	case gha > 100 && gha < 260:
		return gha - 180
	case gha > 270:
		return gha - 360
	default:
		return gha
	}
}

// fmtEqt renders a meridian offset in degrees as mm:ss of time, half-up.
func fmtEqt(offsetDeg float64) string {
	secs := int(math.Floor(math.Abs(offsetDeg)*4*60 + 0.5))
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// EquationOfTime computes the equation-of-time block for day d. The 00h value
// is flagged when the Sun's lower transit had not yet occurred at midnight
// (gha ≤ 180), the 12h value when the upper transit had not yet occurred at
// noon (gha > 270); both encode a slow Sun for the renderer.
func (e *Engine) EquationOfTime(d Date) (EqtData, error) {
	var out EqtData

	t00 := e.TS.UT1(d.Y, d.M, d.D, 0, 0, 0)
	t12 := e.TS.UT1(d.Y, d.M, d.D, 12, 0, 0)
	var ghas [2]float64
	for i, in := range []ephemeris.Instant{t00, t12} {
		pos, err := e.Oracle.Apparent(in, ephemeris.Sun)
		if err != nil {
			return out, err
		}
		ghas[i] = GHAFromGAST(in.GAST(), pos.RA)
	}
	out.T00 = fmtEqt(eqtMap(ghas[0]))
	out.T12 = fmtEqt(eqtMap(ghas[1]))
	out.Flag00 = ghas[0] <= 180
	out.Flag12 = ghas[1] > 270

	mp, err := e.SunTransit(d)
	if err != nil {
		return out, err
	}
	out.MerPass = mp

	nm := e.Oracle.NewMoonBefore(t00)
	out.AgeDays = int(math.Floor(t00.Sub(nm)))
	out.IllumPct = int(math.Round(50 * (1 + math.Cos(e.Oracle.PhaseAngle(t12)))))
	return out, nil
}
