package almanac

import (
	"github.com/chrissnell/skyalmanac/pkg/ephemeris"
)

// StarRow is one line of the star pages: apparent SHA and declination for the
// middle day of a 3-day opening.
type StarRow struct {
	Num  int
	Name string
	SHA  string
	Dec  string
	Mag  float64
}

// PlanetBlock is the per-planet header line: SHA relative to Aries and the
// meridian passage, both for the middle day.
type PlanetBlock struct {
	Body    ephemeris.Body
	SHA     string
	MerPass string
}

// starEpoch is the instant star and planet page values are evaluated at: the
// middle day's noon.
func (e *Engine) starEpoch(d Date) ephemeris.Instant {
	return e.TS.UT1(d.Y, d.M, d.D, 12, 0, 0)
}

// StarRows tabulates the 57 navigational stars for day d. SHA is measured
// westward from Aries: 360° minus the apparent right ascension.
func (e *Engine) StarRows(d Date) []StarRow {
	t := e.starEpoch(d)
	rows := make([]StarRow, len(ephemeris.NavigationalStars))
	for i, s := range ephemeris.NavigationalStars {
		ra, dec := s.Apparent(t)
		sha := Norm(360 - ra*15)
		rows[i] = StarRow{
			Num:  s.Num,
			Name: s.Name,
			SHA:  FmtDegMin(sha, 3),
			Dec:  FmtDecl(dec, true, true),
			Mag:  s.Mag,
		}
	}
	return rows
}

// PlanetBlocks computes the SHA and meridian passage of the four navigational
// planets for day d.
func (e *Engine) PlanetBlocks(d Date) ([]PlanetBlock, error) {
	t := e.starEpoch(d)
	ariesGHA := Norm(t.GAST() * 15)
	blocks := make([]PlanetBlock, 0, len(ephemeris.Planets))
	for _, b := range ephemeris.Planets {
		pos, err := e.Oracle.Apparent(t, b)
		if err != nil {
			return nil, err
		}
		gha := GHAFromGAST(t.GAST(), pos.RA)
		mp, err := e.PlanetTransit(d, b)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, PlanetBlock{
			Body:    b,
			SHA:     FmtDegMin(Norm(gha-ariesGHA), 3),
			MerPass: mp,
		})
	}
	return blocks, nil
}
