package ephemeris

import (
	"math"
	"testing"
	"time"
)

func TestNavigationalStarsCatalog(t *testing.T) {
	if len(NavigationalStars) != 57 {
		t.Fatalf("catalog holds %d stars, want 57", len(NavigationalStars))
	}
	for i, s := range NavigationalStars {
		if s.Num != i+1 {
			t.Errorf("star %q numbered %d at position %d", s.Name, s.Num, i)
		}
		if s.RA2000 < 0 || s.RA2000 >= 24 {
			t.Errorf("star %q RA2000 = %v", s.Name, s.RA2000)
		}
		if s.Dec2000 < -90 || s.Dec2000 > 90 {
			t.Errorf("star %q Dec2000 = %v", s.Name, s.Dec2000)
		}
		if s.Mag < -2 || s.Mag > 3.5 {
			t.Errorf("star %q Mag = %v", s.Name, s.Mag)
		}
		// Star numbers follow right ascension; allow the wrap at Aries.
		if i > 0 && s.RA2000 < NavigationalStars[i-1].RA2000-0.5 {
			t.Errorf("catalog out of RA order at %q", s.Name)
		}
	}
}

func TestStarApparent(t *testing.T) {
	ts := NewTimeScale(nil)
	in := ts.UT1(2026, time.June, 1, 12, 0, 0)

	for _, s := range NavigationalStars {
		ra, dec := s.Apparent(in)
		if ra < 0 || ra >= 24 {
			t.Errorf("%s apparent RA = %v", s.Name, ra)
		}
		// A quarter century of precession moves nothing more than ~1 degree.
		if math.Abs(dec-s.Dec2000) > 1 {
			t.Errorf("%s apparent Dec = %v, catalog %v", s.Name, dec, s.Dec2000)
		}
	}

	// Sirius stays within a tenth of a degree of its catalog place.
	sirius := NavigationalStars[17]
	if sirius.Name != "Sirius" {
		t.Fatalf("star 18 is %q", sirius.Name)
	}
	_, dec := sirius.Apparent(in)
	if math.Abs(dec-(-16.72)) > 0.2 {
		t.Errorf("Sirius Dec = %v, want ~-16.72", dec)
	}
}
