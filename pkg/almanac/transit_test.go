package almanac

import (
	"errors"
	"testing"
	"time"

	"github.com/chrissnell/skyalmanac/pkg/config"
)

// linearGHA builds an hourly table and sampler for a body whose GHA grows
// linearly at ratePerHour degrees from g0 at 00:00.
func linearGHA(g0, ratePerHour float64) ([]float64, ghaAt) {
	tab := make([]float64, 25)
	for i := range tab {
		tab[i] = Norm(g0 + ratePerHour*float64(i))
	}
	at := func(hr, mi int, sec float64) (float64, error) {
		m := float64(hr*60+mi) + sec/60
		return Norm(g0 + ratePerHour/60*m), nil
	}
	return tab, at
}

func TestResolveTransit(t *testing.T) {
	d := Date{2026, time.April, 2}

	tests := []struct {
		name    string
		g0      float64
		rate    float64 // degrees per hour
		seconds bool
		want    string
		wantErr error
	}{
		{
			// A lunar day without a wrap skips the transit entirely.
			name: "no wrap", g0: 0.5, rate: 14.3, want: NoEvent,
		},
		{
			// Wrap at 00:15 exactly; the half-up rule lands on 15.
			name: "plain minute rounding", g0: 357, rate: 12, want: "00:15",
		},
		{
			// Wrap at 00:12:30: GHA settles the midpoint, first half wins.
			name: "midpoint first half", g0: 357.5, rate: 12, want: "00:12",
		},
		{
			// Wrap at 00:12:30.12, inside the midpoint band but in the
			// second half; the 30s sample is still unwrapped.
			name: "midpoint second half", g0: 357.4992, rate: 12, want: "00:13",
		},
		{
			// Late-day wrap exercises the hour bracketing.
			name: "late hour", g0: 100, rate: 12, want: "21:40",
		},
		{
			name: "seconds precision with carry", g0: 357, rate: 12,
			seconds: true, want: "00:15:00",
		},
		{
			// Faster than the sweep-rate seed: the wrap lands on the first
			// sweep sample, which the search reports rather than masks.
			name: "sweep start overflow", g0: 357, rate: 16.2,
			wantErr: ErrTransitSearchStartOverflow,
		},
		{
			// The wrap fell in the 30s sliver before 00:00; it rounds onto
			// this day's page as 00:00.
			name: "wrap in opening sliver", g0: 0.04, rate: 14.3, want: "00:00",
		},
		{
			// Wrap at 23:59:45, past the window close: the next day owns
			// it, never a 24:00 row.
			name: "wrap past window close", g0: 14.46, rate: 14.4, want: NoEvent,
		},
		{
			// Wrap at 23:59:12, before the close: last printable minute.
			name: "wrap in last minute", g0: 14.592, rate: 14.4, want: "23:59",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(nil, nil, config.ConfigData{SecondsOfTime: tt.seconds})
			tab, at := linearGHA(tt.g0, tt.rate)
			off := 30.0
			if tt.seconds {
				off = 0.5
			}
			soD, _ := at(0, 0, -off)
			eoD, _ := at(24, 0, -off)
			got, err := e.resolveTransit(d, tab, soD, eoD, at)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolveTransit() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveTransit() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTransit() = %q, want %q", got, tt.want)
			}
		})
	}
}

// The lower transit of 2063-08-24 lands so close to a seconds-mode sweep
// sample that a 0.25 seed starts the sweep past the wrap; the 0.26 seed
// keeps it terminating. Both transits of that day must resolve cleanly.
func TestTransitSecondsSweepSeed(t *testing.T) {
	e := sunMoonEngine(config.ConfigData{SecondsOfTime: true})
	d := Date{2063, time.August, 24}

	upper, err := e.UpperTransit(d)
	if err != nil {
		t.Fatalf("UpperTransit(%v): %v", d, err)
	}
	if upper != "12:26:52" {
		t.Errorf("UpperTransit(%v) = %q, want %q", d, upper, "12:26:52")
	}

	lower, err := e.LowerTransit(d)
	if err != nil {
		t.Fatalf("LowerTransit(%v): %v", d, err)
	}
	if lower != "00:00:09" {
		t.Errorf("LowerTransit(%v) = %q, want %q", d, lower, "00:00:09")
	}
}

func TestFmtTransitCarries(t *testing.T) {
	tests := []struct {
		hr, mi, se int
		want       string
	}{
		{4, 7, -1, "04:07"},
		{4, 60, -1, "05:00"},
		{23, 60, -1, "24:00"},
		{4, 7, 60, "04:08:00"},
		{4, 59, 60, "05:00:00"},
	}
	for _, tt := range tests {
		if got := fmtTransit(tt.hr, tt.mi, tt.se); got != tt.want {
			t.Errorf("fmtTransit(%d, %d, %d) = %q, want %q", tt.hr, tt.mi, tt.se, got, tt.want)
		}
	}
}
