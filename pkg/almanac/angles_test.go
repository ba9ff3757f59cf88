package almanac

import (
	"math"
	"testing"
)

func TestNorm(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"full circle wraps", 360, 0},
		{"negative wraps up", -30, 330},
		{"multiple revolutions", 725, 5},
		{"small positive unchanged", 123.456, 123.456},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Norm(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Norm(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColong(t *testing.T) {
	if got := Colong(0); got != 180 {
		t.Errorf("Colong(0) = %v, want 180", got)
	}
	if got := Colong(270); got != 90 {
		t.Errorf("Colong(270) = %v, want 90", got)
	}
	// Applying twice must round-trip: lower-of-lower is upper.
	for _, g := range []float64{0, 13.7, 180, 359.9} {
		if got := Colong(Colong(g)); math.Abs(got-g) > 1e-9 {
			t.Errorf("Colong(Colong(%v)) = %v", g, got)
		}
	}
}

func TestGHAFromGAST(t *testing.T) {
	if got := GHAFromGAST(10, 4); math.Abs(got-90) > 1e-9 {
		t.Errorf("GHAFromGAST(10, 4) = %v, want 90", got)
	}
	if got := GHAFromGAST(1, 5); math.Abs(got-300) > 1e-9 {
		t.Errorf("GHAFromGAST(1, 5) = %v, want 300", got)
	}
}

func TestFmtDegMin(t *testing.T) {
	tests := []struct {
		name  string
		deg   float64
		width int
		want  string
	}{
		{"zero", 0, 3, "  0 00.0"},
		{"plain value", 123.4567, 3, "123 27.4"},
		{"minutes carry into degrees", 25.99999, 3, " 26 00.0"},
		{"full circle carries to zero", 359.9992, 3, "  0 00.0"},
		{"just under the carry", 359.99, 3, "359 59.4"},
		{"narrow width", 5.0533, 2, " 5 03.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FmtDegMin(tt.deg, tt.width); got != tt.want {
				t.Errorf("FmtDegMin(%v, %d) = %q, want %q", tt.deg, tt.width, got, tt.want)
			}
		})
	}
}

func TestFmtDecl(t *testing.T) {
	tests := []struct {
		name                    string
		deg                     float64
		showLetter, showDegrees bool
		want                    string
	}{
		{"south with letter and degrees", -12.345, true, true, "S12 20.7"},
		{"north degrees only", 3.5, false, true, "  3 30.0"},
		{"minutes only", 3.5, false, false, "    30.0"},
		{"small negative keeps south letter", -0.0083333, true, true, "S 0 00.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FmtDecl(tt.deg, tt.showLetter, tt.showDegrees); got != tt.want {
				t.Errorf("FmtDecl(%v, %v, %v) = %q, want %q",
					tt.deg, tt.showLetter, tt.showDegrees, got, tt.want)
			}
		})
	}
}

func TestDeclCompare(t *testing.T) {
	tests := []struct {
		name             string
		prev, cur, next  float64
		h                int
		wantLetter       bool
		wantDegrees      bool
	}{
		{"block anchor hour", 5.01, 5.02, 5.03, 0, true, true},
		{"anchor every six hours", 5.01, 5.02, 5.03, 6, true, true},
		{"steady value mid-block", 5.01, 5.02, 5.03, 1, false, false},
		{"integer degree crossing", 4.999, 5.001, 5.003, 1, true, true},
		{"anchor hour with degree crossing", 4.999, 5.001, 5.003, 12, true, true},
		{"rounding hides a raw crossing", 5.00001, 4.99999, 4.998, 1, false, false},
		{"sign change from previous", -0.01, 0.01, 0.03, 2, true, true},
		{"sign change into next", 0.03, 0.01, -0.01, 2, true, true},
		{"last hour ignores next", 0.03, 0.01, -0.01, 23, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotLetter, gotDegrees := DeclCompare(tt.prev, tt.cur, tt.next, tt.h)
			if gotLetter != tt.wantLetter || gotDegrees != tt.wantDegrees {
				t.Errorf("DeclCompare(%v, %v, %v, %d) = (%v, %v), want (%v, %v)",
					tt.prev, tt.cur, tt.next, tt.h,
					gotLetter, gotDegrees, tt.wantLetter, tt.wantDegrees)
			}
		})
	}
}
