package analysis

import (
	"math"
	"testing"
)

func TestPercentOfMax(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		bounds   DisplayBounds
		expected float64
	}{
		{"half of max", 50, DisplayBounds{Max: 100}, 50},
		{"at max", 100, DisplayBounds{Max: 100}, 100},
		{"zero", 0, DisplayBounds{Max: 100}, 0},
		{"far below clamps to 0", -1000, DisplayBounds{Max: 100}, 0},
		{"far above clamps to 100", 1e9, DisplayBounds{Max: 100}, 100},
		{"zero max yields 0", 50, DisplayBounds{}, 0},
		{"negative max yields 0", 50, DisplayBounds{Max: -10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentOfMax(tt.raw, tt.bounds)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("PercentOfMax(%v, %+v) = %v, want %v", tt.raw, tt.bounds, got, tt.expected)
			}
			if got < 0 || got > 100 {
				t.Errorf("PercentOfMax(%v, %+v) = %v, outside [0,100]", tt.raw, tt.bounds, got)
			}
		})
	}
}

func TestGaugePercent(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name     string
		ratio    Ratio
		expected float64
		ok       bool
	}{
		{"unknown ratio", Ratio{}, 0, false},
		{"scale minimum", KnownRatio(0.5), 0, true},
		{"scale midpoint", KnownRatio(1.25), 50, true},
		{"scale maximum", KnownRatio(2.0), 100, true},
		{"below scale clamps to 0", KnownRatio(0.1), 0, true},
		{"above scale clamps to 100", KnownRatio(3.0), 100, true},
		{"optimal ratio sits left of center", KnownRatio(1.0), 100.0 / 3.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := th.GaugePercent(tt.ratio)
			if ok != tt.ok {
				t.Fatalf("GaugePercent(%+v) ok = %v, want %v", tt.ratio, ok, tt.ok)
			}
			if !ok {
				return
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("GaugePercent(%+v) = %v, want %v", tt.ratio, got, tt.expected)
			}
			if got < 0 || got > 100 {
				t.Errorf("GaugePercent(%+v) = %v, outside [0,100]", tt.ratio, got)
			}
		})
	}
}
