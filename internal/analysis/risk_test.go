package analysis

import (
	"reflect"
	"strings"
	"testing"
)

func TestAnalyzeRisk(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name     string
		state    FitnessState
		want     int
		contains []string
	}{
		{
			name:  "healthy state produces no findings",
			state: FitnessState{CTL: 50, ATL: 50, TSB: 0, ACRatio: KnownRatio(1.0)},
			want:  0,
		},
		{
			name:     "deep fatigue fires overtraining",
			state:    FitnessState{CTL: 40, ATL: 75, TSB: -35, ACRatio: KnownRatio(1.875)},
			want:     2, // ratio 1.875 also exceeds the danger cut
			contains: []string{"overtraining", "1.88x"},
		},
		{
			name:     "ratio spike alone fires rapid-load",
			state:    FitnessState{CTL: 30, ATL: 48, TSB: -18, ACRatio: KnownRatio(1.6)},
			want:     1,
			contains: []string{"1.60x"},
		},
		{
			name:     "low ratio fires undertraining",
			state:    FitnessState{CTL: 40, ATL: 20, TSB: 20, ACRatio: KnownRatio(0.5)},
			want:     1,
			contains: []string{"fitness is eroding"},
		},
		{
			name:  "boundary TSB -30 does not fire",
			state: FitnessState{CTL: 40, ATL: 70, TSB: -30, ACRatio: KnownRatio(1.0)},
			want:  0,
		},
		{
			name:  "boundary ratio 1.5 does not fire",
			state: FitnessState{CTL: 40, ATL: 60, TSB: -20, ACRatio: KnownRatio(1.5)},
			want:  0,
		},
		{
			name:  "boundary ratio 0.8 does not fire",
			state: FitnessState{CTL: 50, ATL: 40, TSB: 10, ACRatio: KnownRatio(0.8)},
			want:  0,
		},
		{
			name:  "unknown ratio never fires ratio rules",
			state: FitnessState{CTL: 0, ATL: 0, TSB: 0},
			want:  0,
		},
		{
			name:     "unknown ratio still allows TSB rule",
			state:    FitnessState{CTL: 0, ATL: 40, TSB: -40},
			want:     1,
			contains: []string{"overtraining"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := th.AnalyzeRisk(tt.state)
			if len(findings) != tt.want {
				t.Fatalf("got %d findings %v, want %d", len(findings), findings, tt.want)
			}
			for _, substr := range tt.contains {
				if !hasFinding(findings, substr) {
					t.Errorf("findings %v missing %q", findings, substr)
				}
			}
		})
	}
}

func TestAnalyzeRiskIdempotent(t *testing.T) {
	th := DefaultThresholds()
	state := FitnessState{CTL: 40, ATL: 75, TSB: -35, ACRatio: KnownRatio(1.875)}

	first := th.AnalyzeRisk(state)
	second := th.AnalyzeRisk(state)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated analysis differs:\n  first:  %v\n  second: %v", first, second)
	}
}

func TestAnalyzeRiskRuleOrder(t *testing.T) {
	th := DefaultThresholds()
	// All three rules fire: overtraining, rapid-load, then undertraining is
	// impossible together with rapid-load, so check the two-finding order.
	state := FitnessState{CTL: 20, ATL: 60, TSB: -40, ACRatio: KnownRatio(3.0)}

	findings := th.AnalyzeRisk(state)
	if len(findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(findings))
	}
	if !strings.Contains(findings[0].Message, "overtraining") {
		t.Errorf("first finding = %q, want the overtraining rule first", findings[0].Message)
	}
	if !strings.Contains(findings[1].Message, "3.00x") {
		t.Errorf("second finding = %q, want the rapid-load rule second", findings[1].Message)
	}
}
