package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func day(base time.Time, n int) time.Time {
	return base.AddDate(0, 0, n)
}

// constantSeries builds n daily samples of the same load.
func constantSeries(base time.Time, n int, load float64) []LoadSample {
	samples := make([]LoadSample, n)
	for i := range samples {
		samples[i] = LoadSample{Date: day(base, i), Load: load}
	}
	return samples
}

func TestFitnessTrend(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	th := DefaultThresholds()

	tests := []struct {
		name    string
		samples []LoadSample
		checkFn func(t *testing.T, states []FitnessState)
	}{
		{
			name:    "empty series",
			samples: nil,
			checkFn: func(t *testing.T, states []FitnessState) {
				if states != nil {
					t.Errorf("expected nil, got %v", states)
				}
			},
		},
		{
			name:    "single sample seeds both EMAs",
			samples: []LoadSample{{Date: base, Load: 100}},
			checkFn: func(t *testing.T, states []FitnessState) {
				if len(states) != 1 {
					t.Fatalf("expected 1 state, got %d", len(states))
				}
				if states[0].CTL != 100 || states[0].ATL != 100 {
					t.Errorf("CTL=%v ATL=%v, want both 100 (seeded with first sample)",
						states[0].CTL, states[0].ATL)
				}
				if states[0].TSB != 0 {
					t.Errorf("TSB = %v, want 0", states[0].TSB)
				}
			},
		},
		{
			name:    "constant load stays converged",
			samples: constantSeries(base, 60, 50),
			checkFn: func(t *testing.T, states []FitnessState) {
				last := states[len(states)-1]
				if math.Abs(last.CTL-50) > 1e-9 || math.Abs(last.ATL-50) > 1e-9 {
					t.Errorf("CTL=%v ATL=%v, want both 50", last.CTL, last.ATL)
				}
				if math.Abs(last.TSB) > 1e-9 {
					t.Errorf("TSB = %v, want ~0", last.TSB)
				}
				if !last.ACRatio.Known || math.Abs(last.ACRatio.Value-1.0) > 1e-9 {
					t.Errorf("ACRatio = %+v, want known 1.0", last.ACRatio)
				}
			},
		},
		{
			name: "converges to constant load from zero start",
			samples: append([]LoadSample{{Date: base, Load: 0}},
				constantSeries(day(base, 1), 200, 80)...),
			checkFn: func(t *testing.T, states []FitnessState) {
				last := states[len(states)-1]
				if math.Abs(last.CTL-80) > 0.1 {
					t.Errorf("CTL = %v, want ~80 after 200 days", last.CTL)
				}
				if math.Abs(last.ATL-80) > 0.1 {
					t.Errorf("ATL = %v, want ~80 after 200 days", last.ATL)
				}
				if math.Abs(last.TSB) > 0.1 {
					t.Errorf("TSB = %v, want ~0", last.TSB)
				}
			},
		},
		{
			name:    "acute responds faster than chronic",
			samples: append(constantSeries(base, 14, 20), constantSeries(day(base, 14), 7, 100)...),
			checkFn: func(t *testing.T, states []FitnessState) {
				last := states[len(states)-1]
				if last.ATL <= last.CTL {
					t.Errorf("after a spike ATL should lead CTL: ATL=%v CTL=%v", last.ATL, last.CTL)
				}
				if last.TSB >= 0 {
					t.Errorf("TSB = %v, want negative during a spike", last.TSB)
				}
			},
		},
		{
			name: "zero CTL keeps ratio unknown",
			samples: []LoadSample{
				{Date: base, Load: 0},
				{Date: day(base, 1), Load: 0},
			},
			checkFn: func(t *testing.T, states []FitnessState) {
				for i, s := range states {
					if s.ACRatio.Known {
						t.Errorf("day %d: ACRatio = %+v, want unknown while CTL == 0", i, s.ACRatio)
					}
				}
			},
		},
		{
			name:    "all-zero series is valid and degenerate",
			samples: constantSeries(base, 10, 0),
			checkFn: func(t *testing.T, states []FitnessState) {
				if len(states) != 10 {
					t.Fatalf("expected 10 states, got %d", len(states))
				}
				last := states[9]
				if last.CTL != 0 || last.ATL != 0 || last.TSB != 0 {
					t.Errorf("got CTL=%v ATL=%v TSB=%v, want zeros", last.CTL, last.ATL, last.TSB)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			states, err := th.FitnessTrend(tt.samples)
			if err != nil {
				t.Fatalf("FitnessTrend() error = %v", err)
			}
			tt.checkFn(t, states)
		})
	}
}

func TestFitnessTrendOrdering(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	th := DefaultThresholds()

	tests := []struct {
		name    string
		samples []LoadSample
	}{
		{
			name: "duplicate dates",
			samples: []LoadSample{
				{Date: base, Load: 50},
				{Date: base, Load: 60},
			},
		},
		{
			name: "decreasing dates",
			samples: []LoadSample{
				{Date: day(base, 2), Load: 50},
				{Date: base, Load: 60},
				{Date: day(base, 1), Load: 70},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := th.FitnessTrend(tt.samples)
			if !errors.Is(err, ErrSeriesOrder) {
				t.Errorf("FitnessTrend() error = %v, want ErrSeriesOrder", err)
			}
		})
	}
}

func TestCurrentFitness(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	th := DefaultThresholds()

	t.Run("empty series", func(t *testing.T) {
		_, ok, err := th.CurrentFitness(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("ok = true for empty series, want false")
		}
	})

	t.Run("returns most recent day", func(t *testing.T) {
		samples := constantSeries(base, 5, 40)
		state, ok, err := th.CurrentFitness(samples)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("ok = false, want true")
		}
		if !state.Date.Equal(day(base, 4)) {
			t.Errorf("Date = %v, want %v", state.Date, day(base, 4))
		}
	})
}

// Longitudinal scenarios covering the whole pipeline end to end.

func TestScenarioSteadyTraining(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	th := DefaultThresholds()

	state, ok, err := th.CurrentFitness(constantSeries(base, 60, 50))
	if err != nil || !ok {
		t.Fatalf("CurrentFitness() = ok:%v err:%v", ok, err)
	}

	if math.Abs(state.CTL-50) > 0.5 || math.Abs(state.ATL-50) > 0.5 {
		t.Errorf("CTL=%v ATL=%v, want ~50", state.CTL, state.ATL)
	}
	if band := th.ClassifyTSB(state.TSB); band != TSBNormal {
		t.Errorf("TSB band = %v, want normal", band)
	}
	if band := th.ClassifyAC(state.ACRatio); band != ACOptimal {
		t.Errorf("A:C band = %v, want optimal", band)
	}
	if findings := th.AnalyzeRisk(state); len(findings) != 0 {
		t.Errorf("findings = %v, want none for steady training", findings)
	}
}

func TestScenarioSuddenSpike(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	th := DefaultThresholds()

	samples := append(constantSeries(base, 42, 30), constantSeries(day(base, 42), 7, 90)...)
	state, ok, err := th.CurrentFitness(samples)
	if err != nil || !ok {
		t.Fatalf("CurrentFitness() = ok:%v err:%v", ok, err)
	}

	if !state.ACRatio.Known || state.ACRatio.Value <= 1.5 {
		t.Fatalf("ACRatio = %+v, want known > 1.5 after the spike", state.ACRatio)
	}
	if band := th.ClassifyAC(state.ACRatio); band != ACDanger {
		t.Errorf("A:C band = %v, want danger", band)
	}

	findings := th.AnalyzeRisk(state)
	if !hasFinding(findings, "ramping too fast") {
		t.Errorf("findings = %v, want a rapid-load-increase finding", findings)
	}
}

func TestScenarioProlongedRest(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	th := DefaultThresholds()

	samples := append(constantSeries(base, 42, 40), constantSeries(day(base, 42), 14, 0)...)
	state, ok, err := th.CurrentFitness(samples)
	if err != nil || !ok {
		t.Fatalf("CurrentFitness() = ok:%v err:%v", ok, err)
	}

	if state.TSB <= 15 {
		t.Errorf("TSB = %v, want strongly positive after two rest weeks", state.TSB)
	}
	if !state.ACRatio.Known || state.ACRatio.Value >= 0.8 {
		t.Fatalf("ACRatio = %+v, want known < 0.8", state.ACRatio)
	}
	if band := th.ClassifyAC(state.ACRatio); band != ACLow {
		t.Errorf("A:C band = %v, want low", band)
	}

	findings := th.AnalyzeRisk(state)
	if len(findings) != 1 {
		t.Fatalf("findings = %v, want exactly the undertraining finding", findings)
	}
	if !hasFinding(findings, "fitness is eroding") {
		t.Errorf("finding = %q, want undertraining", findings[0].Message)
	}
}

func TestScenarioSevereOverload(t *testing.T) {
	th := DefaultThresholds()
	state := FitnessState{
		CTL:     40,
		ATL:     75,
		TSB:     -35,
		ACRatio: KnownRatio(75.0 / 40.0),
	}

	if band := th.ClassifyTSB(state.TSB); band != TSBOverloaded {
		t.Errorf("TSB band = %v, want overloaded", band)
	}

	findings := th.AnalyzeRisk(state)
	if !hasFinding(findings, "overtraining") {
		t.Errorf("findings = %v, want an overtraining finding for TSB -35", findings)
	}
}

func hasFinding(findings []RiskFinding, substr string) bool {
	for _, f := range findings {
		if strings.Contains(f.Message, substr) {
			return true
		}
	}
	return false
}
