package service

import (
	"testing"
	"time"

	"runload/internal/store"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDailySeries(t *testing.T) {
	tests := []struct {
		name      string
		loads     []store.DailyLoad
		wantLen   int
		wantLoads map[int]float64 // index -> expected load
	}{
		{
			name:    "empty input",
			loads:   nil,
			wantLen: 0,
		},
		{
			name: "single day",
			loads: []store.DailyLoad{
				{Date: day(2026, 3, 10), TRIMP: 80},
			},
			wantLen:   1,
			wantLoads: map[int]float64{0: 80},
		},
		{
			name: "gap days are zero-filled",
			loads: []store.DailyLoad{
				{Date: day(2026, 3, 10), TRIMP: 80},
				{Date: day(2026, 3, 13), TRIMP: 60},
			},
			wantLen:   4,
			wantLoads: map[int]float64{0: 80, 1: 0, 2: 0, 3: 60},
		},
		{
			name: "duplicate days sum",
			loads: []store.DailyLoad{
				{Date: day(2026, 3, 10), TRIMP: 80},
				{Date: day(2026, 3, 10), TRIMP: 40},
			},
			wantLen:   1,
			wantLoads: map[int]float64{0: 120},
		},
		{
			name: "unsorted input still produces ascending series",
			loads: []store.DailyLoad{
				{Date: day(2026, 3, 12), TRIMP: 50},
				{Date: day(2026, 3, 10), TRIMP: 80},
			},
			wantLen:   3,
			wantLoads: map[int]float64{0: 80, 1: 0, 2: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := BuildDailySeries(tt.loads)
			if len(samples) != tt.wantLen {
				t.Fatalf("got %d samples, want %d", len(samples), tt.wantLen)
			}
			for i := 1; i < len(samples); i++ {
				if !samples[i].Date.After(samples[i-1].Date) {
					t.Errorf("dates not strictly increasing at %d: %v then %v", i, samples[i-1].Date, samples[i].Date)
				}
				if samples[i].Date.Sub(samples[i-1].Date) != 24*time.Hour {
					t.Errorf("gap between %v and %v is not one day", samples[i-1].Date, samples[i].Date)
				}
			}
			for idx, want := range tt.wantLoads {
				if samples[idx].Load != want {
					t.Errorf("samples[%d].Load = %v, want %v", idx, samples[idx].Load, want)
				}
			}
		})
	}
}

func TestBuildDailySeriesNormalizesTimes(t *testing.T) {
	// Rows with an intra-day timestamp land on the same midnight bucket
	loads := []store.DailyLoad{
		{Date: time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC), TRIMP: 80},
		{Date: time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC), TRIMP: 40},
	}

	samples := BuildDailySeries(loads)
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}
	if samples[0].Load != 120 {
		t.Errorf("load = %v, want summed 120", samples[0].Load)
	}
	if h, m, s := samples[0].Date.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("date %v not normalized to midnight", samples[0].Date)
	}
}

func TestExtendToToday(t *testing.T) {
	samples := BuildDailySeries([]store.DailyLoad{
		{Date: day(2026, 3, 10), TRIMP: 80},
	})

	now := day(2026, 3, 13).Add(9 * time.Hour)
	extended := ExtendToToday(samples, now)

	if len(extended) != 4 {
		t.Fatalf("got %d samples, want 4 (10th through 13th)", len(extended))
	}
	if extended[3].Date != day(2026, 3, 13) {
		t.Errorf("last date = %v, want today", extended[3].Date)
	}
	for _, s := range extended[1:] {
		if s.Load != 0 {
			t.Errorf("padded day %v has load %v, want 0", s.Date, s.Load)
		}
	}

	// Already up to date: nothing added
	same := ExtendToToday(extended, now)
	if len(same) != 4 {
		t.Errorf("extending an up-to-date series grew it to %d", len(same))
	}

	if got := ExtendToToday(nil, now); got != nil {
		t.Errorf("extending empty series = %v, want nil", got)
	}
}

func TestGetMonday(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"wednesday", day(2026, 3, 11), day(2026, 3, 9)},
		{"monday is itself", day(2026, 3, 9).Add(15 * time.Hour), day(2026, 3, 9)},
		{"sunday belongs to prior monday", day(2026, 3, 15), day(2026, 3, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getMonday(tt.in); !got.Equal(tt.want) {
				t.Errorf("getMonday(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
