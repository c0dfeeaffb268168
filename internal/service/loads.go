package service

import (
	"time"

	"runload/internal/analysis"
	"runload/internal/store"
)

// BuildDailySeries turns per-day load rows into a contiguous daily
// series suitable for the trend model: days with no training become
// zero-load samples, and same-day rows are assumed pre-summed by the
// store. Output dates are midnight UTC and strictly increasing.
func BuildDailySeries(loads []store.DailyLoad) []analysis.LoadSample {
	if len(loads) == 0 {
		return nil
	}

	byDay := make(map[time.Time]float64, len(loads))
	first := normalizeDay(loads[0].Date)
	last := first
	for _, dl := range loads {
		day := normalizeDay(dl.Date)
		byDay[day] += dl.TRIMP
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}

	var samples []analysis.LoadSample
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		samples = append(samples, analysis.LoadSample{
			Date: day,
			Load: byDay[day],
		})
	}
	return samples
}

// ExtendToToday pads the series with zero-load days up to (and
// including) today, so rest days since the last activity count
// against acute load.
func ExtendToToday(samples []analysis.LoadSample, now time.Time) []analysis.LoadSample {
	if len(samples) == 0 {
		return samples
	}
	today := normalizeDay(now)
	for day := samples[len(samples)-1].Date.AddDate(0, 0, 1); !day.After(today); day = day.AddDate(0, 0, 1) {
		samples = append(samples, analysis.LoadSample{Date: day})
	}
	return samples
}

func normalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
