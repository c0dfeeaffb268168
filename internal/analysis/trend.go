package analysis

import (
	"errors"
	"fmt"
	"time"
)

// ErrSeriesOrder is returned when a load series violates strict date
// ordering. The series is never sorted or deduplicated here - out-of-order
// input means a bug upstream, and repairing it would hide that.
var ErrSeriesOrder = errors.New("load series dates must be strictly increasing")

// LoadSample is one day of training load. Load is a unitless stress score
// (TRIMP here, but the engine doesn't care). Rest days must be present as
// explicit zero-load samples - the EMA needs daily cadence.
type LoadSample struct {
	Date time.Time
	Load float64
}

// Ratio is an acute:chronic workload ratio that may be unknown. The ratio is
// undefined until a chronic base exists (CTL > 0); Known is false in that
// case and Value must not be read.
type Ratio struct {
	Value float64
	Known bool
}

// KnownRatio wraps a defined ratio value.
func KnownRatio(v float64) Ratio {
	return Ratio{Value: v, Known: true}
}

// FitnessState holds the derived indices for one day.
type FitnessState struct {
	Date    time.Time
	CTL     float64 // Chronic Training Load (42-day EMA) - "Fitness"
	ATL     float64 // Acute Training Load (7-day EMA) - "Fatigue"
	TSB     float64 // Training Stress Balance (CTL - ATL) - "Form"
	ACRatio Ratio   // ATL / CTL, unknown while CTL == 0
}

// FitnessTrend computes one FitnessState per sample in the series.
//
// Both EMAs use the time-constant form alpha = 2/(N+1) and are seeded with
// the first sample's load, so a one-day series yields CTL == ATL == load.
// (Seeding with zero instead would bias CTL low for the first several weeks;
// if the caller wants a warm-up ramp they can prepend zero samples.)
//
// An empty series returns nil with no error. A series with non-increasing or
// duplicate dates returns ErrSeriesOrder.
func (t Thresholds) FitnessTrend(samples []LoadSample) ([]FitnessState, error) {
	if len(samples) == 0 {
		return nil, nil
	}
	if err := validateSeries(samples); err != nil {
		return nil, err
	}

	chronicAlpha := 2.0 / (float64(t.ChronicDays) + 1.0)
	acuteAlpha := 2.0 / (float64(t.AcuteDays) + 1.0)

	states := make([]FitnessState, len(samples))
	ctl := samples[0].Load
	atl := samples[0].Load

	for i, s := range samples {
		if i > 0 {
			ctl += chronicAlpha * (s.Load - ctl)
			atl += acuteAlpha * (s.Load - atl)
		}
		states[i] = newFitnessState(s.Date, ctl, atl)
	}

	return states, nil
}

// CurrentFitness returns the final day's state, or ok=false for an empty
// series.
func (t Thresholds) CurrentFitness(samples []LoadSample) (FitnessState, bool, error) {
	states, err := t.FitnessTrend(samples)
	if err != nil {
		return FitnessState{}, false, err
	}
	if len(states) == 0 {
		return FitnessState{}, false, nil
	}
	return states[len(states)-1], true, nil
}

// newFitnessState derives TSB and the A:C ratio from a day's CTL/ATL pair.
// The ratio stays unknown while CTL is zero - substituting 0 or +Inf would
// let downstream classification mistake "no chronic base" for a real signal.
func newFitnessState(date time.Time, ctl, atl float64) FitnessState {
	s := FitnessState{
		Date: date,
		CTL:  ctl,
		ATL:  atl,
		TSB:  ctl - atl,
	}
	if ctl > 0 {
		s.ACRatio = KnownRatio(atl / ctl)
	}
	return s
}

// validateSeries checks strict date monotonicity at day granularity.
func validateSeries(samples []LoadSample) error {
	for i := 1; i < len(samples); i++ {
		prev := samples[i-1].Date
		cur := samples[i].Date
		if !cur.After(prev) {
			return fmt.Errorf("sample %d (%s) not after %s: %w",
				i, cur.Format("2006-01-02"), prev.Format("2006-01-02"), ErrSeriesOrder)
		}
	}
	return nil
}
