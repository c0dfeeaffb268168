package analysis

import "math"

// HRZones represents athlete's heart rate bounds for impulse calculations
type HRZones struct {
	RestingHR float64
	MaxHR     float64
}

// DefaultZones returns sensible defaults if not configured
func DefaultZones() HRZones {
	return HRZones{
		RestingHR: 50,
		MaxHR:     185,
	}
}

// NewHRZones builds zones from config values, falling back to defaults for
// anything unset.
func NewHRZones(restingHR, maxHR float64) HRZones {
	z := DefaultZones()
	if restingHR > 0 {
		z.RestingHR = restingHR
	}
	if maxHR > 0 {
		z.MaxHR = maxHR
	}
	return z
}

// TRIMP calculates Training Impulse (Banister model) from an activity's
// moving time and average heart rate:
// TRIMP = duration (min) * ΔHR ratio * e^(b * ΔHR ratio), b = 1.92 (male
// coefficient). Returns 0 when HR data or the HR reserve is missing - an
// activity without a load signal contributes nothing rather than garbage.
func TRIMP(movingTimeSec int, avgHR *float64, zones HRZones) float64 {
	if avgHR == nil || *avgHR == 0 {
		return 0
	}

	hrReserve := zones.MaxHR - zones.RestingHR
	if hrReserve <= 0 {
		return 0
	}

	hrRatio := (*avgHR - zones.RestingHR) / hrReserve
	if hrRatio < 0 {
		hrRatio = 0
	}
	if hrRatio > 1 {
		hrRatio = 1
	}

	duration := float64(movingTimeSec) / 60.0
	b := 1.92

	return duration * hrRatio * math.Exp(b*hrRatio)
}

// HRSS calculates Heart Rate Stress Score: TRIMP normalized so that a
// 1-hour threshold effort scores ~100.
func HRSS(movingTimeSec int, avgHR *float64, zones HRZones) float64 {
	trimp := TRIMP(movingTimeSec, avgHR, zones)

	// ~100 TRIMP for 1 hour at lactate threshold
	thresholdTRIMP := 100.0

	return (trimp / thresholdTRIMP) * 100
}
