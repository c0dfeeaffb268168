package analysis

// Thresholds carries every constant of the training-load model: EMA window
// lengths, band cut points, the overtraining trigger, and the A:C gauge
// scale. Components take it by value and never mutate it, so different
// profiles (e.g. sport-specific cut points) can coexist without
// cross-contamination.
type Thresholds struct {
	// EMA windows, in days
	ChronicDays int
	AcuteDays   int

	// TSB band cut points, high to low. Each value is an exclusive lower
	// bound for the band above it.
	TSBFresh  float64 // tsb > TSBFresh          -> fresh
	TSBReady  float64 // TSBReady < tsb <= Fresh -> ready
	TSBNormal float64 // Normal < tsb <= Ready   -> normal
	TSBTired  float64 // Tired < tsb <= Normal   -> tired; below -> overloaded

	// A:C ratio band cut points
	ACOptimalLow  float64 // ratio < OptimalLow             -> low
	ACOptimalHigh float64 // OptimalLow <= r <= OptimalHigh -> optimal
	ACDanger      float64 // ratio > Danger -> danger; between -> caution

	// Risk rule triggers
	OvertrainingTSB float64 // overtraining finding when tsb < this

	// A:C gauge endpoints for display normalization
	GaugeMin float64
	GaugeMax float64
}

// DefaultThresholds returns the standard model constants: 42/7-day windows
// (Banister impulse-response), Gabbett A:C workload bands, and the
// conventional TSB form bands.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ChronicDays:     42,
		AcuteDays:       7,
		TSBFresh:        25,
		TSBReady:        5,
		TSBNormal:       -10,
		TSBTired:        -25,
		ACOptimalLow:    0.8,
		ACOptimalHigh:   1.3,
		ACDanger:        1.5,
		OvertrainingTSB: -30,
		GaugeMin:        0.5,
		GaugeMax:        2.0,
	}
}
