package analysis

// TSBBand is a readiness/fatigue band derived from Training Stress Balance.
// Bands partition the whole real line: every TSB value maps to exactly one.
type TSBBand string

const (
	TSBUnknown    TSBBand = "unknown" // no fitness state computed yet
	TSBFresh      TSBBand = "fresh"
	TSBReady      TSBBand = "ready"
	TSBNormal     TSBBand = "normal"
	TSBTired      TSBBand = "tired"
	TSBOverloaded TSBBand = "overloaded"
)

// Label returns the human description shown in the UI.
func (b TSBBand) Label() string {
	switch b {
	case TSBFresh:
		return "Very fresh (possibly detrained)"
	case TSBReady:
		return "Fresh and ready to race"
	case TSBNormal:
		return "Neutral - good for training"
	case TSBTired:
		return "Tired but building fitness"
	case TSBOverloaded:
		return "Very fatigued - rest needed"
	default:
		return "Not enough data"
	}
}

// ClassifyTSB maps a known TSB value to its band. Bounds are lower-exclusive:
// exactly 25 is ready, anything above is fresh.
func (t Thresholds) ClassifyTSB(tsb float64) TSBBand {
	switch {
	case tsb > t.TSBFresh:
		return TSBFresh
	case tsb > t.TSBReady:
		return TSBReady
	case tsb > t.TSBNormal:
		return TSBNormal
	case tsb > t.TSBTired:
		return TSBTired
	default:
		return TSBOverloaded
	}
}

// ClassifyTSBState classifies a possibly-absent day. TSB itself is defined
// for every computed day, so nil (no data yet) is the only unknown case.
func (t Thresholds) ClassifyTSBState(s *FitnessState) TSBBand {
	if s == nil {
		return TSBUnknown
	}
	return t.ClassifyTSB(s.TSB)
}

// ACBand is an injury-risk band derived from the acute:chronic workload
// ratio (Gabbett).
type ACBand string

const (
	ACUnknown ACBand = "unknown" // ratio undefined (no chronic base)
	ACOptimal ACBand = "optimal"
	ACCaution ACBand = "caution"
	ACDanger  ACBand = "danger"
	ACLow     ACBand = "low"
)

// Label returns the human description shown in the UI.
func (b ACBand) Label() string {
	switch b {
	case ACOptimal:
		return "Load well balanced"
	case ACCaution:
		return "Load ramping quickly"
	case ACDanger:
		return "Load spike - injury risk"
	case ACLow:
		return "Detraining territory"
	default:
		return "Not enough data"
	}
}

// ClassifyAC maps a ratio to its band. Both optimal bounds are inclusive:
// exactly 0.8 and exactly 1.3 are optimal, 1.5 is still caution.
func (t Thresholds) ClassifyAC(r Ratio) ACBand {
	switch {
	case !r.Known:
		return ACUnknown
	case r.Value >= t.ACOptimalLow && r.Value <= t.ACOptimalHigh:
		return ACOptimal
	case r.Value > t.ACDanger:
		return ACDanger
	case r.Value > t.ACOptimalHigh:
		return ACCaution
	default:
		return ACLow
	}
}
