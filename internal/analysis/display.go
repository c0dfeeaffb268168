package analysis

// DisplayBounds are caller-supplied scale endpoints for normalization,
// typically observed historical maxima. The engine never infers them.
type DisplayBounds struct {
	Min float64
	Max float64
}

// PercentOfMax maps a raw metric onto [0, 100] as a percentage of
// bounds.Max, clamped. Used for the CTL/ATL bars. A non-positive Max yields
// 0 rather than a division blow-up.
func PercentOfMax(raw float64, bounds DisplayBounds) float64 {
	if bounds.Max <= 0 {
		return 0
	}
	return clamp(raw/bounds.Max*100, 0, 100)
}

// GaugePercent maps a known A:C ratio onto a [0, 100] gauge position using
// the fixed scale [GaugeMin, GaugeMax]. Out-of-scale ratios clamp to the
// nearest endpoint, so a 3.0 ratio renders pinned at 100 instead of
// overflowing the track. ok is false when the ratio is unknown.
//
// This is a pure scale transform - where the needle sits says nothing about
// what the value means; that's the classifier's job.
func (t Thresholds) GaugePercent(r Ratio) (pct float64, ok bool) {
	if !r.Known {
		return 0, false
	}
	v := clamp(r.Value, t.GaugeMin, t.GaugeMax)
	return (v - t.GaugeMin) / (t.GaugeMax - t.GaugeMin) * 100, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
