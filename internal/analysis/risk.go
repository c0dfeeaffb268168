package analysis

import "fmt"

// Severity indicates how urgent a risk finding is.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityCritical
)

// RiskFinding is one human-readable warning produced by AnalyzeRisk.
// Findings are recomputed from state on every call, never persisted.
type RiskFinding struct {
	Severity Severity
	Message  string
}

// AnalyzeRisk evaluates a day's fitness state against the risk rules and
// returns zero or more findings in fixed rule order. Rules fire
// independently - a hard spike after deep fatigue can produce several at
// once. An empty result is the healthy case, not an error.
//
// Pure function of its input: the same state always yields the same
// findings.
func (t Thresholds) AnalyzeRisk(s FitnessState) []RiskFinding {
	var findings []RiskFinding

	if s.TSB < t.OvertrainingTSB {
		findings = append(findings, RiskFinding{
			Severity: SeverityCritical,
			Message:  "Training stress balance is deeply negative - high overtraining risk, back off now",
		})
	}

	if s.ACRatio.Known && s.ACRatio.Value > t.ACDanger {
		findings = append(findings, RiskFinding{
			Severity: SeverityCritical,
			Message: fmt.Sprintf("Acute load is %.2fx chronic load - ramping too fast, elevated injury risk",
				s.ACRatio.Value),
		})
	}

	if s.ACRatio.Known && s.ACRatio.Value < t.ACOptimalLow {
		findings = append(findings, RiskFinding{
			Severity: SeverityWarning,
			Message:  "Acute load well below chronic load - fitness is eroding, consider adding volume",
		})
	}

	return findings
}
