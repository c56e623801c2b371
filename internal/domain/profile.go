package domain

import "fmt"

// RiskProfile holds the caller-supplied history and behavior flags. It is
// immutable input to AssessRisk.
type RiskProfile struct {
	PreviousAMS       bool `json:"previous_ams"`
	PreviousHACE      bool `json:"previous_hace"`
	PreviousHAPE      bool `json:"previous_hape"`
	RapidAscent       bool `json:"rapid_ascent"`
	NoAcclimatization bool `json:"no_acclimatization"`
	PlannedExertion   bool `json:"planned_exertion"`
}

// RiskAssessment is the result of evaluating a profile at an elevation.
// Factors are ordered by evaluation order and may be empty only when the level
// is low and no flags are set.
type RiskAssessment struct {
	Level   RiskLevel `json:"level"`
	Factors []string  `json:"factors"`
}

// Risk factor strings, appended in evaluation order.
const (
	FactorPreviousHACE        = "Previous HACE episode, very high recurrence risk"
	FactorPreviousHAPE        = "Previous HAPE episode, very high recurrence risk"
	FactorPreviousAMSVeryHigh = "Previous AMS with ascent to very high altitude"
	FactorPreviousAMS         = "Previous AMS history"
	FactorRapidAscentVeryHigh = "Rapid ascent to very high altitude without acclimatization"
	FactorRapidAscentHigh     = "Rapid ascent to high altitude"
	FactorPlannedExertion     = "Strenuous activity planned, increases risk"
)

// AssessRisk combines elevation with a risk profile into an overall level and
// an ordered list of contributing factors.
//
// History checks run first: prior HACE or HAPE forces a high level; otherwise
// prior AMS escalates to high at or above the very-high threshold and to
// moderate below it. The ascent-profile check then escalates independently,
// and the exertion check appends a factor without changing the level. The
// level only ever escalates within one evaluation; the guards on the current
// level below are what keep history-based escalation authoritative.
func AssessRisk(g Guideline, meters float64, p RiskProfile) (RiskAssessment, error) {
	if meters < 0 {
		return RiskAssessment{}, fmt.Errorf("assess risk at %.1f: %w", meters, ErrInvalidElevation)
	}

	level := RiskLow
	factors := []string{}

	if p.PreviousHACE || p.PreviousHAPE {
		level = RiskHigh
		if p.PreviousHACE {
			factors = append(factors, FactorPreviousHACE)
		}
		if p.PreviousHAPE {
			factors = append(factors, FactorPreviousHAPE)
		}
	} else if p.PreviousAMS {
		if meters >= g.VeryHighMeters {
			level = RiskHigh
			factors = append(factors, FactorPreviousAMSVeryHigh)
		} else {
			level = RiskModerate
			factors = append(factors, FactorPreviousAMS)
		}
	}

	if meters >= g.VeryHighMeters && (p.RapidAscent || p.NoAcclimatization) {
		level = RiskHigh
		factors = append(factors, FactorRapidAscentVeryHigh)
	} else if meters >= g.RapidAscentMeters && meters < g.VeryHighMeters && p.RapidAscent && level == RiskLow {
		level = RiskModerate
		factors = append(factors, FactorRapidAscentHigh)
	}

	if p.PlannedExertion && meters >= g.ExertionMeters {
		factors = append(factors, FactorPlannedExertion)
	}

	return RiskAssessment{Level: level, Factors: factors}, nil
}
