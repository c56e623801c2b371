package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ScaleName selects which Lake Louise scale scores the symptoms.
type ScaleName string

const (
	// ScaleBinary is the default one-point-per-symptom scale, range 0-4.
	ScaleBinary ScaleName = "binary"
	// ScaleGraded is the clinical 0-3-per-symptom instrument, range 0-12.
	// It requires graded symptom input and is never substituted silently.
	ScaleGraded ScaleName = "graded"
)

// AssessmentInput is the full input to one evaluation. Grades must be set when
// Scale is ScaleGraded and is ignored otherwise.
type AssessmentInput struct {
	ElevationMeters float64
	Profile         RiskProfile
	Symptoms        SymptomSet
	Scale           ScaleName
	Grades          SymptomGrades
}

// Assessment combines the three engine outputs for one input. It is a value
// object: created fresh per evaluation, never mutated.
type Assessment struct {
	ID              string           `json:"id"`
	Guideline       string           `json:"guideline"`
	ElevationMeters float64          `json:"elevation_meters"`
	Category        AltitudeCategory `json:"category"`
	Risk            RiskAssessment   `json:"risk"`
	Severity        SeverityScore    `json:"severity"`
	Recommendation  string           `json:"recommendation"`
	EvaluatedAt     time.Time        `json:"evaluated_at"`
}

// Evaluate runs elevation classification, risk-profile evaluation, and symptom
// scoring over one input. The three computations share no state beyond the
// elevation flowing into the first two; any invalid input fails the whole
// evaluation before partial results are assembled.
func Evaluate(g Guideline, in AssessmentInput) (Assessment, error) {
	category, err := ClassifyElevation(g, in.ElevationMeters)
	if err != nil {
		return Assessment{}, err
	}

	risk, err := AssessRisk(g, in.ElevationMeters, in.Profile)
	if err != nil {
		return Assessment{}, err
	}

	var severity SeverityScore
	switch in.Scale {
	case ScaleGraded:
		severity, err = ScoreGradedSymptoms(in.Grades, in.Symptoms)
		if err != nil {
			return Assessment{}, err
		}
	case ScaleBinary, "":
		severity = ScoreSymptoms(in.Symptoms)
	default:
		return Assessment{}, fmt.Errorf("unknown scale %q: %w", in.Scale, ErrInvalidInput)
	}

	return Assessment{
		ID:              generateID(g.Name, in),
		Guideline:       g.Name,
		ElevationMeters: in.ElevationMeters,
		Category:        category,
		Risk:            risk,
		Severity:        severity,
		Recommendation:  recommend(g, risk, severity),
		EvaluatedAt:     clock.Now(),
	}, nil
}

// recommend picks the single recommended action. Emergency takes precedence
// over AMS severity, which takes precedence over profile-based advice.
func recommend(g Guideline, risk RiskAssessment, severity SeverityScore) string {
	if severity.IsEmergency {
		return "EMERGENCY: descend at least 1000 m immediately, administer oxygen if available, and seek urgent medical care."
	}

	switch severity.Classification {
	case Severe:
		return "Severe AMS: stop ascending, descend to the last elevation without symptoms, and seek medical attention."
	case MildModerate:
		return "AMS symptoms present: halt the ascent and rest at the current elevation for 24-48 hours until symptoms resolve."
	}

	switch risk.Level {
	case RiskHigh:
		return fmt.Sprintf("High risk: plan a staged ascent gaining no more than %.0f m of sleeping elevation per day, and consider acetazolamide prophylaxis.", g.MaxDailyAscentMeters)
	case RiskModerate:
		return fmt.Sprintf("Moderate risk: ascend gradually (under %.0f m per day above %.0f m) and monitor for symptoms.", g.MaxDailyAscentMeters, g.ExertionMeters)
	default:
		return "Low risk: no special precautions beyond standard hydration and gradual ascent."
	}
}

// generateID produces a deterministic ID from the guideline name and the full
// input. Identical inputs yield identical IDs, so replayed audit messages are
// deduplicable downstream.
func generateID(guideline string, in AssessmentInput) string {
	input := fmt.Sprintf("%s|%g|%v|%v|%s|%v", guideline, in.ElevationMeters, in.Profile, in.Symptoms, in.Scale, in.Grades)
	hash := sha256.Sum256([]byte(input))
	return "asmt-" + hex.EncodeToString(hash[:8])
}
