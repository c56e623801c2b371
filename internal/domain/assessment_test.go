package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frozenClock(t *testing.T) time.Time {
	t.Helper()
	at := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })
	return at
}

func TestEvaluate_CombinesAllThreeEngines(t *testing.T) {
	at := frozenClock(t)

	in := AssessmentInput{
		ElevationMeters: 4200,
		Profile:         RiskProfile{PreviousAMS: true},
		Symptoms:        SymptomSet{Headache: true, Fatigue: true},
	}

	result, err := Evaluate(DefaultGuideline(), in)
	require.NoError(t, err)

	assert.Equal(t, "wms-2024", result.Guideline)
	assert.Equal(t, "Very High Altitude", result.Category.Name)
	assert.Equal(t, RiskHigh, result.Risk.Level)
	assert.Equal(t, []string{FactorPreviousAMSVeryHigh}, result.Risk.Factors)
	assert.Equal(t, 2, result.Severity.LakeLouiseScore)
	assert.False(t, result.Severity.IsEmergency)
	assert.Equal(t, at, result.EvaluatedAt)
	assert.NotEmpty(t, result.Recommendation)
}

func TestEvaluate_DeterministicID(t *testing.T) {
	frozenClock(t)

	in := AssessmentInput{ElevationMeters: 3000, Symptoms: SymptomSet{Headache: true}}

	first, err := Evaluate(DefaultGuideline(), in)
	require.NoError(t, err)
	second, err := Evaluate(DefaultGuideline(), in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first, second, "identical input yields identical output")

	in.Symptoms.Fatigue = true
	third, err := Evaluate(DefaultGuideline(), in)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestEvaluate_EmergencySupersedesSeverityMessaging(t *testing.T) {
	frozenClock(t)

	in := AssessmentInput{
		ElevationMeters: 4800,
		Symptoms: SymptomSet{
			Headache:  true,
			Nausea:    true,
			Fatigue:   true,
			Dizziness: true,
			Ataxia:    true,
		},
	}

	result, err := Evaluate(DefaultGuideline(), in)
	require.NoError(t, err)

	assert.True(t, result.Severity.IsEmergency)
	assert.Equal(t, 4, result.Severity.LakeLouiseScore, "score is still computed")
	assert.Contains(t, result.Recommendation, "EMERGENCY")
}

func TestEvaluate_HighRiskRecommendationUsesGuidelineAscentRate(t *testing.T) {
	frozenClock(t)

	in := AssessmentInput{
		ElevationMeters: 4000,
		Profile:         RiskProfile{RapidAscent: true},
	}

	wms, err := Evaluate(WMS2024, in)
	require.NoError(t, err)
	assert.Contains(t, wms.Recommendation, "500 m")

	conservative, err := Evaluate(Conservative300, in)
	require.NoError(t, err)
	assert.Contains(t, conservative.Recommendation, "300 m")
}

func TestEvaluate_GradedScale(t *testing.T) {
	frozenClock(t)

	in := AssessmentInput{
		ElevationMeters: 3000,
		Scale:           ScaleGraded,
		Grades:          SymptomGrades{Headache: 3, GastrointestinalUpset: 3, Fatigue: 2},
	}

	result, err := Evaluate(DefaultGuideline(), in)
	require.NoError(t, err)

	assert.Equal(t, 8, result.Severity.LakeLouiseScore)
	assert.Equal(t, Severe, result.Severity.Classification)
}

func TestEvaluate_UnknownScale(t *testing.T) {
	_, err := Evaluate(DefaultGuideline(), AssessmentInput{ElevationMeters: 100, Scale: "clinical"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scale")
}

func TestEvaluate_InvalidElevationPropagates(t *testing.T) {
	_, err := Evaluate(DefaultGuideline(), AssessmentInput{ElevationMeters: -5})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidElevation)
}
