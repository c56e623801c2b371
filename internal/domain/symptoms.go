package domain

import "fmt"

// SymptomSet holds the caller-supplied symptom flags. Group membership
// (basic, pulmonary, cerebral) is fixed domain knowledge.
type SymptomSet struct {
	// Basic AMS symptoms.
	Headache  bool `json:"headache"`
	Nausea    bool `json:"nausea"`
	Fatigue   bool `json:"fatigue"`
	Dizziness bool `json:"dizziness"`
	Anorexia  bool `json:"anorexia"`

	// Pulmonary symptoms (HAPE indicators).
	DyspneaOnExertion bool `json:"dyspnea_on_exertion"`
	DyspneaAtRest     bool `json:"dyspnea_at_rest"`
	DryCough          bool `json:"dry_cough"`
	ProductiveCough   bool `json:"productive_cough"`
	ChestTightness    bool `json:"chest_tightness"`

	// Cerebral danger signs (HACE indicators).
	Ataxia              bool `json:"ataxia"`
	AlteredMentalStatus bool `json:"altered_mental_status"`
	SevereLassitude     bool `json:"severe_lassitude"`
	Cyanosis            bool `json:"cyanosis"`
}

func (s SymptomSet) pulmonaryCount() int {
	n := 0
	for _, v := range []bool{s.DyspneaOnExertion, s.DyspneaAtRest, s.DryCough, s.ProductiveCough, s.ChestTightness} {
		if v {
			n++
		}
	}
	return n
}

func (s SymptomSet) cerebralCount() int {
	n := 0
	for _, v := range []bool{s.Ataxia, s.AlteredMentalStatus, s.SevereLassitude, s.Cyanosis} {
		if v {
			n++
		}
	}
	return n
}

// AMSClassification is the three-way Lake Louise severity classification.
type AMSClassification string

const (
	NoAMS        AMSClassification = "no_ams"
	MildModerate AMSClassification = "mild_moderate"
	Severe       AMSClassification = "severe"
)

// SeverityScore is the result of symptom scoring.
type SeverityScore struct {
	LakeLouiseScore int               `json:"lake_louise_score"`
	Classification  AMSClassification `json:"classification"`
	IsEmergency     bool              `json:"is_emergency"`
}

// ScoreSymptoms computes the binary Lake Louise score: one point each for
// headache, gastrointestinal upset (nausea or anorexia), fatigue, and
// dizziness, range 0-4.
//
// The emergency flag is a logical OR independent of the score: any cerebral
// symptom, two or more pulmonary symptoms, dyspnea at rest, or a productive
// cough.
func ScoreSymptoms(s SymptomSet) SeverityScore {
	score := 0
	if s.Headache {
		score++
	}
	if s.Nausea || s.Anorexia {
		score++
	}
	if s.Fatigue {
		score++
	}
	if s.Dizziness {
		score++
	}

	return SeverityScore{
		LakeLouiseScore: score,
		Classification:  classifyLakeLouise(score),
		IsEmergency:     s.cerebralCount() > 0 || s.pulmonaryCount() >= 2 || s.DyspneaAtRest || s.ProductiveCough,
	}
}

// classifyLakeLouise applies the clinical instrument's thresholds. They assume
// the 0-12 graded scale, so on the binary 0-4 scale the severe branch is
// unreachable and mild_moderate only via scores 3-4. Kept verbatim rather than
// rescaled; see ScoreGradedSymptoms for the scale where all branches apply.
func classifyLakeLouise(score int) AMSClassification {
	switch {
	case score <= 2:
		return NoAMS
	case score <= 5:
		return MildModerate
	default:
		return Severe
	}
}

// SymptomGrades holds 0-3 severity grades for the four Lake Louise symptoms,
// the input form of the clinical 0-12 instrument.
type SymptomGrades struct {
	Headache              int `json:"headache"`
	GastrointestinalUpset int `json:"gastrointestinal_upset"`
	Fatigue               int `json:"fatigue"`
	Dizziness             int `json:"dizziness"`
}

// ScoreGradedSymptoms computes the clinical 0-12 Lake Louise score from graded
// symptom input. The emergency flag still comes from the boolean symptom set,
// since the danger signs are not part of the graded instrument. Grades outside
// 0-3 are a caller error.
func ScoreGradedSymptoms(grades SymptomGrades, s SymptomSet) (SeverityScore, error) {
	sum := 0
	for _, grade := range []int{grades.Headache, grades.GastrointestinalUpset, grades.Fatigue, grades.Dizziness} {
		if grade < 0 || grade > 3 {
			return SeverityScore{}, fmt.Errorf("symptom grade %d out of range 0-3: %w", grade, ErrInvalidInput)
		}
		sum += grade
	}

	return SeverityScore{
		LakeLouiseScore: sum,
		Classification:  classifyLakeLouise(sum),
		IsEmergency:     s.cerebralCount() > 0 || s.pulmonaryCount() >= 2 || s.DyspneaAtRest || s.ProductiveCough,
	}, nil
}
