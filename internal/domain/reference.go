package domain

import "strings"

// Condition is a static reference record for one altitude illness.
type Condition struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Symptoms             []string `json:"symptoms"`
	AffectedAltitude     string   `json:"affected_altitude"`
	Onset                string   `json:"onset"`
	RiskFactors          []string `json:"risk_factors"`
	PreventionGuidelines []string `json:"prevention_guidelines"`
	TreatmentGuidelines  []string `json:"treatment_guidelines"`
	AdditionalInfo       string   `json:"additional_info"`
}

// ConditionSummary is the compact form returned by search.
type ConditionSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var conditions = []Condition{
	{
		ID:          "acute_mountain_sickness",
		Name:        "Acute Mountain Sickness (AMS)",
		Description: "Acute Mountain Sickness is a pathological effect of high altitude on humans.",
		Symptoms: []string{
			"Headache",
			"Fatigue and weakness",
			"Dizziness",
			"Nausea and vomiting",
			"Shortness of breath",
			"Difficulty sleeping",
			"Loss of appetite",
		},
		AffectedAltitude: "2,500 meters (8,200 feet) and above",
		Onset:            "Usually 6-10 hours after reaching high altitude",
		RiskFactors: []string{
			"Rapid ascent",
			"Individual susceptibility",
			"Previous history of AMS",
			"Strenuous physical activity",
			"Dehydration",
			"Alcohol consumption",
		},
		PreventionGuidelines: []string{
			"Ascend gradually - allow 2-3 days for acclimatization at intermediate altitudes",
			"Stay hydrated - drink 3-4 liters of water daily",
			"Avoid alcohol and smoking for at least 48 hours",
			"Eat light, carbohydrate-rich foods",
			"Get adequate rest and sleep",
			"Consider prophylactic medication (Acetazolamide) if rapidly ascending",
			"Avoid overexertion on the first day at altitude",
			"Monitor yourself for symptoms regularly",
		},
		TreatmentGuidelines: []string{
			"Descend to lower altitude immediately if symptoms worsen",
			"Rest at current altitude for acclimatization (usually 24-48 hours)",
			"Take over-the-counter pain relievers for headache (ibuprofen or acetaminophen)",
			"Stay hydrated with electrolyte solutions",
			"Use prescribed medications (Acetazolamide, Dexamethasone) as directed",
			"Increase oxygen intake or use supplemental oxygen if available",
			"Seek medical attention if symptoms persist beyond 48 hours",
			"Do not continue ascending until symptoms resolve",
		},
		AdditionalInfo: "AMS typically resolves within 1-3 days with proper acclimatization. Most people experience only mild symptoms that do not require medical intervention.",
	},
	{
		ID:          "high_altitude_cerebral_edema",
		Name:        "High Altitude Cerebral Edema (HACE)",
		Description: "A severe form of altitude sickness characterized by brain swelling and fluid accumulation.",
		Symptoms: []string{
			"Severe headache",
			"Ataxia (loss of coordination)",
			"Confusion and disorientation",
			"Difficulty walking",
			"Altered consciousness",
			"Hallucinations",
			"Coma (in severe cases)",
		},
		AffectedAltitude: "3,500 meters (11,500 feet) and above",
		Onset:            "Can develop within 1-3 days of rapid ascent",
		RiskFactors: []string{
			"Unacclimatized rapid ascent",
			"Untreated severe AMS",
			"High altitude exposure for extended periods",
			"Individual susceptibility",
			"Extreme physical exertion",
			"Dehydration",
		},
		PreventionGuidelines: []string{
			"Follow strict acclimatization schedules",
			"Maintain excellent hydration (minimum 3-4 liters daily)",
			"Use prophylactic medications at high altitudes",
			"Avoid alcohol and sleeping medications",
			"Monitor for AMS symptoms constantly",
			"Consider avoiding extreme altitudes if not properly acclimatized",
			"Ensure proper nutrition and regular meals",
			"Sleep at lower altitudes when possible",
		},
		TreatmentGuidelines: []string{
			"IMMEDIATE DESCENT IS CRITICAL - descend at least 1,000 meters (3,300 feet)",
			"Administer supplemental oxygen immediately",
			"Use dexamethasone as a temporary measure (4mg every 6 hours)",
			"Seek emergency medical care urgently",
			"Maintain airway and monitor breathing",
			"Keep patient warm and monitor vital signs",
			"Avoid further exertion",
			"Transport to medical facility capable of ICU care",
		},
		AdditionalInfo: "HACE is a medical emergency. Mortality rates increase significantly without prompt treatment. Immediate descent and medical intervention are life-saving measures.",
	},
	{
		ID:          "high_altitude_pulmonary_edema",
		Name:        "High Altitude Pulmonary Edema (HAPE)",
		Description: "A potentially fatal condition where fluid accumulates in the lungs at high altitude.",
		Symptoms: []string{
			"Shortness of breath at rest",
			"Chest tightness",
			"Persistent cough (may produce frothy sputum)",
			"Wheezing or crackling sounds in lungs",
			"Blue lips or fingernails (cyanosis)",
			"Extreme fatigue",
			"Rapid heart rate",
			"Fever",
		},
		AffectedAltitude: "2,500 meters (8,200 feet) and above",
		Onset:            "2-3 days after arriving at altitude (can be faster with rapid ascent)",
		RiskFactors: []string{
			"Individual susceptibility (highly variable)",
			"Rapid ascent without acclimatization",
			"Strenuous physical exertion",
			"Cold exposure",
			"Dehydration",
			"Previous HAPE episodes",
			"Male gender (slightly higher risk)",
			"Pre-existing lung or heart conditions",
		},
		PreventionGuidelines: []string{
			"Gradual acclimatization over several days",
			"Avoid strenuous exercise for first 2-3 days",
			"Maintain strict hydration protocols",
			"Use nifedipine prophylactically if at high risk (history of HAPE)",
			"Stay warm - hypothermia increases risk",
			"Monitor respiratory rate and symptoms",
			"Sleep at lower altitudes initially",
			"Avoid alcohol and sedative medications",
		},
		TreatmentGuidelines: []string{
			"IMMEDIATE DESCENT IS CRITICAL - descend minimum 1,000 meters (3,300 feet)",
			"Administer high-flow supplemental oxygen (6-8 liters/minute)",
			"Maintain upright sitting position for easier breathing",
			"Use nifedipine to lower pulmonary artery pressure",
			"Give diuretics (furosemide) to reduce fluid overload",
			"Keep patient warm and minimize exertion",
			"Monitor oxygen saturation continuously",
			"Arrange immediate evacuation to medical facility",
			"Consider portable hyperbaric chamber (Gamow bag) as temporary measure",
		},
		AdditionalInfo: "HAPE requires immediate medical attention. With proper treatment, prognosis is generally good. Prevention through gradual acclimatization is the most effective strategy.",
	},
}

// Conditions returns all reference conditions in stable order.
func Conditions() []Condition {
	return conditions
}

// ConditionByID looks up a condition by its identifier.
func ConditionByID(id string) (Condition, bool) {
	for _, c := range conditions {
		if c.ID == id {
			return c, true
		}
	}
	return Condition{}, false
}

// SearchConditions matches a query case-insensitively against condition names,
// symptoms, and descriptions, in that order of precedence per condition.
func SearchConditions(query string) []ConditionSummary {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	results := []ConditionSummary{}
	for _, c := range conditions {
		if strings.Contains(strings.ToLower(c.Name), query) ||
			anyContains(c.Symptoms, query) ||
			strings.Contains(strings.ToLower(c.Description), query) {
			results = append(results, ConditionSummary{ID: c.ID, Name: c.Name})
		}
	}
	return results
}

func anyContains(items []string, query string) bool {
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), query) {
			return true
		}
	}
	return false
}
