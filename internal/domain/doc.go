// Package domain implements altitude-illness risk classification.
//
// # Altitude bands
//
// Elevations partition into six contiguous half-open bands, [floor, next floor),
// with the last band unbounded above. A boundary elevation belongs to the higher
// band: exactly 2500 m is High Altitude, not Intermediate.
//
//	[0, 1500)     Sea Level to Low Altitude   minimal    SpO2 >95%
//	[1500, 2500)  Intermediate Altitude       low        SpO2 >90%
//	[2500, 3500)  High Altitude               moderate   SpO2 85-90%
//	[3500, 5800)  Very High Altitude          high       SpO2 <90%
//	[5800, 8000)  Extreme Altitude            very_high  SpO2 <80%
//	[8000, inf)   Death Zone                  extreme    SpO2 ~55%
//
// Band floors and the ascent-related thresholds (2500 m exertion, 2800 m rapid
// ascent, 3500 m very high altitude) are carried on a [Guideline] value rather
// than hard-coded, so a guideline revision can be swapped without code changes.
// [GuidelineByName] resolves the named presets; "wms-2024" is the default.
//
// # Risk profile evaluation
//
// [AssessRisk] combines elevation with six history/behavior flags. Evaluation
// order matters: prior HACE or HAPE forces a high level first, then prior AMS,
// then the ascent-profile checks. Later steps inspect the current level before
// escalating, and the level never downgrades within one evaluation. Factor
// strings are appended in evaluation order.
//
// # Lake Louise scoring
//
// [ScoreSymptoms] computes a binary Lake Louise score: one point each for
// headache, gastrointestinal upset (nausea or anorexia), fatigue, and dizziness,
// range 0-4. The classification thresholds (<=2, 3-5, >=6) come from the
// clinical 0-12 instrument, which grades each symptom 0-3; on the binary scale
// the severe branch is unreachable. [ScoreGradedSymptoms] implements the full
// 0-3-per-symptom instrument for callers that collect graded input.
//
// The emergency flag is independent of the score: any cerebral symptom, two or
// more pulmonary symptoms, dyspnea at rest, or a productive cough marks an
// emergency, and emergency messaging supersedes AMS-severity messaging.
//
// # ID generation
//
// Assessment IDs are deterministic SHA-256 hashes of the guideline name and the
// full input. Identical inputs produce identical IDs, which makes downstream
// audit publishing replay-safe. See [generateID].
package domain
