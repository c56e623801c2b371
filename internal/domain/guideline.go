package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the root of the engine's only error category: caller
// mistakes detected synchronously. It always propagates unmodified; the
// engine never substitutes a default elevation or risk level.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidElevation is returned for negative elevation input.
var ErrInvalidElevation = fmt.Errorf("elevation must be non-negative: %w", ErrInvalidInput)

// RiskLevel is the qualitative risk attached to an altitude band or an
// individual risk assessment.
type RiskLevel string

const (
	RiskMinimal  RiskLevel = "minimal"
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
	RiskExtreme  RiskLevel = "extreme"
)

// AltitudeCategory describes one altitude band. FloorMeters is the inclusive
// lower bound; the band extends to the next band's floor (the last band is
// unbounded above).
type AltitudeCategory struct {
	Name             string    `json:"name"`
	FloorMeters      float64   `json:"floor_meters"`
	Risk             RiskLevel `json:"risk"`
	OxygenSaturation string    `json:"oxygen_saturation"`
	Description      string    `json:"description"`
}

// Guideline carries the threshold tables for one guideline revision. Bands are
// ordered by ascending floor, starting at 0, so they partition [0, inf).
type Guideline struct {
	Name string

	Bands []AltitudeCategory

	// VeryHighMeters gates history- and ascent-based escalation to high risk.
	// RapidAscentMeters gates the moderate escalation for rapid ascent below
	// the very-high threshold. ExertionMeters gates the exertion factor.
	VeryHighMeters    float64
	RapidAscentMeters float64
	ExertionMeters    float64

	// MaxDailyAscentMeters is the recommended sleeping-elevation gain per day
	// above the exertion threshold. Guideline revisions disagree on this value
	// (300 vs 500), which is why it is data rather than a constant.
	MaxDailyAscentMeters float64
}

var defaultBands = []AltitudeCategory{
	{
		Name:             "Sea Level to Low Altitude",
		FloorMeters:      0,
		Risk:             RiskMinimal,
		OxygenSaturation: ">95%",
		Description:      "No altitude illness expected; no acclimatization required.",
	},
	{
		Name:             "Intermediate Altitude",
		FloorMeters:      1500,
		Risk:             RiskLow,
		OxygenSaturation: ">90%",
		Description:      "Decreased exercise performance; altitude illness uncommon but possible with rapid ascent.",
	},
	{
		Name:             "High Altitude",
		FloorMeters:      2500,
		Risk:             RiskModerate,
		OxygenSaturation: "85-90%",
		Description:      "AMS common with rapid ascent; acclimatization days recommended.",
	},
	{
		Name:             "Very High Altitude",
		FloorMeters:      3500,
		Risk:             RiskHigh,
		OxygenSaturation: "<90%",
		Description:      "HACE and HAPE territory; staged ascent and rest days are essential.",
	},
	{
		Name:             "Extreme Altitude",
		FloorMeters:      5800,
		Risk:             RiskVeryHigh,
		OxygenSaturation: "<80%",
		Description:      "Progressive physiological deterioration; no permanent human habitation.",
	},
	{
		Name:             "Death Zone",
		FloorMeters:      8000,
		Risk:             RiskExtreme,
		OxygenSaturation: "~55%",
		Description:      "Survival measured in hours to days even with supplemental oxygen.",
	},
}

// Named guideline presets. WMS2024 is the canonical default; the others expose
// the ascent-rate variants found across guideline revisions.
var (
	WMS2024 = Guideline{
		Name:                 "wms-2024",
		Bands:                defaultBands,
		VeryHighMeters:       3500,
		RapidAscentMeters:    2800,
		ExertionMeters:       2500,
		MaxDailyAscentMeters: 500,
	}

	Conservative300 = Guideline{
		Name:                 "conservative-300",
		Bands:                defaultBands,
		VeryHighMeters:       3500,
		RapidAscentMeters:    2800,
		ExertionMeters:       2500,
		MaxDailyAscentMeters: 300,
	}
)

// DefaultGuideline returns the canonical guideline preset.
func DefaultGuideline() Guideline {
	return WMS2024
}

// GuidelineByName resolves a named guideline preset.
func GuidelineByName(name string) (Guideline, error) {
	switch name {
	case "", WMS2024.Name:
		return WMS2024, nil
	case Conservative300.Name:
		return Conservative300, nil
	default:
		return Guideline{}, fmt.Errorf("unknown guideline %q: %w", name, ErrInvalidInput)
	}
}

// ClassifyElevation maps an elevation in meters to its altitude band.
// Every non-negative elevation maps to exactly one band; a boundary value
// belongs to the higher band.
func ClassifyElevation(g Guideline, meters float64) (AltitudeCategory, error) {
	if meters < 0 {
		return AltitudeCategory{}, fmt.Errorf("classify elevation %.1f: %w", meters, ErrInvalidElevation)
	}

	// Bands are ascending by floor, so the last band whose floor is at or
	// below the elevation wins.
	category := g.Bands[0]
	for _, band := range g.Bands[1:] {
		if meters < band.FloorMeters {
			break
		}
		category = band
	}
	return category, nil
}
