package nutrition

import (
	"time"

	"nutritrack/internal/domain"
)

// DateLayout is the calendar day format used on the wire.
const DateLayout = "2006-01-02"

// Summary is the daily view: totals, targets and progress.
type Summary struct {
	Summary         Totals               `json:"summary"`
	Recommendations Target               `json:"recommendations"`
	Percentages     map[Nutrient]float64 `json:"percentages"`
	Indicators      []NutrientPercentage `json:"indicators"`
	UserProfile     domain.Profile       `json:"user_profile"`
}

// Summarize combines a day of entries with the profile's target.
func Summarize(profile domain.Profile, target Target, entries []domain.Entry, day time.Time) Summary {
	totals := Aggregate(entries)
	totals.Date = day.Format(DateLayout)
	indicators := Percentages(totals, target)
	byNutrient := make(map[Nutrient]float64, len(indicators))
	for _, ind := range indicators {
		byNutrient[ind.Nutrient] = ind.Percent
	}
	return Summary{
		Summary:         totals,
		Recommendations: target,
		Percentages:     byNutrient,
		Indicators:      indicators,
		UserProfile:     profile,
	}
}
