package nutrition

import "math"

// Nutrient names a tracked macro.
type Nutrient string

const (
	NutrientCalories      Nutrient = "calories"
	NutrientProteins      Nutrient = "proteins"
	NutrientCarbohydrates Nutrient = "carbohydrates"
	NutrientFat           Nutrient = "fat"
)

// TrackedNutrients is the display order of progress indicators.
var TrackedNutrients = []Nutrient{NutrientCalories, NutrientProteins, NutrientCarbohydrates, NutrientFat}

// Tier is the visual state of a progress indicator.
type Tier string

const (
	TierNormal Tier = "normal"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

const (
	mediumThreshold = 70.0
	highThreshold   = 90.0
)

// Percentage returns round1(100*total/target). A zero, negative or
// non-finite target yields 0 instead of a division fault.
func Percentage(total, target float64) float64 {
	if target <= 0 || math.IsNaN(target) || math.IsInf(target, 0) {
		return 0
	}
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return 0
	}
	return Round1(100 * total / target)
}

// Classify maps a percentage onto its tier.
func Classify(percent float64) Tier {
	switch {
	case percent >= highThreshold:
		return TierHigh
	case percent >= mediumThreshold:
		return TierMedium
	default:
		return TierNormal
	}
}

// NutrientPercentage is one progress indicator.
type NutrientPercentage struct {
	Nutrient Nutrient `json:"nutrient"`
	Current  float64  `json:"current"`
	Target   float64  `json:"target"`
	Percent  float64  `json:"percent"`
	Tier     Tier     `json:"tier"`
	// Progress is Percent capped at 100, the width of a progress bar.
	Progress float64 `json:"progress"`
}

// Percentages computes the indicators of every tracked nutrient.
func Percentages(totals Totals, target Target) []NutrientPercentage {
	out := make([]NutrientPercentage, 0, len(TrackedNutrients))
	for _, n := range TrackedNutrients {
		current := totals.For(n)
		goal := target.For(n)
		pct := Percentage(current, goal)
		out = append(out, NutrientPercentage{
			Nutrient: n,
			Current:  current,
			Target:   goal,
			Percent:  pct,
			Tier:     Classify(pct),
			Progress: math.Min(pct, 100),
		})
	}
	return out
}
