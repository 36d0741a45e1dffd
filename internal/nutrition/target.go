// Package nutrition computes daily targets, totals and progress percentages
// for a user's journal.
package nutrition

import (
	"context"

	"nutritrack/internal/domain"
)

// AgeGroup labels an age bucket of the recommendation table.
type AgeGroup string

const (
	AgeGroup18To40 AgeGroup = "18-40"
	AgeGroup41To60 AgeGroup = "41-60"
	AgeGroup61Plus AgeGroup = "61+"
)

// AgeGroups lists the buckets in ascending order.
var AgeGroups = []AgeGroup{AgeGroup18To40, AgeGroup41To60, AgeGroup61Plus}

// AgeGroupFor maps an age onto its bucket. Upper bounds are inclusive and
// ages below the adult range share the youngest bucket.
func AgeGroupFor(age int) AgeGroup {
	switch {
	case age <= 40:
		return AgeGroup18To40
	case age <= 60:
		return AgeGroup41To60
	default:
		return AgeGroup61Plus
	}
}

// Intake holds daily amounts: kcal for calories, grams for the rest.
type Intake struct {
	Calories      float64 `json:"calories"`
	Proteins      float64 `json:"proteins"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	Salt          float64 `json:"salt"`
}

// Target is the recommended intake for a profile.
type Target struct {
	Intake
	AgeGroup AgeGroup   `json:"age_group"`
	Sex      domain.Sex `json:"sex"`
}

// For returns the target amount of a tracked nutrient.
func (t Target) For(n Nutrient) float64 {
	switch n {
	case NutrientCalories:
		return t.Calories
	case NutrientProteins:
		return t.Proteins
	case NutrientCarbohydrates:
		return t.Carbohydrates
	case NutrientFat:
		return t.Fat
	}
	return 0
}

// TargetProvider resolves the daily target of a profile. Implementations may
// evaluate a local table or defer to a remote service.
type TargetProvider interface {
	Targets(ctx context.Context, p domain.Profile) (Target, error)
}
