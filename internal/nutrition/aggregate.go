package nutrition

import (
	"math"

	"github.com/shopspring/decimal"

	"nutritrack/internal/domain"
)

// Totals sums a day of journal entries.
type Totals struct {
	Date          string  `json:"date,omitempty"`
	TotalKcal     float64 `json:"total_kcal"`
	TotalProteins float64 `json:"total_proteins"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
	NumProducts   int     `json:"num_products"`
}

// For returns the total of a tracked nutrient.
func (t Totals) For(n Nutrient) float64 {
	switch n {
	case NutrientCalories:
		return t.TotalKcal
	case NutrientProteins:
		return t.TotalProteins
	case NutrientCarbohydrates:
		return t.TotalCarbs
	case NutrientFat:
		return t.TotalFat
	}
	return 0
}

// Aggregate sums per-100g values scaled by the eaten quantity. Missing or
// malformed values contribute nothing. Sums are exact decimals, so the result
// does not depend on the order of entries.
func Aggregate(entries []domain.Entry) Totals {
	var kcal, proteins, carbs, fat decimal.Decimal
	for _, e := range entries {
		kcal = kcal.Add(contribution(e.EnergyKcal100g, e.Quantity))
		proteins = proteins.Add(contribution(e.Proteins100g, e.Quantity))
		carbs = carbs.Add(contribution(e.Carbohydrates100g, e.Quantity))
		fat = fat.Add(contribution(e.Fat100g, e.Quantity))
	}
	return Totals{
		TotalKcal:     roundDecimal(kcal),
		TotalProteins: roundDecimal(proteins),
		TotalCarbs:    roundDecimal(carbs),
		TotalFat:      roundDecimal(fat),
		NumProducts:   len(entries),
	}
}

func contribution(per100g *float64, quantity float64) decimal.Decimal {
	if per100g == nil || !usable(*per100g) || !usable(quantity) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*per100g).Mul(decimal.NewFromFloat(quantity)).Shift(-2)
}

func usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func roundDecimal(d decimal.Decimal) float64 {
	return d.Round(1).InexactFloat64()
}

// Round1 rounds half away from zero to one decimal place. Non-finite input
// yields 0.
func Round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return roundDecimal(decimal.NewFromFloat(v))
}
