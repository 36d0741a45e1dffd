package nutrition

import (
	"math"
	"testing"
	"time"

	"nutritrack/internal/domain"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name          string
		total, target float64
		want          float64
	}{
		{name: "regular", total: 1900, target: 2000, want: 95},
		{name: "rounded to one decimal", total: 1, target: 3, want: 33.3},
		{name: "above target", total: 3000, target: 2000, want: 150},
		{name: "zero target", total: 1900, target: 0, want: 0},
		{name: "negative target", total: 1900, target: -5, want: 0},
		{name: "nan target", total: 1900, target: math.NaN(), want: 0},
		{name: "infinite target", total: 1900, target: math.Inf(1), want: 0},
		{name: "nan total", total: math.NaN(), target: 2000, want: 0},
		{name: "negative total", total: -20, target: 2000, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Percentage(tc.total, tc.target); got != tc.want {
				t.Fatalf("Percentage(%v, %v) = %v, want %v", tc.total, tc.target, got, tc.want)
			}
		})
	}
}

func TestPercentageZeroTargetNeverFaults(t *testing.T) {
	for _, x := range []float64{0, 1, 1e9, -1, math.MaxFloat64, math.SmallestNonzeroFloat64} {
		if got := Percentage(x, 0); got != 0 {
			t.Fatalf("Percentage(%v, 0) = %v, want 0", x, got)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		percent float64
		want    Tier
	}{
		{percent: 0, want: TierNormal},
		{percent: 69.9, want: TierNormal},
		{percent: 70, want: TierMedium},
		{percent: 89.9, want: TierMedium},
		{percent: 90, want: TierHigh},
		{percent: 95, want: TierHigh},
		{percent: 240, want: TierHigh},
	}
	for _, tc := range tests {
		if got := Classify(tc.percent); got != tc.want {
			t.Fatalf("Classify(%v) = %q, want %q", tc.percent, got, tc.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	policy, _ := NewTablePolicy(nil)
	profile := domain.Profile{Age: 45, Sex: domain.SexFemale}
	target := policy.Recommend(profile)
	entries := []domain.Entry{
		{EnergyKcal100g: ptr(200), Proteins100g: ptr(10), Quantity: 150},
		{EnergyKcal100g: nil, Quantity: 50},
	}
	day := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	got := Summarize(profile, target, entries, day)

	if got.Summary.Date != "2026-10-19" {
		t.Fatalf("Date = %q", got.Summary.Date)
	}
	if got.Summary.TotalKcal != 300 || got.Summary.NumProducts != 2 {
		t.Fatalf("unexpected totals: %+v", got.Summary)
	}
	if got.Percentages[NutrientCalories] != 15.8 {
		t.Fatalf("calories percent = %v, want 15.8", got.Percentages[NutrientCalories])
	}
	if got.Percentages[NutrientProteins] != 27.3 {
		t.Fatalf("proteins percent = %v, want 27.3", got.Percentages[NutrientProteins])
	}
	if len(got.Indicators) != len(TrackedNutrients) {
		t.Fatalf("indicators = %d, want %d", len(got.Indicators), len(TrackedNutrients))
	}
	if got.Indicators[0].Nutrient != NutrientCalories || got.Indicators[0].Target != 1900 {
		t.Fatalf("unexpected first indicator: %+v", got.Indicators[0])
	}
	if got.UserProfile != profile {
		t.Fatalf("UserProfile = %+v, want %+v", got.UserProfile, profile)
	}
}

func TestPercentagesHighTierScenario(t *testing.T) {
	target := Target{Intake: Intake{Calories: 2000, Proteins: 50, Carbohydrates: 250, Fat: 70}}
	totals := Totals{TotalKcal: 1900, TotalProteins: 80}
	got := Percentages(totals, target)
	if got[0].Percent != 95 || got[0].Tier != TierHigh {
		t.Fatalf("calories indicator = %+v, want 95%% high", got[0])
	}
	if got[1].Percent != 160 || got[1].Progress != 100 {
		t.Fatalf("proteins indicator = %+v, want 160%% capped at 100", got[1])
	}
	if got[2].Percent != 0 || got[2].Tier != TierNormal {
		t.Fatalf("carbohydrates indicator = %+v, want 0%% normal", got[2])
	}
}
