package nutrition

import (
	"context"
	"errors"
	"strings"
	"testing"

	"nutritrack/internal/domain"
)

func TestAgeGroupFor(t *testing.T) {
	tests := []struct {
		age  int
		want AgeGroup
	}{
		{age: 17, want: AgeGroup18To40},
		{age: 18, want: AgeGroup18To40},
		{age: 40, want: AgeGroup18To40},
		{age: 41, want: AgeGroup41To60},
		{age: 60, want: AgeGroup41To60},
		{age: 61, want: AgeGroup61Plus},
		{age: 120, want: AgeGroup61Plus},
	}
	for _, tc := range tests {
		if got := AgeGroupFor(tc.age); got != tc.want {
			t.Fatalf("AgeGroupFor(%d) = %q, want %q", tc.age, got, tc.want)
		}
	}
}

func TestTablePolicyCaloriesChangeOnlyAtBucketBoundaries(t *testing.T) {
	policy, err := NewTablePolicy(nil)
	if err != nil {
		t.Fatalf("NewTablePolicy: %v", err)
	}
	for _, sex := range []domain.Sex{domain.SexMale, domain.SexFemale} {
		prev := policy.Recommend(domain.Profile{Age: domain.MinProfileAge, Sex: sex}).Calories
		for age := domain.MinProfileAge + 1; age <= domain.MaxProfileAge; age++ {
			got := policy.Recommend(domain.Profile{Age: age, Sex: sex}).Calories
			boundary := age == 41 || age == 61
			if boundary && got == prev {
				t.Fatalf("%s: calories did not change at age %d", sex, age)
			}
			if !boundary && got != prev {
				t.Fatalf("%s: calories changed at age %d (%v -> %v)", sex, age, prev, got)
			}
			prev = got
		}
	}
}

func TestTablePolicyRecommend(t *testing.T) {
	policy, _ := NewTablePolicy(nil)
	got, err := policy.Targets(context.Background(), domain.Profile{Age: 45, Sex: domain.SexFemale})
	if err != nil {
		t.Fatalf("Targets: %v", err)
	}
	if got.Calories != 1900 || got.Proteins != 55 || got.Carbohydrates != 235 || got.Fat != 65 {
		t.Fatalf("unexpected target: %+v", got)
	}
	if got.AgeGroup != AgeGroup41To60 || got.Sex != domain.SexFemale {
		t.Fatalf("unexpected labels: %q %q", got.AgeGroup, got.Sex)
	}

	fallback := policy.Recommend(domain.Profile{Age: 30, Sex: "other"})
	if fallback.Sex != domain.SexMale || fallback.Calories != 2500 {
		t.Fatalf("unknown sex should use male rows, got %+v", fallback)
	}
}

func TestLoadTable(t *testing.T) {
	row := `{"calories": %s, "proteins": 1, "carbohydrates": 1, "fat": 1, "fiber": 1, "salt": 1}`
	build := func(kcal string) string {
		r := strings.Replace(row, "%s", kcal, 1)
		group := `{"18-40": ` + r + `, "41-60": ` + r + `, "61+": ` + r + `}`
		return `{"homme": ` + group + `, "Female": ` + group + `}`
	}

	table, err := LoadTable(strings.NewReader(build("1234")))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	policy, err := NewTablePolicy(table)
	if err != nil {
		t.Fatalf("NewTablePolicy: %v", err)
	}
	if got := policy.Recommend(domain.Profile{Age: 70, Sex: domain.SexFemale}).Calories; got != 1234 {
		t.Fatalf("calories = %v, want 1234", got)
	}

	if _, err := LoadTable(strings.NewReader(build("-1"))); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for negative value, got %v", err)
	}
	if _, err := LoadTable(strings.NewReader(`{"male": {"18-40": {"calories": 1}}}`)); err == nil {
		t.Fatal("expected error for incomplete table")
	}
	if _, err := LoadTable(strings.NewReader(`{"robot": {}}`)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown sex, got %v", err)
	}
}
