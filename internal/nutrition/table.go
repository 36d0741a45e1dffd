package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"nutritrack/internal/domain"
)

// Table indexes daily intakes by sex and age bucket.
type Table map[domain.Sex]map[AgeGroup]Intake

// DefaultTable returns the ANSES/EFSA average intakes.
func DefaultTable() Table {
	return Table{
		domain.SexMale: {
			AgeGroup18To40: {Calories: 2500, Proteins: 70, Carbohydrates: 310, Fat: 90, Fiber: 30, Salt: 6},
			AgeGroup41To60: {Calories: 2350, Proteins: 65, Carbohydrates: 290, Fat: 85, Fiber: 30, Salt: 6},
			AgeGroup61Plus: {Calories: 2150, Proteins: 70, Carbohydrates: 265, Fat: 75, Fiber: 30, Salt: 5},
		},
		domain.SexFemale: {
			AgeGroup18To40: {Calories: 2000, Proteins: 55, Carbohydrates: 250, Fat: 70, Fiber: 25, Salt: 6},
			AgeGroup41To60: {Calories: 1900, Proteins: 55, Carbohydrates: 235, Fat: 65, Fiber: 25, Salt: 6},
			AgeGroup61Plus: {Calories: 1800, Proteins: 60, Carbohydrates: 220, Fat: 60, Fiber: 25, Salt: 5},
		},
	}
}

// Validate checks that every sex and bucket has a finite, non-negative row.
func (t Table) Validate() error {
	for _, sex := range []domain.Sex{domain.SexMale, domain.SexFemale} {
		rows, ok := t[sex]
		if !ok {
			return fmt.Errorf("%w: table missing sex %q", domain.ErrValidation, sex)
		}
		for _, group := range AgeGroups {
			row, ok := rows[group]
			if !ok {
				return fmt.Errorf("%w: table missing %s/%s", domain.ErrValidation, sex, group)
			}
			for _, v := range []float64{row.Calories, row.Proteins, row.Carbohydrates, row.Fat, row.Fiber, row.Salt} {
				if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
					return fmt.Errorf("%w: invalid value in %s/%s", domain.ErrValidation, sex, group)
				}
			}
		}
	}
	return nil
}

// LoadTable decodes a JSON table shaped {"male": {"18-40": {...}}, ...}.
// Sex keys accept the same spellings as domain.ParseSex.
func LoadTable(r io.Reader) (Table, error) {
	var raw map[string]map[AgeGroup]Intake
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode recommendation table: %w", err)
	}
	table := make(Table, len(raw))
	for key, rows := range raw {
		sex, err := domain.ParseSex(key)
		if err != nil {
			return nil, err
		}
		table[sex] = rows
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// TablePolicy evaluates targets locally from a Table.
type TablePolicy struct {
	table Table
}

// NewTablePolicy builds a policy; a nil table selects DefaultTable.
func NewTablePolicy(table Table) (*TablePolicy, error) {
	if table == nil {
		table = DefaultTable()
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &TablePolicy{table: table}, nil
}

// Recommend is the pure lookup behind Targets. Unknown sexes use the male rows.
func (p *TablePolicy) Recommend(profile domain.Profile) Target {
	sex := profile.Sex
	if _, ok := p.table[sex]; !ok {
		sex = domain.SexMale
	}
	group := AgeGroupFor(profile.Age)
	return Target{Intake: p.table[sex][group], AgeGroup: group, Sex: sex}
}

// Targets implements TargetProvider.
func (p *TablePolicy) Targets(_ context.Context, profile domain.Profile) (Target, error) {
	return p.Recommend(profile), nil
}

var _ TargetProvider = (*TablePolicy)(nil)
