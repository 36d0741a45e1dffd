package domain

import (
	"fmt"
	"strings"
)

// Sex enumerates the values accepted for recommendation lookups.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

const (
	// MinProfileAge is the youngest age accepted on profile updates.
	MinProfileAge = 18
	// MaxProfileAge is the oldest age accepted on profile updates.
	MaxProfileAge = 120
	// DefaultProfileAge is used when no profile has been persisted yet.
	DefaultProfileAge = 30
)

// Profile is the user's age and sex driving the daily targets.
type Profile struct {
	Age int `json:"age"`
	Sex Sex `json:"sex"`
}

// DefaultProfile returns the profile served before any update.
func DefaultProfile() Profile {
	return Profile{Age: DefaultProfileAge, Sex: SexMale}
}

// ParseSex accepts english values and the legacy french labels.
func ParseSex(raw string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m", "homme":
		return SexMale, nil
	case "female", "f", "femme":
		return SexFemale, nil
	}
	return "", fmt.Errorf("%w: unknown sex %q", ErrValidation, raw)
}

// Validate reports whether the profile respects the age range and sex enum.
func (p Profile) Validate() error {
	if p.Age < MinProfileAge || p.Age > MaxProfileAge {
		return fmt.Errorf("%w: age must be between %d and %d", ErrValidation, MinProfileAge, MaxProfileAge)
	}
	if p.Sex != SexMale && p.Sex != SexFemale {
		return fmt.Errorf("%w: unknown sex %q", ErrValidation, p.Sex)
	}
	return nil
}
