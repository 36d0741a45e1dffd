package profile

import (
	"encoding/json"
	"errors"
	"fmt"

	"nutritrack/internal/domain"
)

// RecordVersion is written with every persisted profile.
const RecordVersion = 1

// ErrUnsupportedVersion is returned for records written by a newer schema.
var ErrUnsupportedVersion = errors.New("profile: unsupported record version")

type record struct {
	Version *int   `json:"version,omitempty"`
	Age     int    `json:"age"`
	Sex     string `json:"sex"`
}

// Encode serializes a profile as a versioned record.
func Encode(p domain.Profile) ([]byte, error) {
	v := RecordVersion
	return json.Marshal(record{Version: &v, Age: p.Age, Sex: string(p.Sex)})
}

// Decode parses a persisted record. Unversioned records are the legacy
// browser shape ({"age": 30, "sex": "homme"}) and are upgraded in place.
func Decode(raw []byte) (domain.Profile, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Profile{}, fmt.Errorf("profile: decode record: %w", err)
	}
	if rec.Version != nil && *rec.Version != RecordVersion {
		return domain.Profile{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, *rec.Version)
	}
	sex, err := domain.ParseSex(rec.Sex)
	if err != nil {
		return domain.Profile{}, err
	}
	p := domain.Profile{Age: rec.Age, Sex: sex}
	if err := p.Validate(); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}
