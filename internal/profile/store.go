// Package profile persists the user's profile behind a key-value backend.
package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"nutritrack/internal/domain"
	"nutritrack/internal/infra"
)

// KV is the key-value contract of a profile backend. Get returns
// domain.ErrNotFound when the key has never been written.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store loads and updates the profile stored under a fixed key.
type Store struct {
	kv     KV
	key    string
	logger *infra.Logger
	mu     sync.Mutex
}

// NewStore binds a store to a backend and key.
func NewStore(kv KV, key string, logger *infra.Logger) *Store {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Store{kv: kv, key: key, logger: logger}
}

// Load returns the persisted profile, or the default profile when nothing
// is stored, the backend fails or the record is malformed.
func (s *Store) Load(ctx context.Context) domain.Profile {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn().Err(err).Str("key", s.key).Msg("profile: backend unavailable, using default")
		}
		return domain.DefaultProfile()
	}
	p, err := Decode(raw)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("profile: malformed record, using default")
		return domain.DefaultProfile()
	}
	return p
}

// Update validates and persists a new profile. Invalid input fails with
// domain.ErrValidation and leaves the stored profile untouched.
func (s *Store) Update(ctx context.Context, age int, sex string) (domain.Profile, error) {
	parsed, err := domain.ParseSex(sex)
	if err != nil {
		return domain.Profile{}, err
	}
	p := domain.Profile{Age: age, Sex: parsed}
	if err := p.Validate(); err != nil {
		return domain.Profile{}, err
	}
	raw, err := Encode(p)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("profile: encode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: profile: persist: %v", domain.ErrDataUnavailable, err)
	}
	s.logger.Info().Int("age", p.Age).Str("sex", string(p.Sex)).Msg("profile: updated")
	return p, nil
}
