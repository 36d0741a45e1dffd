package repo

import (
	"context"
	"fmt"

	"nutritrack/internal/domain"
	"nutritrack/internal/infra"
	"nutritrack/internal/sqlinline"
)

// SettingsRepositoryPG is a key-value store over the user_settings table.
// It backs the profile store when the postgres backend is selected.
type SettingsRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewSettingsRepository constructs the repository.
func NewSettingsRepository(sql infra.SQLExecutor) *SettingsRepositoryPG {
	return &SettingsRepositoryPG{sql: sql}
}

// Get returns the stored value or domain.ErrNotFound.
func (r *SettingsRepositoryPG) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	if err := r.sql.QueryRow(ctx, sqlinline.QSelectSetting, key).Scan(&value); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select setting %q: %w", key, err)
	}
	return []byte(value), nil
}

// Put upserts the value under key.
func (r *SettingsRepositoryPG) Put(ctx context.Context, key string, value []byte) error {
	if _, err := r.sql.Exec(ctx, sqlinline.QUpsertSetting, key, string(value)); err != nil {
		return fmt.Errorf("upsert setting %q: %w", key, err)
	}
	return nil
}
