package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"nutritrack/internal/domain"
	"nutritrack/internal/infra"
	"nutritrack/internal/sqlinline"
)

// JournalRepositoryPG implements domain.JournalRepository on PostgreSQL.
type JournalRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewJournalRepository constructs the repository.
func NewJournalRepository(sql infra.SQLExecutor) *JournalRepositoryPG {
	return &JournalRepositoryPG{sql: sql}
}

// Add inserts the entry and fills its generated ID.
func (r *JournalRepositoryPG) Add(ctx context.Context, entry *domain.Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is required", domain.ErrValidation)
	}
	if entry.Unit == "" {
		entry.Unit = domain.DefaultUnit
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertConsumption,
		entry.Barcode,
		entry.ProductName,
		entry.Quantity,
		entry.Unit,
		entry.Nutriscore,
		entry.EnergyKcal100g,
		entry.Proteins100g,
		entry.Carbohydrates100g,
		entry.Fat100g,
		entry.Timestamp,
	)
	if err := row.Scan(&entry.ID); err != nil {
		return fmt.Errorf("insert consumption: %w", err)
	}
	return nil
}

// ListByDay returns the entries of the calendar day containing day, in the
// day's own location, oldest first.
func (r *JournalRepositoryPG) ListByDay(ctx context.Context, day time.Time) ([]domain.Entry, error) {
	start, end := dayBounds(day)
	rows, err := r.sql.Query(ctx, sqlinline.QListConsumptionBetween, start, end)
	if err != nil {
		return nil, fmt.Errorf("list consumption: %w", err)
	}
	return scanEntries(rows)
}

// ListSince returns every entry logged at or after since, oldest first.
func (r *JournalRepositoryPG) ListSince(ctx context.Context, since time.Time) ([]domain.Entry, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListConsumptionSince, since)
	if err != nil {
		return nil, fmt.Errorf("list consumption: %w", err)
	}
	return scanEntries(rows)
}

// Delete removes a single entry and returns its consumption time. Unknown
// IDs return domain.ErrNotFound.
func (r *JournalRepositoryPG) Delete(ctx context.Context, id int64) (time.Time, error) {
	var consumedAt time.Time
	if err := r.sql.QueryRow(ctx, sqlinline.QDeleteConsumption, id).Scan(&consumedAt); err != nil {
		if infra.IsNoRows(err) {
			return time.Time{}, domain.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("delete consumption: %w", err)
	}
	return consumedAt, nil
}

// DeleteDay removes every entry of the given day and reports how many went.
func (r *JournalRepositoryPG) DeleteDay(ctx context.Context, day time.Time) (int64, error) {
	start, end := dayBounds(day)
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteConsumptionBetween, start, end)
	if err != nil {
		return 0, fmt.Errorf("delete consumption day: %w", err)
	}
	return tag.RowsAffected(), nil
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

func scanEntries(rows pgx.Rows) ([]domain.Entry, error) {
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(
			&e.ID,
			&e.Barcode,
			&e.ProductName,
			&e.Quantity,
			&e.Unit,
			&e.Nutriscore,
			&e.EnergyKcal100g,
			&e.Proteins100g,
			&e.Carbohydrates100g,
			&e.Fat100g,
			&e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consumption: %w", err)
	}
	return entries, nil
}

var _ domain.JournalRepository = (*JournalRepositoryPG)(nil)
