package domain

import (
	"context"
	"time"
)

// JournalRepository persists consumption entries.
type JournalRepository interface {
	Add(ctx context.Context, entry *Entry) error
	ListByDay(ctx context.Context, day time.Time) ([]Entry, error)
	ListSince(ctx context.Context, since time.Time) ([]Entry, error)
	// Delete removes one entry and returns the time it was consumed at.
	Delete(ctx context.Context, id int64) (time.Time, error)
	DeleteDay(ctx context.Context, day time.Time) (int64, error)
}

// ProductCatalog looks products up in the external product database.
type ProductCatalog interface {
	Product(ctx context.Context, barcode string) (*Product, error)
	Search(ctx context.Context, query string, pageSize int) ([]SearchHit, error)
}
