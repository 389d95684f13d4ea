package domain

import (
	"context"
	"time"
)

// ContentRecord is a persisted business entity rendered on the public site:
// an article, a teacher profile, a facility, and so on. The media pipeline
// only cares about ImageURL; the remaining fields travel through unchanged.
type ContentRecord struct {
	ID        int64
	Category  string // Category name, e.g. "article" or "teacher"
	Title     string
	Body      string
	ImageURL  string // Public URL of the live asset, empty if none
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordRepository handles content record persistence.
type RecordRepository interface {
	Create(ctx context.Context, rec *ContentRecord) error
	GetByID(ctx context.Context, id int64) (*ContentRecord, error)
	ListByCategory(ctx context.Context, category string) ([]ContentRecord, error)
	Update(ctx context.Context, rec *ContentRecord) error
	Delete(ctx context.Context, id int64) error
}

// Database defines lifecycle operations for the underlying database.
// Each implementation owns its own migration files and strategy, ensuring
// the entire backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
