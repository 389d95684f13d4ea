package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfujioka/campus-cms/internal/domain"
)

// RecordRepository implements domain.RecordRepository using SQLite.
type RecordRepository struct {
	db *sql.DB
}

func (r *RecordRepository) Create(ctx context.Context, rec *domain.ContentRecord) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO content_records (category, title, body, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Category, rec.Title, rec.Body, nullable(rec.ImageURL), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert content record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	rec.ID = id
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return nil
}

func (r *RecordRepository) GetByID(ctx context.Context, id int64) (*domain.ContentRecord, error) {
	rec := &domain.ContentRecord{}
	var imageURL sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, category, title, body, image_url, created_at, updated_at
		 FROM content_records WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Category, &rec.Title, &rec.Body, &imageURL, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get content record: %w", err)
	}
	rec.ImageURL = imageURL.String
	return rec, nil
}

func (r *RecordRepository) ListByCategory(ctx context.Context, category string) ([]domain.ContentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, title, body, image_url, created_at, updated_at
		 FROM content_records WHERE category = ? ORDER BY created_at DESC, id DESC`, category)
	if err != nil {
		return nil, fmt.Errorf("list content records: %w", err)
	}
	defer rows.Close()

	var records []domain.ContentRecord
	for rows.Next() {
		var rec domain.ContentRecord
		var imageURL sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Category, &rec.Title, &rec.Body, &imageURL,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan content record: %w", err)
		}
		rec.ImageURL = imageURL.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *RecordRepository) Update(ctx context.Context, rec *domain.ContentRecord) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE content_records SET title = ?, body = ?, image_url = ?, updated_at = ?
		 WHERE id = ?`,
		rec.Title, rec.Body, nullable(rec.ImageURL), now, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update content record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	rec.UpdatedAt = now
	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM content_records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete content record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// nullable maps an empty image URL to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
