package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mfujioka/campus-cms/internal/domain"
	"github.com/mfujioka/campus-cms/internal/media"
)

// RecordService handles content record CRUD, running the media pipeline
// around the persistence boundary. Storage and database writes are not
// transactional; the service sequences them so that a record never points
// at an asset that was not uploaded.
type RecordService struct {
	records domain.RecordRepository
	media   *MediaService
}

// NewRecordService creates a new RecordService.
func NewRecordService(records domain.RecordRepository, media *MediaService) *RecordService {
	return &RecordService{records: records, media: media}
}

// Create inserts a new record, ingesting the optional image first. If the
// insert fails after a successful upload, the fresh asset is deleted
// best-effort so the bucket stays free of never-referenced objects.
func (s *RecordService) Create(ctx context.Context, rec *domain.ContentRecord, src *media.SourceImage) error {
	cat, err := s.category(rec.Category)
	if err != nil {
		return err
	}
	if err := validateRecord(rec); err != nil {
		return err
	}

	if src != nil {
		url, err := s.media.Ingest(ctx, src, cat)
		if err != nil {
			return err
		}
		rec.ImageURL = url
	}

	if err := s.records.Create(ctx, rec); err != nil {
		if rec.ImageURL != "" {
			if rmErr := s.media.Remove(ctx, rec.ImageURL, cat); rmErr != nil {
				slog.Warn("failed to clean up asset after insert failure",
					"category", cat.Name, "url", rec.ImageURL, "error", rmErr)
			}
		}
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

// Update edits an existing record, optionally replacing its image. The new
// asset is uploaded first, the row is persisted with the new URL, and only
// then is the previous asset deleted. An upload failure aborts before the
// row is touched, so image_url never references a missing object.
func (s *RecordService) Update(ctx context.Context, rec *domain.ContentRecord, src *media.SourceImage) error {
	cat, err := s.category(rec.Category)
	if err != nil {
		return err
	}
	if err := validateRecord(rec); err != nil {
		return err
	}

	existing, err := s.records.GetByID(ctx, rec.ID)
	if err != nil {
		return err
	}
	if existing.Category != rec.Category {
		return fmt.Errorf("%w: record %d belongs to category %q", domain.ErrInvalidInput, rec.ID, existing.Category)
	}

	newURL, cleanup, err := s.media.Replace(ctx, existing.ImageURL, src, cat)
	if err != nil {
		return err
	}
	rec.ImageURL = newURL

	if err := s.records.Update(ctx, rec); err != nil {
		// The row still references the old asset, which cleanup would
		// delete. Leave both assets in place; the new one is an orphan.
		return fmt.Errorf("update record: %w", err)
	}

	cleanup(ctx)
	return nil
}

// Delete removes a record and, best-effort, the asset it references.
func (s *RecordService) Delete(ctx context.Context, id int64) error {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if rec.ImageURL != "" {
		if cat, ok := media.CategoryByName(rec.Category); ok {
			if err := s.media.Remove(ctx, rec.ImageURL, cat); err != nil {
				slog.Warn("failed to remove asset for deleted record",
					"record_id", id, "url", rec.ImageURL, "error", err)
			}
		}
	}

	return s.records.Delete(ctx, id)
}

// GetByID returns a record by ID.
func (s *RecordService) GetByID(ctx context.Context, id int64) (*domain.ContentRecord, error) {
	return s.records.GetByID(ctx, id)
}

// ListByCategory returns all records in a category, newest first.
func (s *RecordService) ListByCategory(ctx context.Context, category string) ([]domain.ContentRecord, error) {
	if _, err := s.category(category); err != nil {
		return nil, err
	}
	return s.records.ListByCategory(ctx, category)
}

func (s *RecordService) category(name string) (media.Category, error) {
	cat, ok := media.CategoryByName(name)
	if !ok {
		return media.Category{}, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, name)
	}
	return cat, nil
}

func validateRecord(rec *domain.ContentRecord) error {
	if strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	return nil
}
