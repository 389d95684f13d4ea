package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mfujioka/campus-cms/internal/domain"
)

func TestRecordRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := db.Records()
	ctx := context.Background()

	rec := &domain.ContentRecord{
		Category: "article",
		Title:    "Open day announcement",
		Body:     "Doors open at nine.",
		ImageURL: "http://localhost:8080/media/article-images/article_1_abc.jpg",
	}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected assigned ID")
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != rec.Title || got.Category != "article" || got.ImageURL != rec.ImageURL {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestRecordRepository_NullImageURL(t *testing.T) {
	db := newTestDB(t)
	repo := db.Records()
	ctx := context.Background()

	rec := &domain.ContentRecord{Category: "teacher", Title: "New hire"}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Empty ImageURL persists as NULL and reads back as empty.
	var isNull bool
	if err := db.SqlDB.QueryRow("SELECT image_url IS NULL FROM content_records WHERE id = ?", rec.ID).Scan(&isNull); err != nil {
		t.Fatalf("query null: %v", err)
	}
	if !isNull {
		t.Fatal("expected image_url to be stored as NULL")
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ImageURL != "" {
		t.Fatalf("expected empty ImageURL, got %q", got.ImageURL)
	}
}

func TestRecordRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := db.Records()
	ctx := context.Background()

	rec := &domain.ContentRecord{Category: "facility", Title: "Gym"}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec.Title = "Renovated gym"
	rec.ImageURL = "http://localhost:8080/media/facility-images/facility_2_def.jpg"
	if err := repo.Update(ctx, rec); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Renovated gym" || got.ImageURL != rec.ImageURL {
		t.Fatalf("update not persisted: %+v", got)
	}

	// Updating a missing record reports not found.
	missing := &domain.ContentRecord{ID: 9999, Category: "facility", Title: "x"}
	if err := repo.Update(ctx, missing); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordRepository_ListByCategory(t *testing.T) {
	db := newTestDB(t)
	repo := db.Records()
	ctx := context.Background()

	for _, title := range []string{"First", "Second"} {
		if err := repo.Create(ctx, &domain.ContentRecord{Category: "uniform", Title: title}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if err := repo.Create(ctx, &domain.ContentRecord{Category: "article", Title: "Other"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	uniforms, err := repo.ListByCategory(ctx, "uniform")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(uniforms) != 2 {
		t.Fatalf("expected 2 uniform records, got %d", len(uniforms))
	}
	for _, rec := range uniforms {
		if rec.Category != "uniform" {
			t.Fatalf("leaked record from category %s", rec.Category)
		}
	}
	// Newest first.
	if uniforms[0].ID < uniforms[1].ID {
		t.Fatalf("expected newest first, got IDs %d, %d", uniforms[0].ID, uniforms[1].ID)
	}
}

func TestRecordRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := db.Records()
	ctx := context.Background()

	rec := &domain.ContentRecord{Category: "org", Title: "Chair"}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, rec.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, rec.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
