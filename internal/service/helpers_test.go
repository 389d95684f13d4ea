package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mfujioka/campus-cms/internal/domain"
	"github.com/mfujioka/campus-cms/internal/repository/sqlite"
	"github.com/mfujioka/campus-cms/internal/service"
)

const testBaseURL = "http://localhost:8080"

// newTestStack wires services against a migrated temp-dir database, with a
// recordingStore in front of the blob store so tests can count mutations
// and inject faults.
func newTestStack(t *testing.T) (*service.RecordService, *service.MediaService, *recordingStore, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store := &recordingStore{inner: db.Blobs(testBaseURL)}
	mediaSvc := service.NewMediaService(store)
	return service.NewRecordService(db.Records(), mediaSvc), mediaSvc, store, db
}

// recordingStore wraps a real BlobStore, counting calls and optionally
// failing them.
type recordingStore struct {
	inner domain.BlobStore

	mu         sync.Mutex
	uploads    int
	removes    int
	failUpload error
	failRemove error
}

var _ domain.BlobStore = (*recordingStore)(nil)

func (s *recordingStore) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	s.mu.Lock()
	if s.failUpload != nil {
		s.mu.Unlock()
		return s.failUpload
	}
	s.uploads++
	s.mu.Unlock()
	return s.inner.Upload(ctx, bucket, key, data, contentType)
}

func (s *recordingStore) PublicURL(bucket, key string) string {
	return s.inner.PublicURL(bucket, key)
}

func (s *recordingStore) Remove(ctx context.Context, bucket, key string) error {
	s.mu.Lock()
	if s.failRemove != nil {
		s.mu.Unlock()
		return s.failRemove
	}
	s.removes++
	s.mu.Unlock()
	return s.inner.Remove(ctx, bucket, key)
}

func (s *recordingStore) counts() (uploads, removes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads, s.removes
}

func flatImage(t *testing.T, w, h int) image.Image {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	return img
}

func jpegSource(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flatImage(t, w, h), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func pngSource(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, flatImage(t, w, h)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
