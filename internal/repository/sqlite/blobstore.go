package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mfujioka/campus-cms/internal/domain"
)

// BlobStore implements domain.BlobStore on SQLite BLOBs. It is the
// local/dev backend; production deployments use the S3 store. Public URLs
// point back at this server's /media route, which serves rows from the
// blobs table.
type BlobStore struct {
	db      *sql.DB
	baseURL string
}

func (s *BlobStore) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO blobs (bucket, storage_key, content_type, data) VALUES (?, ?, ?, ?)",
		bucket, key, contentType, data,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s/%s", domain.ErrKeyExists, bucket, key)
		}
		return fmt.Errorf("save blob: %w", err)
	}
	return nil
}

// PublicURL derives the stable public URL for a key. Pure string work, no
// I/O; the bucket always appears as a path segment.
func (s *BlobStore) PublicURL(bucket, key string) string {
	return strings.TrimSuffix(s.baseURL, "/") + "/media/" + bucket + "/" + key
}

// Remove deletes a blob. Deleting a missing key is a no-op.
func (s *BlobStore) Remove(ctx context.Context, bucket, key string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM blobs WHERE bucket = ? AND storage_key = ?", bucket, key)
	if err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// Get returns blob bytes and content type for the /media serving route.
func (s *BlobStore) Get(ctx context.Context, bucket, key string) ([]byte, string, error) {
	var data []byte
	var contentType string
	err := s.db.QueryRowContext(ctx,
		"SELECT data, content_type FROM blobs WHERE bucket = ? AND storage_key = ?",
		bucket, key,
	).Scan(&data, &contentType)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("get blob: %w", err)
	}
	return data, contentType, nil
}
