package domain

import "context"

// BlobStore abstracts object storage for encoded assets. Assets live in
// named buckets, one bucket per content category. The initial deployments
// use either SQLite BLOBs (local) or S3-compatible storage; the interface
// keeps both swappable.
//
// Upload must refuse to overwrite: an occupied key fails with ErrKeyExists.
// Remove is idempotent — deleting a missing key is not an error. PublicURL
// is a pure derivation, performs no I/O, and always embeds the bucket name
// as a path segment (".../{bucket}/{key}"), which is how callers later
// recognize URLs belonging to a bucket.
type BlobStore interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error
	PublicURL(bucket, key string) string
	Remove(ctx context.Context, bucket, key string) error
}
