package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mfujioka/campus-cms/internal/domain"
	"github.com/mfujioka/campus-cms/internal/media"
)

// MediaService runs the transcode-and-replace pipeline: validate the
// upload, rasterize and re-encode it into the canonical format, upload it
// under a fresh key, and dispose of the asset it replaces.
//
// Invocations are independent: no shared mutable state, and key generation
// needs no coordination, so concurrent form submissions never interfere.
// There is no retry and no rollback of completed side effects.
type MediaService struct {
	store domain.BlobStore
}

// NewMediaService creates a new MediaService.
func NewMediaService(store domain.BlobStore) *MediaService {
	return &MediaService{store: store}
}

// Ingest runs validate → rasterize → encode → upload for one source image
// and returns the new asset's public URL. Validation and conversion
// failures abort before any storage mutation; an upload failure leaves
// nothing persisted, so callers can surface the error without cleanup.
func (s *MediaService) Ingest(ctx context.Context, src *media.SourceImage, cat media.Category) (string, error) {
	if err := media.Validate(src, cat); err != nil {
		return "", err
	}

	img, naturalW, naturalH, err := media.Rasterize(src, cat)
	if err != nil {
		return "", err
	}
	if cat.SoftMaxInputDim > 0 && (naturalW > cat.SoftMaxInputDim || naturalH > cat.SoftMaxInputDim) {
		slog.Warn("source image exceeds recommended resolution",
			"category", cat.Name, "width", naturalW, "height", naturalH, "recommended_max", cat.SoftMaxInputDim)
	}

	asset, err := media.Encode(img, src.Name, cat)
	if err != nil {
		return "", err
	}

	key := media.NewKey(cat)
	if err := s.store.Upload(ctx, cat.Bucket, key, asset.Data, asset.ContentType); err != nil {
		return "", fmt.Errorf("upload asset: %w", err)
	}

	url := s.store.PublicURL(cat.Bucket, key)
	slog.Info("asset uploaded",
		"category", cat.Name, "key", key, "bytes", len(asset.Data),
		"width", asset.Width, "height", asset.Height, "quality", asset.Quality)
	return url, nil
}

// Remove deletes the asset a URL points at, if the URL belongs to the
// category's bucket. Foreign and empty URLs are a no-op: records created
// before the site moved buckets may still reference assets this category
// does not manage, and those are left alone.
func (s *MediaService) Remove(ctx context.Context, url string, cat media.Category) error {
	key := ExtractKey(url, cat.Bucket)
	if key == "" {
		return nil
	}
	if err := s.store.Remove(ctx, cat.Bucket, key); err != nil {
		return fmt.Errorf("remove asset: %w", err)
	}
	return nil
}

// Replace is the pipeline's single entry point for edit forms. A nil src
// means the form was submitted without a new image: the existing URL is
// returned unchanged and cleanup is a no-op.
//
// Otherwise the new image is ingested first and the previous asset is only
// deleted by the returned cleanup func, which callers invoke after the
// record carrying the new URL has been persisted (upload → persist →
// delete). Cleanup failures are logged, never fatal: a stale object in the
// bucket is preferable to aborting an otherwise successful edit. If the
// caller never persists, skipping cleanup keeps the old asset live and the
// fresh upload becomes the orphan — the narrow, accepted failure window.
func (s *MediaService) Replace(ctx context.Context, existingURL string, src *media.SourceImage, cat media.Category) (string, func(context.Context), error) {
	noop := func(context.Context) {}
	if src == nil {
		return existingURL, noop, nil
	}

	newURL, err := s.Ingest(ctx, src, cat)
	if err != nil {
		return "", noop, err
	}

	cleanup := noop
	if existingURL != "" && existingURL != newURL {
		cleanup = func(ctx context.Context) {
			// The record already points at the new asset by the time this
			// runs; a client disconnect must not strand the old object.
			ctx = context.WithoutCancel(ctx)
			if err := s.Remove(ctx, existingURL, cat); err != nil {
				slog.Warn("failed to remove replaced asset",
					"category", cat.Name, "url", existingURL, "error", err)
			}
		}
	}
	return newURL, cleanup, nil
}

// ExtractKey pulls the storage key out of a public URL, or returns "" when
// the URL does not reference the given bucket. Membership is decided by
// the "/{bucket}/" path segment every PublicURL embeds.
func ExtractKey(url, bucket string) string {
	marker := "/" + bucket + "/"
	i := strings.Index(url, marker)
	if i < 0 {
		return ""
	}
	return url[i+len(marker):]
}
