package media

import (
	"fmt"

	"github.com/mfujioka/campus-cms/internal/domain"
)

// allowedTypes is the input allow-list shared by all categories.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Validate rejects unsupported uploads before any decode work. It checks
// the declared content type against the allow-list and the byte length
// against the category's input cap. Nothing downstream runs if it fails.
func Validate(src *SourceImage, cat Category) error {
	if !allowedTypes[src.ContentType] {
		return fmt.Errorf("%w: %s (accepted: JPEG, PNG, WebP)", domain.ErrUnsupportedType, src.ContentType)
	}
	if int64(len(src.Data)) > cat.MaxInputBytes {
		return fmt.Errorf("%w: %d bytes exceeds the %dMB limit for %s images",
			domain.ErrTooLarge, len(src.Data), cat.MaxInputBytes>>20, cat.Name)
	}
	return nil
}
