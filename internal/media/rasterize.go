package media

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/mfujioka/campus-cms/internal/domain"

	// WebP decode support for image.Decode.
	_ "golang.org/x/image/webp"
)

// Rasterize decodes source bytes into a bitmap and applies the category's
// dimension cap. Images are only scaled down, preserving aspect ratio;
// an image already inside the cap (or a category without one) passes
// through untouched. Returns the bitmap plus the natural width/height of
// the source, which callers use for the promotional soft-check.
func Rasterize(src *SourceImage, cat Category) (image.Image, int, int, error) {
	img, err := imaging.Decode(bytes.NewReader(src.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}

	bounds := img.Bounds()
	naturalW, naturalH := bounds.Dx(), bounds.Dy()

	if cat.MaxWidth > 0 && cat.MaxHeight > 0 && (naturalW > cat.MaxWidth || naturalH > cat.MaxHeight) {
		// Fit scales down so both dimensions stay inside the cap and never
		// upscales, which is exactly the contract here.
		img = imaging.Fit(img, cat.MaxWidth, cat.MaxHeight, imaging.Lanczos)
	}

	return img, naturalW, naturalH, nil
}
