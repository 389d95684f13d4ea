package media

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/mfujioka/campus-cms/internal/domain"
)

// Encode re-encodes a rasterized bitmap into the canonical format.
//
// Without an output budget the category encodes once at its default
// quality. With a budget (the promotional category), quality starts at the
// ceiling and steps down until the encoded size fits the budget or the
// floor is reached; the last encode is accepted either way, so the result
// is best-effort but the loop is strictly bounded and never dips below the
// floor.
func Encode(img image.Image, sourceName string, cat Category) (*EncodedAsset, error) {
	quality := cat.QualityDefault
	if cat.OutputBudgetBytes > 0 {
		quality = cat.QualityCeiling
	}

	data, err := encodeJPEG(img, quality)
	if err != nil {
		return nil, err
	}

	if cat.OutputBudgetBytes > 0 {
		for len(data) > cat.OutputBudgetBytes && quality > cat.QualityFloor {
			quality -= cat.QualityStep
			if quality < cat.QualityFloor {
				quality = cat.QualityFloor
			}
			data, err = encodeJPEG(img, quality)
			if err != nil {
				return nil, err
			}
		}
	}

	bounds := img.Bounds()
	return &EncodedAsset{
		Name:        outputName(sourceName),
		ContentType: OutputContentType,
		Data:        data,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Quality:     quality,
	}, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncodeFailed, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: encoder produced no output", domain.ErrEncodeFailed)
	}
	return buf.Bytes(), nil
}
