package media

import (
	"path"
	"strings"
)

// Canonical output format. Every pipeline output is re-encoded to JPEG
// regardless of what the admin uploaded.
const (
	OutputContentType = "image/jpeg"
	OutputExt         = ".jpg"
)

// SourceImage is a raw admin upload. It is owned by a single form
// submission and discarded once encoding produces an EncodedAsset.
type SourceImage struct {
	Name        string // Original upload filename
	ContentType string // Detected from bytes, not the client header
	Data        []byte
}

// EncodedAsset is a canonical-format image ready for upload.
type EncodedAsset struct {
	Name        string // Source filename with the canonical extension
	ContentType string
	Data        []byte
	Width       int
	Height      int
	Quality     int // Quality the final encode ran at
}

// outputName replaces the source filename's extension with the canonical
// one. A nameless upload becomes "image.jpg".
func outputName(source string) string {
	base := strings.TrimSuffix(path.Base(source), path.Ext(source))
	if base == "" || base == "." {
		base = "image"
	}
	return base + OutputExt
}
