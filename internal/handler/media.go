package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mfujioka/campus-cms/internal/domain"
	"github.com/mfujioka/campus-cms/internal/repository/sqlite"
)

// MediaHandler serves assets out of the SQLite blob store. Deployments on
// S3 serve assets from the bucket's own public endpoint instead and do not
// register this route.
type MediaHandler struct {
	blobs *sqlite.BlobStore
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(blobs *sqlite.BlobStore) *MediaHandler {
	return &MediaHandler{blobs: blobs}
}

// HandleServe serves blob bytes with correct Content-Type.
// GET /media/{bucket}/{key}
func (h *MediaHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := h.blobs.Get(r.Context(), r.PathValue("bucket"), r.PathValue("key"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		slog.Error("serve blob", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
