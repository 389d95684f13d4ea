package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mfujioka/campus-cms/internal/domain"
	"github.com/mfujioka/campus-cms/internal/media"
	"github.com/mfujioka/campus-cms/internal/service"
)

// maxRequestBytes caps the whole request body before multipart parsing
// begins. It sits just above the largest per-category input limit so the
// validator still owns the precise error, while anything bigger is cut off
// at the wire instead of spilling to disk.
const maxRequestBytes = 11 << 20

// maxFormMemory bounds how much of the multipart form is buffered in RAM.
const maxFormMemory = 1 << 20

// RecordHandler exposes admin CRUD for content records. Every form accepts
// at most one image, fed through the media pipeline before the row is
// persisted.
type RecordHandler struct {
	records *service.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(records *service.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// HandleList returns all records in a category, newest first.
// GET /admin/records/{category}
func (h *RecordHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.records.ListByCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		respondServiceError(w, "list records", err)
		return
	}
	if records == nil {
		records = []domain.ContentRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// HandleGet returns one record.
// GET /admin/records/{category}/{id}
func (h *RecordHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleCreate creates a record from a multipart form with an optional
// "image" file field.
// POST /admin/records/{category}
func (h *RecordHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	rec, src, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	if err := h.records.Create(r.Context(), rec, src); err != nil {
		respondServiceError(w, "create record", err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// HandleUpdate edits a record. Submitting without an image keeps the
// current one; submitting with an image replaces it.
// POST /admin/records/{category}/{id}
func (h *RecordHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.lookup(w, r)
	if !ok {
		return
	}

	rec, src, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	rec.ID = existing.ID

	if err := h.records.Update(r.Context(), rec, src); err != nil {
		respondServiceError(w, "update record", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleDelete removes a record and its asset.
// POST /admin/records/{category}/{id}/delete
func (h *RecordHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.records.Delete(r.Context(), rec.ID); err != nil {
		respondServiceError(w, "delete record", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// lookup resolves the {category}/{id} path pair to an existing record.
func (h *RecordHandler) lookup(w http.ResponseWriter, r *http.Request) (*domain.ContentRecord, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return nil, false
	}

	rec, err := h.records.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, "get record", err)
		return nil, false
	}
	if rec.Category != r.PathValue("category") {
		writeError(w, http.StatusNotFound, "not found")
		return nil, false
	}
	return rec, true
}

// parseForm reads the multipart form into a record plus the optional
// source image. The image's content type is detected from its bytes, not
// trusted from the client header.
func (h *RecordHandler) parseForm(w http.ResponseWriter, r *http.Request) (*domain.ContentRecord, *media.SourceImage, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return nil, nil, false
	}

	rec := &domain.ContentRecord{
		Category: r.PathValue("category"),
		Title:    r.FormValue("title"),
		Body:     r.FormValue("body"),
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return rec, nil, true
		}
		writeError(w, http.StatusBadRequest, "invalid image field")
		return nil, nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("read upload", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return nil, nil, false
	}

	src := &media.SourceImage{
		Name:        header.Filename,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}
	return rec, src, true
}

// respondServiceError maps service errors to HTTP statuses the way every
// admin endpoint does: invalid input 400, missing 404, anything else 500
// with a log line. The client always gets a single human-readable message.
func respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDecodeFailed),
		errors.Is(err, domain.ErrEncodeFailed):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
