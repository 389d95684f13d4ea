package handler

import (
	"net/http"

	"github.com/mfujioka/campus-cms/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. media may be
// nil when assets are served directly from object storage.
func RegisterRoutes(mux *http.ServeMux, records *service.RecordService, media *MediaHandler) {
	mux.HandleFunc("GET /healthz", HandleHealthz)

	rh := NewRecordHandler(records)
	mux.HandleFunc("GET /admin/records/{category}", rh.HandleList)
	mux.HandleFunc("POST /admin/records/{category}", rh.HandleCreate)
	mux.HandleFunc("GET /admin/records/{category}/{id}", rh.HandleGet)
	mux.HandleFunc("POST /admin/records/{category}/{id}", rh.HandleUpdate)
	mux.HandleFunc("POST /admin/records/{category}/{id}/delete", rh.HandleDelete)

	if media != nil {
		mux.HandleFunc("GET /media/{bucket}/{key}", media.HandleServe)
	}
}
