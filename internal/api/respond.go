package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/pagewise/internal/paginate"
	"github.com/dgallion1/pagewise/internal/position"
	"github.com/dgallion1/pagewise/internal/reader"
	"github.com/dgallion1/pagewise/internal/surface"
	"github.com/dgallion1/pagewise/internal/toolbar"
)

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, toolbar.ErrUnimplementedAction):
		jsonError(w, "not available", http.StatusNotImplemented)
	case errors.Is(err, reader.ErrNotFound),
		errors.Is(err, reader.ErrPageOutOfRange),
		errors.Is(err, surface.ErrUnknownSurface):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, reader.ErrSessionClosed):
		jsonError(w, err.Error(), http.StatusGone)
	case errors.Is(err, toolbar.ErrNoSelection),
		errors.Is(err, reader.ErrNotesClosed):
		jsonError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, toolbar.ErrUnknownAction),
		errors.Is(err, position.ErrInvalidArgument),
		errors.Is(err, paginate.ErrInvalidArgument):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

const maxControlBytes = 1 << 20

// decodeJSON reads a small JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	return decodeJSONLimit(w, r, v, maxControlBytes)
}

// decodeJSONLimit reads a JSON request body of at most limit bytes into v.
func decodeJSONLimit(w http.ResponseWriter, r *http.Request, v any, limit int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
