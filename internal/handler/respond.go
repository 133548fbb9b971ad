package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/contactdesk/contactdesk-go/internal/apperror"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"errorMessage": msg}
}

// respondError is the boundary between the typed error taxonomy and
// HTTP. Everything outside the taxonomy becomes a generic 500; the
// original error is logged server-side and never leaked to the client.
func respondError(w http.ResponseWriter, err error) {
	var validationErr *apperror.ValidationError
	var notFoundErr *apperror.RecordNotFoundError
	var unauthorizedErr *apperror.UnauthorizedError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"errorMessage":  validationErr.Error(),
			"errorsByField": validationErr.ErrorsByField(),
		})
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, errorResponse(notFoundErr.Error()))
	case errors.As(err, &unauthorizedErr):
		writeJSON(w, http.StatusUnauthorized, errorResponse(unauthorizedErr.Error()))
	default:
		slog.Error("unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

// pathID parses the {id} path parameter. A non-numeric id is not a
// distinct error class: it reads as a record that cannot exist, so the
// caller responds not-found.
func pathID(r *http.Request, collection string) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, &apperror.RecordNotFoundError{Collection: collection, ID: raw}
	}
	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}
