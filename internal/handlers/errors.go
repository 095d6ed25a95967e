package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/crucial707/timetrack/internal/service"
	"github.com/crucial707/timetrack/internal/validation"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "A server error occurred."

// writeJSON sends v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// JSONDetail sends a JSON error response with a single "detail" field.
func JSONDetail(w http.ResponseWriter, detail string, status int) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// JSONValidationError sends field errors as {"field": ["msg", ...]} with 400.
func JSONValidationError(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusBadRequest, errs)
}

// respondError maps service errors to responses. Anything unexpected is
// logged with the request id and answered with a bare 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verrs    validation.Errors
		authErr  *service.AuthError
		notFound *service.NotFoundError
		bodyErr  *bodyError
	)
	switch {
	case errors.As(err, &bodyErr):
		JSONDetail(w, bodyErr.detail, bodyErr.status)
	case errors.As(err, &verrs):
		JSONValidationError(w, verrs)
	case errors.As(err, &authErr):
		body := map[string]string{"detail": authErr.Detail}
		if authErr.Code != "" {
			body["code"] = authErr.Code
		}
		writeJSON(w, http.StatusUnauthorized, body)
	case errors.As(err, &notFound):
		JSONDetail(w, notFound.Detail, http.StatusNotFound)
	default:
		slog.Error("request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		JSONDetail(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}
