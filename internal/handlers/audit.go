package handlers

import (
	"log/slog"
	"net/http"

	"github.com/crucial707/timetrack/internal/metrics"
	"github.com/crucial707/timetrack/internal/models"
	"github.com/crucial707/timetrack/internal/middleware"
	"github.com/crucial707/timetrack/internal/repo"
)

// AuditHandler serves audit log endpoints.
type AuditHandler struct {
	Repo *repo.AuditRepo
}

// ListAudit returns the caller's recent audit log entries. Query: limit (default 50, max 200), offset (default 0).
func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	limit := queryInt(r, "limit", 50, 1, 200)
	offset := queryInt(r, "offset", 0, 0, 1<<31-1)

	entries, err := h.Repo.ListForUser(r.Context(), userID, limit, offset)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// recordMutation counts a successful write and, when audit is configured,
// appends it to the caller's audit log. Audit failures never fail the request.
func recordMutation(r *http.Request, audit *repo.AuditRepo, action models.AuditAction, resource models.AuditResource, id int, details string) {
	metrics.RecordMutation(string(resource), string(action))
	if audit == nil {
		return
	}
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		return
	}
	if err := audit.Log(r.Context(), userID, action, resource, id, details); err != nil {
		slog.Warn("audit log failed", "action", action, "resource", resource, "id", id, "error", err)
	}
}
