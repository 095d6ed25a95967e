package handlers

import (
	"net/http"

	"github.com/crucial707/timetrack/internal/models"
	"github.com/crucial707/timetrack/internal/repo"
	"github.com/crucial707/timetrack/internal/service"
)

// ProjectHandler serves /api/project. Projects are shared between users.
type ProjectHandler struct {
	Service *service.ProjectService
	Audit   *repo.AuditRepo
}

func readProjectInput(r *http.Request) (service.ProjectInput, error) {
	f, err := readForm(r)
	if err != nil {
		return service.ProjectInput{}, err
	}
	in := service.ProjectInput{
		Title:    f.String("title"),
		IsActive: f.Bool("is_active"),
	}
	return in, f.Err()
}

// ==========================
// List Projects
// ==========================
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// ==========================
// Create Project
// ==========================
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := readProjectInput(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	p, err := h.Service.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	recordMutation(r, h.Audit, models.AuditCreate, models.ResourceProject, p.ID, p.Title)
	writeJSON(w, http.StatusCreated, p)
}

// ==========================
// Get Project
// ==========================
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		JSONDetail(w, service.MsgProjectNotFound, http.StatusNotFound)
		return
	}

	p, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ==========================
// Update Project (partial)
// ==========================
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		JSONDetail(w, service.MsgProjectNotFound, http.StatusNotFound)
		return
	}

	in, err := readProjectInput(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	p, err := h.Service.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	recordMutation(r, h.Audit, models.AuditUpdate, models.ResourceProject, p.ID, "")
	writeJSON(w, http.StatusOK, p)
}

// ==========================
// Delete Project (soft)
// ==========================
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		JSONDetail(w, service.MsgProjectNotFound, http.StatusNotFound)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	recordMutation(r, h.Audit, models.AuditDelete, models.ResourceProject, id, "")
	w.WriteHeader(http.StatusNoContent)
}
