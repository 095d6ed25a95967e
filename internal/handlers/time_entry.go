package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/crucial707/timetrack/internal/middleware"
	"github.com/crucial707/timetrack/internal/models"
	"github.com/crucial707/timetrack/internal/repo"
	"github.com/crucial707/timetrack/internal/service"
	"github.com/crucial707/timetrack/internal/validation"
)

// TimeEntryHandler serves /api/time-tracking. Every route is scoped to the
// authenticated user.
type TimeEntryHandler struct {
	Service *service.TimeEntryService
	Audit   *repo.AuditRepo
}

// readTimeEntryInput ignores any "user" field in the body.
func readTimeEntryInput(r *http.Request) (service.TimeEntryInput, error) {
	f, err := readForm(r)
	if err != nil {
		return service.TimeEntryInput{}, err
	}
	in := service.TimeEntryInput{
		ProjectID:       f.Int("project"),
		DateWorked:      f.DateTime("date_worked"),
		WorkDescription: f.String("work_description"),
		Hours:           f.Int("hours"),
	}
	return in, f.Err()
}

// parseFilter reads start_date, end_date and project. Empty values are ignored.
func parseFilter(r *http.Request) (models.TimeEntryFilter, error) {
	var f models.TimeEntryFilter
	errs := validation.New()
	q := r.URL.Query()

	parseDate := func(name string) *time.Time {
		s := strings.TrimSpace(q.Get(name))
		if s == "" {
			return nil
		}
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			errs.Add(name, validation.MsgInvalidDate)
			return nil
		}
		return &d
	}
	f.StartDate = parseDate("start_date")
	f.EndDate = parseDate("end_date")

	if s := strings.TrimSpace(q.Get("project")); s != "" {
		if id, ok := parseInt32(s); ok {
			f.ProjectID = &id
		} else {
			errs.Add("project", validation.MsgInvalidNumber)
		}
	}
	return f, errs.Err()
}

func (h *TimeEntryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	entries, err := h.Service.List(r.Context(), userID, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *TimeEntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	in, err := readTimeEntryInput(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	e, err := h.Service.Create(r.Context(), userID, in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	recordMutation(r, h.Audit, models.AuditCreate, models.ResourceTimeEntry, e.ID, "")
	writeJSON(w, http.StatusCreated, e)
}

func (h *TimeEntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, ok := pathID(r)
	if !ok {
		JSONDetail(w, service.MsgTimeEntryNotFound, http.StatusNotFound)
		return
	}

	e, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *TimeEntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, ok := pathID(r)
	if !ok {
		JSONDetail(w, service.MsgTimeEntryNotFound, http.StatusNotFound)
		return
	}

	in, err := readTimeEntryInput(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	e, err := h.Service.Update(r.Context(), userID, id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	recordMutation(r, h.Audit, models.AuditUpdate, models.ResourceTimeEntry, e.ID, "")
	writeJSON(w, http.StatusOK, e)
}

func (h *TimeEntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id, ok := pathID(r)
	if !ok {
		JSONDetail(w, service.MsgTimeEntryNotFound, http.StatusNotFound)
		return
	}

	if err := h.Service.Delete(r.Context(), userID, id); err != nil {
		respondError(w, r, err)
		return
	}

	recordMutation(r, h.Audit, models.AuditDelete, models.ResourceTimeEntry, id, "")
	w.WriteHeader(http.StatusNoContent)
}
