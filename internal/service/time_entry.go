package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crucial707/timetrack/internal/models"
	"github.com/crucial707/timetrack/internal/repo"
	"github.com/crucial707/timetrack/internal/validation"
)

// MaxWorkDescriptionLength bounds work_description.
const MaxWorkDescriptionLength = 200

type TimeEntryStore interface {
	Create(ctx context.Context, e models.TimeEntry) (*models.TimeEntry, error)
	GetForUser(ctx context.Context, userID, id int) (*models.TimeEntry, error)
	ListForUser(ctx context.Context, userID int, f models.TimeEntryFilter) ([]models.TimeEntry, error)
	UpdateForUser(ctx context.Context, userID, id int, u repo.TimeEntryUpdate) (*models.TimeEntry, error)
	DeleteForUser(ctx context.Context, userID, id int) error
}

// ProjectChecker answers whether a project id exists, deleted or not.
type ProjectChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// TimeEntryInput is a create or partial update body. Nil fields were absent.
// There is deliberately no user field: the owner is always the caller.
type TimeEntryInput struct {
	ProjectID       *int
	DateWorked      *time.Time
	WorkDescription *string
	Hours           *int
}

// TimeEntryService manages time entries. Every operation is scoped to
// userID; entries of other users behave exactly like missing ones.
type TimeEntryService struct {
	entries  TimeEntryStore
	projects ProjectChecker
}

func NewTimeEntryService(entries TimeEntryStore, projects ProjectChecker) *TimeEntryService {
	return &TimeEntryService{entries: entries, projects: projects}
}

func (s *TimeEntryService) List(ctx context.Context, userID int, f models.TimeEntryFilter) ([]models.TimeEntry, error) {
	return s.entries.ListForUser(ctx, userID, f)
}

func (s *TimeEntryService) Create(ctx context.Context, userID int, in TimeEntryInput) (*models.TimeEntry, error) {
	errs := validation.New()
	if in.ProjectID == nil {
		errs.Add("project", validation.MsgRequired)
	}
	if in.DateWorked == nil {
		errs.Add("date_worked", validation.MsgRequired)
	}
	if in.WorkDescription == nil {
		errs.Add("work_description", validation.MsgRequired)
	}
	if in.Hours == nil {
		errs.Add("hours", validation.MsgRequired)
	}

	desc, err := s.checkFields(ctx, errs, in)
	if err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	e, err := s.entries.Create(ctx, models.TimeEntry{
		UserID:          userID,
		ProjectID:       *in.ProjectID,
		DateWorked:      in.DateWorked.UTC(),
		WorkDescription: desc,
		Hours:           *in.Hours,
	})
	if err != nil {
		if errors.Is(err, repo.ErrForeignKey) {
			return nil, validation.Errors{"project": {invalidPKMsg(*in.ProjectID)}}
		}
		return nil, fmt.Errorf("create time entry: %w", err)
	}
	return e, nil
}

func (s *TimeEntryService) Get(ctx context.Context, userID, id int) (*models.TimeEntry, error) {
	e, err := s.entries.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, entryErr(err)
	}
	return e, nil
}

func (s *TimeEntryService) Update(ctx context.Context, userID, id int, in TimeEntryInput) (*models.TimeEntry, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}

	errs := validation.New()
	desc, err := s.checkFields(ctx, errs, in)
	if err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	u := repo.TimeEntryUpdate{ProjectID: in.ProjectID, Hours: in.Hours}
	if in.WorkDescription != nil {
		u.WorkDescription = &desc
	}
	if in.DateWorked != nil {
		d := in.DateWorked.UTC()
		u.DateWorked = &d
	}

	e, err := s.entries.UpdateForUser(ctx, userID, id, u)
	if err != nil {
		if errors.Is(err, repo.ErrForeignKey) {
			return nil, validation.Errors{"project": {invalidPKMsg(*in.ProjectID)}}
		}
		return nil, entryErr(err)
	}
	return e, nil
}

// Delete removes the entry for good.
func (s *TimeEntryService) Delete(ctx context.Context, userID, id int) error {
	if err := s.entries.DeleteForUser(ctx, userID, id); err != nil {
		return entryErr(err)
	}
	return nil
}

// checkFields validates whichever fields are present and returns the trimmed
// description. The returned error is reserved for store failures.
func (s *TimeEntryService) checkFields(ctx context.Context, errs validation.Errors, in TimeEntryInput) (string, error) {
	if in.ProjectID != nil {
		ok, err := s.projects.Exists(ctx, *in.ProjectID)
		if err != nil {
			return "", fmt.Errorf("check project: %w", err)
		}
		if !ok {
			errs.Add("project", invalidPKMsg(*in.ProjectID))
		}
	}

	var desc string
	if in.WorkDescription != nil {
		desc = strings.TrimSpace(*in.WorkDescription)
		if validation.NotBlank(errs, "work_description", desc) {
			validation.MaxLength(errs, "work_description", desc, MaxWorkDescriptionLength)
		}
	}

	if in.Hours != nil {
		validation.MinInt(errs, "hours", *in.Hours, 0)
	}
	return desc, nil
}

func entryErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return &NotFoundError{Detail: MsgTimeEntryNotFound}
	}
	return err
}
