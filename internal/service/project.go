package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/crucial707/timetrack/internal/models"
	"github.com/crucial707/timetrack/internal/repo"
	"github.com/crucial707/timetrack/internal/validation"
)

// MaxTitleLength bounds project titles.
const MaxTitleLength = 200

type ProjectStore interface {
	List(ctx context.Context) ([]models.Project, error)
	Create(ctx context.Context, title string) (*models.Project, error)
	GetByID(ctx context.Context, id int) (*models.Project, error)
	TitleTaken(ctx context.Context, title string, excludeID int) (bool, error)
	Update(ctx context.Context, id int, u repo.ProjectUpdate) (*models.Project, error)
	SoftDelete(ctx context.Context, id int) error
}

// ProjectInput is a create or partial update body. Nil fields were absent.
type ProjectInput struct {
	Title    *string
	IsActive *bool
}

// ProjectService manages projects. Projects are shared: any authenticated
// user may read or change any of them.
type ProjectService struct {
	projects ProjectStore
}

func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

// List returns projects that have not been soft-deleted.
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.projects.List(ctx)
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*models.Project, error) {
	errs := validation.New()
	var title string
	if in.Title == nil {
		errs.Add("title", validation.MsgRequired)
	} else {
		var err error
		if title, err = s.checkTitle(ctx, errs, *in.Title, 0); err != nil {
			return nil, err
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	p, err := s.projects.Create(ctx, title)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, validation.Errors{"title": {MsgTitleTaken}}
		}
		return nil, fmt.Errorf("create project: %w", err)
	}

	if in.IsActive != nil && !*in.IsActive {
		return s.projects.Update(ctx, p.ID, repo.ProjectUpdate{IsActive: in.IsActive})
	}
	return p, nil
}

// Get also returns soft-deleted projects.
func (s *ProjectService) Get(ctx context.Context, id int) (*models.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, projectErr(err)
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id int, in ProjectInput) (*models.Project, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	errs := validation.New()
	update := repo.ProjectUpdate{IsActive: in.IsActive}
	if in.Title != nil {
		title, err := s.checkTitle(ctx, errs, *in.Title, id)
		if err != nil {
			return nil, err
		}
		update.Title = &title
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	p, err := s.projects.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, validation.Errors{"title": {MsgTitleTaken}}
		}
		return nil, projectErr(err)
	}
	return p, nil
}

// Delete is a soft delete. Deleting an already deleted project succeeds.
func (s *ProjectService) Delete(ctx context.Context, id int) error {
	if err := s.projects.SoftDelete(ctx, id); err != nil {
		return projectErr(err)
	}
	return nil
}

// checkTitle trims and validates title, adding field errors to errs. The
// returned error is reserved for store failures.
func (s *ProjectService) checkTitle(ctx context.Context, errs validation.Errors, raw string, excludeID int) (string, error) {
	title := strings.TrimSpace(raw)
	if !validation.NotBlank(errs, "title", title) {
		return title, nil
	}
	if !validation.MaxLength(errs, "title", title, MaxTitleLength) {
		return title, nil
	}
	taken, err := s.projects.TitleTaken(ctx, title, excludeID)
	if err != nil {
		return title, fmt.Errorf("check title: %w", err)
	}
	if taken {
		errs.Add("title", MsgTitleTaken)
	}
	return title, nil
}

func projectErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return &NotFoundError{Detail: MsgProjectNotFound}
	}
	return err
}
