package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/timetrack/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type ProjectRepo struct {
	DB *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{DB: db}
}

// ProjectUpdate carries the fields of a partial update. Nil means unchanged.
type ProjectUpdate struct {
	Title    *string
	IsActive *bool
}

const projectColumns = `id, title, is_deleted, is_active, created_at, updated_at`

// ========================
// CREATE PROJECT
// ========================

// Create inserts a project. The projects_title_key constraint is the source
// of truth for title uniqueness and surfaces as ErrDuplicate.
func (r *ProjectRepo) Create(ctx context.Context, title string) (*models.Project, error) {
	p, err := scanProject(r.DB.QueryRowContext(ctx,
		`INSERT INTO projects (title)
		 VALUES ($1)
		 RETURNING `+projectColumns,
		title,
	))
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// ========================
// GET PROJECT BY ID
// ========================

// GetByID returns the project whether or not it has been soft-deleted.
func (r *ProjectRepo) GetByID(ctx context.Context, id int) (*models.Project, error) {
	p, err := scanProject(r.DB.QueryRowContext(ctx,
		`SELECT `+projectColumns+`
		 FROM projects
		 WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// ========================
// EXISTS
// ========================

func (r *ProjectRepo) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`, id,
	).Scan(&ok)
	return ok, err
}

// ========================
// TITLE TAKEN
// ========================

// TitleTaken reports whether another project, deleted or not, already uses
// title. excludeID skips the project being updated; pass 0 on create.
func (r *ProjectRepo) TitleTaken(ctx context.Context, title string, excludeID int) (bool, error) {
	var taken bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM projects WHERE title = $1 AND id <> $2)`,
		title, excludeID,
	).Scan(&taken)
	return taken, err
}

// ========================
// UPDATE PROJECT BY ID
// ========================

func (r *ProjectRepo) Update(ctx context.Context, id int, u ProjectUpdate) (*models.Project, error) {
	p, err := scanProject(r.DB.QueryRowContext(ctx,
		`UPDATE projects
		 SET title = COALESCE($2, title),
		     is_active = COALESCE($3, is_active),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING `+projectColumns,
		id, u.Title, u.IsActive,
	))
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// ========================
// SOFT DELETE PROJECT BY ID
// ========================

// SoftDelete flags the project as deleted. The row is never removed.
func (r *ProjectRepo) SoftDelete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE projects SET is_deleted = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ========================
// LIST ACTIVE (NOT DELETED) PROJECTS
// ========================

func (r *ProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE is_deleted = FALSE ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func scanProject(row scanner) (*models.Project, error) {
	var p models.Project
	if err := row.Scan(&p.ID, &p.Title, &p.IsDeleted, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
