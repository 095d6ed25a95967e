package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/crucial707/timetrack/internal/models"
)

// TimeEntryRepo persists time entries. Every read and write is scoped to the
// owning user.
type TimeEntryRepo struct {
	DB *sql.DB
}

func NewTimeEntryRepo(db *sql.DB) *TimeEntryRepo {
	return &TimeEntryRepo{DB: db}
}

// TimeEntryUpdate carries the fields of a partial update. Nil means unchanged.
type TimeEntryUpdate struct {
	ProjectID       *int
	DateWorked      *time.Time
	WorkDescription *string
	Hours           *int
}

const dateLayout = "2006-01-02"

// entrySelect joins the project so project_title comes back with the row.
// It expects the entry relation to be aliased t.
const entrySelect = `
	SELECT t.id, t.project_id, t.user_id, t.date_worked, t.work_description,
	       t.hours, p.title, t.is_active, t.created_at, t.updated_at
`

// ========================
// CREATE
// ========================

func (r *TimeEntryRepo) Create(ctx context.Context, e models.TimeEntry) (*models.TimeEntry, error) {
	query := `
		WITH t AS (
			INSERT INTO time_entries (user_id, project_id, date_worked, work_description, hours)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)` + entrySelect + `
		FROM t JOIN projects p ON p.id = t.project_id
	`
	out, err := scanEntry(r.DB.QueryRowContext(ctx, query,
		e.UserID, e.ProjectID, e.DateWorked, e.WorkDescription, e.Hours))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// ========================
// GET FOR USER
// ========================

// GetForUser returns ErrNotFound both when the entry does not exist and when
// it belongs to someone else.
func (r *TimeEntryRepo) GetForUser(ctx context.Context, userID, id int) (*models.TimeEntry, error) {
	query := entrySelect + `
		FROM time_entries t JOIN projects p ON p.id = t.project_id
		WHERE t.id = $1 AND t.user_id = $2
	`
	out, err := scanEntry(r.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// ========================
// LIST FOR USER
// ========================

func (r *TimeEntryRepo) ListForUser(ctx context.Context, userID int, f models.TimeEntryFilter) ([]models.TimeEntry, error) {
	where := []string{"t.user_id = $1"}
	args := []any{userID}

	if f.StartDate != nil {
		args = append(args, f.StartDate.Format(dateLayout))
		where = append(where, fmt.Sprintf("(t.date_worked AT TIME ZONE 'UTC')::date >= $%d::date", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, f.EndDate.Format(dateLayout))
		where = append(where, fmt.Sprintf("(t.date_worked AT TIME ZONE 'UTC')::date <= $%d::date", len(args)))
	}
	if f.ProjectID != nil {
		args = append(args, *f.ProjectID)
		where = append(where, fmt.Sprintf("t.project_id = $%d", len(args)))
	}

	query := entrySelect + `
		FROM time_entries t JOIN projects p ON p.id = t.project_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY t.id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.TimeEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// ========================
// UPDATE FOR USER
// ========================

func (r *TimeEntryRepo) UpdateForUser(ctx context.Context, userID, id int, u TimeEntryUpdate) (*models.TimeEntry, error) {
	query := `
		WITH t AS (
			UPDATE time_entries
			SET project_id = COALESCE($3, project_id),
			    date_worked = COALESCE($4, date_worked),
			    work_description = COALESCE($5, work_description),
			    hours = COALESCE($6, hours),
			    updated_at = now()
			WHERE id = $1 AND user_id = $2
			RETURNING *
		)` + entrySelect + `
		FROM t JOIN projects p ON p.id = t.project_id
	`
	out, err := scanEntry(r.DB.QueryRowContext(ctx, query,
		id, userID, u.ProjectID, u.DateWorked, u.WorkDescription, u.Hours))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// ========================
// DELETE FOR USER
// ========================

// DeleteForUser physically removes the row.
func (r *TimeEntryRepo) DeleteForUser(ctx context.Context, userID, id int) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM time_entries WHERE id = $1 AND user_id = $2`, id, userID)
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

func scanEntry(row scanner) (*models.TimeEntry, error) {
	var e models.TimeEntry
	if err := row.Scan(
		&e.ID,
		&e.ProjectID,
		&e.UserID,
		&e.DateWorked,
		&e.WorkDescription,
		&e.Hours,
		&e.ProjectTitle,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}
