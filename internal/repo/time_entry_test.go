package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/timetrack/internal/models"
	"github.com/lib/pq"
)

var entryCols = []string{"id", "project_id", "user_id", "date_worked", "work_description", "hours", "title", "is_active", "created_at", "updated_at"}

func TestTimeEntryRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	worked := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	now := time.Now()
	mock.ExpectQuery(`WITH t AS \(\s*INSERT INTO time_entries \(user_id, project_id, date_worked, work_description, hours\)`).
		WithArgs(1, 5, worked, "Design review", 3).
		WillReturnRows(sqlmock.NewRows(entryCols).AddRow(10, 5, 1, worked, "Design review", 3, "Website", true, now, now))

	e, err := NewTimeEntryRepo(db).Create(context.Background(), models.TimeEntry{
		UserID: 1, ProjectID: 5, DateWorked: worked, WorkDescription: "Design review", Hours: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID != 10 || e.ProjectTitle != "Website" || e.UserID != 1 {
		t.Errorf("unexpected entry: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTimeEntryRepo_Create_MissingProject(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO time_entries`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "time_entries_project_id_fkey"})

	_, err = NewTimeEntryRepo(db).Create(context.Background(), models.TimeEntry{UserID: 1, ProjectID: 404})
	if !errors.Is(err, ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey, got %v", err)
	}
}

func TestTimeEntryRepo_GetForUser_ScopedToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`WHERE t.id = \$1 AND t.user_id = \$2`).
		WithArgs(10, 2).
		WillReturnError(sql.ErrNoRows)

	_, err = NewTimeEntryRepo(db).GetForUser(context.Background(), 2, 10)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTimeEntryRepo_ListForUser_NoFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`WHERE t.user_id = \$1\s+ORDER BY t.id`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(entryCols).
			AddRow(1, 5, 1, now, "a", 1, "Website", true, now, now).
			AddRow(3, 5, 1, now, "b", 2, "Website", true, now, now))

	list, err := NewTimeEntryRepo(db).ListForUser(context.Background(), 1, models.TimeEntryFilter{})
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(list) != 2 || list[1].ID != 3 {
		t.Errorf("unexpected list: %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTimeEntryRepo_ListForUser_AllFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	project := 5

	mock.ExpectQuery(`WHERE t.user_id = \$1 AND \(t.date_worked AT TIME ZONE 'UTC'\)::date >= \$2::date AND \(t.date_worked AT TIME ZONE 'UTC'\)::date <= \$3::date AND t.project_id = \$4`).
		WithArgs(1, "2024-03-01", "2024-03-07", 5).
		WillReturnRows(sqlmock.NewRows(entryCols))

	list, err := NewTimeEntryRepo(db).ListForUser(context.Background(), 1, models.TimeEntryFilter{
		StartDate: &start, EndDate: &end, ProjectID: &project,
	})
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no entries, got %d", len(list))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTimeEntryRepo_ListForUser_OnlyEndDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	end := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE t.user_id = \$1 AND \(t.date_worked AT TIME ZONE 'UTC'\)::date <= \$2::date\s+ORDER BY`).
		WithArgs(1, "2024-03-07").
		WillReturnRows(sqlmock.NewRows(entryCols))

	if _, err := NewTimeEntryRepo(db).ListForUser(context.Background(), 1, models.TimeEntryFilter{EndDate: &end}); err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTimeEntryRepo_UpdateForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	hours := 5
	mock.ExpectQuery(`UPDATE time_entries[\s\S]+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(10, 1, nil, nil, nil, 5).
		WillReturnRows(sqlmock.NewRows(entryCols).AddRow(10, 5, 1, now, "a", 5, "Website", true, now, now))

	e, err := NewTimeEntryRepo(db).UpdateForUser(context.Background(), 1, 10, TimeEntryUpdate{Hours: &hours})
	if err != nil {
		t.Fatalf("UpdateForUser: %v", err)
	}
	if e.Hours != 5 {
		t.Errorf("unexpected entry: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTimeEntryRepo_DeleteForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM time_entries WHERE id = \$1 AND user_id = \$2`).
		WithArgs(10, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM time_entries`).
		WithArgs(10, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewTimeEntryRepo(db)
	if err := repo.DeleteForUser(context.Background(), 1, 10); err != nil {
		t.Fatalf("DeleteForUser: %v", err)
	}
	if err := repo.DeleteForUser(context.Background(), 2, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
