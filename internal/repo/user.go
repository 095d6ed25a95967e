package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/timetrack/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, username, email, password_hash, is_active, created_at`

// ==========================
// Create User
// ==========================

// Create inserts a user. A clash on the case-insensitive username or email
// indexes returns ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, username, email, passwordHash))
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// ==========================
// Username Taken
// ==========================

// UsernameTaken reports whether value is already used as a username or email,
// ignoring case.
func (r *UserRepo) UsernameTaken(ctx context.Context, value string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE lower(username) = lower($1) OR lower(email) = lower($1)
		)
	`
	var taken bool
	if err := r.DB.QueryRowContext(ctx, query, value).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// ==========================
// Get By Username
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE lower(username) = lower($1)
	`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
