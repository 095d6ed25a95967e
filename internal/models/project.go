package models

import "time"

// Project is shared by every authenticated user. Deleting it only sets
// IsDeleted; the row stays so that time entries keep their reference.
type Project struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	IsDeleted bool      `json:"is_deleted"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
