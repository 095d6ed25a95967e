package models

import "time"

// TimeEntry is a block of work logged by one user against one project.
type TimeEntry struct {
	ID              int       `json:"id"`
	ProjectID       int       `json:"project"`
	UserID          int       `json:"user"`
	DateWorked      time.Time `json:"date_worked"`
	WorkDescription string    `json:"work_description"`
	Hours           int       `json:"hours"`
	ProjectTitle    string    `json:"project_title"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TimeEntryFilter narrows a user's entries. Nil fields impose no constraint.
// Dates are compared against the UTC calendar date of DateWorked, inclusive.
type TimeEntryFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	ProjectID *int
}
