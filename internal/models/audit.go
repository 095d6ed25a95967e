package models

import "time"

// AuditAction is the kind of write recorded in the audit log.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// AuditResource names the table a logged write touched.
type AuditResource string

const (
	ResourceProject   AuditResource = "project"
	ResourceTimeEntry AuditResource = "time_entry"
)

// AuditEntry is one write made by a user through the API. Entries are
// append-only and visible only to the user who made the change.
type AuditEntry struct {
	ID           int           `json:"id"`
	UserID       int           `json:"user_id"`
	Action       AuditAction   `json:"action"`
	ResourceType AuditResource `json:"resource_type"`
	ResourceID   int           `json:"resource_id"`
	Details      string        `json:"details,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}
