// Package service holds the business rules of the API: who may see what,
// which fields are valid, and how store errors become client errors.
package service

import "fmt"

// Client-facing messages.
const (
	MsgNoActiveAccount   = "No active account found with the given credentials"
	MsgTokenInvalid      = "Token is invalid or expired"
	CodeTokenNotValid    = "token_not_valid"
	MsgNoActiveForToken  = "No active account found for the given token."
	CodeNoActiveAccount  = "no_active_account"
	MsgUsernameTaken     = "This email/username has already been taken."
	MsgTitleTaken        = "Project title is already taken."
	MsgProjectNotFound   = "No Project matches the given query."
	MsgTimeEntryNotFound = "No TimeEntry matches the given query."
)

// AuthError is returned when credentials or tokens are rejected. It maps to 401.
type AuthError struct {
	Detail string
	Code   string
}

func (e *AuthError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("authentication failed (%s): %s", e.Code, e.Detail)
	}
	return "authentication failed: " + e.Detail
}

// NotFoundError maps to 404. Detail never says why the lookup failed.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Detail
}

func invalidPKMsg(id int) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}
