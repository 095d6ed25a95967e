// Package validation collects field-level errors in the shape clients see
// on a 400 response: field name to a list of messages.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field error vocabulary shared by every endpoint.
const (
	MsgRequired        = "This field is required."
	MsgBlank           = "This field may not be blank."
	MsgNull            = "This field may not be null."
	MsgInvalidString   = "Not a valid string."
	MsgInvalidEmail    = "Enter a valid email address."
	MsgInvalidInteger  = "A valid integer is required."
	MsgInvalidBoolean  = "Must be a valid boolean."
	MsgInvalidDate     = "Enter a valid date."
	MsgInvalidNumber   = "Enter a number."
	MsgInvalidDateTime = "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."
)

var validate = validator.New()

// Errors maps a field name to its messages. A nil or empty Errors means valid.
type Errors map[string][]string

func New() Errors {
	return make(Errors)
}

// Add appends msg to field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

// Err returns e as an error, or nil when there is nothing to report.
func (e Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// MaxLengthMsg is the message for strings longer than n characters.
func MaxLengthMsg(n int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", n)
}

// MinValueMsg is the message for integers below min.
func MinValueMsg(min int) string {
	return fmt.Sprintf("Ensure this value is greater than or equal to %d.", min)
}

// MaxValueMsg is the message for integers above max.
func MaxValueMsg(max int) string {
	return fmt.Sprintf("Ensure this value is less than or equal to %d.", max)
}

// NotBlank reports a blank (whitespace only) value. It returns false when
// the value was rejected.
func NotBlank(e Errors, field, value string) bool {
	if strings.TrimSpace(value) == "" {
		e.Add(field, MsgBlank)
		return false
	}
	return true
}

// MaxLength counts characters, not bytes.
func MaxLength(e Errors, field, value string, n int) bool {
	if utf8.RuneCountInString(value) > n {
		e.Add(field, MaxLengthMsg(n))
		return false
	}
	return true
}

func Email(e Errors, field, value string) bool {
	if err := validate.Var(value, "required,email"); err != nil {
		e.Add(field, MsgInvalidEmail)
		return false
	}
	return true
}

func MinInt(e Errors, field string, value, min int) bool {
	if value < min {
		e.Add(field, MinValueMsg(min))
		return false
	}
	return true
}
