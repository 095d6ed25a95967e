package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/timetrack/internal/validation"
)

// bodyError rejects a request body before any field is looked at.
type bodyError struct {
	status int
	detail string
}

func (e *bodyError) Error() string { return e.detail }

// form holds a decoded JSON object and collects per-field parse errors.
// Absent fields parse to nil; present but malformed fields add an error and
// also parse to nil.
type form struct {
	raw  map[string]json.RawMessage
	errs validation.Errors
}

// readForm decodes the request body as a JSON object. An empty body is an
// empty object.
func readForm(r *http.Request) (*form, error) {
	f := &form{raw: map[string]json.RawMessage{}, errs: validation.New()}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, &bodyError{status: http.StatusRequestEntityTooLarge, detail: "Request body too large."}
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return f, nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &bodyError{status: http.StatusBadRequest, detail: "JSON parse error - " + err.Error()}
	}
	if _, ok := v.(map[string]interface{}); !ok {
		return nil, validation.Errors{"non_field_errors": {
			fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", jsonKind(v)),
		}}
	}
	if err := json.Unmarshal(data, &f.raw); err != nil {
		return nil, &bodyError{status: http.StatusBadRequest, detail: "JSON parse error - " + err.Error()}
	}
	return f, nil
}

// Err returns the collected parse errors, or nil.
func (f *form) Err() error {
	return f.errs.Err()
}

// value returns the raw field, or ok=false when the field is absent or null.
// A null adds the "may not be null" error.
func (f *form) value(field string) (interface{}, bool) {
	raw, ok := f.raw[field]
	if !ok {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		f.errs.Add(field, validation.MsgInvalidString)
		return nil, false
	}
	if v == nil {
		f.errs.Add(field, validation.MsgNull)
		return nil, false
	}
	return v, true
}

// String accepts strings and numbers.
func (f *form) String(field string) *string {
	v, ok := f.value(field)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		return &t
	case json.Number:
		s := t.String()
		return &s
	}
	f.errs.Add(field, validation.MsgInvalidString)
	return nil
}

// Int accepts integers, integral floats and strings holding an integer.
func (f *form) Int(field string) *int {
	v, ok := f.value(field)
	if !ok {
		return nil
	}
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		f.errs.Add(field, validation.MsgInvalidInteger)
		return nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		f.errs.Add(field, validation.MsgInvalidInteger)
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if math.IsInf(fl, 0) || fl != math.Trunc(fl) {
			f.errs.Add(field, validation.MsgInvalidInteger)
			return nil
		}
		if fl > math.MaxInt32 {
			f.errs.Add(field, validation.MaxValueMsg(math.MaxInt32))
			return nil
		}
		if fl < math.MinInt32 {
			f.errs.Add(field, validation.MinValueMsg(math.MinInt32))
			return nil
		}
		n = int64(fl)
	}
	switch {
	case n > math.MaxInt32:
		f.errs.Add(field, validation.MaxValueMsg(math.MaxInt32))
		return nil
	case n < math.MinInt32:
		f.errs.Add(field, validation.MinValueMsg(math.MinInt32))
		return nil
	}
	out := int(n)
	return &out
}

// Bool accepts JSON booleans and the usual textual spellings.
func (f *form) Bool(field string) *bool {
	v, ok := f.value(field)
	if !ok {
		return nil
	}
	var b bool
	switch t := v.(type) {
	case bool:
		return &t
	case json.Number, string:
		switch strings.ToLower(fmt.Sprint(t)) {
		case "true", "1", "yes", "on", "t", "y":
			b = true
			return &b
		case "false", "0", "no", "off", "f", "n":
			return &b
		}
	}
	f.errs.Add(field, validation.MsgInvalidBoolean)
	return nil
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// DateTime parses an ISO 8601 date-time. Values without an offset are UTC.
func (f *form) DateTime(field string) *time.Time {
	v, ok := f.value(field)
	if !ok {
		return nil
	}
	if s, isStr := v.(string); isStr {
		s = strings.TrimSpace(s)
		for _, layout := range dateTimeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
	}
	f.errs.Add(field, validation.MsgInvalidDateTime)
	return nil
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case []interface{}:
		return "list"
	case string:
		return "str"
	case float64:
		return "number"
	case bool:
		return "bool"
	}
	return "null"
}

// pathID returns the numeric {id} route parameter. ok is false for anything
// that is not an integer; callers answer those with their not-found message.
func pathID(r *http.Request) (int, bool) {
	return parseInt32(chi.URLParam(r, "id"))
}

// parseInt32 parses a decimal integer that fits a Postgres INTEGER column.
func parseInt32(s string) (int, bool) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// queryInt reads an optional integer query parameter, falling back to def
// when it is absent or outside [min, max].
func queryInt(r *http.Request, name string, def, min, max int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < min || v > max {
		return def
	}
	return v
}
