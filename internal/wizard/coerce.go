package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Accepted layouts for date fields: HTML date and datetime-local inputs, RFC3339.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var errNotNumber = errors.New("not a number")

// Str returns the trimmed string form of a field.
func Str(d FormData, key string) string {
	switch v := d[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Present reports whether a field has a non-blank value.
func Present(d FormData, key string) bool { return Str(d, key) != "" }

// Number parses a numeric field. Blank values report ok=false with no error.
func Number(d FormData, key string) (n float64, ok bool, err error) {
	switch v := d[key].(type) {
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	}
	s := Str(d, key)
	if s == "" {
		return 0, false, nil
	}
	f, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return 0, false, errNotNumber
	}
	return f, true, nil
}

// Float coerces a numeric field, blank becomes 0.
func Float(d FormData, key string) (float64, error) {
	n, _, err := Number(d, key)
	if err != nil {
		return 0, &PayloadError{Field: key, Err: err}
	}
	return n, nil
}

// Int coerces a numeric field to an int, blank becomes 0.
func Int(d FormData, key string) (int, error) {
	n, err := Float(d, key)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// OptionalInt returns nil for blank values.
func OptionalInt(d FormData, key string) (*int, error) {
	n, ok, err := Number(d, key)
	if err != nil {
		return nil, &PayloadError{Field: key, Err: err}
	}
	if !ok {
		return nil, nil
	}
	i := int(n)
	return &i, nil
}

// OptionalFloat returns nil for blank values.
func OptionalFloat(d FormData, key string) (*float64, error) {
	n, ok, err := Number(d, key)
	if err != nil {
		return nil, &PayloadError{Field: key, Err: err}
	}
	if !ok {
		return nil, nil
	}
	return &n, nil
}

// Bool accepts real booleans and the usual checkbox strings.
func Bool(d FormData, key string) bool {
	switch v := d[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	}
	switch strings.ToLower(Str(d, key)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// List splits a comma separated field into trimmed, non-empty items.
// A []string or []any value is accepted as is.
func List(d FormData, key string) []string {
	out := []string{}
	switch v := d[key].(type) {
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		for _, s := range v {
			if str := strings.TrimSpace(fmt.Sprint(s)); str != "" {
				out = append(out, str)
			}
		}
		return out
	}
	for _, part := range strings.Split(Str(d, key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// JoinList is the inverse of List, used when seeding a form from an entity.
func JoinList(items []string) string { return strings.Join(items, ", ") }

// ParseDate parses a date-local string in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// OptionalDate returns nil for blank values.
func OptionalDate(d FormData, key string, loc *time.Location) (*time.Time, error) {
	s := Str(d, key)
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s, loc)
	if err != nil {
		return nil, &PayloadError{Field: key, Err: err}
	}
	return &t, nil
}

// Date requires a value.
func Date(d FormData, key string, loc *time.Location) (time.Time, error) {
	t, err := OptionalDate(d, key, loc)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, &PayloadError{Field: key, Err: errors.New("missing date")}
	}
	return *t, nil
}

// FormatDate renders a time for a date input. Midnight renders as a plain
// date; any other time keeps its clock so a round trip does not move it.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	h, m, s := t.Clock()
	switch {
	case h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0:
		return t.Format("2006-01-02")
	case s == 0 && t.Nanosecond() == 0:
		return t.Format("2006-01-02T15:04")
	}
	return t.Format(time.RFC3339Nano)
}
