// Package validation turns gin binding errors into a field map.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"pehlione.com/admin/internal/shared/apperr"
)

type FieldErrors map[string]string

// FromBindError keys failures by the json (or form) tag of dst's fields.
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fieldKey(dst, fe.StructField())] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	// malformed body, type mismatch
	out["_"] = "The request body is invalid."
	return out
}

// BindError wraps a binding failure as a public invalid error.
func BindError(err error, dst any) error {
	return apperr.InvalidErr("The request is invalid.", FromBindError(err, dst)).WithCause(err)
}

func fieldKey(dst any, structField string) string {
	t := reflect.TypeOf(dst)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return lowerFirst(structField)
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return lowerFirst(structField)
	}
	for _, key := range []string{"json", "form"} {
		tag, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return lowerFirst(structField)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid e-mail address."
	case "min":
		return "Must be at least " + param + "."
	case "max":
		return "Must be at most " + param + "."
	case "oneof":
		return "Must be one of: " + param + "."
	default:
		return "Invalid value."
	}
}
