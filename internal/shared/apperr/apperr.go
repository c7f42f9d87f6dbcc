// Package apperr carries errors that are safe to show to admin users
// alongside the internal cause that only reaches the logs.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	Invalid      Kind = "invalid"
	NotFound     Kind = "not_found"
	Unauthorized Kind = "unauthorized"
	Forbidden    Kind = "forbidden"
	Conflict     Kind = "conflict"
	Internal     Kind = "internal"
)

var statusByKind = map[Kind]int{
	Invalid:      http.StatusBadRequest,
	NotFound:     http.StatusNotFound,
	Unauthorized: http.StatusUnauthorized,
	Forbidden:    http.StatusForbidden,
	Conflict:     http.StatusConflict,
	Internal:     http.StatusInternalServerError,
}

const genericMsg = "Something went wrong."

type AppError struct {
	Kind      Kind
	PublicMsg string            // shown to the admin user
	Fields    map[string]string // form field -> message
	Err       error             // logged only
}

func (e *AppError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.PublicMsg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.PublicMsg)
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithCause attaches an internal cause to a public error.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

func newErr(k Kind, msg string) *AppError { return &AppError{Kind: k, PublicMsg: msg} }

func InvalidErr(publicMsg string, fields map[string]string) *AppError {
	e := newErr(Invalid, publicMsg)
	e.Fields = fields
	return e
}

func NotFoundErr(publicMsg string) *AppError     { return newErr(NotFound, publicMsg) }
func UnauthorizedErr(publicMsg string) *AppError { return newErr(Unauthorized, publicMsg) }
func ForbiddenErr(publicMsg string) *AppError    { return newErr(Forbidden, publicMsg) }
func ConflictErr(publicMsg string) *AppError     { return newErr(Conflict, publicMsg) }

// Wrap hides an internal error behind the generic message. Errors that are
// already public pass through.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if ae, ok := As(err); ok {
		return ae
	}
	return &AppError{Kind: Internal, PublicMsg: genericMsg, Err: err}
}

func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf reports Internal for anything that is not an *AppError.
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return Internal
}

func Is(err error, k Kind) bool { return err != nil && KindOf(err) == k }

func HTTPStatus(err error) int {
	if s, ok := statusByKind[KindOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func PublicMessage(err error) string {
	if ae, ok := As(err); ok && ae.PublicMsg != "" {
		return ae.PublicMsg
	}
	return genericMsg
}
