package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrSubmitting   = errors.New("wizard: submit already in flight")
	ErrCompleted    = errors.New("wizard: already submitted")
	ErrNotFinalStep = errors.New("wizard: submit is only allowed on the final step")
	ErrUnknownField = errors.New("wizard: unknown field")
	ErrNotFound     = errors.New("wizard: session not found")
)

// ValidationError carries the field errors of a refused transition or submit.
type ValidationError struct {
	Step   int
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("wizard: step %d invalid: %s", e.Step, strings.Join(keys, ", "))
}

// AsValidation unwraps a *ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// PayloadError is returned by Schema.Payload when a value that passed
// validation still cannot be coerced.
type PayloadError struct {
	Field string
	Err   error
}

func (e *PayloadError) Error() string { return fmt.Sprintf("field %s: %v", e.Field, e.Err) }

func (e *PayloadError) Unwrap() error { return e.Err }
