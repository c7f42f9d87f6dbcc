// Package wizard implements the linear multi-step form used by every hub:
// per-step validation, optimistic error clearing, and a single guarded submit
// that hands a typed payload to the caller.
package wizard

import (
	"maps"
	"strings"
)

// FormData holds the raw field values of one wizard. Values are strings,
// float64 (JSON numbers), bools, or date-like strings.
type FormData map[string]any

// Clone returns a shallow copy; values are scalars so this is a full copy.
func (d FormData) Clone() FormData {
	out := make(FormData, len(d))
	maps.Copy(out, d)
	return out
}

// FieldErrors maps a field name to a human readable message.
type FieldErrors map[string]string

func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	maps.Copy(out, e)
	return out
}

// Merge copies entries from other that are not already set.
func (e FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		if _, ok := e[k]; !ok {
			e[k] = v
		}
	}
}

// Step is one page of a wizard.
type Step struct {
	Name     string
	Fields   []string
	Validate func(FormData) FieldErrors
}

func (s Step) owns(field string) bool {
	for _, f := range s.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Schema describes a wizard for one entity and how to turn its form data
// into the create/update payload P.
type Schema[P any] struct {
	Entity   string
	Steps    []Step
	Defaults func() FormData
	Payload  func(FormData) (P, error)
}

func (s *Schema[P]) StepCount() int { return len(s.Steps) }

func (s *Schema[P]) LastStep() int { return len(s.Steps) - 1 }

// Validate runs the validator of one step against a private copy of data.
// Out of range steps yield no errors.
func (s *Schema[P]) Validate(step int, data FormData) FieldErrors {
	if step < 0 || step >= len(s.Steps) || s.Steps[step].Validate == nil {
		return FieldErrors{}
	}
	errs := s.Steps[step].Validate(data.Clone())
	if errs == nil {
		return FieldErrors{}
	}
	return errs
}

// ValidateAll runs every step. Used where a payload arrives in one piece
// (REST create/update, bulk import).
func (s *Schema[P]) ValidateAll(data FormData) FieldErrors {
	out := FieldErrors{}
	for i := range s.Steps {
		out.Merge(s.Validate(i, data))
	}
	return out
}

// Fields lists every field known to the schema, in step order.
func (s *Schema[P]) Fields() []string {
	var out []string
	for _, st := range s.Steps {
		out = append(out, st.Fields...)
	}
	return out
}

// Known reports whether field belongs to any step.
func (s *Schema[P]) Known(field string) bool {
	for _, st := range s.Steps {
		if st.owns(field) {
			return true
		}
	}
	return false
}

// Initial builds the starting form data: defaults overlaid by seed.
func (s *Schema[P]) Initial(seed FormData) FormData {
	data := FormData{}
	if s.Defaults != nil {
		maps.Copy(data, s.Defaults())
	}
	for k, v := range seed {
		if str, ok := v.(string); ok && strings.TrimSpace(str) == "" {
			if _, has := data[k]; has {
				continue
			}
		}
		data[k] = v
	}
	return data
}
