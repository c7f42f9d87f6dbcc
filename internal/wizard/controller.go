package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// SubmitFunc receives the coerced payload once the final step validates.
type SubmitFunc[P any] func(ctx context.Context, payload P) error

// Session is the type-erased view of a Controller, used by the HTTP layer
// and the session store.
type Session interface {
	Change(field string, value any) error
	Blur(field string) error
	Next() error
	Back() error
	Submit(ctx context.Context) error
	State() State
	Known(field string) bool
}

// State is a snapshot of a wizard.
type State struct {
	Entity     string      `json:"entity"`
	Mode       string      `json:"mode"`
	TargetID   string      `json:"targetId,omitempty"`
	Step       int         `json:"step"`
	StepName   string      `json:"stepName"`
	StepCount  int         `json:"stepCount"`
	Steps      []string    `json:"steps"`
	Fields     []string    `json:"fields"`
	Data       FormData    `json:"data"`
	Errors     FieldErrors `json:"errors"`
	Submitting bool        `json:"submitting"`
	Completed  bool        `json:"completed"`
}

// Controller owns the form data, field errors and step index of one wizard.
// It is safe for concurrent use; at most one submit runs at a time.
type Controller[P any] struct {
	mu     sync.Mutex
	schema *Schema[P]
	submit SubmitFunc[P]
	target string

	data       FormData
	errs       FieldErrors
	step       int
	submitting bool
	completed  bool
}

// New starts a create wizard seeded with the schema defaults.
func New[P any](schema *Schema[P], submit SubmitFunc[P]) *Controller[P] {
	return &Controller[P]{
		schema: schema,
		submit: submit,
		data:   schema.Initial(nil),
		errs:   FieldErrors{},
	}
}

// NewEdit starts an edit wizard for target seeded from an existing entity.
func NewEdit[P any](schema *Schema[P], target string, seed FormData, submit SubmitFunc[P]) *Controller[P] {
	c := New(schema, submit)
	c.target = target
	c.data = schema.Initial(seed)
	return c
}

// Change merges one field. A recorded error on that field is cleared
// without re-validating.
func (c *Controller[P]) Change(field string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.completed {
		return ErrCompleted
	}
	if !c.schema.Known(field) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	c.data[field] = value
	delete(c.errs, field)
	return nil
}

// Blur re-validates the current step and updates the entry of field only.
// Fields outside the current step are left alone.
func (c *Controller[P]) Blur(field string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.completed {
		return ErrCompleted
	}
	if !c.schema.Known(field) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if !c.schema.Steps[c.step].owns(field) {
		return nil
	}
	errs := c.schema.Validate(c.step, c.data)
	if msg, ok := errs[field]; ok {
		c.errs[field] = msg
	} else {
		delete(c.errs, field)
	}
	return nil
}

// Known reports whether field belongs to the wizard's schema.
func (c *Controller[P]) Known(field string) bool { return c.schema.Known(field) }

// Next advances one step when the current step validates.
func (c *Controller[P]) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(); err != nil {
		return err
	}
	errs := c.schema.Validate(c.step, c.data)
	if len(errs) > 0 {
		c.errs = errs
		return &ValidationError{Step: c.step, Fields: errs.Clone()}
	}
	c.errs = FieldErrors{}
	if c.step < c.schema.LastStep() {
		c.step++
	}
	return nil
}

// Back moves one step back without validating. Stays at 0.
func (c *Controller[P]) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(); err != nil {
		return err
	}
	if c.step > 0 {
		c.step--
	}
	return nil
}

// Submit validates the final step, builds the payload and hands it to the
// submit callback. The lock is released while the callback runs; the
// submitting flag keeps other transitions out.
func (c *Controller[P]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if err := c.guard(); err != nil {
		c.mu.Unlock()
		return err
	}
	last := c.schema.LastStep()
	if c.step != last {
		c.mu.Unlock()
		return ErrNotFinalStep
	}
	if errs := c.schema.Validate(last, c.data); len(errs) > 0 {
		c.errs = errs
		c.mu.Unlock()
		return &ValidationError{Step: last, Fields: errs.Clone()}
	}
	payload, err := c.schema.Payload(c.data.Clone())
	if err != nil {
		var pe *PayloadError
		if errors.As(err, &pe) {
			c.errs = FieldErrors{pe.Field: "Invalid value"}
			c.mu.Unlock()
			return &ValidationError{Step: last, Fields: c.errs.Clone()}
		}
		c.mu.Unlock()
		return fmt.Errorf("wizard: build %s payload: %w", c.schema.Entity, err)
	}
	c.submitting = true
	c.mu.Unlock()

	err = c.submit(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		return fmt.Errorf("wizard: submit %s: %w", c.schema.Entity, err)
	}
	c.completed = true
	c.errs = FieldErrors{}
	return nil
}

// State returns a snapshot safe to serialize.
func (c *Controller[P]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, len(c.schema.Steps))
	for i, s := range c.schema.Steps {
		names[i] = s.Name
	}
	mode := "create"
	if c.target != "" {
		mode = "edit"
	}
	cur := c.schema.Steps[c.step]
	return State{
		Entity:     c.schema.Entity,
		Mode:       mode,
		TargetID:   c.target,
		Step:       c.step,
		StepName:   cur.Name,
		StepCount:  len(c.schema.Steps),
		Steps:      names,
		Fields:     append([]string(nil), cur.Fields...),
		Data:       c.data.Clone(),
		Errors:     c.errs.Clone(),
		Submitting: c.submitting,
		Completed:  c.completed,
	}
}

func (c *Controller[P]) guard() error {
	if c.completed {
		return ErrCompleted
	}
	if c.submitting {
		return ErrSubmitting
	}
	return nil
}
