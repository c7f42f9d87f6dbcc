package hub

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/internal/shared/paging"
	"pehlione.com/admin/internal/wizard"
)

// Service is the CRUD surface every entity service exposes.
type Service[E, P any] interface {
	List(ctx context.Context, p paging.Params) (paging.Result[E], error)
	Get(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, in P) (E, error)
	Update(ctx context.Context, id string, in P) (E, error)
	Delete(ctx context.Context, id string) error
}

// Action is a bulk action applied to one id.
type Action func(ctx context.Context, id string) error

// CRUD adapts a Service and its wizard schemas to Dashboard and Resource.
type CRUD[E, P any] struct {
	Service    Service[E, P]
	CreateForm *wizard.Schema[P]
	// EditForm defaults to CreateForm.
	EditForm *wizard.Schema[P]
	Seed     func(E) wizard.FormData

	// Row maps an entity to its list row; nil lists entities as is.
	Row func(E) any
	// View builds the detail view; nil shows the entity as is.
	View func(ctx context.Context, e E) (any, error)

	// Actions are bulk actions besides "delete".
	Actions map[string]Action
}

const actionDelete = "delete"

var (
	_ Dashboard = (*CRUD[struct{}, struct{}])(nil)
	_ Resource  = (*CRUD[struct{}, struct{}])(nil)
)

func (c *CRUD[E, P]) List(ctx context.Context, p paging.Params) (paging.Result[any], error) {
	res, err := c.Service.List(ctx, p)
	if err != nil {
		return paging.Result[any]{}, err
	}
	return paging.Map(res, func(e E) any {
		if c.Row != nil {
			return c.Row(e)
		}
		return e
	}), nil
}

func (c *CRUD[E, P]) Detail(ctx context.Context, id string) (any, error) {
	e, err := c.Service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.View != nil {
		return c.View(ctx, e)
	}
	return e, nil
}

func (c *CRUD[E, P]) StartCreate(context.Context) (wizard.Session, error) {
	return wizard.New(c.CreateForm, func(ctx context.Context, in P) error {
		_, err := c.Service.Create(ctx, in)
		return err
	}), nil
}

func (c *CRUD[E, P]) StartEdit(ctx context.Context, id string) (wizard.Session, error) {
	e, err := c.Service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	schema := c.EditForm
	if schema == nil {
		schema = c.CreateForm
	}
	return wizard.NewEdit(schema, id, c.Seed(e), func(ctx context.Context, in P) error {
		_, err := c.Service.Update(ctx, id, in)
		return err
	}), nil
}

func (c *CRUD[E, P]) Delete(ctx context.Context, id string) error {
	return c.Service.Delete(ctx, id)
}

func (c *CRUD[E, P]) BulkActions() []string {
	out := []string{actionDelete}
	names := make([]string, 0, len(c.Actions))
	for n := range c.Actions {
		names = append(names, n)
	}
	sort.Strings(names)
	return append(out, names...)
}

func (c *CRUD[E, P]) Bulk(ctx context.Context, req BulkRequest) (BulkResult, error) {
	act := c.Actions[req.Action]
	if req.Action == actionDelete {
		act = c.Service.Delete
	}
	if act == nil {
		return BulkResult{}, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}

	res := BulkResult{Action: req.Action, Succeeded: []string{}, Failed: map[string]string{}}
	seen := make([]string, 0, len(req.IDs))
	for _, id := range req.IDs {
		if id == "" || slices.Contains(seen, id) {
			continue
		}
		seen = append(seen, id)
		if err := ctx.Err(); err != nil {
			res.Failed[id] = err.Error()
			continue
		}
		if err := act(ctx, id); err != nil {
			res.Failed[id] = apperr.PublicMessage(err)
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}
	return res, nil
}

func (c *CRUD[E, P]) Get(ctx context.Context, id string) (any, error) {
	return c.Service.Get(ctx, id)
}

func (c *CRUD[E, P]) NewPayload() any { return new(P) }

func (c *CRUD[E, P]) Create(ctx context.Context, payload any) (any, error) {
	in, err := c.payload(payload)
	if err != nil {
		return nil, err
	}
	return c.Service.Create(ctx, in)
}

func (c *CRUD[E, P]) Update(ctx context.Context, id string, payload any) (any, error) {
	in, err := c.payload(payload)
	if err != nil {
		return nil, err
	}
	return c.Service.Update(ctx, id, in)
}

func (c *CRUD[E, P]) payload(v any) (P, error) {
	switch p := v.(type) {
	case *P:
		return *p, nil
	case P:
		return p, nil
	}
	var zero P
	return zero, fmt.Errorf("hub: payload %T is not %T", v, zero)
}
