// Package hub binds entity services to the admin dashboard: list, detail,
// create/edit wizards, delete and bulk actions.
package hub

import (
	"context"
	"errors"

	"pehlione.com/admin/internal/shared/paging"
	"pehlione.com/admin/internal/wizard"
)

var ErrUnknownAction = errors.New("hub: unknown bulk action")

// Dashboard is what the admin UI needs from one entity hub.
type Dashboard interface {
	List(ctx context.Context, p paging.Params) (paging.Result[any], error)
	Detail(ctx context.Context, id string) (any, error)
	StartCreate(ctx context.Context) (wizard.Session, error)
	StartEdit(ctx context.Context, id string) (wizard.Session, error)
	Delete(ctx context.Context, id string) error
	Bulk(ctx context.Context, req BulkRequest) (BulkResult, error)
	BulkActions() []string
}

// Resource is the REST face of a hub. Payloads are pointers returned by
// NewPayload so transports can decode into them.
type Resource interface {
	List(ctx context.Context, p paging.Params) (paging.Result[any], error)
	Get(ctx context.Context, id string) (any, error)
	NewPayload() any
	Create(ctx context.Context, payload any) (any, error)
	Update(ctx context.Context, id string, payload any) (any, error)
	Delete(ctx context.Context, id string) error
}

type Hub struct {
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Dashboard Dashboard `json:"-"`
	Resource  Resource  `json:"-"`
}

type BulkRequest struct {
	Action string   `json:"action" form:"action" binding:"required"`
	IDs    []string `json:"ids" form:"ids" binding:"required,min=1"`
}

// BulkResult reports per-id outcomes; one failing id does not stop the rest.
type BulkResult struct {
	Action    string            `json:"action"`
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed"`
}

func (r BulkResult) OK() bool { return len(r.Failed) == 0 }
