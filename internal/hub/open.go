package hub

import (
	"context"

	"pehlione.com/admin/internal/shared/paging"
	"pehlione.com/admin/internal/viewmode"
	"pehlione.com/admin/internal/wizard"
)

// Screen is what a hub shows for one view mode. List and View fill List
// and Detail, Edit shows the record being edited, Bulk lists its actions.
type Screen struct {
	Hub     string              `json:"hub"`
	Mode    viewmode.Mode       `json:"mode"`
	List    *paging.Result[any] `json:"list,omitempty"`
	Detail  any                 `json:"detail,omitempty"`
	Actions []string            `json:"actions,omitempty"`
}

// Open resolves a view mode to its screen. It has no side effects; wizard
// sessions are started with Start.
func (h Hub) Open(ctx context.Context, m viewmode.Mode, p paging.Params) (Screen, error) {
	s := Screen{Hub: h.Name, Mode: m}
	switch m.Kind {
	case viewmode.List:
		res, err := h.Dashboard.List(ctx, p)
		if err != nil {
			return Screen{}, err
		}
		s.List = &res
	case viewmode.View, viewmode.Edit:
		d, err := h.Dashboard.Detail(ctx, m.ID)
		if err != nil {
			return Screen{}, err
		}
		s.Detail = d
	case viewmode.Bulk:
		s.Actions = h.Dashboard.BulkActions()
	}
	return s, nil
}

// Start opens a create wizard, or an edit wizard seeded from the record
// when id is set. The caller stores the session.
func (h Hub) Start(ctx context.Context, id string) (wizard.Session, error) {
	if id == "" {
		return h.Dashboard.StartCreate(ctx)
	}
	return h.Dashboard.StartEdit(ctx, id)
}
