package hubs

import (
	"context"

	"pehlione.com/admin/internal/hub"
	"pehlione.com/admin/internal/modules/categories"
	"pehlione.com/admin/internal/shared/markdown"
	"pehlione.com/admin/pkg/view"
)

func categoryCRUD(d Deps) *hub.CRUD[categories.Category, categories.Input] {
	svc := d.Categories
	return &hub.CRUD[categories.Category, categories.Input]{
		Service:    svc,
		CreateForm: categories.Form,
		Seed:       categories.Seed,
		Row:        func(c categories.Category) any { return categoryRow(c) },
		View: func(ctx context.Context, c categories.Category) (any, error) {
			row := categoryRow(c)
			if c.ParentID != nil {
				if n := names(ctx, d.CategoryNames, []string{*c.ParentID}); n[*c.ParentID] != "" {
					row.Parent = n[*c.ParentID]
				}
			}
			return view.CategoryDetail{CategoryRow: row, DescriptionHTML: markdown.HTML(c.Description)}, nil
		},
		Actions: map[string]hub.Action{
			"activate":   func(ctx context.Context, id string) error { return svc.SetActive(ctx, id, true) },
			"deactivate": func(ctx context.Context, id string) error { return svc.SetActive(ctx, id, false) },
		},
	}
}

func categoryRow(c categories.Category) view.CategoryRow {
	row := view.CategoryRow{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		SortOrder: c.SortOrder,
		Active:    c.IsActive,
	}
	if c.ParentID != nil {
		row.Parent = *c.ParentID
	}
	return row
}
