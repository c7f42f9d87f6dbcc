package hubs

import (
	"context"

	"pehlione.com/admin/internal/hub"
	"pehlione.com/admin/internal/modules/products"
	"pehlione.com/admin/internal/shared/markdown"
	"pehlione.com/admin/pkg/view"
)

func productCRUD(d Deps) *hub.CRUD[products.Product, products.Input] {
	svc := d.Products
	actions := map[string]hub.Action{}
	for _, st := range products.Statuses {
		actions[st] = func(ctx context.Context, id string) error { return svc.SetStatus(ctx, id, st) }
	}
	return &hub.CRUD[products.Product, products.Input]{
		Service:    svc,
		CreateForm: products.Form,
		Seed:       products.Seed,
		Row:        func(p products.Product) any { return productRow(p) },
		View: func(ctx context.Context, p products.Product) (any, error) {
			out := view.ProductDetail{
				ProductRow:      productRow(p),
				DescriptionHTML: markdown.HTML(p.Description),
				Categories:      view.NamedList(p.Categories, names(ctx, d.CategoryNames, p.Categories)),
				Tags:            append([]string{}, p.Tags...),
				Images:          make([]view.ProductImage, 0, len(p.Images)),
				UpdatedAt:       p.UpdatedAt.Format("2006-01-02 15:04"),
			}
			for _, im := range p.Images {
				out.Images = append(out.Images, view.ProductImage{ID: im.ID, URL: im.URL, Position: im.Position})
			}
			return out, nil
		},
		Actions: actions,
	}
}

func productRow(p products.Product) view.ProductRow {
	return view.ProductRow{
		ID:     p.ID,
		Name:   p.Name,
		Slug:   p.Slug,
		Status: p.Status,
		Price:  view.MoneyFromCents(p.PriceCents, p.Currency),
		Stock:  p.Stock,
	}
}
