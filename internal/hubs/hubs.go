// Package hubs mounts the coupon, category, product and staff hubs.
package hubs

import (
	"context"
	"time"

	"pehlione.com/admin/internal/hub"
	"pehlione.com/admin/internal/modules/categories"
	"pehlione.com/admin/internal/modules/coupons"
	"pehlione.com/admin/internal/modules/products"
	"pehlione.com/admin/internal/modules/staff"
)

const (
	Coupons    = "coupons"
	Categories = "categories"
	Products   = "products"
	Staff      = "staff"
)

// Namer resolves ids to display names.
type Namer interface {
	Names(ctx context.Context, ids []string) (map[string]string, error)
}

type Deps struct {
	Coupons    *coupons.Service
	Categories *categories.Service
	Products   *products.Service
	Staff      *staff.Service

	CategoryNames Namer
	ProductNames  Namer

	Now func() time.Time
}

// Register mounts every hub with a service in deps. Disabled hubs are
// skipped by the registry.
func Register(reg *hub.Registry, deps Deps) error {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	var all []hub.Hub
	if deps.Coupons != nil {
		all = append(all, newHub(Coupons, "Coupons", couponCRUD(deps)))
	}
	if deps.Categories != nil {
		all = append(all, newHub(Categories, "Categories", categoryCRUD(deps)))
	}
	if deps.Products != nil {
		all = append(all, newHub(Products, "Products", productCRUD(deps)))
	}
	if deps.Staff != nil {
		all = append(all, newHub(Staff, "Staff", staffCRUD(deps)))
	}
	for _, h := range all {
		if _, err := reg.Register(h); err != nil {
			return err
		}
	}
	return nil
}

type crud interface {
	hub.Dashboard
	hub.Resource
}

func newHub(name, title string, c crud) hub.Hub {
	return hub.Hub{Name: name, Title: title, Dashboard: c, Resource: c}
}

func names(ctx context.Context, n Namer, ids []string) map[string]string {
	if n == nil || len(ids) == 0 {
		return nil
	}
	out, err := n.Names(ctx, ids)
	if err != nil {
		// detail views fall back to raw ids
		return nil
	}
	return out
}
