package hubs

import (
	"context"
	"fmt"
	"strconv"

	"pehlione.com/admin/internal/hub"
	"pehlione.com/admin/internal/modules/coupons"
	"pehlione.com/admin/pkg/view"
)

func couponCRUD(d Deps) *hub.CRUD[coupons.Coupon, coupons.Input] {
	svc := d.Coupons
	return &hub.CRUD[coupons.Coupon, coupons.Input]{
		Service:    svc,
		CreateForm: svc.Form(),
		Seed:       coupons.Seed,
		Row: func(c coupons.Coupon) any {
			return couponRow(c, d)
		},
		View: func(ctx context.Context, c coupons.Coupon) (any, error) {
			out := view.CouponDetail{
				CouponRow:   couponRow(c, d),
				Description: c.Description,
				Categories:  view.NamedList(c.ApplicableCategories, names(ctx, d.CategoryNames, c.ApplicableCategories)),
				Products:    view.NamedList(c.ApplicableProducts, names(ctx, d.ProductNames, c.ApplicableProducts)),
				CreatedAt:   c.CreatedAt.Format("2006-01-02 15:04"),
				UpdatedAt:   c.UpdatedAt.Format("2006-01-02 15:04"),
			}
			if c.MinOrderAmount != nil {
				out.MinOrderAmount = strconv.FormatFloat(*c.MinOrderAmount, 'f', 2, 64)
			}
			if c.MaxDiscountAmount != nil {
				out.MaxDiscountAmount = strconv.FormatFloat(*c.MaxDiscountAmount, 'f', 2, 64)
			}
			if c.PerUserLimit != nil {
				out.PerUserLimit = strconv.Itoa(*c.PerUserLimit)
			}
			return out, nil
		},
		Actions: map[string]hub.Action{
			"activate":   func(ctx context.Context, id string) error { return svc.SetActive(ctx, id, true) },
			"deactivate": func(ctx context.Context, id string) error { return svc.SetActive(ctx, id, false) },
		},
	}
}

func couponRow(c coupons.Coupon, d Deps) view.CouponRow {
	discount := strconv.FormatFloat(c.DiscountValue, 'f', -1, 64) + "%"
	if c.DiscountType == coupons.TypeFixed {
		discount = strconv.FormatFloat(c.DiscountValue, 'f', 2, 64)
	}
	validity := "from " + c.ValidFrom.Format("2006-01-02")
	if c.ValidUntil != nil {
		validity = c.ValidFrom.Format("2006-01-02") + " to " + view.Date(c.ValidUntil)
	}
	usage := strconv.Itoa(c.UsedCount)
	if c.UsageLimit != nil {
		usage = fmt.Sprintf("%d / %d", c.UsedCount, *c.UsageLimit)
	}
	return view.CouponRow{
		ID:       c.ID,
		Code:     c.Code,
		Name:     c.Name,
		Discount: discount,
		Validity: validity,
		Usage:    usage,
		Status:   c.Status(d.Now()),
	}
}
