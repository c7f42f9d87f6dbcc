package products

import (
	"strings"

	"pehlione.com/admin/internal/shared/slug"
	"pehlione.com/admin/internal/wizard"
)

const (
	MsgNameRequired     = "Product name is required"
	MsgSlugPattern      = "Slug may only contain lowercase letters, digits and hyphens"
	MsgStatusInvalid    = "Status must be draft, active or archived"
	MsgPriceRequired    = "Price is required"
	MsgPriceNumber      = "Price must be a number"
	MsgPricePositive    = "Price must be greater than 0"
	MsgCurrencyRequired = "Currency is required"
	MsgCurrencyInvalid  = "Currency must be EUR, USD, GBP or TRY"
	MsgStockNumber      = "Stock must be a number"
	MsgStockNegative    = "Stock cannot be negative"
	MsgTooManyTags      = "At most 20 tags are allowed"
)

const maxTags = 20

// Form is the two-step product wizard.
var Form = &wizard.Schema[Input]{
	Entity: "product",
	Steps: []wizard.Step{
		{
			Name:   "basics",
			Fields: []string{"name", "slug", "description", "status"},
			Validate: func(d wizard.FormData) wizard.FieldErrors {
				return wizard.Check(d).
					Required("name", MsgNameRequired).
					MaxLen("name", 200, "Name is too long").
					Pattern("slug", slug.Pattern, MsgSlugPattern).
					OneOf("status", Statuses, MsgStatusInvalid).
					Errors()
			},
		},
		{
			Name:   "pricing",
			Fields: []string{"price", "currency", "stock", "categories", "tags"},
			Validate: func(d wizard.FormData) wizard.FieldErrors {
				return wizard.Check(d).
					Required("price", MsgPriceRequired).
					Numeric("price", MsgPriceNumber).
					Positive("price", MsgPricePositive).
					Required("currency", MsgCurrencyRequired).
					OneOf("currency", Currencies, MsgCurrencyInvalid).
					Numeric("stock", MsgStockNumber).
					NonNegative("stock", MsgStockNegative).
					Custom("tags", len(wizard.List(d, "tags")) > maxTags, MsgTooManyTags).
					Errors()
			},
		},
	},
	Defaults: func() wizard.FormData {
		return wizard.FormData{
			"name": "", "slug": "", "description": "", "status": StatusDraft,
			"price": "", "currency": "EUR", "stock": float64(0), "categories": "", "tags": "",
		}
	},
	Payload: payload,
}

func payload(d wizard.FormData) (Input, error) {
	price, err := wizard.Float(d, "price")
	if err != nil {
		return Input{}, err
	}
	stock, err := wizard.Int(d, "stock")
	if err != nil {
		return Input{}, err
	}
	in := Input{
		Name:        wizard.Str(d, "name"),
		Slug:        wizard.Str(d, "slug"),
		Description: strings.TrimSpace(wizard.Str(d, "description")),
		Status:      wizard.Str(d, "status"),
		Price:       price,
		Currency:    strings.ToUpper(wizard.Str(d, "currency")),
		Stock:       stock,
		Categories:  wizard.List(d, "categories"),
		Tags:        normalizeTags(wizard.List(d, "tags")),
	}
	if in.Slug == "" {
		in.Slug = slug.FromName(in.Name, "product")
	}
	if in.Status == "" {
		in.Status = StatusDraft
	}
	return in, nil
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(t)
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
