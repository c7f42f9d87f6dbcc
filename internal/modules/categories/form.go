package categories

import (
	"strings"

	"pehlione.com/admin/internal/shared/slug"
	"pehlione.com/admin/internal/wizard"
)

const (
	msgNameRequired = "Category name is required"
	msgSlugPattern  = "Slug may only contain lowercase letters, digits and hyphens"
	msgSortNumber   = "Sort order must be a number"
	msgSortNegative = "Sort order cannot be negative"
)

// Form is the single-step category wizard.
var Form = &wizard.Schema[Input]{
	Entity: "category",
	Steps: []wizard.Step{
		{
			Name:   "details",
			Fields: []string{"name", "slug", "parentId", "description", "sortOrder", "isActive"},
			Validate: func(d wizard.FormData) wizard.FieldErrors {
				return wizard.Check(d).
					Required("name", msgNameRequired).
					MaxLen("name", 120, "Name is too long").
					Pattern("slug", slug.Pattern, msgSlugPattern).
					Numeric("sortOrder", msgSortNumber).
					NonNegative("sortOrder", msgSortNegative).
					Errors()
			},
		},
	},
	Defaults: func() wizard.FormData {
		return wizard.FormData{
			"name": "", "slug": "", "parentId": "", "description": "",
			"sortOrder": float64(0), "isActive": true,
		}
	},
	Payload: payload,
}

func payload(d wizard.FormData) (Input, error) {
	sort, err := wizard.Int(d, "sortOrder")
	if err != nil {
		return Input{}, err
	}
	in := Input{
		Name:        wizard.Str(d, "name"),
		Slug:        wizard.Str(d, "slug"),
		Description: strings.TrimSpace(wizard.Str(d, "description")),
		SortOrder:   sort,
		IsActive:    wizard.Bool(d, "isActive"),
	}
	if p := wizard.Str(d, "parentId"); p != "" {
		in.ParentID = &p
	}
	if in.Slug == "" {
		in.Slug = slug.FromName(in.Name, "category")
	}
	return in, nil
}
