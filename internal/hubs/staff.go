package hubs

import (
	"context"

	"pehlione.com/admin/internal/hub"
	"pehlione.com/admin/internal/modules/staff"
	"pehlione.com/admin/pkg/view"
)

func staffCRUD(d Deps) *hub.CRUD[staff.Member, staff.Input] {
	svc := d.Staff
	return &hub.CRUD[staff.Member, staff.Input]{
		Service:    svc,
		CreateForm: staff.CreateForm,
		EditForm:   staff.EditForm,
		Seed:       staff.Seed,
		Row:        func(m staff.Member) any { return staffRow(m) },
		View: func(_ context.Context, m staff.Member) (any, error) {
			out := view.StaffDetail{
				StaffRow:    staffRow(m),
				Phone:       m.Phone,
				HireDate:    view.Date(m.HireDate),
				Permissions: append([]string{}, m.Permissions...),
			}
			if m.Salary != nil {
				out.Salary = view.Money(*m.Salary, "")
			}
			return out, nil
		},
		Actions: map[string]hub.Action{
			"activate":   func(ctx context.Context, id string) error { return svc.SetActive(ctx, id, true) },
			"deactivate": func(ctx context.Context, id string) error { return svc.SetActive(ctx, id, false) },
		},
	}
}

func staffRow(m staff.Member) view.StaffRow {
	return view.StaffRow{
		ID:         m.ID,
		Name:       m.FullName(),
		Email:      m.Email,
		Role:       m.Role,
		Department: m.Department,
		Active:     m.IsActive,
	}
}
