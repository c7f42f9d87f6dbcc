package staff

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"pehlione.com/admin/internal/wizard"
)

const (
	MsgFirstNameRequired   = "First name is required"
	MsgLastNameRequired    = "Last name is required"
	MsgEmailRequired       = "Email is required"
	MsgEmailInvalid        = "Enter a valid email address"
	MsgPhoneInvalid        = "Enter a valid phone number"
	MsgRoleRequired        = "Role is required"
	MsgRoleInvalid         = "Role must be admin, manager, support or warehouse"
	MsgHireDateInvalid     = "Enter a valid hire date"
	MsgHireDateFuture      = "Hire date cannot be in the future"
	MsgSalaryNumber        = "Salary must be a number"
	MsgSalaryNegative      = "Salary cannot be negative"
	MsgPasswordRequired    = "Password is required"
	MsgPasswordShort       = "Password must be at least 8 characters"
	MsgPermissionUnknown   = "Unknown permission"
	MsgPermissionsRequired = "Select at least one permission"
)

const minPassword = 8

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)

// NewForm builds the three-step staff wizard. The password is mandatory
// only when creating; now bounds the hire date.
func NewForm(creating bool, now func() time.Time) *wizard.Schema[Input] {
	if now == nil {
		now = time.Now
	}
	return &wizard.Schema[Input]{
		Entity: "staff",
		Steps: []wizard.Step{
			{
				Name:   "identity",
				Fields: []string{"firstName", "lastName", "email", "phone"},
				Validate: func(d wizard.FormData) wizard.FieldErrors {
					return wizard.Check(d).
						Required("firstName", MsgFirstNameRequired).
						MaxLen("firstName", 80, "First name is too long").
						Required("lastName", MsgLastNameRequired).
						MaxLen("lastName", 80, "Last name is too long").
						Required("email", MsgEmailRequired).
						Email("email", MsgEmailInvalid).
						Pattern("phone", phonePattern, MsgPhoneInvalid).
						Errors()
				},
			},
			{
				Name:   "employment",
				Fields: []string{"role", "department", "hireDate", "salary"},
				Validate: func(d wizard.FormData) wizard.FieldErrors {
					c := wizard.Check(d).
						Required("role", MsgRoleRequired).
						OneOf("role", Roles, MsgRoleInvalid).
						MaxLen("department", 80, "Department is too long").
						Date("hireDate", MsgHireDateInvalid).
						Numeric("salary", MsgSalaryNumber).
						NonNegative("salary", MsgSalaryNegative)
					if hd, err := wizard.OptionalDate(d, "hireDate", time.UTC); err == nil && hd != nil {
						c.Custom("hireDate", hd.After(now()), MsgHireDateFuture)
					}
					return c.Errors()
				},
			},
			{
				Name:   "access",
				Fields: []string{"permissions", "password", "isActive"},
				Validate: func(d wizard.FormData) wizard.FieldErrors {
					perms := wizard.List(d, "permissions")
					unknown := slices.ContainsFunc(perms, func(p string) bool {
						return !slices.Contains(Permissions, p)
					})
					return wizard.Check(d).
						Custom("permissions", unknown, MsgPermissionUnknown).
						When(wizard.Str(d, "role") != RoleAdmin, func(c *wizard.Checker) {
							c.Custom("permissions", len(perms) == 0, MsgPermissionsRequired)
						}).
						When(creating, func(c *wizard.Checker) {
							c.Required("password", MsgPasswordRequired)
						}).
						MinLen("password", minPassword, MsgPasswordShort).
						Errors()
				},
			},
		},
		Defaults: func() wizard.FormData {
			return wizard.FormData{
				"firstName": "", "lastName": "", "email": "", "phone": "",
				"role": RoleSupport, "department": "", "hireDate": "", "salary": "",
				"permissions": "", "password": "", "isActive": true,
			}
		},
		Payload: payload,
	}
}

var (
	CreateForm = NewForm(true, nil)
	EditForm   = NewForm(false, nil)
)

func payload(d wizard.FormData) (Input, error) {
	hire, err := wizard.OptionalDate(d, "hireDate", time.UTC)
	if err != nil {
		return Input{}, err
	}
	salary, err := wizard.OptionalFloat(d, "salary")
	if err != nil {
		return Input{}, err
	}
	return Input{
		FirstName:   wizard.Str(d, "firstName"),
		LastName:    wizard.Str(d, "lastName"),
		Email:       strings.ToLower(wizard.Str(d, "email")),
		Phone:       wizard.Str(d, "phone"),
		Role:        wizard.Str(d, "role"),
		Department:  wizard.Str(d, "department"),
		HireDate:    hire,
		Salary:      salary,
		Permissions: wizard.List(d, "permissions"),
		// passwords are not trimmed
		Password: passwordOf(d),
		IsActive: wizard.Bool(d, "isActive"),
	}, nil
}

// passwordOf keeps inner and outer spaces of a real password, but a blank
// value means "unchanged" exactly as the rules read it.
func passwordOf(d wizard.FormData) string {
	s, _ := d["password"].(string)
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
